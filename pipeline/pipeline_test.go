package pipeline

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"study-agent/config"
	"study-agent/corpus"
	"study-agent/dictionary"
)

// promptKind identifies which instruction template a prompt was rendered
// from, keyed off each template's distinctive opening line.
func promptKind(prompt string) string {
	switch {
	case strings.HasPrefix(prompt, "Classify this query"):
		return "intent"
	case strings.HasPrefix(prompt, "Analyze this search query"):
		return "ambiguity"
	case strings.HasPrefix(prompt, "The user was asked a clarifying question"):
		return "clarify"
	case strings.HasPrefix(prompt, "Extract ONLY the biological/technical entities"):
		return "search"
	case strings.HasPrefix(prompt, "You are analyzing the full dataset"):
		return "analyze_query"
	case strings.HasPrefix(prompt, "Standardize these search terms"):
		return "standardize"
	case strings.HasPrefix(prompt, "You are analyzing gene expression studies"):
		return "answer"
	}
	return "unknown"
}

type stubCall struct {
	kind        string
	prompt      string
	temperature float64
}

// stubLLM routes each prompt to a canned response by template kind. Kinds
// with no entry yield empty text, which exercises each caller's fail-open
// default.
type stubLLM struct {
	mu        sync.Mutex
	responses map[string]string
	calls     []stubCall
}

func newStubLLM(responses map[string]string) *stubLLM {
	return &stubLLM{responses: responses}
}

func (s *stubLLM) Generate(_ context.Context, prompt string, temperature float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kind := promptKind(prompt)
	s.calls = append(s.calls, stubCall{kind: kind, prompt: prompt, temperature: temperature})
	return s.responses[kind], nil
}

func (s *stubLLM) callsOf(kind string) []stubCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []stubCall
	for _, c := range s.calls {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func pipelineStudies() []corpus.Study {
	return []corpus.Study{
		{
			Project:    "SRP001",
			Title:      "Trastuzumab response in HER2-positive breast cancer",
			Organism:   "human",
			NSamples:   48,
			Drugs:      []string{"trastuzumab"},
			Genes:      []string{"ERBB2"},
			Diseases:   []string{"breast cancer"},
			Techniques: []string{"RNA-seq"},
		},
		{
			Project:  "SRP002",
			Title:    "BRCA1 knockout in mouse mammary tissue",
			Organism: "mouse",
			NSamples: 12,
			Genes:    []string{"BRCA1"},
			Tissues:  []string{"mammary gland"},
		},
		{
			Project:  "SRP003",
			Title:    "Chemotherapy resistance in breast cancer organoids",
			Organism: "human",
			NSamples: 120,
			Drugs:    []string{"paclitaxel"},
			Diseases: []string{"breast cancer"},
		},
		{
			Project:  "SRP004",
			Title:    "Baseline liver expression atlas",
			Organism: "human",
			NSamples: 200,
			Tissues:  []string{"liver"},
		},
	}
}

func newTestPipeline(llm Generator) *Pipeline {
	cfg := &config.Config{AnalysisTemperature: 0.3}
	store := corpus.NewStore(pipelineStudies())
	return New(cfg, llm, dictionary.Builtin(), store, zap.NewNop())
}

func resultProjects(studies []corpus.Study) []string {
	out := make([]string, 0, len(studies))
	for _, s := range studies {
		out = append(out, s.Project)
	}
	return out
}
