package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"study-agent/corpus"
	"study-agent/llmclient"
	"study-agent/prompts"
)

// countingKeywords mark questions about population size. For these, entity
// pre-filtering is skipped so the count covers the organism-filtered corpus
// instead of being circularly restricted by the entity being counted.
var countingKeywords = []string{"how many", "count", "number of"}

func isCountingQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range countingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// flexString tolerates the scalar shapes the model emits for a single-value
// field: a string, null, or a list whose first element is taken.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if json.Unmarshal(data, &s) == nil {
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var list []string
	if json.Unmarshal(data, &list) == nil && len(list) > 0 {
		*f = flexString(strings.TrimSpace(list[0]))
	}
	return nil
}

// analyzeFilters is the lightweight extraction schema for analysis
// questions: one scalar per field, unlike the search parser's lists.
type analyzeFilters struct {
	Question string     `json:"question"`
	Organism flexString `json:"organism"`
	Disease  flexString `json:"disease"`
	Drug     flexString `json:"drugs"`
	Gene     flexString `json:"genes"`
	CellType flexString `json:"cell_types"`
	Tissue   flexString `json:"tissues"`
}

// Analyze answers a free-form question about the database: it narrows the
// corpus per the extracted filters, aggregates entity frequencies, and asks
// the model to answer against that summary. Always returns user-facing text.
func (p *Pipeline) Analyze(ctx context.Context, query string) string {
	filters := p.parseAnalyzeQuery(ctx, query)
	p.standardizeAnalyzeFilters(ctx, &filters)

	question := strings.TrimSpace(filters.Question)
	if question == "" {
		question = query
	}

	data := p.store.Studies()
	if filters.Organism != "" {
		organism := string(filters.Organism)
		data = filterStudies(data, func(s corpus.Study) bool {
			return strings.EqualFold(s.Organism, organism)
		})
	}

	if !isCountingQuery(query) {
		target := firstNonEmpty(string(filters.Disease), string(filters.Drug), string(filters.Gene))
		if target != "" {
			lower := strings.ToLower(target)
			data = filterStudies(data, func(s corpus.Study) bool {
				if strings.Contains(strings.ToLower(s.Title), lower) {
					return true
				}
				for _, d := range s.Diseases {
					if strings.Contains(strings.ToLower(d), lower) {
						return true
					}
				}
				return false
			})
		}
	}

	if len(data) == 0 {
		return msgNoAnalysisMatches
	}

	p.logger.Info("Analyzing studies", zap.Int("count", len(data)), zap.String("question", question))

	summary := buildDataSummary(data)
	answer, err := p.llm.Generate(ctx, prompts.AnalysisAnswer(len(data), summary, question), p.cfg.AnalysisTemperature)
	if err != nil || answer == "" {
		p.logger.Warn("analysis answer unavailable", zap.Error(err))
		return msgAnalysisUnavailable
	}
	return answer
}

// parseAnalyzeQuery extracts the analysis filters; on failure everything
// defaults to empty and the question falls back to the raw query.
func (p *Pipeline) parseAnalyzeQuery(ctx context.Context, query string) analyzeFilters {
	fallback := analyzeFilters{Question: query}

	text, err := p.llm.Generate(ctx, prompts.AnalyzeQuery(query), 0)
	if err != nil || text == "" {
		p.logger.Debug("analysis query extraction unavailable", zap.Error(err))
		return fallback
	}

	var out analyzeFilters
	if !llmclient.Decode(text, &out) {
		return fallback
	}
	return out
}

// standardizeAnalyzeFilters routes the scalar disease/drug/gene fields
// through the term standardizer, adapting the scalar-list shape.
func (p *Pipeline) standardizeAnalyzeFilters(ctx context.Context, filters *analyzeFilters) {
	terms := make(map[corpus.Category][]string)
	if filters.Disease != "" {
		terms[corpus.Diseases] = []string{string(filters.Disease)}
	}
	if filters.Drug != "" {
		terms[corpus.Drugs] = []string{string(filters.Drug)}
	}
	if filters.Gene != "" {
		terms[corpus.Genes] = []string{string(filters.Gene)}
	}
	if len(terms) == 0 {
		return
	}

	standardized := p.StandardizeTerms(ctx, terms)
	if list := standardized[corpus.Diseases]; len(list) > 0 {
		filters.Disease = flexString(list[0])
	}
	if list := standardized[corpus.Drugs]; len(list) > 0 {
		filters.Drug = flexString(list[0])
	}
	if list := standardized[corpus.Genes]; len(list) > 0 {
		filters.Gene = flexString(list[0])
	}
}

type freqEntry struct {
	term  string
	count int
}

type freqCounter map[string]int

func (c freqCounter) add(term string) {
	if term = strings.TrimSpace(term); term != "" {
		c[term]++
	}
}

// top returns the n most frequent entries, count descending with ties broken
// alphabetically for determinism.
func (c freqCounter) top(n int) []freqEntry {
	entries := make([]freqEntry, 0, len(c))
	for term, count := range c {
		entries = append(entries, freqEntry{term, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].term < entries[j].term
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// buildDataSummary aggregates entity frequencies across the studies and
// formats the top 30 per category. Drugs and the non-gene categories are
// lowercased, gene symbols uppercased.
func buildDataSummary(studies []corpus.Study) string {
	drugs := freqCounter{}
	genes := freqCounter{}
	cells := freqCounter{}
	diseases := freqCounter{}
	techniques := freqCounter{}
	tissues := freqCounter{}

	for _, s := range studies {
		for _, d := range s.Drugs {
			drugs.add(strings.ToLower(d))
		}
		for _, g := range s.Genes {
			genes.add(strings.ToUpper(g))
		}
		for _, c := range s.CellTypes {
			cells.add(strings.ToLower(c))
		}
		for _, d := range s.Diseases {
			diseases.add(strings.ToLower(d))
		}
		for _, t := range s.Techniques {
			techniques.add(strings.ToLower(t))
		}
		for _, t := range s.Tissues {
			tissues.add(strings.ToLower(t))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INDEXED DATA SUMMARY (%d studies):\n\n", len(studies))
	writeFreqSection(&b, "DRUGS", drugs)
	writeFreqSection(&b, "GENES", genes)
	writeFreqSection(&b, "CELL TYPES", cells)
	writeFreqSection(&b, "DISEASES", diseases)
	writeFreqSection(&b, "TECHNIQUES", techniques)
	writeFreqSection(&b, "TISSUES", tissues)
	return strings.TrimRight(b.String(), "\n")
}

func writeFreqSection(b *strings.Builder, label string, c freqCounter) {
	fmt.Fprintf(b, "%s (%d unique):\n", label, len(c))
	entries := c.top(30)
	if len(entries) == 0 {
		b.WriteString("  None found\n\n")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(b, "  - %s: %d studies\n", e.term, e.count)
	}
	b.WriteString("\n")
}

func filterStudies(studies []corpus.Study, pred func(corpus.Study) bool) []corpus.Study {
	out := make([]corpus.Study, 0, len(studies))
	for _, s := range studies {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
