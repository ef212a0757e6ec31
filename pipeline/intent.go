package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"study-agent/llmclient"
	"study-agent/prompts"
)

// Intent is the binary classification of a query.
type Intent string

const (
	IntentSearch  Intent = "search"
	IntentAnalyze Intent = "analyze"
)

// analyzeKeywords short-circuit the classifier: phrasing that is unambiguously a
// statistical question never needs a model call.
var analyzeKeywords = []string{
	"most common", "most commonly", "most frequent", "most used",
	"how many", "count", "summarize", "summary", "top ", "what drugs",
	"what genes", "what techniques", "what diseases", "what cells",
}

func hasAnalyzeKeyword(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range analyzeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ClassifyIntent decides whether the user is searching for studies or asking
// about the database. The deterministic keyword check runs first; the model
// is only consulted for everything else, and any failure defaults to SEARCH
// (fail open to the cheaper path).
func (p *Pipeline) ClassifyIntent(ctx context.Context, query string) Intent {
	if hasAnalyzeKeyword(query) {
		return IntentAnalyze
	}

	text, err := p.llm.Generate(ctx, prompts.Intent(query), 0)
	if err != nil || text == "" {
		p.logger.Debug("intent classification unavailable, defaulting to search", zap.Error(err))
		return IntentSearch
	}

	var out struct {
		Intent string `json:"intent"`
	}
	if !llmclient.Decode(text, &out) {
		return IntentSearch
	}
	if strings.EqualFold(strings.TrimSpace(out.Intent), "analyze") {
		return IntentAnalyze
	}
	return IntentSearch
}
