package pipeline

import (
	"context"

	"go.uber.org/zap"

	"study-agent/corpus"
	"study-agent/llmclient"
	"study-agent/prompts"
)

// Clarification is the interpreter's output contract: which reading the user
// meant, as a concrete category plus search terms, with any extra filters the
// model salvaged from the original query.
type Clarification struct {
	Understood   bool            `json:"understood"`
	Category     corpus.Category `json:"category"`
	SearchTerms  []string        `json:"search_terms"`
	OtherFilters corpus.Filter   `json:"other_filters"`
}

// Resolved reports whether the reply yielded a usable filter.
func (c Clarification) Resolved() bool {
	return c.Understood && c.Category != "" && len(c.SearchTerms) > 0
}

// ResolveClarification interprets the user's free-text reply to a pending
// clarifying question. On any gateway or parse failure it reports
// not-understood; the orchestrator then resets the conversation rather than
// retrying.
func (p *Pipeline) ResolveClarification(ctx context.Context, reply string, pending PendingClarification) Clarification {
	prompt := prompts.Clarify(pending.OriginalQuery, pending.AmbiguousTerm, pending.ClarifyingQuestion, reply)

	text, err := p.llm.Generate(ctx, prompt, 0)
	if err != nil || text == "" {
		p.logger.Debug("clarification interpretation unavailable", zap.Error(err))
		return Clarification{}
	}

	var out Clarification
	if !llmclient.Decode(text, &out) {
		return Clarification{}
	}
	return out
}
