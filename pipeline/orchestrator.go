package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"study-agent/corpus"
	"study-agent/metrics"
)

// Respond runs one conversation turn. The machine has two states: IDLE and
// AWAITING_CLARIFICATION (a non-nil sess.Pending); exactly one transition
// happens per turn and the result is deterministic given (state, input,
// pending record). Clarification always takes priority over a fresh parse.
func (p *Pipeline) Respond(ctx context.Context, sess *Session, input string) Response {
	input = strings.TrimSpace(input)

	if sess.Pending != nil {
		pending := *sess.Pending
		sess.Pending = nil
		return p.respondClarification(ctx, pending, input)
	}

	// Exact project identifier bypasses the whole pipeline.
	if study, ok := p.store.ByProject(input); ok {
		metrics.Turns.WithLabelValues("project").Inc()
		return Response{
			Kind:     KindProject,
			Study:    &study,
			Abstract: p.store.Abstract(study.Project),
		}
	}

	if p.ClassifyIntent(ctx, input) == IntentAnalyze {
		metrics.Turns.WithLabelValues("analysis").Inc()
		return Response{Kind: KindMessage, Text: p.Analyze(ctx, input), Analysis: true}
	}

	if amb := p.CheckAmbiguity(ctx, input); amb.NeedsClarification() {
		sess.Pending = &PendingClarification{
			OriginalQuery:      input,
			AmbiguousTerm:      amb.AmbiguousTerm,
			ClarifyingQuestion: amb.ClarifyingQuestion,
		}
		p.logger.Info("Query ambiguous, asking for clarification",
			zap.String("term", amb.AmbiguousTerm))
		metrics.Turns.WithLabelValues("clarification").Inc()
		return Response{Kind: KindClarification, Text: amb.ClarifyingQuestion}
	}

	parsed, ok := p.ParseSearchQuery(ctx, input)
	if !ok {
		metrics.Turns.WithLabelValues("message").Inc()
		return Response{Kind: KindMessage, Text: msgCouldNotUnderstand}
	}

	merged := p.standardizeAndMerge(ctx, parsed)
	results := merged.Apply(p.store.Studies())

	p.logger.Info("Search complete",
		zap.String("query", input),
		zap.Int("results", len(results)))
	metrics.Turns.WithLabelValues("results").Inc()

	return Response{
		Kind:        KindResults,
		Studies:     results,
		Interpreted: interpretedTerms(input, merged),
	}
}

// respondClarification consumes the pending record exactly once: either the
// reply resolves into a one-field filter (merged with any other filters,
// standardized, and run through the filter engine like a normal query) or
// the conversation resets with a restart message.
func (p *Pipeline) respondClarification(ctx context.Context, pending PendingClarification, reply string) Response {
	res := p.ResolveClarification(ctx, reply, pending)
	if !res.Resolved() {
		metrics.Turns.WithLabelValues("message").Inc()
		return Response{Kind: KindMessage, Text: msgRestart}
	}

	filter := res.OtherFilters
	filter.SetField(res.Category, corpus.MatchTerms(res.SearchTerms...))
	filter = p.standardizeFilter(ctx, filter)

	results := filter.Apply(p.store.Studies())
	p.logger.Info("Clarified search complete",
		zap.String("term", pending.AmbiguousTerm),
		zap.String("category", string(res.Category)),
		zap.Int("results", len(results)))
	metrics.Turns.WithLabelValues("results").Inc()

	return Response{Kind: KindResults, Studies: results}
}

// standardizeFilter replaces each standardizable category's terms with their
// canonical forms (the clarification path; the resolved reading is exact, so
// no literal-term union is wanted).
func (p *Pipeline) standardizeFilter(ctx context.Context, filter corpus.Filter) corpus.Filter {
	terms := collectStandardizable(filter)
	if len(terms) == 0 {
		return filter
	}
	for cat, list := range p.StandardizeTerms(ctx, terms) {
		filter.SetField(cat, corpus.MatchTerms(list...))
	}
	return filter
}

// standardizeAndMerge unions each category's standardized terms with the
// literal extracted ones, so a term the user typed still matches even when
// standardization rewrote it.
func (p *Pipeline) standardizeAndMerge(ctx context.Context, parsed corpus.Filter) corpus.Filter {
	terms := collectStandardizable(parsed)
	if len(terms) == 0 {
		return parsed
	}
	for cat, list := range p.StandardizeTerms(ctx, terms) {
		merged := union(parsed.Field(cat).Terms(), list)
		parsed.SetField(cat, corpus.MatchTerms(merged...))
	}
	return parsed
}

func collectStandardizable(filter corpus.Filter) map[corpus.Category][]string {
	terms := make(map[corpus.Category][]string)
	for _, cat := range corpus.StandardizedCategories {
		if list := filter.Field(cat).Terms(); len(list) > 0 {
			terms[cat] = list
		}
	}
	return terms
}

// interpretedTerms builds the "interpreted as" annotation: the merged terms,
// unless every one of them already appears verbatim in the user's input.
func interpretedTerms(input string, filter corpus.Filter) string {
	var terms []string
	for _, cat := range corpus.Categories {
		terms = append(terms, filter.Field(cat).Terms()...)
	}
	if len(terms) == 0 {
		return ""
	}

	inputLower := strings.ToLower(input)
	allLiteral := true
	for _, t := range terms {
		if !strings.Contains(inputLower, strings.ToLower(t)) {
			allLiteral = false
			break
		}
	}
	if allLiteral {
		return ""
	}
	return strings.Join(terms, ", ")
}
