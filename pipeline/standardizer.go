package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"study-agent/corpus"
	"study-agent/llmclient"
	"study-agent/prompts"
)

// StandardizeTerms resolves each extracted term to its canonical form.
// Two tiers: the term dictionary first (exact, then case-insensitive), then
// one combined model call for everything the dictionary does not cover.
// Terms the model also fails to resolve keep their original form, so a term
// the user explicitly supplied is never dropped. Results are deduplicated
// per category.
func (p *Pipeline) StandardizeTerms(ctx context.Context, terms map[corpus.Category][]string) map[corpus.Category][]string {
	result := make(map[corpus.Category][]string, len(terms))
	needsModel := make(map[corpus.Category][]string)

	for cat, list := range terms {
		var resolved, unknown []string
		for _, term := range list {
			if term = strings.TrimSpace(term); term == "" {
				continue
			}
			canonical, ok := p.dict.Lookup(cat, term)
			if !ok {
				unknown = append(unknown, term)
				continue
			}
			if !strings.EqualFold(canonical, term) {
				p.logger.Debug("standardized term from dictionary",
					zap.String("category", string(cat)),
					zap.String("term", term),
					zap.String("canonical", canonical))
			}
			resolved = append(resolved, canonical)
		}
		result[cat] = resolved
		if len(unknown) > 0 {
			needsModel[cat] = unknown
		}
	}

	if len(needsModel) > 0 {
		modelOut := p.standardizeWithModel(ctx, needsModel)
		for cat, unknown := range needsModel {
			if mapped := modelOut[cat]; len(mapped) > 0 {
				result[cat] = union(result[cat], mapped)
			} else {
				// Unresolved terms fall back to the user's literal form.
				result[cat] = union(result[cat], unknown)
			}
		}
	}

	for cat, list := range result {
		if len(list) == 0 {
			delete(result, cat)
		} else {
			result[cat] = union(nil, list)
		}
	}
	return result
}

// standardizeWithModel sends all unresolved terms in one combined call and
// returns whatever per-category lists the model produced. Nil on failure.
func (p *Pipeline) standardizeWithModel(ctx context.Context, terms map[corpus.Category][]string) map[corpus.Category][]string {
	payload, err := json.Marshal(terms)
	if err != nil {
		return nil
	}

	text, err := p.llm.Generate(ctx, prompts.Standardize(string(payload)), 0)
	if err != nil || text == "" {
		p.logger.Debug("model standardization unavailable, keeping literal terms", zap.Error(err))
		return nil
	}

	var out map[corpus.Category][]string
	if !llmclient.Decode(text, &out) {
		return nil
	}

	for cat, mapped := range out {
		if original := terms[cat]; len(original) > 0 {
			p.logger.Debug("standardized terms from model",
				zap.String("category", string(cat)),
				zap.Strings("terms", original),
				zap.Strings("canonical", mapped))
		}
	}
	return out
}

// union appends b onto a, dropping blanks and exact duplicates while keeping
// first-seen order.
func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, term := range list {
			if term = strings.TrimSpace(term); term == "" || seen[term] {
				continue
			}
			seen[term] = true
			out = append(out, term)
		}
	}
	return out
}
