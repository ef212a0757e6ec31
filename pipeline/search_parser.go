package pipeline

import (
	"context"

	"go.uber.org/zap"

	"study-agent/corpus"
	"study-agent/llmclient"
	"study-agent/prompts"
)

// ParseSearchQuery turns a free-text search query into a structured filter
// record via the fixed extraction contract. The second return value is false
// when the model produced nothing decodable; the orchestrator treats that as
// a terminal "couldn't understand" outcome for the turn.
func (p *Pipeline) ParseSearchQuery(ctx context.Context, query string) (corpus.Filter, bool) {
	text, err := p.llm.Generate(ctx, prompts.SearchQuery(query), 0)
	if err != nil || text == "" {
		p.logger.Warn("search query extraction unavailable", zap.Error(err))
		return corpus.Filter{}, false
	}

	var filter corpus.Filter
	if !llmclient.Decode(text, &filter) {
		p.logger.Warn("search query extraction returned no usable JSON",
			zap.String("query", query))
		return corpus.Filter{}, false
	}
	return filter, true
}
