package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntentKeywordShortCircuit(t *testing.T) {
	llm := newStubLLM(nil)
	p := newTestPipeline(llm)

	queries := []string{
		"What drugs are most common?",
		"How many mouse studies are there?",
		"Top 10 genes in the database",
		"Summarize the breast cancer studies",
		"most frequently studied tissues",
	}
	for _, q := range queries {
		assert.Equal(t, IntentAnalyze, p.ClassifyIntent(context.Background(), q), "query: %s", q)
	}
	assert.Empty(t, llm.calls, "keyword queries must not reach the model")
}

func TestClassifyIntentModel(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     Intent
	}{
		{name: "analyze", response: `{"intent": "analyze"}`, want: IntentAnalyze},
		{name: "search", response: `{"intent": "search"}`, want: IntentSearch},
		{name: "analyze_with_prose", response: `The query is statistical: {"intent": "ANALYZE"}`, want: IntentAnalyze},
		{name: "unusable_output", response: "I cannot classify that.", want: IntentSearch},
		{name: "empty_output", response: "", want: IntentSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := newStubLLM(map[string]string{"intent": tt.response})
			p := newTestPipeline(llm)

			got := p.ClassifyIntent(context.Background(), "studies about something specific")
			assert.Equal(t, tt.want, got)
			assert.Len(t, llm.callsOf("intent"), 1)
		})
	}
}
