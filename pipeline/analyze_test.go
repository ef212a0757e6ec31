package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCountingSkipsEntityNarrowing(t *testing.T) {
	// A counting question keeps the organism-wide population even when an
	// entity was extracted, so the count is not restricted by the thing
	// being counted.
	llm := newStubLLM(map[string]string{
		"analyze_query": `{"question": "How many human studies mention breast cancer?", "organism": "human", "disease": "breast cancer"}`,
		"answer":        "2 of the 3 human studies involve breast cancer.",
	})
	p := newTestPipeline(llm)

	got := p.Analyze(context.Background(), "how many human studies mention breast cancer?")
	assert.Equal(t, "2 of the 3 human studies involve breast cancer.", got)

	calls := llm.callsOf("answer")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].prompt, "INDEXED DATA SUMMARY (3 studies)")
	assert.InDelta(t, 0.3, calls[0].temperature, 1e-9)
}

func TestAnalyzeNarrowsByEntity(t *testing.T) {
	llm := newStubLLM(map[string]string{
		"analyze_query": `{"question": "What techniques are used in breast cancer studies?", "disease": "breast cancer"}`,
		"answer":        "RNA-seq dominates.",
	})
	p := newTestPipeline(llm)

	got := p.Analyze(context.Background(), "summarize techniques in breast cancer studies")
	assert.Equal(t, "RNA-seq dominates.", got)

	calls := llm.callsOf("answer")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].prompt, "INDEXED DATA SUMMARY (2 studies)")
	assert.Contains(t, calls[0].prompt, "rna-seq")
}

func TestAnalyzeStandardizesExtractedEntity(t *testing.T) {
	// herceptin resolves to trastuzumab via the dictionary, and the
	// trastuzumab study is found even though no study mentions herceptin.
	llm := newStubLLM(map[string]string{
		"analyze_query": `{"question": "Summarize herceptin studies", "drugs": "herceptin"}`,
		"answer":        "One trastuzumab study.",
	})
	p := newTestPipeline(llm)

	got := p.Analyze(context.Background(), "summarize herceptin studies")
	assert.Equal(t, "One trastuzumab study.", got)

	calls := llm.callsOf("answer")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].prompt, "INDEXED DATA SUMMARY (1 studies)")
}

func TestAnalyzeNoMatches(t *testing.T) {
	llm := newStubLLM(map[string]string{
		"analyze_query": `{"question": "Summarize zebrafish studies", "organism": "zebrafish"}`,
	})
	p := newTestPipeline(llm)

	got := p.Analyze(context.Background(), "summarize zebrafish studies")
	assert.Equal(t, "I found no studies matching that criteria to analyze. Try a broader term!", got)
	assert.Empty(t, llm.callsOf("answer"), "no answer call when nothing matched")
}

func TestAnalyzeAnswerUnavailable(t *testing.T) {
	llm := newStubLLM(map[string]string{
		"analyze_query": `{"question": "Summarize the database", "organism": "human"}`,
	})
	p := newTestPipeline(llm)

	got := p.Analyze(context.Background(), "summarize the database")
	assert.Equal(t, "I couldn't analyze the database right now. Please try again.", got)
}

func TestAnalyzeExtractionFailureFallsBackToRawQuery(t *testing.T) {
	llm := newStubLLM(map[string]string{
		"answer": "All 4 studies summarized.",
	})
	p := newTestPipeline(llm)

	got := p.Analyze(context.Background(), "summarize everything")
	assert.Equal(t, "All 4 studies summarized.", got)

	calls := llm.callsOf("answer")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].prompt, "INDEXED DATA SUMMARY (4 studies)")
	assert.Contains(t, calls[0].prompt, "summarize everything", "raw query becomes the question")
}

func TestIsCountingQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"how many studies are there", true},
		{"give me a count of mouse studies", true},
		{"number of breast cancer datasets", true},
		{"most common drugs", false},
		{"summarize the techniques", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isCountingQuery(tt.query), "query: %s", tt.query)
	}
}

func TestBuildDataSummarySections(t *testing.T) {
	summary := buildDataSummary(pipelineStudies())

	assert.Contains(t, summary, "INDEXED DATA SUMMARY (4 studies)")
	assert.Contains(t, summary, "DRUGS (2 unique):")
	assert.Contains(t, summary, "- trastuzumab: 1 studies")
	assert.Contains(t, summary, "GENES (2 unique):")
	assert.Contains(t, summary, "- BRCA1: 1 studies")
	assert.Contains(t, summary, "CELL TYPES (0 unique):")
	assert.Contains(t, summary, "None found")
}
