package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"study-agent/llmclient"
	"study-agent/prompts"
)

// AmbiguousTerm is one dual-meaning biomedical abbreviation the resolver
// knows about, with the question that disambiguates it.
type AmbiguousTerm struct {
	Spellings string // spellings the model should watch for
	Meanings  string // the two readings
	Question  string // the clarifying question to pose
}

// AmbiguousTerms is the fixed table of dual-meaning terms. New entries are a
// table row; the prompt is rendered from it.
var AmbiguousTerms = []AmbiguousTerm{
	{
		Spellings: "BRCA or brca",
		Meanings:  "Could be genes OR breast cancer",
		Question:  "Are you looking for BRCA genes (BRCA1/BRCA2) or breast cancer studies?",
	},
	{
		Spellings: "HER2 or her2",
		Meanings:  "Could be ERBB2 gene OR HER2+ subtype",
		Question:  "Are you looking for HER2 gene or HER2-positive cancer studies?",
	},
	{
		Spellings: "ER or er",
		Meanings:  "Could be ESR1 gene OR ER+ subtype",
		Question:  "Are you looking for ER gene or estrogen receptor-positive studies?",
	},
	{
		Spellings: "PD-1, PD-L1, PD1, PDL1",
		Meanings:  "Could be genes OR drugs",
		Question:  "Are you looking for PD-1/PD-L1 genes or immunotherapy drugs?",
	},
}

func renderAmbiguousTerms() string {
	var b strings.Builder
	for _, t := range AmbiguousTerms {
		fmt.Fprintf(&b, "- %s (%s) -> Ask: \"%s\"\n", t.Spellings, t.Meanings, t.Question)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Ambiguity is the resolver's output contract. Only IsAmbiguous with IsClear
// false triggers the clarification branch.
type Ambiguity struct {
	IsAmbiguous        bool   `json:"is_ambiguous"`
	IsClear            bool   `json:"is_clear"`
	QueryType          string `json:"query_type"`
	AmbiguousTerm      string `json:"ambiguous_term"`
	ClarifyingQuestion string `json:"clarifying_question"`
}

// NeedsClarification reports whether the turn should pause for a reply.
func (a Ambiguity) NeedsClarification() bool {
	return a.IsAmbiguous && !a.IsClear && a.ClarifyingQuestion != ""
}

// CheckAmbiguity asks the model whether the query hinges on a known
// dual-meaning term. On any failure it defaults to non-ambiguous, so a flaky
// backend degrades to a normal search rather than a stuck conversation.
func (p *Pipeline) CheckAmbiguity(ctx context.Context, query string) Ambiguity {
	clear := Ambiguity{IsAmbiguous: false, IsClear: true, QueryType: string(IntentSearch)}

	text, err := p.llm.Generate(ctx, prompts.Ambiguity(query, renderAmbiguousTerms()), 0)
	if err != nil || text == "" {
		p.logger.Debug("ambiguity check unavailable, treating query as clear", zap.Error(err))
		return clear
	}

	var out Ambiguity
	if !llmclient.Decode(text, &out) {
		return clear
	}
	return out
}
