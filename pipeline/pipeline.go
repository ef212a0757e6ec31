// Package pipeline implements the query-understanding pipeline: intent
// classification, ambiguity resolution with a clarification round-trip,
// structured entity extraction, term standardization, and the conversation
// orchestrator that ties them to the filter and analysis engines.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"study-agent/config"
	"study-agent/corpus"
	"study-agent/dictionary"
)

// Generator is the single language-model capability the pipeline depends on.
// Implementations fail soft: empty text plus an error when the backend is
// unusable. Every caller maps that to its own default.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Pipeline holds the immutable collaborators of the query pipeline. It is
// stateless across turns; all conversation state lives in the Session the
// caller passes into Respond.
type Pipeline struct {
	cfg    *config.Config
	llm    Generator
	dict   *dictionary.Dictionary
	store  *corpus.Store
	logger *zap.Logger
}

func New(cfg *config.Config, llm Generator, dict *dictionary.Dictionary, store *corpus.Store, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		llm:    llm,
		dict:   dict,
		store:  store,
		logger: logger,
	}
}

// PendingClarification is the stateful half of the ambiguity round-trip:
// the query that triggered it, the term found ambiguous, and the question
// posed. It is consumed exactly once.
type PendingClarification struct {
	OriginalQuery      string
	AmbiguousTerm      string
	ClarifyingQuestion string
}

// Session is one user's conversation state, owned by the caller and passed
// by reference into Respond per turn. A non-nil Pending means the machine is
// in AWAITING_CLARIFICATION; nil means IDLE.
type Session struct {
	ID      uuid.UUID
	Pending *PendingClarification
}

func NewSession() *Session {
	return &Session{ID: uuid.New()}
}

// AwaitingClarification reports whether a clarifying question is outstanding.
func (s *Session) AwaitingClarification() bool { return s.Pending != nil }

// ResponseKind discriminates the structured result of a turn.
type ResponseKind string

const (
	// KindMessage is a plain-language text answer or error message.
	KindMessage ResponseKind = "message"
	// KindResults is a filtered study list.
	KindResults ResponseKind = "results"
	// KindClarification is a clarifying question; no filtering happened.
	KindClarification ResponseKind = "clarification"
	// KindProject is a single-study detail view.
	KindProject ResponseKind = "project"
)

// Response is the structured result of one turn, rendered by the caller.
type Response struct {
	Kind    ResponseKind
	Text    string
	Studies []corpus.Study
	Study   *corpus.Study
	// Abstract accompanies a project detail response.
	Abstract string
	// Interpreted annotates a results response with the standardized terms
	// actually searched, when they differ from the literal input.
	Interpreted string
	// Analysis marks Text as an analysis-engine answer (free-form model
	// prose rather than a canned message).
	Analysis bool
}

// User-facing fallback messages. All gateway and parse failures degrade to
// one of these; nothing technical reaches the user.
const (
	msgRestart             = "I didn't quite understand. Let's start over."
	msgCouldNotUnderstand  = "I couldn't understand your search."
	msgNoAnalysisMatches   = "I found no studies matching that criteria to analyze. Try a broader term!"
	msgAnalysisUnavailable = "I couldn't analyze the database right now. Please try again."
)
