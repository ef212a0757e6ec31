// Package prompts holds the instruction templates sent to the language
// model. The wording is part of the behavioral contract with the model;
// change it deliberately.
package prompts

import (
	_ "embed"
	"fmt"
)

// Embedded prompt files

//go:embed intent.txt
var intent string

//go:embed ambiguity.txt
var ambiguity string

//go:embed clarify.txt
var clarify string

//go:embed search_query.txt
var searchQuery string

//go:embed analyze_query.txt
var analyzeQuery string

//go:embed standardize.txt
var standardize string

//go:embed analysis_answer.txt
var analysisAnswer string

// Intent asks for a search/analyze classification of the query.
func Intent(query string) string {
	return fmt.Sprintf(intent, query)
}

// Ambiguity asks whether the query hinges on a known dual-meaning term.
// knownTerms is the rendered list of ambiguous terms with their
// disambiguating questions.
func Ambiguity(query, knownTerms string) string {
	return fmt.Sprintf(ambiguity, query, knownTerms)
}

// Clarify asks which reading of the ambiguous term the user's reply meant.
func Clarify(originalQuery, ambiguousTerm, question, response string) string {
	return fmt.Sprintf(clarify, originalQuery, ambiguousTerm, question, response)
}

// SearchQuery asks for the structured filter extraction of a search query.
func SearchQuery(query string) string {
	return fmt.Sprintf(searchQuery, query)
}

// AnalyzeQuery asks for the lightweight filter extraction of an analysis
// question.
func AnalyzeQuery(query string) string {
	return fmt.Sprintf(analyzeQuery, query)
}

// Standardize asks for canonical forms of the given per-category terms JSON.
func Standardize(termsJSON string) string {
	return fmt.Sprintf(standardize, termsJSON)
}

// AnalysisAnswer asks for a conversational answer to the question against the
// aggregate data summary.
func AnalysisAnswer(studyCount int, dataSummary, question string) string {
	return fmt.Sprintf(analysisAnswer, studyCount, dataSummary, question)
}
