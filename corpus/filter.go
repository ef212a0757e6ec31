package corpus

import (
	"encoding/json"
	"strings"
)

type termFilterMode int

const (
	modeUnconstrained termFilterMode = iota
	modeMatchAny
	modeMatchTerms
)

// TermFilter is the per-category constraint of a filter record. It is a
// tagged variant: unconstrained (zero value), match-any (the field must be
// non-empty), or a list of candidate terms matched case-insensitively as
// substrings (OR semantics).
type TermFilter struct {
	mode  termFilterMode
	terms []string
}

// MatchAny returns the sentinel filter that keeps studies whose field is
// non-empty.
func MatchAny() TermFilter {
	return TermFilter{mode: modeMatchAny}
}

// MatchTerms returns a filter that keeps studies matching at least one term.
// With no terms it is unconstrained.
func MatchTerms(terms ...string) TermFilter {
	cleaned := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return TermFilter{}
	}
	return TermFilter{mode: modeMatchTerms, terms: cleaned}
}

// Unconstrained reports whether the filter imposes no constraint.
func (f TermFilter) Unconstrained() bool { return f.mode == modeUnconstrained }

// Any reports whether the filter is the match-any sentinel.
func (f TermFilter) Any() bool { return f.mode == modeMatchAny }

// Terms returns the candidate term list, nil unless a term filter.
func (f TermFilter) Terms() []string {
	if f.mode != modeMatchTerms {
		return nil
	}
	out := make([]string, len(f.terms))
	copy(out, f.terms)
	return out
}

// Matches evaluates the filter against a study's field values.
func (f TermFilter) Matches(values []string) bool {
	switch f.mode {
	case modeUnconstrained:
		return true
	case modeMatchAny:
		return len(values) > 0
	}
	joined := strings.ToLower(strings.Join(values, " "))
	for _, term := range f.terms {
		if strings.Contains(joined, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts the shapes the model emits for a filter field:
// null, the "any" sentinel (bare or as a one-element list), a list of terms,
// or a bare string treated as a single term.
func (f *TermFilter) UnmarshalJSON(data []byte) error {
	*f = TermFilter{}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.EqualFold(strings.TrimSpace(s), "any") {
			*f = MatchAny()
		} else {
			*f = MatchTerms(s)
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 1 && strings.EqualFold(strings.TrimSpace(list[0]), "any") {
			*f = MatchAny()
		} else {
			*f = MatchTerms(list...)
		}
		return nil
	}

	// null or an unexpected shape: no constraint
	return nil
}

// MarshalJSON renders the variant back into the wire shape.
func (f TermFilter) MarshalJSON() ([]byte, error) {
	switch f.mode {
	case modeMatchAny:
		return json.Marshal("any")
	case modeMatchTerms:
		return json.Marshal(f.terms)
	}
	return []byte("null"), nil
}

// Filter is one query's structured constraint record.
type Filter struct {
	Organism   string
	MinSamples int
	MaxSamples int
	fields     map[Category]TermFilter
}

// SetField sets the constraint for a category. Unconstrained values clear it.
func (f *Filter) SetField(cat Category, tf TermFilter) {
	if tf.Unconstrained() {
		delete(f.fields, cat)
		return
	}
	if f.fields == nil {
		f.fields = make(map[Category]TermFilter)
	}
	f.fields[cat] = tf
}

// Field returns the constraint for a category (zero value when absent).
func (f Filter) Field(cat Category) TermFilter {
	return f.fields[cat]
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.Organism == "" && f.MinSamples == 0 && f.MaxSamples == 0 && len(f.fields) == 0
}

// UnmarshalJSON decodes the extraction schema the search parser requests from
// the model: six entity fields plus organism and sample bounds, all optional.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var raw struct {
		Drugs      TermFilter `json:"drugs"`
		Genes      TermFilter `json:"genes"`
		Diseases   TermFilter `json:"diseases"`
		CellTypes  TermFilter `json:"cell_types"`
		Techniques TermFilter `json:"techniques"`
		Tissues    TermFilter `json:"tissues"`
		Organism   *string    `json:"organism"`
		MinSamples *float64   `json:"min_samples"`
		MaxSamples *float64   `json:"max_samples"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = Filter{}
	f.SetField(Drugs, raw.Drugs)
	f.SetField(Genes, raw.Genes)
	f.SetField(Diseases, raw.Diseases)
	f.SetField(CellTypes, raw.CellTypes)
	f.SetField(Techniques, raw.Techniques)
	f.SetField(Tissues, raw.Tissues)
	if raw.Organism != nil {
		f.Organism = strings.TrimSpace(*raw.Organism)
	}
	if raw.MinSamples != nil && *raw.MinSamples > 0 {
		f.MinSamples = int(*raw.MinSamples)
	}
	if raw.MaxSamples != nil && *raw.MaxSamples > 0 {
		f.MaxSamples = int(*raw.MaxSamples)
	}
	return nil
}

// Apply evaluates the filter against the studies, preserving corpus order.
// Each step is a pure subset operation, so the result is independent of the
// order the category constraints are applied in.
func (f Filter) Apply(studies []Study) []Study {
	results := studies

	if f.Organism != "" {
		results = keep(results, func(s Study) bool {
			return strings.EqualFold(s.Organism, f.Organism)
		})
	}
	if f.MinSamples > 0 {
		results = keep(results, func(s Study) bool { return s.NSamples >= f.MinSamples })
	}
	if f.MaxSamples > 0 {
		results = keep(results, func(s Study) bool { return s.NSamples <= f.MaxSamples })
	}

	for _, cat := range Categories {
		tf, ok := f.fields[cat]
		if !ok {
			continue
		}
		cat := cat
		results = keep(results, func(s Study) bool { return tf.Matches(s.Field(cat)) })
	}

	return results
}

func keep(studies []Study, pred func(Study) bool) []Study {
	out := make([]Study, 0, len(studies))
	for _, s := range studies {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}
