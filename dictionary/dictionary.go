// Package dictionary holds the term dictionary: per-category mappings from
// raw entity terms to their canonical forms. The standardizer consults it
// before falling back to the model.
package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"study-agent/corpus"
)

type Dictionary struct {
	categories map[corpus.Category]map[string]string
}

// New returns an empty dictionary. With no entries every term falls through
// to the model.
func New() *Dictionary {
	return &Dictionary{categories: make(map[corpus.Category]map[string]string)}
}

// LoadFile reads a standardization mappings file: a JSON object keyed by
// category name, each value a raw-term → canonical-term map.
func LoadFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mappings file: %w", err)
	}

	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode mappings file: %w", err)
	}

	d := New()
	for cat, mappings := range raw {
		for term, canonical := range mappings {
			d.Add(corpus.Category(cat), term, canonical)
		}
	}
	return d, nil
}

// Add inserts one raw → canonical entry.
func (d *Dictionary) Add(cat corpus.Category, raw, canonical string) {
	raw = strings.TrimSpace(raw)
	canonical = strings.TrimSpace(canonical)
	if raw == "" || canonical == "" {
		return
	}
	m, ok := d.categories[cat]
	if !ok {
		m = make(map[string]string)
		d.categories[cat] = m
	}
	m[raw] = canonical
}

// Merge copies entries from other into d without overwriting existing keys,
// so file-provided mappings win over the builtin table.
func (d *Dictionary) Merge(other *Dictionary) {
	if other == nil {
		return
	}
	for cat, m := range other.categories {
		for raw, canonical := range m {
			if _, exists := d.lookupExact(cat, raw); !exists {
				d.Add(cat, raw, canonical)
			}
		}
	}
}

// Lookup resolves a term to its canonical form: exact match first, then the
// lowercased term, then a case-insensitive scan of the category's keys.
func (d *Dictionary) Lookup(cat corpus.Category, term string) (string, bool) {
	m, ok := d.categories[cat]
	if !ok {
		return "", false
	}

	if canonical, ok := m[term]; ok {
		return canonical, true
	}

	lower := strings.ToLower(term)
	if canonical, ok := m[lower]; ok {
		return canonical, true
	}

	for key, canonical := range m {
		if strings.ToLower(key) == lower {
			return canonical, true
		}
	}
	return "", false
}

func (d *Dictionary) lookupExact(cat corpus.Category, term string) (string, bool) {
	m, ok := d.categories[cat]
	if !ok {
		return "", false
	}
	canonical, ok := m[term]
	return canonical, ok
}

// Len returns the total number of entries across categories.
func (d *Dictionary) Len() int {
	n := 0
	for _, m := range d.categories {
		n += len(m)
	}
	return n
}
