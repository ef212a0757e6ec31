package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// projectPrefixes are the accession prefixes treated as project identifiers
// in the browse free-text search.
var projectPrefixes = []string{"SRP", "GSE", "PRJNA", "ERP", "DRP"}

// Store is the process-wide read-only study corpus. It is loaded once at
// startup and never mutated afterwards, so it is safe for concurrent reads.
type Store struct {
	studies   []Study
	byProject map[string]Study
	abstracts map[string]string
}

// Load reads the study corpus from a JSON array file. Records whose title is
// missing or blank after trimming are dropped. A missing corpus file is fatal
// to initialization, so the error is returned as-is.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	var raw []Study
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode corpus file: %w", err)
	}

	studies := make([]Study, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s.Title) == "" {
			continue
		}
		studies = append(studies, s)
	}

	return NewStore(studies), nil
}

// NewStore builds a store over the given studies.
func NewStore(studies []Study) *Store {
	byProject := make(map[string]Study, len(studies))
	for _, s := range studies {
		if s.Project != "" {
			byProject[strings.ToUpper(s.Project)] = s
		}
	}
	return &Store{
		studies:   studies,
		byProject: byProject,
		abstracts: make(map[string]string),
	}
}

// LoadAbstracts reads the per-project abstract table (CSV with project,
// study_abstract columns). The file is optional; callers decide how to
// surface the error.
func (st *Store) LoadAbstracts(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open abstracts file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read abstracts header: %w", err)
	}
	projectCol, abstractCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "project":
			projectCol = i
		case "study_abstract":
			abstractCol = i
		}
	}
	if projectCol < 0 || abstractCol < 0 {
		return fmt.Errorf("abstracts file missing project/study_abstract columns")
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read abstracts row: %w", err)
		}
		if len(rec) <= projectCol || len(rec) <= abstractCol {
			continue
		}
		project := strings.TrimSpace(rec[projectCol])
		if project != "" {
			st.abstracts[strings.ToUpper(project)] = rec[abstractCol]
		}
	}
	return nil
}

// Studies returns the full corpus in load order.
func (st *Store) Studies() []Study { return st.studies }

// Len returns the number of studies.
func (st *Store) Len() int { return len(st.studies) }

// ByProject looks up a study by its project identifier, case-insensitively.
func (st *Store) ByProject(id string) (Study, bool) {
	s, ok := st.byProject[strings.ToUpper(strings.TrimSpace(id))]
	return s, ok
}

// Abstract returns the abstract text for a project, empty if unknown.
func (st *Store) Abstract(project string) string {
	return st.abstracts[strings.ToUpper(strings.TrimSpace(project))]
}

// Stats returns the human, mouse and total study counts.
func (st *Store) Stats() (human, mouse, total int) {
	for _, s := range st.studies {
		switch strings.ToLower(s.Organism) {
		case "human":
			human++
		case "mouse":
			mouse++
		}
	}
	return human, mouse, len(st.studies)
}

// Browse filters the corpus the way the browse view does: optional organism
// equality, minimum sample count, and a comma-separated free-text search.
// When every search term looks like a project accession the search is an
// exact project match; otherwise each term must match the title, project, or
// one of the entity fields (AND across terms).
func (st *Store) Browse(organism string, minSamples int, search string) []Study {
	results := st.studies

	if organism != "" && !strings.EqualFold(organism, "all") {
		results = keep(results, func(s Study) bool {
			return strings.EqualFold(s.Organism, organism)
		})
	}
	if minSamples > 0 {
		results = keep(results, func(s Study) bool { return s.NSamples >= minSamples })
	}

	search = strings.TrimSpace(search)
	if search == "" {
		return results
	}

	var terms []string
	for _, t := range strings.Split(search, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return results
	}

	if allProjectIDs(terms) {
		wanted := make(map[string]bool, len(terms))
		for _, t := range terms {
			wanted[strings.ToUpper(t)] = true
		}
		return keep(results, func(s Study) bool {
			return wanted[strings.ToUpper(s.Project)]
		})
	}

	return keep(results, func(s Study) bool {
		for _, t := range terms {
			if !matchesAnywhere(s, t) {
				return false
			}
		}
		return true
	})
}

func allProjectIDs(terms []string) bool {
	for _, t := range terms {
		upper := strings.ToUpper(t)
		matched := false
		for _, p := range projectPrefixes {
			if strings.HasPrefix(upper, p) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func matchesAnywhere(s Study, term string) bool {
	lower := strings.ToLower(term)
	if strings.Contains(strings.ToLower(s.Title), lower) {
		return true
	}
	if strings.Contains(strings.ToUpper(s.Project), strings.ToUpper(term)) {
		return true
	}
	for _, cat := range []Category{Diseases, Tissues, Drugs, Genes, Techniques} {
		if strings.Contains(strings.ToLower(strings.Join(s.Field(cat), " ")), lower) {
			return true
		}
	}
	return false
}
