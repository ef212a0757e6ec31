package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ResourceClasses are the fixed per-project download resource columns, in
// the order files are fetched.
var ResourceClasses = []string{
	"raw_gene", "raw_exon", "raw_jxn_MM", "raw_jxn_RR", "raw_jxn_ID",
	"project_meta", "recount_project", "recount_qc", "recount_seq_qc", "recount_pred",
}

// URLTable maps each project to its per-resource-class download URLs.
// Loaded once, read-only. Absence of the backing file disables the bulk
// download feature but nothing else.
type URLTable struct {
	rows map[string]map[string]string
}

// LoadURLTable reads the per-project URL CSV. Only cells that look like HTTP
// URLs are kept.
func LoadURLTable(path string) (*URLTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read url header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	projectCol, ok := cols["project"]
	if !ok {
		return nil, fmt.Errorf("url file missing project column")
	}

	table := &URLTable{rows: make(map[string]map[string]string)}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read url row: %w", err)
		}
		if len(rec) <= projectCol {
			continue
		}
		project := strings.TrimSpace(rec[projectCol])
		if project == "" {
			continue
		}

		urls := make(map[string]string)
		for _, class := range ResourceClasses {
			idx, ok := cols[class]
			if !ok || len(rec) <= idx {
				continue
			}
			url := strings.TrimSpace(rec[idx])
			if strings.HasPrefix(url, "http") {
				urls[class] = url
			}
		}
		if len(urls) > 0 {
			table.rows[strings.ToUpper(project)] = urls
		}
	}
	return table, nil
}

// URLs returns the resource-class → URL map for a project, nil if unknown.
func (t *URLTable) URLs(project string) map[string]string {
	if t == nil {
		return nil
	}
	return t.rows[strings.ToUpper(strings.TrimSpace(project))]
}

// Len returns the number of projects with at least one URL.
func (t *URLTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}
