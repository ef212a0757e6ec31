package corpus

// Category identifies one of the six entity facets a study is annotated with.
type Category string

const (
	Drugs      Category = "drugs"
	Genes      Category = "genes"
	Diseases   Category = "diseases"
	CellTypes  Category = "cell_types"
	Techniques Category = "techniques"
	Tissues    Category = "tissues"
)

// Categories lists all entity categories in filter evaluation order.
var Categories = []Category{Drugs, Genes, Diseases, CellTypes, Techniques, Tissues}

// StandardizedCategories are the categories the term standardizer resolves
// against the dictionary. Gene symbols pass through unchanged.
var StandardizedCategories = []Category{Drugs, Diseases, Techniques, CellTypes, Tissues}

// Study is one immutable gene-expression study record.
type Study struct {
	Project    string   `json:"project"`
	Title      string   `json:"study_title"`
	Organism   string   `json:"organism"`
	NSamples   int      `json:"n_samples"`
	Drugs      []string `json:"drugs"`
	Genes      []string `json:"genes"`
	Diseases   []string `json:"diseases"`
	CellTypes  []string `json:"cell_types"`
	Techniques []string `json:"techniques"`
	Tissues    []string `json:"tissues"`
}

// Field returns the entity list for the given category.
func (s Study) Field(cat Category) []string {
	switch cat {
	case Drugs:
		return s.Drugs
	case Genes:
		return s.Genes
	case Diseases:
		return s.Diseases
	case CellTypes:
		return s.CellTypes
	case Techniques:
		return s.Techniques
	case Tissues:
		return s.Tissues
	}
	return nil
}
