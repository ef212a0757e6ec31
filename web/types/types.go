package types

// ChatRequest is one user turn submitted to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message" form:"message" binding:"required"`
}

// StudyView is the study shape rendered to API clients.
type StudyView struct {
	Project    string   `json:"project"`
	Title      string   `json:"title"`
	Organism   string   `json:"organism"`
	Samples    int      `json:"samples"`
	Diseases   []string `json:"diseases"`
	Tissues    []string `json:"tissues"`
	Genes      []string `json:"genes"`
	Drugs      []string `json:"drugs"`
	CellTypes  []string `json:"cell_types"`
	Techniques []string `json:"techniques"`
}

// StudyDetail is a single-study view with its abstract.
type StudyDetail struct {
	StudyView
	Abstract string `json:"abstract,omitempty"`
}

// ChatResponse is the structured result of one turn.
type ChatResponse struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	// HTML carries the rendered markdown of an analysis answer.
	HTML        string       `json:"html,omitempty"`
	Interpreted string       `json:"interpreted,omitempty"`
	Studies     []StudyView  `json:"studies,omitempty"`
	Study       *StudyDetail `json:"study,omitempty"`
}

// BrowseResponse is the filtered study list of the browse view.
type BrowseResponse struct {
	Total   int         `json:"total"`
	Studies []StudyView `json:"studies"`
}

// StatsResponse reports corpus composition.
type StatsResponse struct {
	Human int `json:"human"`
	Mouse int `json:"mouse"`
	Total int `json:"total"`
}

// DownloadRequest selects studies for bulk download.
type DownloadRequest struct {
	Projects []string `json:"projects" binding:"required"`
}
