package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"study-agent/corpus"
	"study-agent/web/types"
)

type BrowseHandler struct {
	store  *corpus.Store
	logger *zap.Logger
}

func NewBrowseHandler(store *corpus.Store, logger *zap.Logger) *BrowseHandler {
	return &BrowseHandler{store: store, logger: logger}
}

// ListStudies filters the study table for the browse view. Query params:
// organism, min_samples, search.
func (h *BrowseHandler) ListStudies(c *gin.Context) {
	organism := strings.TrimSpace(c.Query("organism"))
	search := strings.TrimSpace(c.Query("search"))

	minSamples := 0
	if raw := c.Query("min_samples"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_samples must be a non-negative integer"})
			return
		}
		minSamples = n
	}

	studies := h.store.Browse(organism, minSamples, search)

	views := make([]types.StudyView, 0, len(studies))
	for _, s := range studies {
		views = append(views, toStudyView(s))
	}

	c.JSON(http.StatusOK, types.BrowseResponse{Total: len(views), Studies: views})
}

// GetStudy returns one study with its abstract.
func (h *BrowseHandler) GetStudy(c *gin.Context) {
	project := strings.TrimSpace(c.Param("project"))

	study, ok := h.store.ByProject(project)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "study not found"})
		return
	}

	c.JSON(http.StatusOK, types.StudyDetail{
		StudyView: toStudyView(study),
		Abstract:  h.store.Abstract(study.Project),
	})
}

// GetStats reports corpus composition counts.
func (h *BrowseHandler) GetStats(c *gin.Context) {
	human, mouse, total := h.store.Stats()
	c.JSON(http.StatusOK, types.StatsResponse{Human: human, Mouse: mouse, Total: total})
}
