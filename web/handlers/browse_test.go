package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"study-agent/corpus"
	"study-agent/web/types"
)

func browseRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := corpus.NewStore([]corpus.Study{
		{Project: "SRP001", Title: "HER2 trial", Organism: "human", NSamples: 48, Diseases: []string{"breast cancer"}},
		{Project: "SRP002", Title: "Mouse mammary atlas", Organism: "mouse", NSamples: 12},
	})
	h := NewBrowseHandler(store, zap.NewNop())

	r := gin.New()
	r.GET("/api/studies", h.ListStudies)
	r.GET("/api/studies/:project", h.GetStudy)
	r.GET("/api/stats", h.GetStats)
	return r
}

func TestListStudies(t *testing.T) {
	r := browseRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/studies?organism=human", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.BrowseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "SRP001", resp.Studies[0].Project)
}

func TestListStudiesBadMinSamples(t *testing.T) {
	r := browseRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/studies?min_samples=abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStudy(t *testing.T) {
	r := browseRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/studies/srp001", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.StudyDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SRP001", resp.Project)
	assert.Equal(t, 48, resp.Samples)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/studies/SRP999", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStats(t *testing.T) {
	r := browseRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.StatsResponse{Human: 1, Mouse: 1, Total: 2}, resp)
}
