package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"study-agent/download"
	apperrors "study-agent/errors"
	"study-agent/web/types"
)

const maxDownloadProjects = 50

type DownloadHandler struct {
	downloads *download.Service
	logger    *zap.Logger
}

func NewDownloadHandler(downloads *download.Service, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{downloads: downloads, logger: logger}
}

// PackageStudies streams a zip archive of data files for the requested
// projects. Projects without a URL entry are skipped rather than failing
// the whole archive.
func (h *DownloadHandler) PackageStudies(c *gin.Context) {
	var req types.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projects list is required"})
		return
	}

	projects := make([]string, 0, len(req.Projects))
	for _, p := range req.Projects {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			projects = append(projects, trimmed)
		}
	}
	if len(projects) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projects list is required"})
		return
	}
	if len(projects) > maxDownloadProjects {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("at most %d projects per download", maxDownloadProjects),
		})
		return
	}

	if !h.downloads.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "downloads are not available"})
		return
	}

	filename := fmt.Sprintf("studies_%s.zip", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	skipped, err := h.downloads.Package(c.Request.Context(), projects, c.Writer)
	if err != nil {
		// Headers are already sent once the zip writer starts, so a late
		// failure can only be logged.
		if errors.Is(err, apperrors.ErrDownloadUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "downloads are not available"})
			return
		}
		h.logger.Error("Download packaging failed",
			zap.Strings("projects", projects),
			zap.Error(err))
		return
	}

	if len(skipped) > 0 {
		h.logger.Info("Projects skipped during download",
			zap.Strings("skipped", skipped))
	}
}
