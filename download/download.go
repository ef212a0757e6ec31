// Package download implements the bulk raw-file fetch: per-project URL
// lookup across the fixed resource classes, HTTP fetch with a bounded
// worker pool, and zip packaging. Per-project failures are recorded as
// skipped items; they never abort the batch.
package download

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"

	"study-agent/config"
	"study-agent/corpus"
	apperrors "study-agent/errors"
	"study-agent/utils"
)

type fetchedFile struct {
	name string
	data []byte
}

type projectArchive struct {
	project string
	files   []fetchedFile
	urls    []string
	skipped bool
}

type Service struct {
	urls    *corpus.URLTable
	client  *http.Client
	workers int
	logger  *zap.Logger
}

func New(urls *corpus.URLTable, cfg *config.Config, logger *zap.Logger) *Service {
	workers := cfg.DownloadWorkers
	if workers < 1 {
		workers = 1
	}
	return &Service{
		urls:    urls,
		client:  &http.Client{Timeout: cfg.DownloadTimeout},
		workers: workers,
		logger:  logger,
	}
}

// Enabled reports whether the URL table was loaded. Without it the feature
// is disabled but nothing else in the system is affected.
func (s *Service) Enabled() bool {
	return s.urls.Len() > 0
}

// Package fetches every resource for the selected projects and writes a
// single zip to w: one directory per project plus a text file listing that
// project's source URLs. Projects with no URL table entry are returned as
// skipped. Fetching fans out across the worker pool; zip writing stays
// serial in input order.
func (s *Service) Package(ctx context.Context, projects []string, w io.Writer) ([]string, error) {
	if !s.Enabled() {
		return nil, apperrors.ErrDownloadUnavailable
	}

	archives := make([]projectArchive, len(projects))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				archives[idx] = s.fetchProject(ctx, projects[idx])
			}
		}()
	}
	for i := range projects {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	zw := zip.NewWriter(w)
	var skipped []string
	for _, a := range archives {
		if a.skipped {
			skipped = append(skipped, a.project)
			continue
		}
		for _, f := range a.files {
			entry, err := zw.Create(a.project + "/" + f.name)
			if err != nil {
				return skipped, fmt.Errorf("create zip entry: %w", err)
			}
			if _, err := entry.Write(f.data); err != nil {
				return skipped, fmt.Errorf("write zip entry: %w", err)
			}
		}

		name := utils.SanitizeFilename(a.project)
		if name == "" {
			name = "project"
		}
		entry, err := zw.Create(name + ".txt")
		if err != nil {
			return skipped, fmt.Errorf("create url list entry: %w", err)
		}
		if _, err := entry.Write([]byte(strings.Join(a.urls, "\n"))); err != nil {
			return skipped, fmt.Errorf("write url list entry: %w", err)
		}
	}

	return skipped, zw.Close()
}

// fetchProject downloads every resource class URL for one project. A missing
// URL table row skips the project; individual resource failures are logged
// and leave a gap in the archive.
func (s *Service) fetchProject(ctx context.Context, project string) projectArchive {
	urls := s.urls.URLs(project)
	if len(urls) == 0 {
		return projectArchive{project: project, skipped: true}
	}

	a := projectArchive{project: project, urls: []string{"# " + project}}
	for _, class := range corpus.ResourceClasses {
		url, ok := urls[class]
		if !ok {
			continue
		}
		a.urls = append(a.urls, url)

		data, err := s.fetch(ctx, url)
		if err != nil {
			s.logger.Warn("Failed to download resource",
				zap.String("project", project),
				zap.String("class", class),
				zap.Error(err))
			continue
		}

		name := path.Base(url)
		if name == "" || name == "." || name == "/" {
			name = class + ".txt"
		}
		a.files = append(a.files, fetchedFile{name: name, data: data})
	}
	return a
}

func (s *Service) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.WrapError(apperrors.ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
