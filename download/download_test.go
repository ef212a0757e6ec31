package download

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"study-agent/config"
	"study-agent/corpus"
	apperrors "study-agent/errors"
)

func testService(t *testing.T, csv string) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	table, err := corpus.LoadURLTable(path)
	require.NoError(t, err)

	cfg := &config.Config{DownloadWorkers: 2, DownloadTimeout: 5 * time.Second}
	return New(table, cfg, zap.NewNop())
}

func readZip(t *testing.T, buf *bytes.Buffer) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	entries := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		var content bytes.Buffer
		_, err = content.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		entries[f.Name] = content.String()
	}
	return entries
}

func TestPackage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/srp001_gene.gz":
			fmt.Fprint(w, "gene counts")
		case "/srp001_meta.tsv":
			fmt.Fprint(w, "metadata")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	csv := "project,raw_gene,project_meta\n" +
		fmt.Sprintf("SRP001,%s/srp001_gene.gz,%s/srp001_meta.tsv\n", srv.URL, srv.URL)
	svc := testService(t, csv)
	require.True(t, svc.Enabled())

	var buf bytes.Buffer
	skipped, err := svc.Package(context.Background(), []string{"SRP001", "SRP999"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"SRP999"}, skipped)

	entries := readZip(t, &buf)
	assert.Equal(t, "gene counts", entries["SRP001/srp001_gene.gz"])
	assert.Equal(t, "metadata", entries["SRP001/srp001_meta.tsv"])

	urlList := entries["SRP001.txt"]
	assert.Contains(t, urlList, "# SRP001")
	assert.Contains(t, urlList, srv.URL+"/srp001_gene.gz")
	assert.Contains(t, urlList, srv.URL+"/srp001_meta.tsv")
}

func TestPackageResourceFailureLeavesGap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok.gz" {
			fmt.Fprint(w, "payload")
			return
		}
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	csv := "project,raw_gene,project_meta\n" +
		fmt.Sprintf("SRP001,%s/ok.gz,%s/broken.tsv\n", srv.URL, srv.URL)
	svc := testService(t, csv)

	var buf bytes.Buffer
	skipped, err := svc.Package(context.Background(), []string{"SRP001"}, &buf)
	require.NoError(t, err)
	assert.Empty(t, skipped)

	entries := readZip(t, &buf)
	assert.Equal(t, "payload", entries["SRP001/ok.gz"])
	_, ok := entries["SRP001/broken.tsv"]
	assert.False(t, ok, "failed resource must not appear in the archive")
	// The URL list still records every source URL, fetched or not.
	assert.Contains(t, entries["SRP001.txt"], srv.URL+"/broken.tsv")
}

func TestPackageUnavailableWithoutURLTable(t *testing.T) {
	cfg := &config.Config{DownloadWorkers: 2, DownloadTimeout: time.Second}
	svc := New(nil, cfg, zap.NewNop())
	require.False(t, svc.Enabled())

	var buf bytes.Buffer
	_, err := svc.Package(context.Background(), []string{"SRP001"}, &buf)
	assert.ErrorIs(t, err, apperrors.ErrDownloadUnavailable)
	assert.Zero(t, buf.Len())
}

func TestPackagePreservesInputOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data for ", r.URL.Path)
	}))
	defer srv.Close()

	csv := "project,raw_gene\n" +
		fmt.Sprintf("SRP001,%s/a.gz\n", srv.URL) +
		fmt.Sprintf("SRP002,%s/b.gz\n", srv.URL) +
		fmt.Sprintf("SRP003,%s/c.gz\n", srv.URL)
	svc := testService(t, csv)

	var buf bytes.Buffer
	_, err := svc.Package(context.Background(), []string{"SRP003", "SRP001", "SRP002"}, &buf)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var order []string
	for _, f := range zr.File {
		order = append(order, f.Name)
	}
	assert.Equal(t, []string{
		"SRP003/c.gz", "SRP003.txt",
		"SRP001/a.gz", "SRP001.txt",
		"SRP002/b.gz", "SRP002.txt",
	}, order)
}
