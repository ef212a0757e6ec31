package llmclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"study-agent/config"
)

func testConfig(host string) *config.Config {
	return &config.Config{
		LLMHost:           host,
		LLMModel:          "test-model",
		LLMRequestTimeout: 5 * time.Second,
		MaxRetries:        5,
		RetryDelaySeconds: time.Second,
	}
}

func TestGenerateUnconfigured(t *testing.T) {
	c := New(&config.Config{}, zap.NewNop())
	if _, err := c.Generate(context.Background(), "prompt", 0); err == nil {
		t.Fatal("expected error without a configured model")
	}
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": [{"message": {"role": "assistant", "content": "  hello  "}}]}`)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zap.NewNop())
	got, err := c.Generate(context.Background(), "prompt", 0.3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "hello" {
		t.Errorf("Generate = %q, want trimmed %q", got, "hello")
	}
}

func TestGenerateRetryBackoffRespectsContext(t *testing.T) {
	// Backend stuck loading: every attempt gets a 503. A cancelled request
	// must not wait out the remaining exponential backoff.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.RetryDelaySeconds = time.Hour
	c := New(cfg, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Generate(ctx, "prompt", 0)
	if err == nil {
		t.Fatal("expected error from an unavailable backend")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("cancelled request waited %s in backoff", elapsed)
	}
}
