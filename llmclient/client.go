package llmclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"study-agent/config"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	apperrors "study-agent/errors"
	"study-agent/metrics"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client talks to an OpenAI-compatible chat completions endpoint (Ollama,
// llama.cpp server). It is the single language-model capability the pipeline
// depends on: given a prompt and a temperature, return generated text. It
// fails soft: an unreachable or unconfigured backend yields empty text and an
// error, never a panic, and callers apply their own fail-open defaults.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *zap.Logger
	cache      *lru.Cache
}

func New(cfg *config.Config, logger *zap.Logger) *Client {
	var cache *lru.Cache
	if cfg.LLMCacheSize > 0 {
		// lru.New only errors on a non-positive size
		cache, _ = lru.New(cfg.LLMCacheSize)
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.LLMRequestTimeout},
		logger:     logger,
		cache:      cache,
	}
}

// Generate performs a non-streaming chat completion call with a single user
// message. Temperature-zero calls are cached: they are the deterministic
// classification/extraction calls the pipeline repeats for similar queries.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	if c.cfg.LLMModel == "" || c.cfg.LLMHost == "" {
		c.logger.Warn("No LLM model configured, returning empty response")
		return "", apperrors.WrapError(apperrors.ErrLLMCommunication, "no model configured")
	}

	var cacheKey string
	if temperature == 0 && c.cache != nil {
		sum := sha256.Sum256([]byte(c.cfg.LLMModel + "\x00" + prompt))
		cacheKey = fmt.Sprintf("%x", sum[:16])
		if cached, ok := c.cache.Get(cacheKey); ok {
			metrics.LLMCacheHits.Inc()
			return cached.(string), nil
		}
	}

	reqBody := chatRequest{
		Model:       c.cfg.LLMModel,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Stream:      false,
		Temperature: temperature,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", strings.TrimRight(c.cfg.LLMHost, "/"))

	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
		if err != nil {
			return "", fmt.Errorf("create chat request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		r, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			// Do not retry on context cancellation/deadline
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if r.StatusCode == http.StatusServiceUnavailable {
			// Model loading; retry with backoff
			io.Copy(io.Discard, r.Body)
			r.Body.Close()
			c.logger.Warn("LLM service unavailable, retrying", zap.Int("attempt", attempt+1))
			c.backoffSleep(ctx, attempt)
			if ctx.Err() != nil {
				lastErr = ctx.Err()
				break
			}
			continue
		}
		resp = r
		break
	}
	if resp == nil {
		metrics.LLMRequests.WithLabelValues("error").Inc()
		if lastErr == nil {
			lastErr = apperrors.ErrLLMCommunication
		}
		return "", apperrors.WrapError(lastErr, "no response from LLM server")
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.LLMRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.LLMRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("llm server status %s: %s", resp.Status, string(bodyBytes))
	}

	var cr chatResponse
	if err := json.Unmarshal(bodyBytes, &cr); err != nil {
		metrics.LLMRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		metrics.LLMRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("no response choices from llm server")
	}

	text := strings.TrimSpace(cr.Choices[0].Message.Content)
	metrics.LLMRequests.WithLabelValues("ok").Inc()
	if cacheKey != "" && text != "" {
		c.cache.Add(cacheKey, text)
	}
	return text, nil
}

// backoffSleep waits out the exponential retry delay, returning early when
// the context is cancelled.
func (c *Client) backoffSleep(ctx context.Context, attempt int) {
	base := c.cfg.RetryDelaySeconds
	if base <= 0 {
		base = time.Second
	}
	timer := time.NewTimer(base * time.Duration(1<<attempt))
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
