// Package endpoint provides a completion client that POSTs prompts to a
// generic JSON inference endpoint.
package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.CompletionClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout    = 60 * time.Second
	DefaultMaxRetries = 3
	DefaultBackoff    = 500 * time.Millisecond
)

// Config holds configuration for the endpoint client.
type Config struct {
	// Endpoint is the URL prompts are POSTed to (required).
	Endpoint string

	// APIKey is sent as a bearer token when set.
	APIKey string

	// MaxRetries is the number of retries after a failed attempt.
	// Negative values disable retries.
	MaxRetries int

	// Backoff is the base delay between attempts; attempt n waits n*Backoff.
	Backoff time.Duration

	// Timeout bounds each attempt (default: 60s).
	Timeout time.Duration
}

// Client sends completion requests to an HTTP endpoint.
type Client struct {
	client     *http.Client
	endpoint   string
	maxRetries int
	backoff    time.Duration
}

// completionRequest is the request body.
type completionRequest struct {
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
	Model       string  `json:"model,omitempty"`
}

// completionResponse is the response body.
type completionResponse struct {
	Text       string         `json:"text"`
	Confidence *float64       `json:"confidence"`
	Metadata   map[string]any `json:"metadata"`
}

// errRetryable marks failures worth another attempt.
var errRetryable = errors.New("retryable")

// New creates an endpoint client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", domain.ErrInvalidConfig)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Backoff == 0 {
		cfg.Backoff = DefaultBackoff
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	httpClient := &http.Client{}
	if cfg.APIKey != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.Background(), src)
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{
		client:     httpClient,
		endpoint:   cfg.Endpoint,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
	}, nil
}

// Complete sends prompt and returns the decoded response. Transport errors,
// 429 and 5xx responses are retried up to MaxRetries times.
func (c *Client) Complete(ctx context.Context, prompt string, opts domain.RequestOptions) (domain.AIResponse, error) {
	body, err := json.Marshal(completionRequest{
		Prompt:      prompt,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		Model:       opts.Model,
	})
	if err != nil {
		return domain.AIResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("Retrying completion (attempt %d/%d): %v", attempt, c.maxRetries, lastErr)
			select {
			case <-ctx.Done():
				return domain.AIResponse{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}

		resp, err := c.do(ctx, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !errors.Is(err, errRetryable) || ctx.Err() != nil {
			break
		}
	}

	return domain.AIResponse{}, lastErr
}

func (c *Client) do(ctx context.Context, body []byte) (domain.AIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.AIResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.AIResponse{}, fmt.Errorf("send request: %w: %w", errRetryable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.AIResponse{}, fmt.Errorf("read response: %w: %w", errRetryable, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return domain.AIResponse{}, fmt.Errorf("endpoint error (status %d): %w", resp.StatusCode, errRetryable)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.AIResponse{}, fmt.Errorf("endpoint error (status %d): %s", resp.StatusCode, string(data))
	}

	var out completionResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return domain.AIResponse{}, fmt.Errorf("decode response: %w", err)
	}

	confidence := domain.DefaultConfidence
	if out.Confidence != nil {
		confidence = *out.Confidence
	}
	return domain.AIResponse{
		Text:       out.Text,
		Confidence: confidence,
		Metadata:   out.Metadata,
	}, nil
}
