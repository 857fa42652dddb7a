// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// BreakerName labels the circuit breaker in logs and metrics.
const BreakerName = "llm-chat"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// Client talks to an OpenAI-compatible /chat/completions endpoint.
//
// Every completion goes through a client-side rate limiter and a circuit
// breaker. Inside the breaker, timeouts, 408, 429 and 5xx responses are
// retried with exponential backoff, honoring Retry-After. A completion that
// still fails after its retries counts as one breaker failure.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	baseDelay  time.Duration

	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[string]
	logger     zerolog.Logger
}

// NewClient creates a client from the llm configuration section.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg *config.LLMConfig, logger zerolog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("llm config is required")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")
	if base == "" {
		return nil, errors.New("llm api_base is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxRetries: max(cfg.MaxRetries, 0),
		baseDelay:  cfg.RetryBaseDelay,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		cb:         newBreaker(BreakerName, cfg.BreakerFailures, cfg.BreakerTimeout),
		logger:     logger.With().Str("component", "llm").Logger(),
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// BaseURL returns the endpoint base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Complete sends messages and returns the content of the first choice.
// purpose labels the request in logs and metrics ("extract", "converse").
func (c *Client) Complete(ctx context.Context, purpose string, messages []Message, temperature float64) (string, error) {
	start := time.Now()

	content, err := c.cb.Execute(func() (string, error) {
		return c.completeWithRetry(ctx, purpose, messages, temperature)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(BreakerName).Set(0)
		metrics.RecordLLMRequest(purpose, time.Since(start), "")
	case IsCircuitOpen(err):
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "rejected").Inc()
		metrics.RecordLLMRequest(purpose, time.Since(start), "circuit_open")
		c.logger.Warn().Err(err).Str("purpose", purpose).Msg("[CIRCUIT BREAKER] Request rejected")
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(BreakerName).Set(float64(c.cb.Counts().ConsecutiveFailures))
		metrics.RecordLLMRequest(purpose, time.Since(start), errorType(err))
	}
	return content, err
}

func (c *Client) completeWithRetry(ctx context.Context, purpose string, messages []Message, temperature float64) (string, error) {
	body := chatRequest{Model: c.model, Messages: messages, Temperature: temperature}
	backoff := c.baseDelay

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		header, raw, err := c.doOnce(ctx, body)
		if err == nil {
			return decodeContent(raw)
		}
		if !isRetryable(err) || attempt >= c.maxRetries {
			return "", err
		}

		wait := jitter(retryAfter(header, backoff, maxRetryDelay))
		metrics.LLMRetries.WithLabelValues(purpose).Inc()
		c.logger.Warn().
			Err(err).
			Str("purpose", purpose).
			Int("attempt", attempt+1).
			Int("max_retries", c.maxRetries).
			Dur("sleep", wait).
			Msg("LLM request retrying")

		if err := sleepCtx(ctx, wait); err != nil {
			return "", err
		}
		backoff *= 2
	}
}

// doOnce performs a single request. The response header is returned with
// HTTP errors so Retry-After can be read.
func (c *Client) doOnce(ctx context.Context, body chatRequest) (http.Header, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.Header, nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.Header, raw, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp.Header, raw, nil
}

func decodeContent(raw []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// errorType classifies err for the llm error metric.
func errorType(err error) string {
	var httpErr *HTTPError
	var netErr net.Error
	switch {
	case errors.As(err, &httpErr):
		return fmt.Sprintf("http_%d", httpErr.StatusCode)
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.As(err, &netErr):
		return "network"
	default:
		return "decode"
	}
}
