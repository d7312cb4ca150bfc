// client/client.go

// Package client implements the HTTP request pipeline against the HR
// platform: it builds requests, classifies every failure into the error
// taxonomy and drives retry with backoff. Mutations are never retried
// blindly; an idempotency key is the caller's assertion that the upstream
// deduplicates.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	apierrors "github.com/nikhilsag/hrbridge/errors"
	logger "github.com/nikhilsag/hrbridge/logging"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3

	// Exponential backoff bounds between attempts.
	backoffBase = 1 * time.Second
	backoffCap  = 10 * time.Second
	// Jitter applied multiplicatively to every backoff delay.
	backoffJitter = 0.2

	// Retry budget for mutations carrying an idempotency key.
	idempotentMutationAttempts = 2
)

// Config is the immutable snapshot the pipeline is constructed from.
type Config struct {
	APIKey     string
	BaseURL    string
	Version    string
	Timeout    time.Duration
	MaxRetries int
	Debug      bool
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	debug      bool

	// sleep is swapped out by tests to observe retry delays.
	sleep func(ctx context.Context, d time.Duration) error
}

func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.NewConfigurationError("HR platform API key is not configured")
	}
	if cfg.BaseURL == "" {
		return nil, apierrors.NewConfigurationError("HR platform base URL is not configured")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Version != "" {
		baseURL += "/api/" + cfg.Version
	}

	return &Client{
		// Per-attempt deadlines come from the request context.
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		debug:      cfg.Debug,
		sleep:      sleepWithContext,
	}, nil
}

// RequestOptions carries per-call overrides for one logical operation.
type RequestOptions struct {
	Query          url.Values
	Body           any
	IdempotencyKey string
	Timeout        time.Duration
	MaxRetries     int
	NoRetry        bool
}

// Do performs one logical HTTP operation, retrying per policy. On success
// it returns the raw response body (nil for 204); every failure surfaces
// as exactly one taxonomy error.
func (c *Client) Do(ctx context.Context, method, endpoint string, opts RequestOptions) ([]byte, error) {
	timeout := c.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	maxAttempts := c.attemptBudget(method, opts)

	var bodyBytes []byte
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, apierrors.NewPayloadValidationError("request body is not serializable: " + err.Error())
		}
		bodyBytes = encoded
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := c.attempt(ctx, method, endpoint, opts, bodyBytes, timeout)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt >= maxAttempts || !c.shouldRetry(method, opts, err) {
			break
		}

		delay := retryDelay(err, attempt)
		logger.Warn("Retrying request",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// attemptBudget computes the retry budget: GETs get the configured
// default; mutations get a single attempt unless the caller supplied an
// idempotency key.
func (c *Client) attemptBudget(method string, opts RequestOptions) int {
	if opts.NoRetry {
		return 1
	}
	if opts.MaxRetries > 0 {
		return opts.MaxRetries
	}
	if method == http.MethodGet {
		return c.maxRetries
	}
	if opts.IdempotencyKey != "" {
		return idempotentMutationAttempts
	}
	return 1
}

// shouldRetry gates the retry loop: the error must be retryable and the
// request must be safe to reissue (a GET, or a mutation the upstream
// deduplicates via its idempotency key).
func (c *Client) shouldRetry(method string, opts RequestOptions, err error) bool {
	if !apierrors.IsRetryableError(err) {
		return false
	}
	return method == http.MethodGet || opts.IdempotencyKey != ""
}

// attempt issues one HTTP request bound to its own deadline.
func (c *Client) attempt(ctx context.Context, method, endpoint string, opts RequestOptions, body []byte, timeout time.Duration) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	requestURL := c.baseURL + endpoint
	if len(opts.Query) > 0 {
		requestURL += "?" + opts.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, requestURL, reader)
	if err != nil {
		return nil, apierrors.NewNetworkError(endpoint, err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.IdempotencyKey)
	}

	if c.debug {
		logger.Debug("Upstream request",
			zap.String("method", method),
			zap.String("url", requestURL))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return nil, apierrors.NewTimeoutError(endpoint, timeout)
		}
		return nil, apierrors.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError(endpoint, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if resp.StatusCode == http.StatusNoContent {
			return nil, nil
		}
		return respBody, nil
	}
	return nil, classifyResponse(resp.StatusCode, endpoint, respBody, resp.Header)
}

// classifyResponse converts a non-2xx response into its taxonomy kind.
// This is the only place HTTP statuses become errors.
func classifyResponse(status int, endpoint string, body []byte, header http.Header) error {
	var parsed apierrors.ErrorResponse
	_ = json.Unmarshal(body, &parsed) // body may be plain text

	switch status {
	case http.StatusBadRequest:
		return apierrors.NewValidationError(endpoint, &parsed)
	case http.StatusUnauthorized:
		return apierrors.NewAuthenticationError(endpoint)
	case http.StatusForbidden:
		return apierrors.NewAuthorizationError(endpoint)
	case http.StatusNotFound:
		return apierrors.NewNotFoundError(endpoint)
	case http.StatusConflict:
		return apierrors.NewConflictError(endpoint, &parsed)
	case http.StatusUnprocessableEntity:
		return apierrors.NewUnprocessableEntityError(endpoint, body)
	case http.StatusTooManyRequests:
		retryAfter := 0
		if v := header.Get("Retry-After"); v != "" {
			if seconds, err := strconv.Atoi(v); err == nil {
				retryAfter = seconds
			}
		}
		return apierrors.NewRateLimitError(endpoint, retryAfter)
	default:
		return apierrors.NewServerError(endpoint, status)
	}
}

// retryDelay picks the wait before the next attempt: the server's
// Retry-After hint wins for rate limits, exponential backoff with jitter
// otherwise.
func retryDelay(err error, attempt int) time.Duration {
	if apiErr, ok := err.(*apierrors.APIError); ok {
		if apiErr.Kind == apierrors.KindRateLimit && apiErr.RetryAfter > 0 {
			return time.Duration(apiErr.RetryAfter) * time.Second
		}
	}
	return backoffDelay(attempt)
}

func backoffDelay(attempt int) time.Duration {
	delay := backoffBase << (attempt - 1)
	if delay > backoffCap {
		delay = backoffCap
	}
	jitter := 1 + backoffJitter*(2*rand.Float64()-1)
	return time.Duration(float64(delay) * jitter)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
