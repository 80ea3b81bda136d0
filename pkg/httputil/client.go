package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/oortis/tempscore/pkg/logger"
)

// Client is an HTTP client wrapper with timeout, retry and rate limiting.
// Remote data providers issue all of their requests through it.
type Client struct {
	httpClient *http.Client
	logger     *logger.Logger
	retry      RetryConfig
	limiter    *rate.Limiter
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// Options control client construction.
type Options struct {
	Timeout           time.Duration
	Retry             RetryConfig
	RequestsPerSecond float64 // 0 disables rate limiting
}

// New creates a new HTTP client.
func New(log *logger.Logger, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Retry.MaxRetries == 0 {
		opts.Retry = RetryConfig{
			MaxRetries:   3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
		}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     log,
		retry:      opts.Retry,
		limiter:    limiter,
	}
}

// GetJSON performs a GET request and decodes the JSON response into out.
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff; 4xx responses fail immediately.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	delay := c.retry.InitialDelay

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.WithFields(map[string]interface{}{
				"url":     url,
				"attempt": attempt,
				"delay":   delay.String(),
			}).Debug("Retrying HTTP request")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}

			delay *= 2
			if delay > c.retry.MaxDelay {
				delay = c.retry.MaxDelay
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		body, retryable, err := c.doOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", c.retry.MaxRetries, lastErr)
}

func (c *Client) doOnce(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("GET %s: server error %d", url, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, false, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	return body, false, nil
}
