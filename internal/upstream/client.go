// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

// Package upstream is the shared HTTP client for the external APIs Paddock
// reads from (the results API and Wikipedia).
//
// Every call goes through, in order:
//  1. a token-bucket limiter (golang.org/x/time/rate), so fan-out never
//     exceeds the upstream's published request rate
//  2. a circuit breaker (sony/gobreaker), so a dead upstream fails fast
//  3. a bounded HTTP 429 backoff honoring Retry-After
//  4. a per-attempt timeout
//
// Responses are decoded with goccy/go-json.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/paddock/internal/logging"
	"github.com/tomtom215/paddock/internal/metrics"
)

// maxRetryAfter caps how long a single Retry-After header can stall a request.
const maxRetryAfter = 30 * time.Second

// Config configures a Client.
type Config struct {
	// Name labels logs and metrics ("results-api", "wikipedia").
	Name string

	// RequestsPerSecond of 0 disables client-side rate limiting.
	RequestsPerSecond float64
	Burst             int

	// MaxRetries is the number of HTTP 429 retries per request.
	MaxRetries     int
	RetryBaseDelay time.Duration

	UserAgent string
	Breaker   BreakerSettings

	// HTTPClient defaults to a client with no overall timeout; per-request
	// timeouts are passed to GetJSON.
	HTTPClient *http.Client
}

// Client performs rate-limited, circuit-broken JSON GETs against one upstream.
type Client struct {
	name           string
	http           *http.Client
	limiter        *rate.Limiter
	breaker        *circuitBreaker
	maxRetries     int
	retryBaseDelay time.Duration
	userAgent      string
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.Name == "" {
		cfg.Name = "upstream"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = time.Second
	}
	if cfg.Breaker == (BreakerSettings{}) {
		cfg.Breaker = DefaultBreakerSettings()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		name:           cfg.Name,
		http:           cfg.HTTPClient,
		limiter:        limiter,
		breaker:        newCircuitBreaker(cfg.Name, cfg.Breaker),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		userAgent:      cfg.UserAgent,
	}
}

// Name returns the upstream name used in logs and metrics.
func (c *Client) Name() string {
	return c.name
}

// BreakerState returns "closed", "half-open" or "open".
func (c *Client) BreakerState() string {
	return c.breaker.state()
}

// GetJSON fetches reqURL and decodes the body into out. timeout bounds each
// attempt; 0 means no per-attempt bound beyond ctx.
//
// Errors wrap ErrNotFound, ErrRateLimited, ErrMalformed, ErrCircuitOpen or
// *StatusError where applicable.
func (c *Client) GetJSON(ctx context.Context, reqURL string, timeout time.Duration, out interface{}) error {
	return c.breaker.execute(func() error {
		return c.getWithRetry(ctx, reqURL, timeout, out)
	})
}

func (c *Client) getWithRetry(ctx context.Context, reqURL string, timeout time.Duration, out interface{}) error {
	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("%s rate limiter: %w", c.name, err)
			}
		}

		retryAfter, err := c.doOnce(ctx, reqURL, timeout, out)
		if !errors.Is(err, ErrRateLimited) {
			return err
		}

		metrics.UpstreamRateLimited.WithLabelValues(c.name).Inc()
		if attempt >= c.maxRetries {
			return fmt.Errorf("%s: HTTP 429 after %d retries: %w", c.name, c.maxRetries, ErrRateLimited)
		}

		// 1s, 2s, 4s... unless the server says otherwise
		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter > 0 {
			delay = retryAfter
		}

		logging.Warn().Str("upstream", c.name).Int("attempt", attempt+1).Dur("delay", delay).Msg("Rate limited, backing off")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// doOnce performs a single attempt. It returns the Retry-After delay when the
// response was HTTP 429.
func (c *Client) doOnce(ctx context.Context, reqURL string, timeout time.Duration, out interface{}) (time.Duration, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return parseRetryAfter(resp.Header.Get("Retry-After")), ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return 0, fmt.Errorf("%s: %s: %w", c.name, reqURL, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return 0, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        reqURL,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, fmt.Errorf("%s: %w: %w", c.name, ErrMalformed, err)
	}
	return 0, nil
}

// parseRetryAfter reads the delay-seconds form of Retry-After (RFC 9110).
// HTTP-date values are ignored and fall back to exponential backoff.
func parseRetryAfter(v string) time.Duration {
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds <= 0 {
		return 0
	}
	d := time.Duration(seconds) * time.Second
	if d > maxRetryAfter {
		return maxRetryAfter
	}
	return d
}
