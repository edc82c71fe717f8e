// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package config

import (
	"fmt"
	"strings"
)

// MaxResultsWorkers caps concurrent round fetches against the public API.
const MaxResultsWorkers = 8

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateResults(); err != nil {
		return err
	}
	if err := c.validateRetry(); err != nil {
		return err
	}
	if err := c.validateBiography(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateResults() error {
	r := c.Results
	if err := validateHTTPURL(r.BaseURL, "RESULTS_BASE_URL", true); err != nil {
		return err
	}
	if r.Workers < 1 || r.Workers > MaxResultsWorkers {
		return fmt.Errorf("RESULTS_WORKERS must be between 1 and %d, got %d", MaxResultsWorkers, r.Workers)
	}
	if r.RoundListTimeout <= 0 || r.RoundTimeout <= 0 {
		return fmt.Errorf("RESULTS_ROUND_LIST_TIMEOUT and RESULTS_ROUND_TIMEOUT must be positive")
	}
	if r.RequestsPerSecond <= 0 {
		return fmt.Errorf("RESULTS_REQUESTS_PER_SECOND must be positive, got %v", r.RequestsPerSecond)
	}
	if r.Burst < 1 {
		return fmt.Errorf("RESULTS_BURST must be at least 1, got %d", r.Burst)
	}
	if r.Max429Retries < 0 {
		return fmt.Errorf("RESULTS_MAX_429_RETRIES must not be negative, got %d", r.Max429Retries)
	}
	if r.RetryFailedRoundsThreshold < 0 {
		return fmt.Errorf("RESULTS_RETRY_FAILED_ROUNDS_THRESHOLD must not be negative, got %d", r.RetryFailedRoundsThreshold)
	}
	for _, season := range r.PrefetchSeasons {
		if season < 1950 {
			return fmt.Errorf("PREFETCH_SEASONS contains %d, seasons start at 1950", season)
		}
	}
	return nil
}

func (c *Config) validateRetry() error {
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("SEASON_MAX_RETRIES must not be negative, got %d", c.Retry.MaxRetries)
	}
	if c.Retry.Backoff < 0 {
		return fmt.Errorf("SEASON_RETRY_BACKOFF must not be negative, got %v", c.Retry.Backoff)
	}
	if c.Retry.MinParticipantsPerRound < 0 {
		return fmt.Errorf("SEASON_MIN_PARTICIPANTS_PER_ROUND must not be negative, got %d", c.Retry.MinParticipantsPerRound)
	}
	return nil
}

func (c *Config) validateBiography() error {
	if !c.Biography.Enabled {
		return nil
	}
	if err := validateHTTPURL(c.Biography.BaseURL, "BIOGRAPHY_BASE_URL", false); err != nil {
		return err
	}
	if c.Biography.Timeout <= 0 {
		return fmt.Errorf("BIOGRAPHY_TIMEOUT must be positive, got %v", c.Biography.Timeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
