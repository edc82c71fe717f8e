// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

// Package config loads Paddock configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig()
//  2. Config File: optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: explicit mappings in envTransformFunc
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	client := results.NewClient(cfg.Results)
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Results   ResultsConfig   `koanf:"results"`
	Retry     RetryConfig     `koanf:"retry"`
	Biography BiographyConfig `koanf:"biography"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// Addr returns the listen address for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ResultsConfig holds settings for the upstream results API (Jolpica/Ergast).
type ResultsConfig struct {
	BaseURL          string        `koanf:"base_url"`
	RoundListTimeout time.Duration `koanf:"round_list_timeout"`
	RoundTimeout     time.Duration `koanf:"round_timeout"`

	// Workers bounds concurrent round fetches for one season.
	Workers int `koanf:"workers"`

	// RequestsPerSecond and Burst feed the outbound token bucket.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// Max429Retries is how many times a single request backs off on HTTP 429.
	Max429Retries int `koanf:"max_429_retries"`

	// RetryFailedRoundsThreshold: failed rounds are retried sequentially only
	// when 0 < failed <= threshold.
	RetryFailedRoundsThreshold int `koanf:"retry_failed_rounds_threshold"`

	// SprintFromSeason is the first season with sprint sessions.
	SprintFromSeason int `koanf:"sprint_from_season"`

	// PrefetchSeasons are warmed into the season cache at startup.
	PrefetchSeasons []int `koanf:"prefetch_seasons"`
}

// RetryConfig holds the whole-season retry policy.
type RetryConfig struct {
	MaxRetries              int           `koanf:"max_retries"`
	Backoff                 time.Duration `koanf:"backoff"`
	MinParticipantsPerRound int           `koanf:"min_participants_per_round"`
}

// BiographyConfig holds settings for the Wikipedia driver lookup.
type BiographyConfig struct {
	Enabled   bool          `koanf:"enabled"`
	BaseURL   string        `koanf:"base_url"`
	Timeout   time.Duration `koanf:"timeout"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
	UserAgent string        `koanf:"user_agent"`
}

// SecurityConfig holds inbound HTTP protections.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
