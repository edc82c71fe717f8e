// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/paddock/config.yaml",
	"/etc/paddock/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultResultsBaseURL is the public Jolpica mirror of the Ergast API.
const DefaultResultsBaseURL = "https://api.jolpi.ca/ergast/f1"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Results: ResultsConfig{
			BaseURL:                    DefaultResultsBaseURL,
			RoundListTimeout:           30 * time.Second,
			RoundTimeout:               15 * time.Second,
			Workers:                    4,
			RequestsPerSecond:          4,
			Burst:                      4,
			Max429Retries:              3,
			RetryFailedRoundsThreshold: 3,
			SprintFromSeason:           2021,
			PrefetchSeasons:            nil,
		},
		Retry: RetryConfig{
			MaxRetries:              2,
			Backoff:                 2 * time.Second,
			MinParticipantsPerRound: 1,
		},
		Biography: BiographyConfig{
			Enabled:   true,
			BaseURL:   "https://en.wikipedia.org",
			Timeout:   10 * time.Second,
			CacheTTL:  24 * time.Hour,
			UserAgent: "paddock/1.0 (https://github.com/tomtom215/paddock)",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration in three layers: struct defaults, an
// optional YAML file, then environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// RESULTS_WORKERS -> results.workers
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are accepted as comma-separated strings from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"results.prefetch_seasons",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Results API
	"results_base_url":                      "results.base_url",
	"results_round_list_timeout":            "results.round_list_timeout",
	"results_round_timeout":                 "results.round_timeout",
	"results_workers":                       "results.workers",
	"results_requests_per_second":           "results.requests_per_second",
	"results_burst":                         "results.burst",
	"results_max_429_retries":               "results.max_429_retries",
	"results_retry_failed_rounds_threshold": "results.retry_failed_rounds_threshold",
	"results_sprint_from_season":            "results.sprint_from_season",
	"prefetch_seasons":                      "results.prefetch_seasons",

	// Season retry policy
	"season_max_retries":                "retry.max_retries",
	"season_retry_backoff":              "retry.backoff",
	"season_min_participants_per_round": "retry.min_participants_per_round",

	// Biography
	"biography_enabled":    "biography.enabled",
	"biography_base_url":   "biography.base_url",
	"biography_timeout":    "biography.timeout",
	"biography_cache_ttl":  "biography.cache_ttl",
	"biography_user_agent": "biography.user_agent",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf paths.
// Returning "" tells the env provider to skip the variable.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
