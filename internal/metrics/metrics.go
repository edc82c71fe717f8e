// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

// Package metrics exposes Prometheus instrumentation for the season pipeline,
// upstream clients and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Season pipeline

	SeasonFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paddock_season_fetch_duration_seconds",
			Help:    "Duration of a full season fetch (round list plus all rounds)",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"outcome"}, // "complete", "partial", "empty", "error"
	)

	RoundFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddock_round_fetch_total",
			Help: "Total number of per-round upstream fetches",
		},
		[]string{"kind", "outcome"}, // kind: "race", "sprint"; outcome: "ok", "empty", "error"
	)

	FailedRounds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paddock_failed_rounds_total",
			Help: "Rounds still missing after the sequential retry pass",
		},
	)

	SeasonRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddock_season_retry_attempts_total",
			Help: "Whole-season fetch attempts made by the retry policy",
		},
		[]string{"result"}, // "accepted", "rejected"
	)

	RowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddock_rows_dropped_total",
			Help: "Result rows dropped at ingestion",
		},
		[]string{"reason"}, // "parse", "invalid", "duplicate"
	)

	// Season cache

	SeasonCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paddock_season_cache_hits_total",
			Help: "Season cache lookups served from memory",
		},
	)

	SeasonCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paddock_season_cache_misses_total",
			Help: "Season cache lookups that required an upstream fetch",
		},
	)

	SeasonCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "paddock_season_cache_entries",
			Help: "Number of seasons currently memoized",
		},
	)

	// Upstream clients

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "paddock_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddock_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddock_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	UpstreamRateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddock_upstream_rate_limited_total",
			Help: "HTTP 429 responses received from upstream APIs",
		},
		[]string{"name"},
	)

	BiographyLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddock_biography_lookups_total",
			Help: "Driver biography lookups",
		},
		[]string{"result"}, // "found", "not_found", "error", "cached"
	)

	// API

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddock_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paddock_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "paddock_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)
)

// RecordSeasonFetch records the duration and outcome of one season fetch.
func RecordSeasonFetch(duration time.Duration, rows, failedRounds int, err error) {
	outcome := "complete"
	switch {
	case err != nil:
		outcome = "error"
	case rows == 0:
		outcome = "empty"
	case failedRounds > 0:
		outcome = "partial"
	}
	SeasonFetchDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	FailedRounds.Add(float64(failedRounds))
}

// RecordRoundFetch records one per-round fetch.
func RecordRoundFetch(kind string, rows int, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case rows == 0:
		outcome = "empty"
	}
	RoundFetches.WithLabelValues(kind, outcome).Inc()
}

// RecordRetryAttempt records whether a season attempt passed the acceptance predicate.
func RecordRetryAttempt(accepted bool) {
	if accepted {
		SeasonRetryAttempts.WithLabelValues("accepted").Inc()
		return
	}
	SeasonRetryAttempts.WithLabelValues("rejected").Inc()
}

// RecordRowDropped counts one dropped row.
func RecordRowDropped(reason string) {
	RowsDropped.WithLabelValues(reason).Inc()
}

// RecordSeasonCacheLookup counts a season cache hit or miss.
func RecordSeasonCacheLookup(hit bool) {
	if hit {
		SeasonCacheHits.Inc()
		return
	}
	SeasonCacheMisses.Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
