// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

/*
Package middleware provides HTTP middleware for the Paddock API.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight gauge
  - Compression: gzip for clients that accept it
  - PerformanceMonitor: sliding-window latency percentiles per endpoint

Request IDs, CORS and rate limiting live in internal/api next to the chi
router because they are configured from the security settings.

Middleware Stack:

	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(perfMon.Middleware)
	    r.Get("/seasons/{season}/standings",
	        chiMiddleware(middleware.PrometheusMetrics)(
	            chiMiddleware(middleware.Compression)(handler.SeasonStandings)))
	})

Endpoint labels use the chi route pattern, so metric cardinality is bounded
by the number of routes rather than the number of seasons requested.
*/
package middleware
