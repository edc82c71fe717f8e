// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

// Package main runs the Paddock HTTP API.
//
// @title Paddock API
// @version 1.0
// @description Formula 1 season standings, cumulative points and driver progression.
// @description
// @description Season data is fetched from the Jolpica (Ergast-compatible) API on first
// @description request and cached in memory for the life of the process.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {"code": "NOT_FOUND", "message": "No data available for season 1949"},
// @description   "metadata": {"timestamp": "2026-03-01T12:00:00Z", "request_id": "..."}
// @description }
// @description ```
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Health
// @tag.description Liveness, readiness and latency statistics
//
// @tag.name Seasons
// @tag.description Per-season standings, rounds and cumulative points
//
// @tag.name Drivers
// @tag.description Points progression and driver season detail
//
// # Configuration
//
// See internal/config. The most useful environment variables:
//
//	HTTP_PORT=8080
//	RESULTS_BASE_URL=https://api.jolpi.ca/ergast/f1
//	RESULTS_WORKERS=4
//	PREFETCH_SEASONS=2023,2024
//	BIOGRAPHY_ENABLED=true
//	LOG_LEVEL=debug LOG_FORMAT=console
package main
