// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

/*
Package api serves Paddock's read-only JSON API over a chi router.

Endpoints (all GET):

	/api/v1/health                          service status and results API circuit
	/api/v1/health/live                     liveness probe
	/api/v1/health/ready                    readiness probe, 503 while the circuit is open
	/api/v1/health/performance              latency percentiles per endpoint
	/api/v1/seasons                         selectable and cached seasons
	/api/v1/seasons/{season}/standings      driver and constructor standings
	/api/v1/seasons/{season}/rounds         rounds with results
	/api/v1/seasons/{season}/cumulative     running points totals per driver
	/api/v1/points-progression              ?season=&drivers=&up_to_round=
	/api/v1/drivers/{name}/seasons/{season} one driver's season with biography
	/metrics                                Prometheus
	/swagger/*                              OpenAPI UI

Every JSON response uses the models.APIResponse envelope. Errors carry one of
the ErrCode constants and never include internal error text.

Season tables come from a SeasonStore, normally *cache.SeasonCache, so the
first request for a season pays for the upstream fetch and later requests are
served from memory. A season the upstream could not supply is cached as an
empty table and answered with 404.
*/
package api
