// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/paddock/internal/models"
)

// Health reports overall service status.
//
// @Summary Get service health
// @Description Returns uptime, cached season count and the results API circuit state. Status is "degraded" while the circuit is open.
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	upstream := h.upstreamState()

	status := "healthy"
	if upstream == "open" {
		status = "degraded"
	}

	respondSuccess(w, r, start, models.HealthStatus{
		Status:        status,
		Version:       Version,
		Uptime:        time.Since(h.startTime).Seconds(),
		CachedSeasons: h.seasons.Len(),
		UpstreamState: upstream,
	})
}

// HealthLive is the liveness probe. It succeeds while the process serves HTTP.
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, time.Now(), map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady is the readiness probe. It fails while the results API circuit
// is open, since uncached seasons cannot be served then.
//
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	upstream := h.upstreamState()
	if upstream == "open" {
		respondAPIError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    ErrCodeNotReady,
			Message: "Results API circuit breaker is open",
			Details: map[string]interface{}{"upstream_circuit": upstream},
		}, nil)
		return
	}

	respondSuccess(w, r, time.Now(), map[string]interface{}{
		"ready":            true,
		"upstream_circuit": upstream,
		"cached_seasons":   h.seasons.Len(),
	})
}

// HealthPerformance returns per-endpoint latency percentiles over the most
// recent requests.
//
// @Summary Request latency statistics
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]middleware.EndpointStats}
// @Router /health/performance [get]
func (h *Handler) HealthPerformance(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, time.Now(), h.perfMon.GetStats())
}
