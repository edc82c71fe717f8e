// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package api

import (
	"context"
	"time"

	"github.com/tomtom215/paddock/internal/middleware"
	"github.com/tomtom215/paddock/internal/models"
)

// Version is reported by the health endpoint. Overridden at build time with
// -ldflags "-X github.com/tomtom215/paddock/internal/api.Version=...".
var Version = "dev"

// SeasonStore serves season tables. *cache.SeasonCache implements it.
type SeasonStore interface {
	Get(ctx context.Context, season int) *models.SeasonTable
	Seasons() []int
	Len() int
}

// BiographyLookup enriches driver detail. *biography.Client implements it.
type BiographyLookup interface {
	Lookup(ctx context.Context, name string) *models.DriverBio
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response envelope and parameter parsing
//   - handlers_health.go: health, liveness, readiness, performance
//   - handlers_seasons.go: season list, standings, rounds, cumulative
//   - handlers_drivers.go: points progression and driver detail
type Handler struct {
	seasons       SeasonStore
	bios          BiographyLookup
	upstreamState func() string
	perfMon       *middleware.PerformanceMonitor
	startTime     time.Time
	now           func() time.Time
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithBiography enables driver biography enrichment.
func WithBiography(bios BiographyLookup) HandlerOption {
	return func(h *Handler) { h.bios = bios }
}

// WithUpstreamState reports the results API circuit state in health checks.
func WithUpstreamState(fn func() string) HandlerOption {
	return func(h *Handler) { h.upstreamState = fn }
}

// WithPerformanceMonitor exposes request latency statistics.
func WithPerformanceMonitor(pm *middleware.PerformanceMonitor) HandlerOption {
	return func(h *Handler) { h.perfMon = pm }
}

// NewHandler creates the API handler.
//
//	seasons := cache.NewSeasonCache(pipeline.Load)
//	handler := api.NewHandler(seasons,
//	    api.WithBiography(bios),
//	    api.WithUpstreamState(pipeline.UpstreamState))
//	router := api.NewRouter(handler, api.NewChiMiddleware(nil))
func NewHandler(seasons SeasonStore, opts ...HandlerOption) *Handler {
	h := &Handler{
		seasons:       seasons,
		upstreamState: func() string { return "unknown" },
		startTime:     time.Now(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.perfMon == nil {
		h.perfMon = middleware.NewPerformanceMonitor(1000, middleware.DefaultSlowRequestThreshold)
	}
	return h
}

// PerformanceMonitor returns the monitor the router installs as middleware.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}
