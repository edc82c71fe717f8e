// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	seasonKey    contextKey = "season"
)

// GenerateRequestID returns a new UUID for an inbound HTTP request.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a context carrying the request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID, or "" if none is set.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithSeason tags a context with the season being processed so that
// fetch logs deep in the pipeline can be correlated with the request.
func ContextWithSeason(ctx context.Context, season int) context.Context {
	return context.WithValue(ctx, seasonKey, season)
}

// SeasonFromContext returns the season tag, or 0 if none is set.
func SeasonFromContext(ctx context.Context) int {
	if s, ok := ctx.Value(seasonKey).(int); ok {
		return s
	}
	return 0
}

// Ctx returns the global logger enriched with request_id and season from ctx.
//
//	logging.Ctx(ctx).Info().Int("rows", n).Msg("Season fetched")
func Ctx(ctx context.Context) *zerolog.Logger {
	lc := Logger().With()
	if id := RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if season := SeasonFromContext(ctx); season != 0 {
		lc = lc.Int("season", season)
	}
	l := lc.Logger()
	return &l
}
