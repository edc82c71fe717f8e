// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package services

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/paddock/internal/logging"
	"github.com/tomtom215/paddock/internal/models"
)

// SeasonWarmer loads a season into the cache. *cache.SeasonCache implements it.
type SeasonWarmer interface {
	Get(ctx context.Context, season int) *models.SeasonTable
}

// SeasonPrefetchService warms a fixed list of seasons once at startup.
//
// Seasons load one after another; each load already fans out across rounds.
// Once every season is cached the service returns suture.ErrDoNotRestart.
type SeasonPrefetchService struct {
	warmer  SeasonWarmer
	seasons []int
	name    string
}

// NewSeasonPrefetchService prefetches seasons in the given order, skipping
// duplicates.
func NewSeasonPrefetchService(warmer SeasonWarmer, seasons []int) *SeasonPrefetchService {
	seen := make(map[int]struct{}, len(seasons))
	unique := make([]int, 0, len(seasons))
	for _, s := range seasons {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}
	return &SeasonPrefetchService{
		warmer:  warmer,
		seasons: unique,
		name:    "season-prefetch",
	}
}

// Serve implements suture.Service.
func (p *SeasonPrefetchService) Serve(ctx context.Context) error {
	start := time.Now()
	var loaded, empty int

	for _, season := range p.seasons {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		table := p.warmer.Get(logging.ContextWithSeason(ctx, season), season)
		if table.IsEmpty() {
			empty++
			logging.Warn().Int("season", season).Msg("Prefetched season has no results")
			continue
		}
		loaded++
		logging.Debug().
			Int("season", season).
			Int("rows", table.Len()).
			Ints("failed_rounds", table.FailedRounds()).
			Msg("Season prefetched")
	}

	logging.Info().
		Int("loaded", loaded).
		Int("empty", empty).
		Dur("elapsed", time.Since(start)).
		Msg("Season prefetch complete")

	return suture.ErrDoNotRestart
}

// String implements fmt.Stringer for suture's logs.
func (p *SeasonPrefetchService) String() string {
	return p.name
}
