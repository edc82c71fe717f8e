// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

// Package results fetches Formula 1 season results from the Jolpica API and
// normalizes them into models.SeasonTable.
//
// The pieces compose bottom-up:
//
//	Client          one HTTP request per round listing, race or sprint
//	SeasonFetcher   parallel per-round fetches, failed-round retry, cleanup
//	RetryPolicy     whole-season retries until the table looks complete
//	Pipeline        all of the above behind a single Load call
package results

import (
	"context"

	"github.com/tomtom215/paddock/internal/config"
	"github.com/tomtom215/paddock/internal/models"
)

// Pipeline loads one season end to end. It never fails; see RetryPolicy.Fetch.
type Pipeline struct {
	client  *Client
	fetcher *SeasonFetcher
	policy  *RetryPolicy
}

// NewPipeline wires a Client, SeasonFetcher and RetryPolicy from cfg.
func NewPipeline(cfg *config.Config) *Pipeline {
	client := NewClient(cfg.Results)
	return &Pipeline{
		client:  client,
		fetcher: NewSeasonFetcher(client, cfg.Results),
		policy:  NewRetryPolicy(cfg.Retry),
	}
}

// Load fetches season with retries and returns the best table obtained.
func (p *Pipeline) Load(ctx context.Context, season int) *models.SeasonTable {
	return p.policy.Fetch(ctx, season, p.fetcher)
}

// UpstreamState reports the results API circuit breaker state.
func (p *Pipeline) UpstreamState() string {
	return p.client.BreakerState()
}
