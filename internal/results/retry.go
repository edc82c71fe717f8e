// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package results

import (
	"context"
	"time"

	"github.com/tomtom215/paddock/internal/config"
	"github.com/tomtom215/paddock/internal/logging"
	"github.com/tomtom215/paddock/internal/metrics"
	"github.com/tomtom215/paddock/internal/models"
)

// SeasonSource fetches one complete season. *SeasonFetcher implements it.
type SeasonSource interface {
	FetchSeason(ctx context.Context, season int) (*models.SeasonTable, error)
}

// AcceptFunc decides whether a fetched table is good enough to stop retrying.
type AcceptFunc func(table *models.SeasonTable) bool

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy retries whole-season fetches until a table is accepted.
type RetryPolicy struct {
	// MaxAttempts includes the first attempt. Values below 1 mean 1.
	MaxAttempts int

	// Backoff is the fixed wait between attempts.
	Backoff time.Duration

	// Accept defaults to MinRowsPerRound(1).
	Accept AcceptFunc

	// Sleep defaults to SleepContext. Tests inject a recorder.
	Sleep SleepFunc
}

// NewRetryPolicy builds a policy from configuration: MaxRetries+1 attempts,
// a fixed backoff, and acceptance at MinParticipantsPerRound rows per round.
func NewRetryPolicy(cfg config.RetryConfig) *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: cfg.MaxRetries + 1,
		Backoff:     cfg.Backoff,
		Accept:      MinRowsPerRound(cfg.MinParticipantsPerRound),
		Sleep:       SleepContext,
	}
}

// MinRowsPerRound accepts a non-empty table holding at least perRound rows for
// every round that returned results or failed. Listed rounds that came back
// empty have not been run yet and are not expected to hold rows.
func MinRowsPerRound(perRound int) AcceptFunc {
	if perRound < 1 {
		perRound = 1
	}
	return func(table *models.SeasonTable) bool {
		if table.IsEmpty() {
			return false
		}
		expected := len(table.RoundNumbers()) + len(table.FailedRounds())
		return table.Len() >= expected*perRound
	}
}

// SleepContext sleeps for d, returning early with ctx.Err() on cancellation.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fetch calls source until a table is accepted or attempts run out.
//
// Fetch never fails: errors are logged, and when no attempt is accepted the
// table with the most rows is returned. If every attempt errored the result
// is an empty table for season.
func (p *RetryPolicy) Fetch(ctx context.Context, season int, source SeasonSource) *models.SeasonTable {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	accept := p.Accept
	if accept == nil {
		accept = MinRowsPerRound(1)
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var best *models.SeasonTable
	for attempt := 1; attempt <= attempts; attempt++ {
		table, err := source.FetchSeason(ctx, season)
		switch {
		case err != nil:
			logging.Warn().Err(err).Int("season", season).Int("attempt", attempt).Msg("Season fetch attempt failed")
		case accept(table):
			metrics.RecordRetryAttempt(true)
			if attempt > 1 {
				logging.Info().Int("season", season).Int("attempt", attempt).Msg("Season fetch accepted after retry")
			}
			return table
		default:
			logging.Warn().Int("season", season).Int("attempt", attempt).Int("rows", table.Len()).
				Ints("failed_rounds", table.FailedRounds()).Msg("Season fetch below acceptance threshold")
		}

		metrics.RecordRetryAttempt(false)
		if table != nil && (best == nil || table.Len() > best.Len()) {
			best = table
		}

		if attempt < attempts {
			if err := sleep(ctx, p.Backoff); err != nil {
				logging.Warn().Err(err).Int("season", season).Msg("Season retry interrupted")
				break
			}
		}
	}

	if best == nil {
		best = models.EmptySeasonTable(season)
	}
	event := logging.Warn()
	if best.IsEmpty() {
		event = event.Err(ErrEmptySeason)
	}
	event.Int("season", season).Int("attempts", attempts).Int("rows", best.Len()).Msg("Season retries exhausted, returning best table")
	return best
}
