// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package results

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/paddock/internal/config"
	"github.com/tomtom215/paddock/internal/logging"
	"github.com/tomtom215/paddock/internal/metrics"
	"github.com/tomtom215/paddock/internal/models"
	"github.com/tomtom215/paddock/internal/validation"
)

// RoundSource lists the rounds of a season and fetches their results.
// *Client implements it; tests substitute fakes.
type RoundSource interface {
	ListRounds(ctx context.Context, season int) ([]models.RoundInfo, error)
	FetchRound(ctx context.Context, season int, info models.RoundInfo) ([]models.ResultRow, error)
	FetchSprint(ctx context.Context, season int, info models.RoundInfo) ([]models.ResultRow, error)
}

// SeasonFetcher assembles a SeasonTable from per-round fetches.
type SeasonFetcher struct {
	source           RoundSource
	workers          int
	retryThreshold   int
	sprintFromSeason int
}

// NewSeasonFetcher creates a fetcher with cfg.Workers parallel round fetches.
func NewSeasonFetcher(source RoundSource, cfg config.ResultsConfig) *SeasonFetcher {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > config.MaxResultsWorkers {
		workers = config.MaxResultsWorkers
	}
	return &SeasonFetcher{
		source:           source,
		workers:          workers,
		retryThreshold:   cfg.RetryFailedRoundsThreshold,
		sprintFromSeason: cfg.SprintFromSeason,
	}
}

// roundOutcome is the result of fetching every session of one round.
type roundOutcome struct {
	info models.RoundInfo
	rows []models.ResultRow
	err  error
}

// FetchSeason lists a season's rounds, fetches them in parallel and merges
// the results into a table ordered by (round, position).
//
// Individual round failures do not fail the season: their round numbers are
// reported in SeasonTable.FailedRounds. An error is returned only when the
// round listing itself could not be fetched. A season with no listed rounds
// yields an empty table and a nil error.
func (f *SeasonFetcher) FetchSeason(ctx context.Context, season int) (*models.SeasonTable, error) {
	start := time.Now()

	rounds, err := f.source.ListRounds(ctx, season)
	if err != nil {
		metrics.RecordSeasonFetch(time.Since(start), 0, 0, err)
		return nil, err
	}
	if len(rounds) == 0 {
		logging.Info().Int("season", season).Msg("No rounds listed for season")
		metrics.RecordSeasonFetch(time.Since(start), 0, 0, nil)
		return models.EmptySeasonTable(season), nil
	}

	logging.Info().Int("season", season).Int("rounds", len(rounds)).Int("workers", f.workers).Msg("Fetching season results")

	var rows []models.ResultRow
	var failed []models.RoundInfo
	for _, outcome := range f.fetchRounds(ctx, season, rounds) {
		if outcome.err != nil {
			failed = append(failed, outcome.info)
			continue
		}
		rows = append(rows, outcome.rows...)
	}

	if n := len(failed); n > 0 && n <= f.retryThreshold {
		var recovered []models.ResultRow
		recovered, failed = f.retryRounds(ctx, season, failed)
		rows = append(rows, recovered...)
	} else if n > 0 {
		logging.Warn().Int("season", season).Int("failed", n).Int("threshold", f.retryThreshold).
			Msg("Too many failed rounds, skipping sequential retry")
	}

	failedRounds := make([]int, len(failed))
	for i, info := range failed {
		failedRounds[i] = info.Round
	}

	table := models.NewSeasonTable(season, len(rounds), cleanRows(season, rows), failedRounds)

	elapsed := time.Since(start)
	metrics.RecordSeasonFetch(elapsed, table.Len(), len(failedRounds), nil)

	var event *zerolog.Event
	if len(failedRounds) > 0 {
		event = logging.Warn().Ints("failed_rounds", table.FailedRounds())
	} else {
		event = logging.Info()
	}
	event.Int("season", season).
		Int("rows", table.Len()).
		Int("rounds_with_results", len(table.RoundNumbers())).
		Int("drivers", len(table.Drivers())).
		Dur("elapsed", elapsed).
		Msg("Season fetch complete")

	return table, nil
}

// fetchRounds runs one job per round over a bounded worker pool and returns
// once every round has completed. Outcomes are returned in round order.
func (f *SeasonFetcher) fetchRounds(ctx context.Context, season int, rounds []models.RoundInfo) []roundOutcome {
	results := make(chan roundOutcome, len(rounds))
	jobChan := make(chan models.RoundInfo, len(rounds))
	var wg sync.WaitGroup

	workerCount := f.workers
	if workerCount > len(rounds) {
		workerCount = len(rounds)
	}

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for info := range jobChan {
				rows, err := f.fetchRoundSessions(ctx, season, info)
				results <- roundOutcome{info: info, rows: rows, err: err}
			}
		}()
	}

	for _, info := range rounds {
		jobChan <- info
	}
	close(jobChan)

	wg.Wait()
	close(results)

	outcomes := make([]roundOutcome, 0, len(rounds))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].info.Round < outcomes[j].info.Round })
	return outcomes
}

// fetchRoundSessions fetches the race and, when the season has them, the
// sprint. A failure of either session fails the whole round; a round without
// a sprint reaches here as an empty sprint, not an error.
func (f *SeasonFetcher) fetchRoundSessions(ctx context.Context, season int, info models.RoundInfo) ([]models.ResultRow, error) {
	rows, err := f.source.FetchRound(ctx, season, info)
	if err != nil {
		logging.Warn().Err(err).Int("season", season).Int("round", info.Round).Msg("Round fetch failed")
		return nil, err
	}

	if season < f.sprintFromSeason {
		return rows, nil
	}

	sprint, err := f.source.FetchSprint(ctx, season, info)
	if err != nil {
		logging.Warn().Err(err).Int("season", season).Int("round", info.Round).Msg("Sprint fetch failed")
		return nil, err
	}
	return append(rows, sprint...), nil
}

// retryRounds retries each failed round once, in order. It returns the rows
// recovered and the rounds that failed again. An open circuit ends the retry:
// the remaining rounds stay failed without another request.
func (f *SeasonFetcher) retryRounds(ctx context.Context, season int, failed []models.RoundInfo) ([]models.ResultRow, []models.RoundInfo) {
	logging.Info().Int("season", season).Int("failed", len(failed)).Msg("Retrying failed rounds sequentially")

	var rows []models.ResultRow
	var stillFailed []models.RoundInfo
	for i, info := range failed {
		recovered, err := f.fetchRoundSessions(ctx, season, info)
		if errors.Is(err, ErrCircuitOpen) {
			logging.Warn().Int("season", season).Int("round", info.Round).Int("skipped", len(failed)-i-1).
				Msg("Circuit open, abandoning round retries")
			stillFailed = append(stillFailed, failed[i:]...)
			break
		}
		if err != nil {
			logging.Warn().Err(err).Int("season", season).Int("round", info.Round).Msg("Round still failing after retry")
			stillFailed = append(stillFailed, info)
			continue
		}
		logging.Info().Int("season", season).Int("round", info.Round).Int("rows", len(recovered)).Msg("Round recovered on retry")
		rows = append(rows, recovered...)
	}
	return rows, stillFailed
}

// rowKey identifies one driver's result in one session.
type rowKey struct {
	round    int
	driver   string
	raceType models.RaceType
}

// cleanRows clamps points to be non-negative, then drops rows that fail
// validation and repeated (round, driver, race type) entries. The first
// occurrence of a duplicate is kept.
func cleanRows(season int, rows []models.ResultRow) []models.ResultRow {
	seen := make(map[rowKey]struct{}, len(rows))
	out := make([]models.ResultRow, 0, len(rows))

	for i := range rows {
		row := rows[i]
		if math.IsNaN(row.Points) || row.Points < 0 {
			row.Points = 0
		}

		if verr := validation.ValidateStruct(&row); verr != nil {
			logging.Warn().Err(verr).Int("season", season).Int("round", row.Round).Str("driver", row.Driver).Msg("Dropping invalid result row")
			metrics.RecordRowDropped("invalid")
			continue
		}

		key := rowKey{round: row.Round, driver: row.Driver, raceType: row.RaceType}
		if _, dup := seen[key]; dup {
			logging.Debug().Int("season", season).Int("round", row.Round).Str("driver", row.Driver).Msg("Dropping duplicate result row")
			metrics.RecordRowDropped("duplicate")
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}
