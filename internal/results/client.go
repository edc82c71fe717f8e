// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package results

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/paddock/internal/config"
	"github.com/tomtom215/paddock/internal/logging"
	"github.com/tomtom215/paddock/internal/metrics"
	"github.com/tomtom215/paddock/internal/models"
	"github.com/tomtom215/paddock/internal/upstream"
)

// pageLimit covers the longest calendar and the largest grid in one page.
const pageLimit = 100

// Client fetches round listings and per-round results from the Jolpica API.
type Client struct {
	http             *upstream.Client
	baseURL          string
	roundListTimeout time.Duration
	roundTimeout     time.Duration
}

// NewClient creates a results API client. The upstream client is rate limited
// to cfg.RequestsPerSecond and protected by a circuit breaker.
func NewClient(cfg config.ResultsConfig) *Client {
	return newClientWith(cfg, upstream.NewClient(upstream.Config{
		Name:              "results-api",
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		MaxRetries:        cfg.Max429Retries,
		RetryBaseDelay:    time.Second,
		UserAgent:         "paddock/1.0",
		Breaker:           upstream.DefaultBreakerSettings(),
	}))
}

func newClientWith(cfg config.ResultsConfig, http *upstream.Client) *Client {
	return &Client{
		http:             http,
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		roundListTimeout: cfg.RoundListTimeout,
		roundTimeout:     cfg.RoundTimeout,
	}
}

// BreakerState reports the upstream circuit breaker state.
func (c *Client) BreakerState() string {
	return c.http.BreakerState()
}

// ListRounds returns the scheduled rounds of a season in round order.
// An unknown season yields an empty list, not an error.
func (c *Client) ListRounds(ctx context.Context, season int) ([]models.RoundInfo, error) {
	url := fmt.Sprintf("%s/%d.json?limit=%d", c.baseURL, season, pageLimit)

	var resp mrResponse
	if err := c.http.GetJSON(ctx, url, c.roundListTimeout, &resp); err != nil {
		return nil, fmt.Errorf("list rounds for season %d: %w: %w", season, ErrFetchFailed, err)
	}

	races := resp.MRData.RaceTable.Races
	rounds := make([]models.RoundInfo, 0, len(races))
	for i := range races {
		r := &races[i]
		n, err := strconv.Atoi(strings.TrimSpace(r.Round))
		if err != nil || n < 1 {
			logging.Warn().Int("season", season).Str("round", r.Round).Msg("Skipping race with invalid round number")
			continue
		}
		rounds = append(rounds, models.RoundInfo{
			Round:    n,
			RaceName: r.RaceName,
			Date:     r.Date,
			Circuit:  r.Circuit.CircuitName,
		})
	}
	return rounds, nil
}

// FetchRound fetches the race classification of one round.
//
// A response without races or results is an empty slice and a nil error: the
// round has not been run yet. Transport failures return *RoundError.
func (c *Client) FetchRound(ctx context.Context, season int, info models.RoundInfo) ([]models.ResultRow, error) {
	url := fmt.Sprintf("%s/%d/%d/results.json?limit=%d", c.baseURL, season, info.Round, pageLimit)

	var resp mrResponse
	if err := c.http.GetJSON(ctx, url, c.roundTimeout, &resp); err != nil {
		err = &RoundError{Season: season, Round: info.Round, Kind: models.RaceTypeRace, Err: err}
		metrics.RecordRoundFetch("race", 0, err)
		return nil, err
	}

	var rows []models.ResultRow
	if races := resp.MRData.RaceTable.Races; len(races) > 0 {
		rows = toRows(season, info, &races[0], races[0].Results, models.RaceTypeRace)
	}
	metrics.RecordRoundFetch("race", len(rows), nil)
	return rows, nil
}

// FetchSprint fetches the sprint classification of one round. Rounds without
// a sprint (404 or no SprintResults) yield an empty slice.
func (c *Client) FetchSprint(ctx context.Context, season int, info models.RoundInfo) ([]models.ResultRow, error) {
	url := fmt.Sprintf("%s/%d/%d/sprint.json?limit=%d", c.baseURL, season, info.Round, pageLimit)

	var resp mrResponse
	if err := c.http.GetJSON(ctx, url, c.roundTimeout, &resp); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			metrics.RecordRoundFetch("sprint", 0, nil)
			return nil, nil
		}
		err = &RoundError{Season: season, Round: info.Round, Kind: models.RaceTypeSprint, Err: err}
		metrics.RecordRoundFetch("sprint", 0, err)
		return nil, err
	}

	var rows []models.ResultRow
	if races := resp.MRData.RaceTable.Races; len(races) > 0 {
		rows = toRows(season, info, &races[0], races[0].SprintResults, models.RaceTypeSprint)
	}
	metrics.RecordRoundFetch("sprint", len(rows), nil)
	return rows, nil
}

// toRows flattens API results into ResultRows. Race metadata comes from the
// round listing, falling back to the result payload when the listing lacks it.
func toRows(season int, info models.RoundInfo, r *race, results []raceResult, kind models.RaceType) []models.ResultRow {
	raceName := firstNonEmpty(info.RaceName, r.RaceName)
	date := firstNonEmpty(info.Date, r.Date)
	circuitName := firstNonEmpty(info.Circuit, r.Circuit.CircuitName)

	rows := make([]models.ResultRow, 0, len(results))
	for i := range results {
		res := &results[i]

		points, err := parsePoints(info.Round, res.Points)
		if err != nil {
			dropUnparsable(season, kind, err)
			continue
		}
		position, err := parsePosition(info.Round, res.Position)
		if err != nil {
			dropUnparsable(season, kind, err)
			continue
		}

		rows = append(rows, models.ResultRow{
			RaceName:    raceName,
			Round:       info.Round,
			Date:        date,
			Circuit:     circuitName,
			Driver:      strings.TrimSpace(res.Driver.GivenName + " " + res.Driver.FamilyName),
			Constructor: strings.TrimSpace(res.Constructor.Name),
			Points:      points,
			Position:    position,
			RaceType:    kind,
		})
	}
	return rows
}

func parsePoints(round int, raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, nil
	}
	points, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ParseError{Round: round, Field: "points", Value: raw}
	}
	return points, nil
}

func parsePosition(round int, raw string) (int, error) {
	position, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ParseError{Round: round, Field: "position", Value: raw}
	}
	return position, nil
}

func dropUnparsable(season int, kind models.RaceType, err error) {
	logging.Warn().Err(err).Int("season", season).Str("race_type", string(kind)).Msg("Skipping unparsable result row")
	metrics.RecordRowDropped("parse")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
