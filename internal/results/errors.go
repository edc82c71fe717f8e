// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package results

import (
	"errors"
	"fmt"

	"github.com/tomtom215/paddock/internal/models"
	"github.com/tomtom215/paddock/internal/upstream"
)

var (
	// ErrFetchFailed marks a transport-level failure: timeout, non-2xx,
	// connection error, malformed JSON or an open circuit.
	ErrFetchFailed = errors.New("results fetch failed")

	// ErrParse marks a result row whose numeric fields could not be coerced.
	ErrParse = errors.New("result row parse failed")

	// ErrEmptySeason marks a season whose retries all ended without a row.
	// RetryPolicy.Fetch logs it; the empty table is still returned.
	ErrEmptySeason = errors.New("season has no results")

	// ErrCircuitOpen matches a RoundError whose request the results circuit
	// breaker rejected. SeasonFetcher stops retrying rounds when it sees it.
	ErrCircuitOpen = upstream.ErrCircuitOpen
)

// RoundError is a fetch failure for one session of one round.
//
// It matches both ErrFetchFailed and the underlying cause:
//
//	var re *results.RoundError
//	if errors.As(err, &re) { failed = append(failed, re.Round) }
//	errors.Is(err, results.ErrFetchFailed) // true
type RoundError struct {
	Season int
	Round  int
	Kind   models.RaceType
	Err    error
}

func (e *RoundError) Error() string {
	return fmt.Sprintf("season %d round %d (%s): %v", e.Season, e.Round, e.Kind, e.Err)
}

// Unwrap exposes ErrFetchFailed and the cause to errors.Is and errors.As.
func (e *RoundError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}

// ParseError describes a row dropped during coercion.
type ParseError struct {
	Round int
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("round %d: cannot parse %s %q", e.Round, e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}
