// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package upstream

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotFound is returned for HTTP 404.
	ErrNotFound = errors.New("upstream resource not found")

	// ErrRateLimited is returned when HTTP 429 persists after all retries.
	ErrRateLimited = errors.New("upstream rate limit exceeded")

	// ErrMalformed is returned when a 2xx body is not valid JSON for the target type.
	ErrMalformed = errors.New("upstream response malformed")

	// ErrCircuitOpen is returned when the circuit breaker rejects a call.
	ErrCircuitOpen = errors.New("upstream circuit open")
)

// StatusError is returned for non-2xx responses other than 404 and 429.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// maxErrorBodySize bounds how much of an error body is kept for diagnostics.
const maxErrorBodySize = 64 * 1024

// readBodyForError reads at most maxErrorBodySize bytes of r.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
