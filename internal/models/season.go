// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package models

import (
	"sort"
	"time"
)

// FirstSeason is the first Formula 1 world championship season.
const FirstSeason = 1950

// RaceType distinguishes the points-paying sessions of a round.
type RaceType string

const (
	RaceTypeRace   RaceType = "Race"
	RaceTypeSprint RaceType = "Sprint"
)

// RoundInfo describes one scheduled round as listed by the results API.
type RoundInfo struct {
	Round    int    `json:"round"`
	RaceName string `json:"race_name"`
	Date     string `json:"date"`
	Circuit  string `json:"circuit"`
}

// ResultRow is one driver's classification in one session of one round.
// (Round, Driver, RaceType) is unique within a SeasonTable.
type ResultRow struct {
	RaceName    string   `json:"race_name"`
	Round       int      `json:"round" validate:"min=1"`
	Date        string   `json:"date"`
	Circuit     string   `json:"circuit"`
	Driver      string   `json:"driver" validate:"required"`
	Constructor string   `json:"constructor" validate:"required"`
	Points      float64  `json:"points" validate:"gte=0"`
	Position    int      `json:"position" validate:"required,min=1"`
	RaceType    RaceType `json:"race_type" validate:"oneof=Race Sprint"`
}

// SeasonTable is the ordered set of results for one season.
//
// A SeasonTable is immutable once built: rows and failed rounds are only
// reachable through copying accessors, so callers may freely mutate what they
// get back.
type SeasonTable struct {
	Season    int
	Rounds    int
	FetchedAt time.Time
	rows      []ResultRow
	failed    []int
}

// NewSeasonTable builds a table from rows, ordering them by round, then
// position, then race type (race before sprint). The input slice is copied.
func NewSeasonTable(season, rounds int, rows []ResultRow, failedRounds []int) *SeasonTable {
	owned := make([]ResultRow, len(rows))
	copy(owned, rows)
	SortRows(owned)

	failed := make([]int, len(failedRounds))
	copy(failed, failedRounds)
	sort.Ints(failed)

	return &SeasonTable{
		Season:    season,
		Rounds:    rounds,
		FetchedAt: time.Now().UTC(),
		rows:      owned,
		failed:    failed,
	}
}

// EmptySeasonTable returns a table with no rows.
func EmptySeasonTable(season int) *SeasonTable {
	return NewSeasonTable(season, 0, nil, nil)
}

// SortRows orders rows in place by (round, position, race type).
func SortRows(rows []ResultRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.RaceType == RaceTypeRace && b.RaceType != RaceTypeRace
	})
}

// Rows returns a copy of the table's rows.
func (t *SeasonTable) Rows() []ResultRow {
	if t == nil {
		return nil
	}
	out := make([]ResultRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// FailedRounds returns a copy of the rounds that could not be fetched,
// in ascending order.
func (t *SeasonTable) FailedRounds() []int {
	if t == nil {
		return nil
	}
	out := make([]int, len(t.failed))
	copy(out, t.failed)
	return out
}

// Len returns the number of rows.
func (t *SeasonTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// IsEmpty reports whether the table holds no rows.
func (t *SeasonTable) IsEmpty() bool {
	return t.Len() == 0
}

// Each calls fn for every row in order without copying the slice.
// fn receives a value, so it cannot modify the table.
func (t *SeasonTable) Each(fn func(ResultRow)) {
	if t == nil {
		return
	}
	for _, row := range t.rows {
		fn(row)
	}
}

// RoundNumbers returns the distinct rounds present, ascending.
func (t *SeasonTable) RoundNumbers() []int {
	seen := make(map[int]struct{})
	var rounds []int
	t.Each(func(r ResultRow) {
		if _, ok := seen[r.Round]; !ok {
			seen[r.Round] = struct{}{}
			rounds = append(rounds, r.Round)
		}
	})
	sort.Ints(rounds)
	return rounds
}

// RoundSummaries returns one RoundInfo per distinct round, ascending.
func (t *SeasonTable) RoundSummaries() []RoundInfo {
	seen := make(map[int]struct{})
	var out []RoundInfo
	t.Each(func(r ResultRow) {
		if _, ok := seen[r.Round]; ok {
			return
		}
		seen[r.Round] = struct{}{}
		out = append(out, RoundInfo{Round: r.Round, RaceName: r.RaceName, Date: r.Date, Circuit: r.Circuit})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Round < out[j].Round })
	return out
}

// Drivers returns distinct driver names in first-appearance order.
func (t *SeasonTable) Drivers() []string {
	seen := make(map[string]struct{})
	var drivers []string
	t.Each(func(r ResultRow) {
		if _, ok := seen[r.Driver]; !ok {
			seen[r.Driver] = struct{}{}
			drivers = append(drivers, r.Driver)
		}
	})
	return drivers
}

// TotalPoints sums points over all rows.
func (t *SeasonTable) TotalPoints() float64 {
	var total float64
	t.Each(func(r ResultRow) { total += r.Points })
	return total
}
