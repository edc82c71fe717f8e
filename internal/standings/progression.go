// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package standings

import (
	"sort"

	"github.com/tomtom215/paddock/internal/models"
)

// Progression returns the points progression of the requested drivers,
// in request order, over the rounds at or before upToRound (0 means all).
//
// The round axis is shared: it is the set of rounds in which any requested
// driver scored a row. A requested driver with no rows gets a zero series.
// It returns nil when no requested driver has any row in range.
func Progression(table *models.SeasonTable, drivers []string, upToRound int) []models.DriverProgression {
	wanted := make(map[string]struct{}, len(drivers))
	for _, d := range drivers {
		wanted[d] = struct{}{}
	}

	perRound := perRoundPoints(table, wanted, upToRound)
	if len(perRound) == 0 {
		return nil
	}

	roundSet := make(map[int]struct{})
	for _, byRound := range perRound {
		for round := range byRound {
			roundSet[round] = struct{}{}
		}
	}
	rounds := make([]int, 0, len(roundSet))
	for round := range roundSet {
		rounds = append(rounds, round)
	}
	sort.Ints(rounds)

	seen := make(map[string]struct{}, len(drivers))
	out := make([]models.DriverProgression, 0, len(drivers))
	for _, driver := range drivers {
		if _, dup := seen[driver]; dup {
			continue
		}
		seen[driver] = struct{}{}

		points := perRound[driver]
		perRace := make([]float64, len(rounds))
		for i, round := range rounds {
			perRace[i] = points[round]
		}

		out = append(out, models.DriverProgression{
			Driver:     driver,
			Rounds:     append([]int(nil), rounds...),
			Cumulative: runningTotals(rounds, points),
			PerRace:    perRace,
		})
	}
	return out
}

// DriverDetail summarizes one driver's season. The constructor is the one
// the driver raced for in their first row. It reports false when the driver
// has no rows.
func DriverDetail(table *models.SeasonTable, driver string) (*models.DriverSeasonDetail, bool) {
	var rows []models.ResultRow
	table.Each(func(r models.ResultRow) {
		if r.Driver == driver {
			rows = append(rows, r)
		}
	})
	if len(rows) == 0 {
		return nil, false
	}

	detail := &models.DriverSeasonDetail{
		Name:           driver,
		Season:         table.Season,
		Constructor:    rows[0].Constructor,
		RacesCompleted: len(rows),
		RaceResults:    rows,
		Cumulative:     make([]float64, len(rows)),
	}
	for i, r := range rows {
		detail.TotalPoints += r.Points
		detail.Cumulative[i] = detail.TotalPoints
		if r.Position == 1 {
			detail.Wins++
		}
		if r.Position <= 3 {
			detail.Podiums++
		}
	}
	return detail, true
}
