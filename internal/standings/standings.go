// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

// Package standings derives championship views from a SeasonTable.
//
// Every function is pure: the input table is never modified, and the same
// table always produces the same output. An empty or nil table yields empty
// results, never an error.
package standings

import (
	"sort"

	"github.com/tomtom215/paddock/internal/models"
)

// DriverStats returns one entry per driver, ordered by total points
// descending. Drivers on equal points keep their first-appearance order.
// Sprint rows count towards points, wins and podiums.
func DriverStats(table *models.SeasonTable) []models.DriverStats {
	index := make(map[string]int)
	var stats []models.DriverStats

	table.Each(func(r models.ResultRow) {
		i, ok := index[r.Driver]
		if !ok {
			i = len(stats)
			index[r.Driver] = i
			stats = append(stats, models.DriverStats{Driver: r.Driver})
		}
		s := &stats[i]
		s.TotalPoints += r.Points
		s.Races++
		if r.Position == 1 {
			s.Wins++
		}
		if r.Position <= 3 {
			s.Podiums++
		}
	})

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalPoints > stats[j].TotalPoints })
	return stats
}

// ConstructorStats returns one entry per constructor, ordered like DriverStats.
func ConstructorStats(table *models.SeasonTable) []models.ConstructorStats {
	index := make(map[string]int)
	var stats []models.ConstructorStats

	table.Each(func(r models.ResultRow) {
		i, ok := index[r.Constructor]
		if !ok {
			i = len(stats)
			index[r.Constructor] = i
			stats = append(stats, models.ConstructorStats{Constructor: r.Constructor})
		}
		s := &stats[i]
		s.TotalPoints += r.Points
		s.Races++
		if r.Position == 1 {
			s.Wins++
		}
	})

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalPoints > stats[j].TotalPoints })
	return stats
}

// CumulativePoints pivots the table into per-driver running totals across
// the rounds present. Race and sprint points in the same round are summed,
// and a driver absent from a round carries their previous total forward.
func CumulativePoints(table *models.SeasonTable) models.CumulativeMatrix {
	matrix := models.CumulativeMatrix{
		Rounds:  table.RoundNumbers(),
		Drivers: table.Drivers(),
		Points:  make(map[string][]float64),
	}
	if len(matrix.Rounds) == 0 {
		matrix.Rounds = []int{}
		matrix.Drivers = []string{}
		return matrix
	}

	perRound := perRoundPoints(table, nil, 0)
	for _, driver := range matrix.Drivers {
		matrix.Points[driver] = runningTotals(matrix.Rounds, perRound[driver])
	}
	return matrix
}

// Standings assembles the season standings payload.
func Standings(table *models.SeasonTable) models.SeasonStandings {
	out := models.SeasonStandings{
		Drivers:      DriverStats(table),
		Constructors: ConstructorStats(table),
		FailedRounds: []int{},
	}
	if table != nil {
		out.Season = table.Season
		out.Rounds = table.Rounds
		out.FailedRounds = append(out.FailedRounds, table.FailedRounds()...)
	}
	if out.Drivers == nil {
		out.Drivers = []models.DriverStats{}
	}
	if out.Constructors == nil {
		out.Constructors = []models.ConstructorStats{}
	}
	return out
}

// perRoundPoints sums points by driver and round. When drivers is non-nil
// only those drivers are kept; when upToRound > 0 later rounds are skipped.
func perRoundPoints(table *models.SeasonTable, drivers map[string]struct{}, upToRound int) map[string]map[int]float64 {
	out := make(map[string]map[int]float64)
	table.Each(func(r models.ResultRow) {
		if drivers != nil {
			if _, ok := drivers[r.Driver]; !ok {
				return
			}
		}
		if upToRound > 0 && r.Round > upToRound {
			return
		}
		byRound, ok := out[r.Driver]
		if !ok {
			byRound = make(map[int]float64)
			out[r.Driver] = byRound
		}
		byRound[r.Round] += r.Points
	})
	return out
}

// runningTotals returns the cumulative sum of points over rounds, treating
// missing rounds as zero.
func runningTotals(rounds []int, points map[int]float64) []float64 {
	series := make([]float64, len(rounds))
	var total float64
	for i, round := range rounds {
		total += points[round]
		series[i] = total
	}
	return series
}
