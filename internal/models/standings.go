// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package models

// DriverStats is one row of the drivers' standings.
type DriverStats struct {
	Driver      string  `json:"driver"`
	TotalPoints float64 `json:"total_points"`
	Wins        int     `json:"wins"`
	Podiums     int     `json:"podiums"`
	Races       int     `json:"races"`
}

// ConstructorStats is one row of the constructors' standings.
type ConstructorStats struct {
	Constructor string  `json:"constructor"`
	TotalPoints float64 `json:"total_points"`
	Wins        int     `json:"wins"`
	Races       int     `json:"races"`
}

// CumulativeMatrix holds running points totals per driver.
// Points[d][i] is driver d's total through Rounds[i], inclusive.
type CumulativeMatrix struct {
	Rounds  []int                `json:"rounds"`
	Drivers []string             `json:"drivers"`
	Points  map[string][]float64 `json:"points"`
}

// IsEmpty reports whether the matrix has no rounds.
func (m CumulativeMatrix) IsEmpty() bool {
	return len(m.Rounds) == 0
}

// Final returns a driver's last cumulative value and whether the driver is present.
func (m CumulativeMatrix) Final(driver string) (float64, bool) {
	series, ok := m.Points[driver]
	if !ok || len(series) == 0 {
		return 0, false
	}
	return series[len(series)-1], true
}

// DriverProgression is one driver's series in a points-progression query.
type DriverProgression struct {
	Driver     string    `json:"driver"`
	Rounds     []int     `json:"rounds"`
	Cumulative []float64 `json:"cumulative"`
	PerRace    []float64 `json:"per_race"`
}

// SeasonStandings is the payload of the season standings endpoint.
type SeasonStandings struct {
	Season       int                `json:"season"`
	Rounds       int                `json:"rounds"`
	FailedRounds []int              `json:"failed_rounds"`
	Drivers      []DriverStats      `json:"drivers"`
	Constructors []ConstructorStats `json:"constructors"`
}

// DriverBio is the optional encyclopedia enrichment for a driver.
type DriverBio struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	PageURL     string `json:"page_url,omitempty"`
}

// DriverSeasonDetail is the payload of the driver detail endpoint.
type DriverSeasonDetail struct {
	Name           string      `json:"name"`
	Season         int         `json:"season"`
	Constructor    string      `json:"constructor"`
	TotalPoints    float64     `json:"total_points"`
	Wins           int         `json:"wins"`
	Podiums        int         `json:"podiums"`
	RacesCompleted int         `json:"races_completed"`
	RaceResults    []ResultRow `json:"race_results"`
	Cumulative     []float64   `json:"cumulative"`
	ImageURL       string      `json:"image_url,omitempty"`
	Bio            *DriverBio  `json:"bio,omitempty"`
}
