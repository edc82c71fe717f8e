// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package results

// Wire types for the Jolpica (Ergast-compatible) JSON API. Every numeric
// field is delivered as a string.

type mrResponse struct {
	MRData mrData `json:"MRData"`
}

type mrData struct {
	Total     string    `json:"total"`
	RaceTable raceTable `json:"RaceTable"`
}

type raceTable struct {
	Season string `json:"season"`
	Races  []race `json:"Races"`
}

type race struct {
	Season        string       `json:"season"`
	Round         string       `json:"round"`
	RaceName      string       `json:"raceName"`
	Date          string       `json:"date"`
	Circuit       circuit      `json:"Circuit"`
	Results       []raceResult `json:"Results"`
	SprintResults []raceResult `json:"SprintResults"`
}

type circuit struct {
	CircuitID   string `json:"circuitId"`
	CircuitName string `json:"circuitName"`
}

type raceResult struct {
	Number      string      `json:"number"`
	Position    string      `json:"position"`
	Points      string      `json:"points"`
	Status      string      `json:"status"`
	Driver      driver      `json:"Driver"`
	Constructor constructor `json:"Constructor"`
}

type driver struct {
	DriverID   string `json:"driverId"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

type constructor struct {
	ConstructorID string `json:"constructorId"`
	Name          string `json:"name"`
}
