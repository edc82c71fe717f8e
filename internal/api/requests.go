// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package api

// SeasonRequest identifies one season.
type SeasonRequest struct {
	Season int `validate:"season"`
}

// ProgressionRequest is the points-progression query.
// UpToRound of 0 means every round.
type ProgressionRequest struct {
	Season    int      `validate:"season"`
	Drivers   []string `validate:"required,min=1,max=20,dive,required,max=100"`
	UpToRound int      `validate:"gte=0,lte=30"`
}

// DriverSeasonRequest is the driver detail lookup.
type DriverSeasonRequest struct {
	Name   string `validate:"required,max=100"`
	Season int    `validate:"season"`
}
