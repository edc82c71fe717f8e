// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/paddock/internal/logging"
	"github.com/tomtom215/paddock/internal/models"
	"github.com/tomtom215/paddock/internal/standings"
)

// SeasonList is the payload of GET /seasons.
type SeasonList struct {
	Seasons []int `json:"seasons"`
	Cached  []int `json:"cached"`
}

// Seasons lists the selectable seasons, newest first, and those already cached.
//
// @Summary List seasons
// @Tags Seasons
// @Produce json
// @Success 200 {object} models.APIResponse{data=SeasonList}
// @Router /seasons [get]
func (h *Handler) Seasons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	current := h.now().Year()

	seasons := make([]int, 0, current-models.FirstSeason+1)
	for year := current; year >= models.FirstSeason; year-- {
		seasons = append(seasons, year)
	}

	cached := h.seasons.Seasons()
	if cached == nil {
		cached = []int{}
	}
	respondSuccess(w, r, start, SeasonList{Seasons: seasons, Cached: cached})
}

// SeasonStandings returns the driver and constructor standings.
//
// @Summary Season standings
// @Tags Seasons
// @Produce json
// @Param season path int true "Season year"
// @Success 200 {object} models.APIResponse{data=models.SeasonStandings}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /seasons/{season}/standings [get]
func (h *Handler) SeasonStandings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table, ok := h.loadSeason(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, start, standings.Standings(table))
}

// SeasonRounds returns one entry per round with results.
//
// @Summary Season rounds
// @Tags Seasons
// @Produce json
// @Param season path int true "Season year"
// @Success 200 {object} models.APIResponse{data=[]models.RoundInfo}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /seasons/{season}/rounds [get]
func (h *Handler) SeasonRounds(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table, ok := h.loadSeason(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, start, table.RoundSummaries())
}

// SeasonCumulative returns every driver's running points total per round.
//
// @Summary Cumulative points matrix
// @Tags Seasons
// @Produce json
// @Param season path int true "Season year"
// @Success 200 {object} models.APIResponse{data=models.CumulativeMatrix}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /seasons/{season}/cumulative [get]
func (h *Handler) SeasonCumulative(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table, ok := h.loadSeason(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, start, standings.CumulativePoints(table))
}

// loadSeason validates the {season} path parameter and loads its table.
// It writes the 400 or 404 response itself and reports false in that case.
func (h *Handler) loadSeason(w http.ResponseWriter, r *http.Request) (*models.SeasonTable, bool) {
	raw := pathParam(r, "season")
	season, ok := parseIntStrict(raw)
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("season must be a year, got %q", sanitizeLogValue(raw)), nil)
		return nil, false
	}
	return h.loadValidSeason(w, r, season)
}

// loadValidSeason validates season and loads it, answering 404 for an empty table.
func (h *Handler) loadValidSeason(w http.ResponseWriter, r *http.Request, season int) (*models.SeasonTable, bool) {
	if apiErr := validateRequest(&SeasonRequest{Season: season}); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return nil, false
	}

	ctx := logging.ContextWithSeason(r.Context(), season)
	table := h.seasons.Get(ctx, season)
	if table.IsEmpty() {
		logging.Ctx(ctx).Info().Msg("No data for season")
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound,
			fmt.Sprintf("No data available for season %d", season), nil)
		return nil, false
	}
	return table, true
}
