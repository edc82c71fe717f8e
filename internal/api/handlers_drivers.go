// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/paddock/internal/logging"
	"github.com/tomtom215/paddock/internal/standings"
)

// PointsProgression returns cumulative and per-round points for the
// requested drivers.
//
// @Summary Points progression
// @Description Drivers may be repeated (drivers=a&drivers=b) or comma separated (drivers=a,b).
// @Tags Drivers
// @Produce json
// @Param season query int true "Season year"
// @Param drivers query []string true "Driver full names" collectionFormat(multi)
// @Param up_to_round query int false "Last round to include (0 = all)"
// @Success 200 {object} models.APIResponse{data=[]models.DriverProgression}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /points-progression [get]
func (h *Handler) PointsProgression(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rawSeason := r.URL.Query().Get("season")
	season, ok := parseIntStrict(rawSeason)
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation,
			"season is required and must be a year", nil)
		return
	}

	upToRound, ok := getIntParam(r, "up_to_round", 0)
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation,
			"up_to_round must be a round number", nil)
		return
	}

	req := ProgressionRequest{
		Season:    season,
		Drivers:   queryList(r, "drivers"),
		UpToRound: upToRound,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	table, ok := h.loadValidSeason(w, r, req.Season)
	if !ok {
		return
	}

	series := standings.Progression(table, req.Drivers, req.UpToRound)
	if series == nil {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound,
			fmt.Sprintf("No results for %s in season %d", strings.Join(req.Drivers, ", "), req.Season), nil)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Int("season", req.Season).
		Int("drivers", len(req.Drivers)).
		Int("up_to_round", req.UpToRound).
		Msg("Points progression served")
	respondSuccess(w, r, start, series)
}

// DriverSeason returns one driver's season summary and, when enabled, a
// Wikipedia biography.
//
// @Summary Driver season detail
// @Tags Drivers
// @Produce json
// @Param name path string true "Driver full name"
// @Param season path int true "Season year"
// @Success 200 {object} models.APIResponse{data=models.DriverSeasonDetail}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /drivers/{name}/seasons/{season} [get]
func (h *Handler) DriverSeason(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rawSeason := pathParam(r, "season")
	season, ok := parseIntStrict(rawSeason)
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("season must be a year, got %q", sanitizeLogValue(rawSeason)), nil)
		return
	}

	req := DriverSeasonRequest{Name: strings.TrimSpace(pathParam(r, "name")), Season: season}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	table, ok := h.loadValidSeason(w, r, req.Season)
	if !ok {
		return
	}

	detail, found := standings.DriverDetail(table, req.Name)
	if !found {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound,
			fmt.Sprintf("%s did not take part in season %d", sanitizeLogValue(req.Name), req.Season), nil)
		return
	}

	if h.bios != nil {
		detail.Bio = h.bios.Lookup(r.Context(), req.Name)
		if detail.Bio != nil {
			detail.ImageURL = detail.Bio.ImageURL
		}
	}

	respondSuccess(w, r, start, detail)
}
