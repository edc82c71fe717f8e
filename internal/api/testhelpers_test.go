// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/paddock/internal/models"
)

// fakeStore serves fixed tables and records which seasons were requested.
type fakeStore struct {
	mu        sync.Mutex
	tables    map[int]*models.SeasonTable
	requested []int
}

func newFakeStore(tables ...*models.SeasonTable) *fakeStore {
	s := &fakeStore{tables: make(map[int]*models.SeasonTable)}
	for _, t := range tables {
		s.tables[t.Season] = t
	}
	return s
}

func (s *fakeStore) Get(_ context.Context, season int) *models.SeasonTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requested = append(s.requested, season)
	if t, ok := s.tables[season]; ok {
		return t
	}
	return models.EmptySeasonTable(season)
}

func (s *fakeStore) Seasons() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, 0, len(s.tables))
	for season := range s.tables {
		out = append(out, season)
	}
	sort.Ints(out)
	return out
}

func (s *fakeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables)
}

func (s *fakeStore) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requested)
}

type fakeBios struct {
	mu    sync.Mutex
	names []string
}

func (b *fakeBios) Lookup(_ context.Context, name string) *models.DriverBio {
	b.mu.Lock()
	b.names = append(b.names, name)
	b.mu.Unlock()
	return &models.DriverBio{
		Title:       name,
		Description: name + " is a racing driver.",
		ImageURL:    "https://upload.wikimedia.org/" + name + ".jpg",
	}
}

func result(round int, driver, constructor string, points float64, position int, kind models.RaceType) models.ResultRow {
	return models.ResultRow{
		RaceName:    "Grand Prix " + string(rune('A'+round-1)),
		Round:       round,
		Date:        "2023-03-0" + string(rune('0'+round)),
		Circuit:     "Circuit " + string(rune('A'+round-1)),
		Driver:      driver,
		Constructor: constructor,
		Points:      points,
		Position:    position,
		RaceType:    kind,
	}
}

// season2023 is a three-round season with a sprint in round 2 and round 4 failed.
func season2023() *models.SeasonTable {
	rows := []models.ResultRow{
		result(1, "Max Verstappen", "Red Bull", 25, 1, models.RaceTypeRace),
		result(1, "Sergio Perez", "Red Bull", 18, 2, models.RaceTypeRace),
		result(1, "Fernando Alonso", "Aston Martin", 15, 3, models.RaceTypeRace),
		result(2, "Sergio Perez", "Red Bull", 25, 1, models.RaceTypeRace),
		result(2, "Max Verstappen", "Red Bull", 18, 2, models.RaceTypeRace),
		result(2, "Fernando Alonso", "Aston Martin", 15, 3, models.RaceTypeRace),
		result(2, "Max Verstappen", "Red Bull", 8, 1, models.RaceTypeSprint),
		result(3, "Max Verstappen", "Red Bull", 25, 1, models.RaceTypeRace),
		result(3, "Fernando Alonso", "Aston Martin", 18, 2, models.RaceTypeRace),
	}
	return models.NewSeasonTable(2023, 4, rows, []int{4})
}

func newTestRouter(t *testing.T, store SeasonStore, opts ...HandlerOption) (*Handler, http.Handler) {
	t.Helper()
	h := NewHandler(store, opts...)
	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"https://paddock.example"},
		CORSAllowedMethods: []string{http.MethodGet, http.MethodOptions},
		RateLimitDisabled:  true,
	})
	return h, NewRouter(h, mw).SetupChi()
}

// apiEnvelope mirrors models.APIResponse with a raw data field.
type apiEnvelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doGet(t *testing.T, handler http.Handler, target string) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var env apiEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("GET %s: invalid JSON %q: %v", target, rec.Body.String(), err)
	}
	return rec, env
}

func decodeData(t *testing.T, env apiEnvelope, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}
