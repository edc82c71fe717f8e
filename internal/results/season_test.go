// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package results

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/paddock/internal/config"
	"github.com/tomtom215/paddock/internal/models"
)

// fakeSource serves a synthetic season of `rounds` rounds with `drivers`
// finishers each. failRound decides whether a given call fails.
type fakeSource struct {
	rounds    int
	drivers   int
	listErr   error
	failRound func(round, call int) bool
	roundErr  func(season, round int) error
	sprint    func(round int) ([]models.ResultRow, error)

	mu          sync.Mutex
	roundCalls  map[int]int
	sprintCalls atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newFakeSource(rounds, drivers int) *fakeSource {
	return &fakeSource{rounds: rounds, drivers: drivers, roundCalls: make(map[int]int)}
}

func (f *fakeSource) ListRounds(_ context.Context, _ int) ([]models.RoundInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	rounds := make([]models.RoundInfo, f.rounds)
	for i := range rounds {
		rounds[i] = models.RoundInfo{Round: i + 1, RaceName: fmt.Sprintf("Grand Prix %d", i+1)}
	}
	return rounds, nil
}

func (f *fakeSource) FetchRound(_ context.Context, season int, info models.RoundInfo) ([]models.ResultRow, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	f.mu.Lock()
	f.roundCalls[info.Round]++
	call := f.roundCalls[info.Round]
	f.mu.Unlock()

	if f.failRound != nil && f.failRound(info.Round, call) {
		if f.roundErr != nil {
			return nil, f.roundErr(season, info.Round)
		}
		return nil, &RoundError{Season: season, Round: info.Round, Kind: models.RaceTypeRace, Err: errors.New("timeout")}
	}

	// Reverse order so the fetcher has to sort.
	rows := make([]models.ResultRow, 0, f.drivers)
	for pos := f.drivers; pos >= 1; pos-- {
		rows = append(rows, models.ResultRow{
			RaceName:    info.RaceName,
			Round:       info.Round,
			Driver:      fmt.Sprintf("Driver %02d", pos),
			Constructor: fmt.Sprintf("Team %d", (pos+1)/2),
			Points:      float64(f.drivers - pos),
			Position:    pos,
			RaceType:    models.RaceTypeRace,
		})
	}
	return rows, nil
}

func (f *fakeSource) FetchSprint(_ context.Context, _ int, info models.RoundInfo) ([]models.ResultRow, error) {
	f.sprintCalls.Add(1)
	if f.sprint == nil {
		return nil, nil
	}
	return f.sprint(info.Round)
}

func (f *fakeSource) calls(round int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.roundCalls[round]
}

func testResultsConfig(workers int) config.ResultsConfig {
	return config.ResultsConfig{
		Workers:                    workers,
		RetryFailedRoundsThreshold: 3,
		SprintFromSeason:           2021,
	}
}

func TestFetchSeason_AllRounds(t *testing.T) {
	source := newFakeSource(10, 20)
	fetcher := NewSeasonFetcher(source, testResultsConfig(4))

	table, err := fetcher.FetchSeason(context.Background(), 2019)
	if err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}
	if table.Len() != 200 {
		t.Errorf("Len() = %d, want 200", table.Len())
	}
	if table.Rounds != 10 {
		t.Errorf("Rounds = %d, want 10", table.Rounds)
	}
	if len(table.FailedRounds()) != 0 {
		t.Errorf("FailedRounds = %v, want none", table.FailedRounds())
	}
	if source.sprintCalls.Load() != 0 {
		t.Errorf("sprint fetched for a pre-sprint season")
	}

	rows := table.Rows()
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.Round > cur.Round || (prev.Round == cur.Round && prev.Position > cur.Position) {
			t.Fatalf("rows not sorted at %d: %+v then %+v", i, prev, cur)
		}
	}
}

func TestFetchSeason_WorkerBound(t *testing.T) {
	source := newFakeSource(24, 5)
	fetcher := NewSeasonFetcher(source, testResultsConfig(3))

	if _, err := fetcher.FetchSeason(context.Background(), 2019); err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}
	if got := source.maxInFlight.Load(); got > 3 {
		t.Errorf("max concurrent round fetches = %d, want <= 3", got)
	}
}

func TestNewSeasonFetcher_ClampsWorkers(t *testing.T) {
	if got := NewSeasonFetcher(nil, testResultsConfig(0)).workers; got != 1 {
		t.Errorf("workers(0) = %d, want 1", got)
	}
	if got := NewSeasonFetcher(nil, testResultsConfig(64)).workers; got != config.MaxResultsWorkers {
		t.Errorf("workers(64) = %d, want %d", got, config.MaxResultsWorkers)
	}
}

func TestFetchSeason_PartialFailure(t *testing.T) {
	// 20 rounds, round 7 never answers.
	source := newFakeSource(20, 20)
	source.failRound = func(round, _ int) bool { return round == 7 }
	fetcher := NewSeasonFetcher(source, testResultsConfig(4))

	table, err := fetcher.FetchSeason(context.Background(), 2019)
	if err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}
	if !reflect.DeepEqual(table.FailedRounds(), []int{7}) {
		t.Errorf("FailedRounds = %v, want [7]", table.FailedRounds())
	}
	if got := len(table.RoundNumbers()); got != 19 {
		t.Errorf("rounds with results = %d, want 19", got)
	}
	if table.Len() != 19*20 {
		t.Errorf("Len() = %d, want %d", table.Len(), 19*20)
	}
	// One parallel attempt plus one sequential retry.
	if got := source.calls(7); got != 2 {
		t.Errorf("round 7 calls = %d, want 2", got)
	}
}

func TestFetchSeason_RecoversOnRetry(t *testing.T) {
	source := newFakeSource(6, 4)
	source.failRound = func(round, call int) bool { return (round == 2 || round == 5) && call == 1 }
	fetcher := NewSeasonFetcher(source, testResultsConfig(4))

	table, err := fetcher.FetchSeason(context.Background(), 2019)
	if err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}
	if len(table.FailedRounds()) != 0 {
		t.Errorf("FailedRounds = %v, want none", table.FailedRounds())
	}
	if table.Len() != 24 {
		t.Errorf("Len() = %d, want 24", table.Len())
	}
}

func TestFetchSeason_TooManyFailuresSkipsRetry(t *testing.T) {
	source := newFakeSource(10, 4)
	source.failRound = func(round, _ int) bool { return round <= 4 }
	fetcher := NewSeasonFetcher(source, testResultsConfig(4))

	table, err := fetcher.FetchSeason(context.Background(), 2019)
	if err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}
	if !reflect.DeepEqual(table.FailedRounds(), []int{1, 2, 3, 4}) {
		t.Errorf("FailedRounds = %v, want [1 2 3 4]", table.FailedRounds())
	}
	for round := 1; round <= 4; round++ {
		if got := source.calls(round); got != 1 {
			t.Errorf("round %d calls = %d, want 1 (no retry above threshold)", round, got)
		}
	}
}

func TestFetchSeason_EmptyRoundList(t *testing.T) {
	source := newFakeSource(0, 20)
	fetcher := NewSeasonFetcher(source, testResultsConfig(4))

	table, err := fetcher.FetchSeason(context.Background(), 2031)
	if err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}
	if !table.IsEmpty() || table.Season != 2031 {
		t.Errorf("table = %+v, want empty 2031 table", table)
	}
	if source.calls(1) != 0 {
		t.Error("round fetched for a season with no rounds")
	}
}

func TestFetchSeason_ListFailure(t *testing.T) {
	source := newFakeSource(5, 5)
	source.listErr = fmt.Errorf("list rounds: %w", ErrFetchFailed)
	fetcher := NewSeasonFetcher(source, testResultsConfig(4))

	table, err := fetcher.FetchSeason(context.Background(), 2023)
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("FetchSeason() error = %v, want ErrFetchFailed", err)
	}
	if table != nil {
		t.Errorf("table = %+v, want nil", table)
	}
}

func TestFetchSeason_Sprints(t *testing.T) {
	source := newFakeSource(3, 3)
	source.sprint = func(round int) ([]models.ResultRow, error) {
		if round == 2 {
			return []models.ResultRow{{
				Round: 2, Driver: "Driver 01", Constructor: "Team 1", Points: 8, Position: 1, RaceType: models.RaceTypeSprint,
			}}, nil
		}
		return nil, nil
	}
	fetcher := NewSeasonFetcher(source, testResultsConfig(2))

	table, err := fetcher.FetchSeason(context.Background(), 2023)
	if err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}
	if got := source.sprintCalls.Load(); got != 3 {
		t.Errorf("sprint calls = %d, want 3", got)
	}
	// 9 race rows + 1 sprint row.
	if table.Len() != 10 {
		t.Errorf("Len() = %d, want 10", table.Len())
	}
	if len(table.FailedRounds()) != 0 {
		t.Errorf("FailedRounds = %v, want none", table.FailedRounds())
	}

	// Race before sprint at equal position.
	var round2 []models.ResultRow
	table.Each(func(r models.ResultRow) {
		if r.Round == 2 && r.Position == 1 {
			round2 = append(round2, r)
		}
	})
	if len(round2) != 2 || round2[0].RaceType != models.RaceTypeRace || round2[1].RaceType != models.RaceTypeSprint {
		t.Errorf("round 2 P1 rows = %+v, want race then sprint", round2)
	}
}

func TestFetchSeason_SprintFailureFailsRound(t *testing.T) {
	source := newFakeSource(3, 3)
	source.sprint = func(round int) ([]models.ResultRow, error) {
		if round == 3 {
			return nil, &RoundError{Season: 2023, Round: 3, Kind: models.RaceTypeSprint, Err: errors.New("status 503")}
		}
		return nil, nil
	}
	fetcher := NewSeasonFetcher(source, testResultsConfig(2))

	table, err := fetcher.FetchSeason(context.Background(), 2023)
	if err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}
	if !reflect.DeepEqual(table.FailedRounds(), []int{3}) {
		t.Errorf("FailedRounds = %v, want [3]", table.FailedRounds())
	}
	// Round 3 keeps none of its rows: its race results are not mixed into
	// a round whose sprint points are missing.
	if got := table.RoundNumbers(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("rounds with results = %v, want [1 2]", got)
	}
	// Three parallel sprint fetches plus the sequential retry of round 3.
	if got := source.sprintCalls.Load(); got != 4 {
		t.Errorf("sprint calls = %d, want 4", got)
	}
	if got := source.calls(3); got != 2 {
		t.Errorf("round 3 race calls = %d, want 2", got)
	}
}

func TestFetchSeason_SprintRecoversOnRetry(t *testing.T) {
	source := newFakeSource(3, 3)
	var round3 atomic.Int32
	source.sprint = func(round int) ([]models.ResultRow, error) {
		if round == 3 && round3.Add(1) == 1 {
			return nil, &RoundError{Season: 2023, Round: 3, Kind: models.RaceTypeSprint, Err: errors.New("timeout")}
		}
		if round == 3 {
			return []models.ResultRow{{
				Round: 3, Driver: "Driver 02", Constructor: "Team 1", Points: 8, Position: 1, RaceType: models.RaceTypeSprint,
			}}, nil
		}
		return nil, nil
	}
	fetcher := NewSeasonFetcher(source, testResultsConfig(2))

	table, err := fetcher.FetchSeason(context.Background(), 2023)
	if err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}
	if len(table.FailedRounds()) != 0 {
		t.Errorf("FailedRounds = %v, want none", table.FailedRounds())
	}
	if table.Len() != 10 {
		t.Errorf("Len() = %d, want 10", table.Len())
	}
}

func TestFetchSeason_CircuitOpenStopsRetries(t *testing.T) {
	source := newFakeSource(6, 3)
	source.failRound = func(round, _ int) bool { return round >= 4 }
	source.roundErr = func(season, round int) error {
		return &RoundError{Season: season, Round: round, Kind: models.RaceTypeRace, Err: fmt.Errorf("jolpica: %w", ErrCircuitOpen)}
	}
	fetcher := NewSeasonFetcher(source, testResultsConfig(2))

	table, err := fetcher.FetchSeason(context.Background(), 2019)
	if err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}
	if !reflect.DeepEqual(table.FailedRounds(), []int{4, 5, 6}) {
		t.Errorf("FailedRounds = %v, want [4 5 6]", table.FailedRounds())
	}
	// Round 4 is retried once and hits the open circuit; 5 and 6 are not retried.
	for round, want := range map[int]int{4: 2, 5: 1, 6: 1} {
		if got := source.calls(round); got != want {
			t.Errorf("round %d calls = %d, want %d", round, got, want)
		}
	}
}

func TestCleanRows(t *testing.T) {
	rows := []models.ResultRow{
		{Round: 1, Driver: "A", Constructor: "X", Points: -3, Position: 1, RaceType: models.RaceTypeRace},
		{Round: 1, Driver: "B", Constructor: "Y", Points: math.NaN(), Position: 2, RaceType: models.RaceTypeRace},
		{Round: 1, Driver: "", Constructor: "Y", Points: 1, Position: 3, RaceType: models.RaceTypeRace},
		{Round: 1, Driver: "C", Constructor: "", Points: 1, Position: 4, RaceType: models.RaceTypeRace},
		{Round: 1, Driver: "D", Constructor: "Z", Points: 1, Position: 0, RaceType: models.RaceTypeRace},
		{Round: 1, Driver: "A", Constructor: "X", Points: 10, Position: 1, RaceType: models.RaceTypeRace},
		{Round: 1, Driver: "A", Constructor: "X", Points: 3, Position: 2, RaceType: models.RaceTypeSprint},
	}

	got := cleanRows(2023, rows)
	if len(got) != 3 {
		t.Fatalf("len(cleanRows) = %d, want 3: %+v", len(got), got)
	}
	if got[0].Driver != "A" || got[0].Points != 0 {
		t.Errorf("negative points not clamped: %+v", got[0])
	}
	if got[1].Driver != "B" || got[1].Points != 0 {
		t.Errorf("NaN points not clamped: %+v", got[1])
	}
	if got[2].RaceType != models.RaceTypeSprint {
		t.Errorf("sprint row for same driver should survive dedup: %+v", got[2])
	}
}

func TestFetchSeason_AgainstAPI(t *testing.T) {
	server := newJolpicaServer(t, map[string]func(http.ResponseWriter){
		"/2023.json":           respond(seasonListing),
		"/2023/1/results.json": respond(roundOneResults),
		"/2023/1/sprint.json":  respond(sprintResults),
		"/2023/2/results.json": respondStatus(http.StatusBadGateway),
	})
	client := newTestResultsClient(t, server.URL)
	fetcher := NewSeasonFetcher(client, testResultsConfig(4))

	table, err := fetcher.FetchSeason(context.Background(), 2023)
	if err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}
	if !reflect.DeepEqual(table.FailedRounds(), []int{2}) {
		t.Errorf("FailedRounds = %v, want [2]", table.FailedRounds())
	}
	// 3 parsable race rows + 1 sprint row.
	if table.Len() != 4 {
		t.Errorf("Len() = %d, want 4", table.Len())
	}
	if table.TotalPoints() != 25+18+12.5+8 {
		t.Errorf("TotalPoints() = %v, want %v", table.TotalPoints(), 25+18+12.5+8)
	}
}
