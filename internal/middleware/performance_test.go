// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/paddock/internal/logging"
)

func TestPerformanceMonitor_Window(t *testing.T) {
	pm := NewPerformanceMonitor(3, time.Second)

	for i := int64(1); i <= 5; i++ {
		pm.RecordRequest(&RequestMetrics{Endpoint: "/api/v1/seasons", Method: http.MethodGet, DurationMS: i})
	}

	recent := pm.GetRecentMetrics(10)
	if len(recent) != 3 {
		t.Fatalf("Expected 3 retained metrics, got %d", len(recent))
	}
	if recent[0].DurationMS != 3 || recent[2].DurationMS != 5 {
		t.Errorf("Expected samples 3..5 oldest first, got %+v", recent)
	}
	if got := pm.GetRecentMetrics(0); len(got) != 0 {
		t.Errorf("GetRecentMetrics(0) returned %d samples", len(got))
	}
}

func TestPerformanceMonitor_Stats(t *testing.T) {
	pm := NewPerformanceMonitor(100, time.Second)

	for i := int64(1); i <= 10; i++ {
		pm.RecordRequest(&RequestMetrics{
			Endpoint:   "/api/v1/seasons/{season}/standings",
			Method:     http.MethodGet,
			DurationMS: i * 10,
			StatusCode: http.StatusOK,
		})
	}
	pm.RecordRequest(&RequestMetrics{Endpoint: "/api/v1/seasons", Method: http.MethodGet, DurationMS: 1, StatusCode: 200})
	pm.RecordRequest(&RequestMetrics{Endpoint: "/api/v1/seasons", Method: http.MethodGet, DurationMS: 2, StatusCode: 503})

	stats := pm.GetStats()
	if len(stats) != 2 {
		t.Fatalf("Expected 2 endpoints, got %d", len(stats))
	}

	busiest := stats[0]
	if busiest.Endpoint != "GET /api/v1/seasons/{season}/standings" {
		t.Errorf("Expected standings endpoint first, got %q", busiest.Endpoint)
	}
	if busiest.RequestCount != 10 || busiest.MinDuration != 10 || busiest.MaxDuration != 100 {
		t.Errorf("Unexpected stats: %+v", busiest)
	}
	if busiest.AvgDuration != 55 {
		t.Errorf("AvgDuration = %v, want 55", busiest.AvgDuration)
	}
	if busiest.P50Duration != 50 || busiest.P95Duration != 90 {
		t.Errorf("Percentiles p50=%d p95=%d", busiest.P50Duration, busiest.P95Duration)
	}
	if stats[1].ErrorCount != 1 {
		t.Errorf("Expected 1 server error on /api/v1/seasons, got %d", stats[1].ErrorCount)
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(logging.NewTestLogger(&bytes.Buffer{})) })

	pm := NewPerformanceMonitor(10, time.Millisecond)
	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/api/v1/seasons/{season}/cumulative", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/seasons/2023/cumulative", nil))

	recent := pm.GetRecentMetrics(1)
	if len(recent) != 1 {
		t.Fatalf("Expected 1 metric, got %d", len(recent))
	}
	if recent[0].Endpoint != "/api/v1/seasons/{season}/cumulative" {
		t.Errorf("Endpoint = %q", recent[0].Endpoint)
	}
	if recent[0].StatusCode != http.StatusTeapot {
		t.Errorf("StatusCode = %d", recent[0].StatusCode)
	}
	if !strings.Contains(buf.String(), "Slow request detected") {
		t.Errorf("Expected slow request warning, got %q", buf.String())
	}
}

func TestPerformanceMonitor_Concurrent(t *testing.T) {
	pm := NewPerformanceMonitor(50, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				pm.RecordRequest(&RequestMetrics{Endpoint: "/api/v1/seasons", Method: http.MethodGet, DurationMS: int64(j)})
				_ = pm.GetStats()
			}
		}()
	}
	wg.Wait()

	if got := len(pm.GetRecentMetrics(100)); got != 50 {
		t.Errorf("Expected window capped at 50, got %d", got)
	}
}

func TestPercentile(t *testing.T) {
	if got := percentile(nil, 0.5); got != 0 {
		t.Errorf("percentile(nil) = %d", got)
	}
	if got := percentile([]int64{7}, 0.99); got != 7 {
		t.Errorf("percentile single = %d", got)
	}
}
