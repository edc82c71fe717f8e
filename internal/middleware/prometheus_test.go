// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/paddock/internal/metrics"
)

func TestPrometheusMetrics(t *testing.T) {
	t.Run("passes status through", func(t *testing.T) {
		handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/seasons/1949/standings", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
	})

	t.Run("defaults to 200 when handler writes no header", func(t *testing.T) {
		handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/seasons", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
	})

	t.Run("labels by route pattern", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/api/v1/seasons/{season}/rounds", PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/seasons/{season}/rounds", "200")
		before := testutil.ToFloat64(counter)

		for _, season := range []string{"2021", "2022", "2023"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/seasons/"+season+"/rounds", nil))
		}

		if got := testutil.ToFloat64(counter) - before; got != 3 {
			t.Errorf("Expected 3 requests under one pattern label, got %v", got)
		}
	})
}

func TestEndpointLabel_WithoutRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	if got := endpointLabel(req); got != "/metrics" {
		t.Errorf("endpointLabel() = %q, want /metrics", got)
	}
}
