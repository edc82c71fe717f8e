// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type payload struct {
	Value string `json:"value"`
}

func newTestClient(name string) *Client {
	return NewClient(Config{
		Name:           name,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
	})
}

func TestGetJSON_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(Config{Name: "test-success", UserAgent: "paddock-test/1.0"})

	var out payload
	if err := client.GetJSON(context.Background(), server.URL, time.Second, &out); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if out.Value != "ok" {
		t.Errorf("Value = %q, want %q", out.Value, "ok")
	}
	if gotUA != "paddock-test/1.0" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "paddock-test/1.0")
	}
}

func TestGetJSON_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{}`, ErrNotFound},
		{"malformed body", http.StatusOK, `{"value":`, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient("test-" + tt.name)
			var out payload
			err := client.GetJSON(context.Background(), server.URL, time.Second, &out)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetJSON() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetJSON_ServerErrorReturnsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := newTestClient("test-status-error")
	var out payload
	err := client.GetJSON(context.Background(), server.URL, time.Second, &out)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("GetJSON() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusBadGateway)
	}
	if statusErr.Body != "upstream down" {
		t.Errorf("Body = %q, want %q", statusErr.Body, "upstream down")
	}
}

func TestGetJSON_RetriesOn429(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"value":"finally"}`))
	}))
	defer server.Close()

	client := newTestClient("test-429-recover")
	var out payload
	if err := client.GetJSON(context.Background(), server.URL, time.Second, &out); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if out.Value != "finally" {
		t.Errorf("Value = %q, want %q", out.Value, "finally")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestGetJSON_429Exhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient("test-429-exhausted")
	var out payload
	err := client.GetJSON(context.Background(), server.URL, time.Second, &out)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("GetJSON() error = %v, want ErrRateLimited", err)
	}
	// initial attempt plus MaxRetries
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestGetJSON_PerAttemptTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient("test-timeout")
	var out payload
	start := time.Now()
	err := client.GetJSON(context.Background(), server.URL, 50*time.Millisecond, &out)
	if err == nil {
		t.Fatal("GetJSON() expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("GetJSON() error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("GetJSON() took %v, timeout not applied", elapsed)
	}
}

func TestGetJSON_CircuitOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{
		Name: "test-breaker",
		Breaker: BreakerSettings{
			MinRequests:      2,
			FailureRatio:     0.5,
			Interval:         time.Minute,
			OpenTimeout:      time.Minute,
			HalfOpenRequests: 1,
		},
	})

	var out payload
	for i := 0; i < 2; i++ {
		_ = client.GetJSON(context.Background(), server.URL, time.Second, &out)
	}
	if got := client.BreakerState(); got != "open" {
		t.Fatalf("BreakerState() = %q, want open", got)
	}

	before := calls.Load()
	err := client.GetJSON(context.Background(), server.URL, time.Second, &out)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("GetJSON() error = %v, want ErrCircuitOpen", err)
	}
	if calls.Load() != before {
		t.Error("request reached the server while the circuit was open")
	}
}

func TestGetJSON_NotFoundDoesNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(Config{
		Name: "test-breaker-404",
		Breaker: BreakerSettings{
			MinRequests:      2,
			FailureRatio:     0.5,
			Interval:         time.Minute,
			OpenTimeout:      time.Minute,
			HalfOpenRequests: 1,
		},
	})

	var out payload
	for i := 0; i < 5; i++ {
		_ = client.GetJSON(context.Background(), server.URL, time.Second, &out)
	}
	if got := client.BreakerState(); got != "closed" {
		t.Errorf("BreakerState() = %q, want closed", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"abc", 0},
		{"-1", 0},
		{"2", 2 * time.Second},
		{"3600", maxRetryAfter},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.in); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
