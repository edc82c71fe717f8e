// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package validation

import (
	"strings"
	"testing"
	"time"
)

type seasonRequest struct {
	Season    int      `validate:"season"`
	Drivers   []string `validate:"required,min=1,dive,required"`
	UpToRound int      `validate:"gte=0"`
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	req := seasonRequest{Season: 2023, Drivers: []string{"Max Verstappen"}}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestValidateStruct_Season(t *testing.T) {
	t.Parallel()

	next := time.Now().Year() + 1
	tests := []struct {
		season int
		valid  bool
	}{
		{1949, false},
		{1950, true},
		{2023, true},
		{next, true},
		{next + 1, false},
	}

	for _, tt := range tests {
		req := seasonRequest{Season: tt.season, Drivers: []string{"A"}}
		err := ValidateStruct(&req)
		if tt.valid && err != nil {
			t.Errorf("season %d: expected valid, got %v", tt.season, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("season %d: expected error", tt.season)
		}
	}
}

func TestValidateStruct_SingleErrorAPIError(t *testing.T) {
	t.Parallel()

	req := seasonRequest{Season: 1900, Drivers: []string{"A"}}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "Season") {
		t.Errorf("expected message to name Season, got %q", apiErr.Message)
	}
	if apiErr.Details["tag"] != "season" {
		t.Errorf("expected tag season, got %v", apiErr.Details["tag"])
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	t.Parallel()

	req := seasonRequest{Season: 0, Drivers: nil, UpToRound: -1}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Errors()) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(err.Errors()), err)
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Errorf("expected 3 field details, got %v", apiErr.Details)
	}
}
