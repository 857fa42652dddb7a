// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package validation

import (
	"reflect"
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type testRating struct {
	ItemID string  `json:"item_id" validate:"required"`
	Score  float64 `json:"score" validate:"gte=0,lte=5"`
}

type testRecord struct {
	Name       string       `json:"name" validate:"required,max=10"`
	Confidence string       `json:"confidence" validate:"omitempty,oneof=high medium low"`
	Count      int          `json:"count" validate:"min=1"`
	Ratings    []testRating `json:"ratings" validate:"dive"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		input      testRecord
		wantFields []string
		wantMsg    string
	}{
		{
			name:  "valid record",
			input: testRecord{Name: "ok", Count: 1, Ratings: []testRating{{ItemID: "tt1", Score: 5}}},
		},
		{
			name:       "missing name",
			input:      testRecord{Count: 1},
			wantFields: []string{"name"},
			wantMsg:    "name is required",
		},
		{
			name:       "name too long",
			input:      testRecord{Name: "abcdefghijkl", Count: 1},
			wantFields: []string{"name"},
			wantMsg:    "name must be at most 10 characters",
		},
		{
			name:       "bad confidence",
			input:      testRecord{Name: "ok", Count: 1, Confidence: "certain"},
			wantFields: []string{"confidence"},
			wantMsg:    "confidence must be one of: high medium low",
		},
		{
			name:       "count below minimum",
			input:      testRecord{Name: "ok"},
			wantFields: []string{"count"},
			wantMsg:    "count must be at least 1",
		},
		{
			name: "nested rating errors",
			input: testRecord{Name: "ok", Count: 1, Ratings: []testRating{
				{ItemID: "", Score: 3},
				{ItemID: "tt2", Score: 7.5},
			}},
			wantFields: []string{"item_id", "score"},
			wantMsg:    "score must be less than or equal to 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantFields == nil {
				if err != nil {
					t.Errorf("ValidateStruct() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() expected error")
			}
			if got := err.Fields(); !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("Fields() = %v, want %v", got, tt.wantFields)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRecordError_EmptyMessage(t *testing.T) {
	err := &RecordError{}
	if err.Error() != "validation failed" {
		t.Errorf("Error() = %q, want %q", err.Error(), "validation failed")
	}
}

func TestRecordError_Errors(t *testing.T) {
	err := ValidateStruct(&testRating{ItemID: "", Score: 7})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	fieldErrs := err.Errors()
	if len(fieldErrs) != 2 {
		t.Fatalf("Errors() = %d entries, want 2", len(fieldErrs))
	}

	tests := []struct {
		tag, param string
	}{
		{"required", ""},
		{"lte", "5"},
	}
	for i, tt := range tests {
		if got := fieldErrs[i].Tag(); got != tt.tag {
			t.Errorf("Errors()[%d].Tag() = %q, want %q", i, got, tt.tag)
		}
		if got := fieldErrs[i].Param(); got != tt.param {
			t.Errorf("Errors()[%d].Param() = %q, want %q", i, got, tt.param)
		}
	}
}
