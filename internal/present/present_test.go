// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package present

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomtom215/reelmatch/internal/models"
)

func sampleResults() []models.Recommendation {
	return []models.Recommendation{
		{
			Rank: 1, ItemID: "tt1", Title: "Heat", Year: 1995, Director: "Michael Mann",
			Genre: []string{"Action", "Crime"}, Mood: []string{"Intense"}, Era: "90s",
			WhyRecommended: "Top-rated Action movie. Average rating: 4.6/5.0",
			Source:         "Top Action movies",
		},
		{
			Rank: 2, ItemID: "tt2", Title: "Mystery Film", Year: 2001,
			Genre: []string{"Mystery"}, Era: "2000s",
			WhyRecommended: "because",
			Source:         "Top Action movies",
		},
		{Rank: 3, ItemID: "tt3", Title: "Third", Year: 2010},
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		sources  []string
		topN     int
		contains []string
		excludes []string
	}{
		{
			name:    "matched categories",
			sources: []string{"Top Action movies"},
			topN:    2,
			contains: []string{
				"based on matched categories",
				"* Top Action movies",
				"1. Heat (1995)",
				"Director: Michael Mann",
				"Genre: Action, Crime",
				"Mood: Intense",
				"Era: 90s",
				"Why: Top-rated Action movie. Average rating: 4.6/5.0",
				"Source: Top Action movies",
				"Director: Unknown",
				"(1 more available)",
			},
			excludes: []string{"3. Third", "cold start"},
		},
		{
			name:     "cold start",
			sources:  []string{models.FallbackPopularDescription},
			topN:     5,
			contains: []string{"Popular movies for You (cold start", "3. Third (2010)"},
			excludes: []string{"matched categories", "more available"},
		},
		{
			name:     "no sources is cold start",
			sources:  nil,
			topN:     0,
			contains: []string{"cold start", "3. Third"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Format(&buf, sampleResults(), tt.sources, "You", tt.topN); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(out, unwanted) {
					t.Errorf("output unexpectedly contains %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestFormat_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Format(&buf, nil, []string{"Top Action movies"}, "You", 5); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No recommendations found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestIsColdStart(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		want    bool
	}{
		{"none", nil, true},
		{"fallbacks only", []string{models.FallbackPopularDescription, models.FallbackAcclaimedDescription}, true},
		{"blank", []string{" "}, true},
		{"facet match", []string{models.FallbackPopularDescription, "Top Drama movies"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsColdStart(tt.sources); got != tt.want {
				t.Errorf("IsColdStart(%v) = %v, want %v", tt.sources, got, tt.want)
			}
		})
	}
}

func TestHeaderAndNumbered(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Demo", 4)
	Numbered(&buf, []string{"Lady in the Water", "Just My Luck"})

	want := "\n====\n  Demo\n====\n1. Lady in the Water\n2. Just My Luck\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
