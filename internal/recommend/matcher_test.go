// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"testing"

	"github.com/tomtom215/reelmatch/internal/models"
)

func loadFixtureIndex(t *testing.T) *models.MasterIndex {
	t.Helper()
	index, err := NewStore(writeFixture(t, fixtureFiles), nil).LoadIndex()
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	return index
}

func TestMatchByKeywords(t *testing.T) {
	index := loadFixtureIndex(t)

	tests := []struct {
		name  string
		terms []string
		want  []string
	}{
		{"no match", []string{"nonexistent_keyword_xyz"}, nil},
		{"single keyword", []string{"sci-fi"}, []string{"genre_sci_fi.json"}},
		{"sorted by score", []string{"exciting", "action", "gamer"}, []string{"segment_gamer.json", "mood_exciting.json", "genre_action.json"}},
		{"mixed case keywords match", []string{"thrilling"}, []string{"mood_exciting.json"}},
		{"fallback excluded", []string{"popular"}, nil},
		{"no terms", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := MatchByKeywords(index, tt.terms)
			if len(matches) != len(tt.want) {
				t.Fatalf("MatchByKeywords() = %d matches, want %d (%+v)", len(matches), len(tt.want), matches)
			}
			for i, m := range matches {
				if m.Filename != tt.want[i] {
					t.Errorf("match %d = %s, want %s", i, m.Filename, tt.want[i])
				}
				if m.Entry.IsFallback {
					t.Errorf("fallback file %s matched", m.Filename)
				}
				if i > 0 && m.Score > matches[i-1].Score {
					t.Errorf("matches not sorted by score: %+v", matches)
				}
			}
		})
	}
}

func TestResolveFacet(t *testing.T) {
	index := loadFixtureIndex(t)

	tests := []struct {
		name  string
		facet models.FacetType
		value string
		want  string
	}{
		{"exact", models.FacetSegment, "gamer", "segment_gamer.json"},
		{"case-insensitive", models.FacetGenre, "action", "genre_action.json"},
		{"segment underscore", models.FacetSegment, "gen_z", "segment_gen_z.json"},
		{"hyphenated genre", models.FacetGenre, "sci-fi", "genre_sci_fi.json"},
		{"trimmed", models.FacetEra, " 90s ", "era_90s.json"},
		{"wrong facet type", models.FacetMood, "gamer", ""},
		{"unknown", models.FacetGenre, "Western", ""},
		{"empty", models.FacetGenre, "  ", ""},
		{"fallback never resolves as genre", models.FacetGenre, "popular", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveFacet(index, tt.facet, tt.value); got != tt.want {
				t.Errorf("ResolveFacet(%s, %q) = %q, want %q", tt.facet, tt.value, got, tt.want)
			}
		})
	}
}
