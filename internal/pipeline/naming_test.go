// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"reflect"
	"testing"
)

func TestFilenames(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"segment with space", SegmentFilename, "gen z", "segment_gen_z.json"},
		{"segment keeps hyphen", SegmentFilename, "Sci-Fi Fan", "segment_sci-fi_fan.json"},
		{"mood", MoodFilename, "exciting", "mood_exciting.json"},
		{"genre with hyphen", GenreFilename, "Sci-Fi", "genre_sci_fi.json"},
		{"genre plain", GenreFilename, "Drama", "genre_drama.json"},
		{"era with hyphen", EraFilename, "60s-70s", "era_60s_70s.json"},
		{"era with space", EraFilename, "Golden Age", "era_golden_age.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"gamer", "gamer", "action", "gamer", "exciting"})
	want := []string{"gamer", "action", "exciting"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupe() = %v, want %v", got, want)
	}
}

func TestMoodNames(t *testing.T) {
	want := []string{"exciting", "relaxing", "intense", "thoughtful", "emotional"}
	if got := MoodNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("MoodNames() = %v, want %v", got, want)
	}
}
