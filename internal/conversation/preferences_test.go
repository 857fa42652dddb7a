// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package conversation

import (
	"reflect"
	"testing"

	"github.com/goccy/go-json"
)

func TestNormalizeValues(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		options []string
		want    []string
	}{
		{"empty", "", Genres, nil},
		{"exact lowercase", "action", Genres, []string{"Action"}},
		{"exact with spaces", "  Sci-Fi ", Genres, []string{"Sci-Fi"}},
		{"segment with space", "Gen Z", Segments, []string{"gen z"}},
		{"slash", "Action/Sci-Fi", Genres, []string{"Action", "Sci-Fi"}},
		{"comma", "Comedy, Drama", Genres, []string{"Comedy", "Drama"}},
		{"and", "Comedy and Romance", Genres, []string{"Comedy", "Romance"}},
		{"or", "Horror or Thriller", Genres, []string{"Horror", "Thriller"}},
		{"duplicates", "action, Action", Genres, []string{"Action"}},
		{"era range exact", "80s-90s", Eras, []string{"80s-90s"}},
		{"era slash", "80s/90s", Eras, []string{"80s", "90s"}},
		{"substring fallback", "dark thriller vibes", Genres, []string{"Thriller"}},
		{"unknown", "telenovela", Genres, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeValues(tt.value, tt.options)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeValues(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizeFacet(t *testing.T) {
	if got := NormalizeFacet("action/sci-fi", Genres); got != "Action,Sci-Fi" {
		t.Errorf("NormalizeFacet() = %q, want Action,Sci-Fi", got)
	}
	if got := NormalizeFacet("nope", Moods); got != "" {
		t.Errorf("NormalizeFacet() = %q, want empty", got)
	}
}

func TestDecodeExtraction(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Preferences
		wantErr bool
	}{
		{
			name:    "fenced with list",
			content: "```json\n{\"segment\": \"Gamer\", \"mood\": null, \"genre\": [\"action\", \"Sci-Fi\"], \"era\": \"modern\", \"confidence\": \"HIGH\", \"reasoning\": \"talks about ranked\"}\n```",
			want:    Preferences{Segment: "gamer", Genre: "Action,Sci-Fi", Era: "Modern", Confidence: "high", Reasoning: "talks about ranked"},
		},
		{
			name:    "missing confidence defaults to medium",
			content: `{"mood": "relaxing/thoughtful"}`,
			want:    Preferences{Mood: "relaxing,thoughtful", Confidence: "medium"},
		},
		{
			name:    "unknown confidence becomes low",
			content: `{"genre": "Drama", "confidence": "certain"}`,
			want:    Preferences{Genre: "Drama", Confidence: "low"},
		},
		{
			name:    "values outside enumerations dropped",
			content: `Here you go: {"segment": "astronaut", "genre": "telenovela", "confidence": "low", "reasoning": 42}`,
			want:    Preferences{Confidence: "low"},
		},
		{"no json", "I can't tell", Preferences{}, true},
		{"broken json", `{"segment": }`, Preferences{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeExtraction(tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeExtraction() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("decodeExtraction() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPreferences_Merge(t *testing.T) {
	p := Preferences{Segment: "gamer", Mood: "exciting"}
	p.Merge(&Preferences{Mood: "intense", Genre: "Action", Confidence: "high", Reasoning: "r"})

	want := Preferences{Segment: "gamer", Mood: "intense", Genre: "Action"}
	if p != want {
		t.Errorf("Merge() = %+v, want %+v", p, want)
	}
}

func TestPreferences_FieldsAndQuery(t *testing.T) {
	p := Preferences{Mood: "emotional", Era: "90s"}

	fields := p.Fields()
	want := []Field{{"mood", "emotional"}, {"era", "90s"}}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("Fields() = %v, want %v", fields, want)
	}

	q := p.Query()
	if q.Mood != "emotional" || q.Era != "90s" || q.Segment != "" || q.Text != "" {
		t.Errorf("Query() = %+v", q)
	}

	if p.IsEmpty() {
		t.Error("IsEmpty() = true")
	}
	if empty := (Preferences{Confidence: "high"}); !empty.IsEmpty() {
		t.Error("preferences without facets should be empty")
	}
}

func TestPreferences_MarshalJSON(t *testing.T) {
	p := Preferences{Segment: "gamer", Genre: "Action", Confidence: "high", Reasoning: "r"}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"segment":"gamer","mood":null,"genre":"Action","era":null,"confidence":"high","reasoning":"r"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestTrackTopics(t *testing.T) {
	topics := TrackTopics(nil, "Long day at work, so tired")
	if want := []string{"work", "sleep"}; !reflect.DeepEqual(topics, want) {
		t.Fatalf("TrackTopics() = %v, want %v", topics, want)
	}

	topics = TrackTopics(topics, "Played games with FRIENDS after work")
	if want := []string{"work", "sleep", "gaming", "social"}; !reflect.DeepEqual(topics, want) {
		t.Errorf("TrackTopics() = %v, want %v", topics, want)
	}
}

func TestFallbackReply(t *testing.T) {
	tests := []struct {
		round int
		pick  int
		want  string
	}{
		{0, 0, "Interesting! Tell me more."},
		{1, 1, "No way, really?"},
		{2, 0, "Gotcha. What else is on your mind?"},
		{3, 2, "And then what?"},
		{9, 1, "Go on..."},
	}
	for _, tt := range tests {
		got := fallbackReply(tt.round, func(int) int { return tt.pick })
		if got != tt.want {
			t.Errorf("fallbackReply(%d) = %q, want %q", tt.round, got, tt.want)
		}
	}
}
