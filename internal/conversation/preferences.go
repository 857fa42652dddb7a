// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package conversation

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// Facet values the recommendation files are generated for.
var (
	Segments = []string{"general", "gamer", "parent", "student", "boomer", "female", "gen z", "male", "millennial"}
	Moods    = []string{"exciting", "relaxing", "intense", "thoughtful", "emotional"}
	Genres   = []string{
		"Thriller", "Mystery", "Romance", "Crime", "Drama", "Biography", "Sport", "Comedy", "History",
		"Action", "Adventure", "Sci-Fi", "War", "Music", "Western", "Horror", "Fantasy", "Animation",
	}
	Eras = []string{"Classic", "80s", "90s", "Modern", "2000s", "60s-70s", "80s-90s"}
)

// Confidence levels reported by the inferrer.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Preferences is what one conversational turn revealed about the user.
// Facet fields hold zero or more comma-joined values from the enumerations
// above; an empty field means nothing was inferred.
type Preferences struct {
	Segment    string `json:"segment"`
	Mood       string `json:"mood"`
	Genre      string `json:"genre"`
	Era        string `json:"era"`
	Confidence string `json:"confidence" validate:"required,oneof=high medium low"`
	Reasoning  string `json:"reasoning"`
}

// Field is one named facet value.
type Field struct {
	Key   string
	Value string
}

// Fields returns the non-empty facets in segment, mood, genre, era order.
func (p *Preferences) Fields() []Field {
	var fields []Field
	for _, f := range []Field{
		{"segment", p.Segment},
		{"mood", p.Mood},
		{"genre", p.Genre},
		{"era", p.Era},
	} {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// IsEmpty reports whether no facet was inferred.
func (p *Preferences) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Merge copies every non-empty facet of other into p. Confidence and
// reasoning are left alone; they describe single turns.
func (p *Preferences) Merge(other *Preferences) {
	if other.Segment != "" {
		p.Segment = other.Segment
	}
	if other.Mood != "" {
		p.Mood = other.Mood
	}
	if other.Genre != "" {
		p.Genre = other.Genre
	}
	if other.Era != "" {
		p.Era = other.Era
	}
}

// Query converts the facets into a recommendation query.
func (p *Preferences) Query() recommend.Query {
	return recommend.Query{Segment: p.Segment, Mood: p.Mood, Genre: p.Genre, Era: p.Era}
}

// MarshalJSON writes empty facets as null.
func (p Preferences) MarshalJSON() ([]byte, error) { //nolint:gocritic // value receiver so both forms marshal
	return json.Marshal(struct {
		Segment    *string `json:"segment"`
		Mood       *string `json:"mood"`
		Genre      *string `json:"genre"`
		Era        *string `json:"era"`
		Confidence string  `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}{
		Segment:    nullable(p.Segment),
		Mood:       nullable(p.Mood),
		Genre:      nullable(p.Genre),
		Era:        nullable(p.Era),
		Confidence: p.Confidence,
		Reasoning:  p.Reasoning,
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseError is the result of a turn whose extraction failed.
func parseError(err error) Preferences {
	return Preferences{Confidence: ConfidenceLow, Reasoning: "Parse error: " + err.Error()}
}

// extraction is the JSON object the model is asked to return. Facets may come
// back as null, a string or a list of strings.
type extraction struct {
	Segment    flexString `json:"segment"`
	Mood       flexString `json:"mood"`
	Genre      flexString `json:"genre"`
	Era        flexString `json:"era"`
	Confidence *string    `json:"confidence"`
	Reasoning  flexString `json:"reasoning"`
}

// preferences normalizes every facet against its enumeration. A missing
// confidence defaults to medium; one outside high/medium/low becomes low.
func (e *extraction) preferences() Preferences {
	p := Preferences{
		Segment:    NormalizeFacet(string(e.Segment), Segments),
		Mood:       NormalizeFacet(string(e.Mood), Moods),
		Genre:      NormalizeFacet(string(e.Genre), Genres),
		Era:        NormalizeFacet(string(e.Era), Eras),
		Confidence: ConfidenceMedium,
		Reasoning:  string(e.Reasoning),
	}
	if e.Confidence != nil {
		p.Confidence = strings.ToLower(strings.TrimSpace(*e.Confidence))
	}
	if verr := validation.ValidateStruct(&p); verr != nil {
		p.Confidence = ConfidenceLow
	}
	return p
}

// flexString decodes null, a string or a list of strings. Lists are
// comma-joined; anything else decodes to the empty string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case data[0] == '[':
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		var parts []string
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, s)
			}
		}
		*f = flexString(strings.Join(parts, ","))
	default:
		*f = ""
	}
	return nil
}

// NormalizeValues maps a raw model value onto options.
//
// An exact case-insensitive match wins outright. Otherwise the value is split
// on "/", ",", " and " and " or ", and every part that matches an option
// exactly is kept. If no part matches, every option contained in the value is
// kept. Options are returned in their canonical spelling, without duplicates.
func NormalizeValues(value string, options []string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, opt := range options {
		if strings.EqualFold(value, opt) {
			return []string{opt}
		}
	}

	parts := []string{value}
	for _, sep := range []string{"/", ",", " and ", " or "} {
		var next []string
		for _, part := range parts {
			next = append(next, strings.Split(part, sep)...)
		}
		parts = next
	}

	var matched []string
	add := func(opt string) {
		for _, m := range matched {
			if m == opt {
				return
			}
		}
		matched = append(matched, opt)
	}

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		for _, opt := range options {
			if strings.EqualFold(part, opt) {
				add(opt)
			}
		}
	}

	if len(matched) == 0 {
		lower := strings.ToLower(value)
		for _, opt := range options {
			if strings.Contains(lower, strings.ToLower(opt)) {
				add(opt)
			}
		}
	}
	return matched
}

// NormalizeFacet is NormalizeValues joined with commas.
func NormalizeFacet(value string, options []string) string {
	return strings.Join(NormalizeValues(value, options), ",")
}
