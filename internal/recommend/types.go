// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"strings"

	"github.com/tomtom215/reelmatch/internal/models"
)

// Query is a recommendation request. Every facet field may hold several
// comma-separated values; an empty field places no constraint.
type Query struct {
	Segment string `json:"segment,omitempty"`
	Mood    string `json:"mood,omitempty"`
	Genre   string `json:"genre,omitempty"`
	Era     string `json:"era,omitempty"`

	// Text is free text matched against file keywords.
	Text string `json:"query,omitempty"`
}

// IsEmpty reports whether the query carries no facet and no text.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Segment+q.Mood+q.Genre+q.Era+q.Text) == ""
}

// Terms returns the lowercased whitespace-separated words of the free text.
func (q Query) Terms() []string {
	return strings.Fields(strings.ToLower(q.Text))
}

// Result is one recommendation with Source set to the description of the
// file it came from.
type Result = models.Recommendation

// Response is the outcome of a query.
type Response struct {
	// Results are deduplicated by item id, first file first.
	Results []Result

	// Sources has one description per matched file, in match order.
	Sources []string

	// Files are the matched filenames, in match order.
	Files []string

	// ColdStart is true when nothing matched and the cold-start file was served.
	ColdStart bool
}

// splitValues splits a comma-separated facet value, dropping blanks.
func splitValues(raw string) []string {
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
