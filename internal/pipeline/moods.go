// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

// MoodGroup maps a canonical mood to the descriptive mood tags found in the
// movie catalogue.
type MoodGroup struct {
	Name string
	Tags []string
}

// MoodGroups is the fixed canonical mood vocabulary, in generation order.
var MoodGroups = []MoodGroup{
	{Name: "exciting", Tags: []string{"Exciting", "Thrilling", "Action-packed", "Revolutionary"}},
	{Name: "relaxing", Tags: []string{"Charming", "Romantic", "Heartwarming", "Witty"}},
	{Name: "intense", Tags: []string{"Intense", "Suspenseful", "Psychological", "Serious"}},
	{Name: "thoughtful", Tags: []string{"Philosophical", "Mind-bending", "Powerful"}},
	{Name: "emotional", Tags: []string{"Emotional", "Hopeful", "Bittersweet", "Somber"}},
}

// MoodNames returns the canonical mood names in order.
func MoodNames() []string {
	names := make([]string, len(MoodGroups))
	for i, g := range MoodGroups {
		names[i] = g.Name
	}
	return names
}
