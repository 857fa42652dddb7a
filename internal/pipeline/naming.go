// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import "strings"

var facetNameReplacer = strings.NewReplacer("-", "_", " ", "_")

// SegmentFilename returns segment_<tag lowercased, spaces as underscores>.json.
func SegmentFilename(tag string) string {
	return "segment_" + strings.ToLower(strings.ReplaceAll(tag, " ", "_")) + ".json"
}

// MoodFilename returns mood_<name>.json.
func MoodFilename(name string) string {
	return "mood_" + name + ".json"
}

// GenreFilename returns genre_<tag lowercased, '-' and ' ' as underscores>.json.
func GenreFilename(tag string) string {
	return "genre_" + facetNameReplacer.Replace(strings.ToLower(tag)) + ".json"
}

// EraFilename returns era_<tag lowercased, '-' and ' ' as underscores>.json.
func EraFilename(tag string) string {
	return "era_" + facetNameReplacer.Replace(strings.ToLower(tag)) + ".json"
}

// dedupe drops repeated values, keeping the first occurrence.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
