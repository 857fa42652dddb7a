// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/reelmatch/internal/models"
)

// KeywordMatch is an index entry that shares at least one keyword with a query.
type KeywordMatch struct {
	Filename string
	Score    int
	Entry    models.FileEntry
}

// MatchByKeywords scores every non-fallback entry by how many of terms appear
// in its match keywords. Entries without a hit are dropped; the rest come back
// by score descending, index order among equal scores. Terms are expected
// lowercased.
func MatchByKeywords(index *models.MasterIndex, terms []string) []KeywordMatch {
	if index == nil || len(terms) == 0 {
		return nil
	}

	var matches []KeywordMatch
	for _, entry := range index.Files {
		if entry.IsFallback {
			continue
		}

		keywords := make(map[string]struct{}, len(entry.MatchKeywords))
		for _, kw := range entry.MatchKeywords {
			keywords[strings.ToLower(kw)] = struct{}{}
		}

		score := 0
		for _, term := range terms {
			if _, ok := keywords[term]; ok {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, KeywordMatch{Filename: entry.Filename, Score: score, Entry: entry})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// ResolveFacet returns the file whose tag equals value (case-insensitive)
// among entries of the given type. Segment values have underscores read as
// spaces. The empty string means no file matched.
func ResolveFacet(index *models.MasterIndex, facet models.FacetType, value string) string {
	value = strings.TrimSpace(value)
	if facet == models.FacetSegment {
		value = strings.ReplaceAll(value, "_", " ")
	}
	if value == "" || index == nil {
		return ""
	}

	for _, entry := range index.Files {
		if entry.Type == facet && strings.EqualFold(entry.Tag, value) {
			return entry.Filename
		}
	}
	return ""
}

// fileSet is an ordered set of filenames.
type fileSet struct {
	names []string
	seen  map[string]struct{}
}

func newFileSet() *fileSet {
	return &fileSet{seen: map[string]struct{}{}}
}

// add appends name unless present and reports whether it was added.
func (s *fileSet) add(name string) bool {
	if _, ok := s.seen[name]; ok {
		return false
	}
	s.seen[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}
