// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"sort"
)

// GeneralSegment files users that carry no tags.
const GeneralSegment = "general"

// Tally counts tags and remembers the order in which each tag was first seen.
// The order drives file generation and the *_found lists in index.json, so
// it is persisted alongside the counts.
type Tally struct {
	Order  []string       `json:"order"`
	Counts map[string]int `json:"counts"`
}

// NewTally returns an empty tally.
func NewTally() Tally {
	return Tally{Order: []string{}, Counts: map[string]int{}}
}

// Add increments tag by one.
func (t *Tally) Add(tag string) {
	if t.Counts == nil {
		t.Counts = map[string]int{}
	}
	if _, seen := t.Counts[tag]; !seen {
		t.Order = append(t.Order, tag)
	}
	t.Counts[tag]++
}

// Count returns the count for tag.
func (t *Tally) Count(tag string) int {
	return t.Counts[tag]
}

// Len returns the number of distinct tags.
func (t *Tally) Len() int {
	return len(t.Order)
}

// Top returns up to n tags by count, highest first. Equal counts keep
// first-seen order.
func (t *Tally) Top(n int) []string {
	tags := make([]string, len(t.Order))
	copy(tags, t.Order)
	sort.SliceStable(tags, func(i, j int) bool {
		return t.Counts[tags[i]] > t.Counts[tags[j]]
	})
	if n >= 0 && n < len(tags) {
		tags = tags[:n]
	}
	return tags
}

// MovieInfo is the trimmed lookup record kept for every indexed movie.
type MovieInfo struct {
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
	Genre       []string `json:"genre"`
	Mood        []string `json:"mood"`
	Era         string   `json:"era"`
}

// MovieIndex is the phase 1 state. Every id listed in a Movies* map is a key
// of Lookup.
type MovieIndex struct {
	Genres Tally `json:"all_genres"`
	Moods  Tally `json:"all_moods"`
	Eras   Tally `json:"all_eras"`

	MoviesByGenre map[string][]string `json:"movies_by_genre"`
	MoviesByMood  map[string][]string `json:"movies_by_mood"`
	MoviesByEra   map[string][]string `json:"movies_by_era"`

	Lookup map[string]MovieInfo `json:"movie_lookup"`

	ProcessedChunks []string `json:"processed_chunks"`
}

// NewMovieIndex returns an empty movie index.
func NewMovieIndex() *MovieIndex {
	return &MovieIndex{
		Genres:          NewTally(),
		Moods:           NewTally(),
		Eras:            NewTally(),
		MoviesByGenre:   map[string][]string{},
		MoviesByMood:    map[string][]string{},
		MoviesByEra:     map[string][]string{},
		Lookup:          map[string]MovieInfo{},
		ProcessedChunks: []string{},
	}
}

// HasChunk reports whether chunk was already folded into the index.
func (m *MovieIndex) HasChunk(chunk string) bool {
	return containsString(m.ProcessedChunks, chunk)
}

// Segment is the population of one user tag.
type Segment struct {
	Users []string `json:"users"`

	// HighRatedMovies has one entry per (user, high-rated item) pair.
	HighRatedMovies []string `json:"high_rated_movies"`
}

// RatingStats aggregates every rating an item received.
type RatingStats struct {
	TotalScore float64 `json:"total_score"`
	Count      int     `json:"count"`
	HighCount  int     `json:"high_count"`
}

// Average returns the mean rating, or 0 when unrated.
func (r RatingStats) Average() float64 {
	if r.Count == 0 {
		return 0
	}
	return r.TotalScore / float64(r.Count)
}

// SegmentPreferences counts the tags of the movies a segment rated highly.
type SegmentPreferences struct {
	Genres Tally `json:"genres"`
	Moods  Tally `json:"moods"`
	Eras   Tally `json:"eras"`
}

// UserStats is the phase 2 state. Every user is filed under at least one
// segment; untagged users go to GeneralSegment.
type UserStats struct {
	SegmentOrder       []string                       `json:"segment_order"`
	Segments           map[string]*Segment            `json:"user_segments"`
	MovieRatings       map[string]*RatingStats        `json:"movie_ratings"`
	SegmentPreferences map[string]*SegmentPreferences `json:"segment_preferences"`
	ProcessedChunks    []string                       `json:"processed_chunks"`
}

// NewUserStats returns empty user statistics.
func NewUserStats() *UserStats {
	return &UserStats{
		SegmentOrder:       []string{},
		Segments:           map[string]*Segment{},
		MovieRatings:       map[string]*RatingStats{},
		SegmentPreferences: map[string]*SegmentPreferences{},
		ProcessedChunks:    []string{},
	}
}

// HasChunk reports whether chunk was already folded into the statistics.
func (u *UserStats) HasChunk(chunk string) bool {
	return containsString(u.ProcessedChunks, chunk)
}

// segment returns the named segment, creating it in first-seen order.
func (u *UserStats) segment(tag string) *Segment {
	seg, ok := u.Segments[tag]
	if !ok {
		seg = &Segment{Users: []string{}, HighRatedMovies: []string{}}
		u.Segments[tag] = seg
		u.SegmentOrder = append(u.SegmentOrder, tag)
	}
	return seg
}

// preferences returns the preference profile of a segment, creating it if needed.
func (u *UserStats) preferences(tag string) *SegmentPreferences {
	prefs, ok := u.SegmentPreferences[tag]
	if !ok {
		prefs = &SegmentPreferences{Genres: NewTally(), Moods: NewTally(), Eras: NewTally()}
		u.SegmentPreferences[tag] = prefs
	}
	return prefs
}

// TotalUsers sums the users of every segment. A user with several tags is
// counted once per tag.
func (u *UserStats) TotalUsers() int {
	total := 0
	for _, seg := range u.Segments {
		total += len(seg.Users)
	}
	return total
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
