// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

// MovieRecord is one entry of a movie chunk file (data/movies_*.json).
type MovieRecord struct {
	ItemID  string       `json:"item_id" validate:"required"`
	Title   string       `json:"title" validate:"required"`
	Year    int          `json:"year" validate:"gte=0"`
	Tags    MovieTags    `json:"tags"`
	Content MovieContent `json:"content"`
}

// MovieTags holds the facet tags attached to a movie.
type MovieTags struct {
	Genre []string `json:"genre"`
	Mood  []string `json:"mood"`
	Era   string   `json:"era"`
}

// MovieContent holds the descriptive fields of a movie.
type MovieContent struct {
	Description string   `json:"description"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
}

// UserRecord is the value side of a user ratings chunk (user id -> record).
// Tags may be null or empty; such users are filed under the "general" segment.
type UserRecord struct {
	Tags   []string `json:"tags"`
	Scores []Score  `json:"scores" validate:"dive"`
}

// Score is a single explicit rating on the 0.5-5.0 scale.
type Score struct {
	ItemID  string  `json:"item_id" validate:"required"`
	Title   string  `json:"title,omitempty"`
	Score   float64 `json:"score" validate:"gte=0,lte=5"`
	Comment *string `json:"comment"`
}

// UserChunk maps user ids to their rating records.
type UserChunk map[string]UserRecord

// RatingsDataset is the prime-path input: user -> item -> rating.
type RatingsDataset map[string]map[string]float64
