// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"fmt"
	"path/filepath"
)

// Config contains everything the aggregation pipeline needs.
type Config struct {
	// DataDir holds the raw movie and user rating chunks.
	DataDir string

	// MovieChunkPattern and UserChunkPattern are globbed inside DataDir.
	MovieChunkPattern string
	UserChunkPattern  string

	// StateDir holds movies_index.json and user_stats.json between runs.
	StateDir string

	// OutputDir receives the recommendation files and index.json.
	OutputDir string

	// HighRatingThreshold marks a rating as a positive signal (inclusive).
	HighRatingThreshold float64

	// MinSegmentUsers is the smallest segment that gets its own file.
	MinSegmentUsers int

	// MinGenreMovies is the smallest genre (by tagged movies) that gets its own file.
	MinGenreMovies int

	// MinPopularRatings is the rating count needed to enter fallback_popular.
	MinPopularRatings int

	// MinAcclaimedHighRatings is the high-rating count needed to enter fallback_acclaimed.
	MinAcclaimedHighRatings int

	// TopN caps every recommendation list.
	TopN int

	// DescriptionMaxLen truncates descriptions (no ellipsis).
	DescriptionMaxLen int

	// CastLimit keeps only the first N cast members.
	CastLimit int
}

// DefaultConfig returns the reference thresholds and directory layout.
func DefaultConfig() *Config {
	return &Config{
		DataDir:                 "data",
		MovieChunkPattern:       "movies_*.json",
		UserChunkPattern:        "user_ratings_*.json",
		StateDir:                "_state",
		OutputDir:               "shared_recommendations",
		HighRatingThreshold:     4.0,
		MinSegmentUsers:         3,
		MinGenreMovies:          5,
		MinPopularRatings:       3,
		MinAcclaimedHighRatings: 2,
		TopN:                    20,
		DescriptionMaxLen:       200,
		CastLimit:               3,
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.StateDir == "" {
		return fmt.Errorf("state_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	for _, p := range []string{c.MovieChunkPattern, c.UserChunkPattern} {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("invalid chunk pattern %q: %w", p, err)
		}
	}
	if c.HighRatingThreshold <= 0 {
		return fmt.Errorf("high_rating_threshold must be positive, got %f", c.HighRatingThreshold)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.DescriptionMaxLen < 1 {
		return fmt.Errorf("description_max_len must be positive, got %d", c.DescriptionMaxLen)
	}
	if c.CastLimit < 0 {
		return fmt.Errorf("cast_limit must be non-negative, got %d", c.CastLimit)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
