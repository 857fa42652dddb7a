// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

// FacetType identifies the dimension a recommendation file was generated for.
type FacetType string

const (
	FacetSegment  FacetType = "segment"
	FacetMood     FacetType = "mood"
	FacetGenre    FacetType = "genre"
	FacetEra      FacetType = "era"
	FacetFallback FacetType = "fallback"
)

// Well-known artifact names.
const (
	IndexFilename             = "index.json"
	FallbackPopularFilename   = "fallback_popular.json"
	FallbackAcclaimedFilename = "fallback_acclaimed.json"
)

// Fallback descriptions double as the provenance text shown for cold-start results.
const (
	FallbackPopularDescription   = "Most popular movies - use when no specific match found"
	FallbackAcclaimedDescription = "Most acclaimed movies - use when no specific match found"
)

// IsFallbackDescription reports whether a source description belongs to a fallback file.
func IsFallbackDescription(desc string) bool {
	return desc == FallbackPopularDescription || desc == FallbackAcclaimedDescription
}

// RecommendationFile is one per-facet artifact written by the pipeline.
type RecommendationFile struct {
	Meta               FileMeta            `json:"meta"`
	DiscoveryQuestions []DiscoveryQuestion `json:"discovery_questions,omitempty"`
	Recommendations    []Recommendation    `json:"recommendations"`
}

// FileMeta describes a recommendation file.
type FileMeta struct {
	Tag                string    `json:"tag"`
	Type               FacetType `json:"type"`
	Description        string    `json:"description"`
	MatchKeywords      []string  `json:"match_keywords"`
	GeneratedAt        string    `json:"generated_at"`
	UserCountInSegment int       `json:"user_count_in_segment,omitempty"`
	CandidateMovies    int       `json:"candidate_movies"`
	IsFallback         bool      `json:"is_fallback,omitempty"`
}

// DiscoveryQuestion is a conversational prompt attached to a facet file.
type DiscoveryQuestion struct {
	Question        string   `json:"question"`
	PositiveSignals []string `json:"positive_signals"`
}

// Recommendation is a ranked entry inside a recommendation file.
// Source is empty on disk and filled by the matcher with the file description.
type Recommendation struct {
	Rank             int      `json:"rank"`
	ItemID           string   `json:"item_id"`
	Title            string   `json:"title"`
	Year             int      `json:"year"`
	Director         string   `json:"director"`
	Genre            []string `json:"genre"`
	Mood             []string `json:"mood"`
	Era              string   `json:"era"`
	DescriptionBrief string   `json:"description_brief"`
	WhyRecommended   string   `json:"why_recommended"`
	Stats            Stats    `json:"stats"`
	Source           string   `json:"source,omitempty"`
}

// Stats is the numeric summary attached to a recommendation.
// Keys differ per file type (avg_rating, high_rating_count, total_ratings, ...).
type Stats map[string]float64

// MasterIndex is index.json, the only artifact used to discover facet files.
type MasterIndex struct {
	GeneratedAt              string      `json:"generated_at"`
	TotalMoviesIndexed       int         `json:"total_movies_indexed"`
	TotalUsersAnalyzed       int         `json:"total_users_analyzed"`
	TotalRecommendationFiles int         `json:"total_recommendation_files"`
	SegmentsFound            []string    `json:"segments_found"`
	GenresFound              []string    `json:"genres_found"`
	MoodsFound               []string    `json:"moods_found"`
	ErasFound                []string    `json:"eras_found"`
	Files                    []FileEntry `json:"files"`
}

// FileEntry registers one generated file in the master index.
type FileEntry struct {
	Filename      string    `json:"filename"`
	Type          FacetType `json:"type"`
	Tag           string    `json:"tag"`
	Description   string    `json:"description"`
	MatchKeywords []string  `json:"match_keywords"`
	ItemCount     int       `json:"item_count"`
	IsFallback    bool      `json:"is_fallback"`
}
