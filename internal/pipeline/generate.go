// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
)

// Artifact is one recommendation file ready to be written.
type Artifact struct {
	Filename string
	File     *models.RecommendationFile
}

// Output is the complete result of phase 3.
type Output struct {
	Files []Artifact
	Index *models.MasterIndex
}

// Generator turns the folded state into recommendation files.
type Generator struct {
	cfg *Config
	now func() time.Time
}

// NewGenerator creates a generator using cfg's thresholds.
func NewGenerator(cfg *Config) *Generator {
	return &Generator{cfg: cfg, now: time.Now}
}

// Build produces every recommendation file and the master index. It does not
// touch the filesystem.
func (g *Generator) Build(movies *MovieIndex, stats *UserStats) *Output {
	generatedAt := g.now().UTC().Format(time.RFC3339)
	out := &Output{}

	add := func(filename string, file *models.RecommendationFile) {
		file.Meta.GeneratedAt = generatedAt
		out.Files = append(out.Files, Artifact{Filename: filename, File: file})
	}

	for _, tag := range stats.SegmentOrder {
		seg := stats.Segments[tag]
		if len(seg.Users) < g.cfg.MinSegmentUsers {
			continue
		}
		add(SegmentFilename(tag), g.segmentFile(tag, seg, stats.SegmentPreferences[tag], movies, stats))
	}

	for _, group := range MoodGroups {
		if file := g.moodFile(group, movies, stats); len(file.Recommendations) > 0 {
			add(MoodFilename(group.Name), file)
		}
	}

	for _, genre := range movies.Genres.Order {
		if movies.Genres.Count(genre) < g.cfg.MinGenreMovies {
			continue
		}
		if file := g.genreFile(genre, movies, stats); len(file.Recommendations) > 0 {
			add(GenreFilename(genre), file)
		}
	}

	for _, era := range movies.Eras.Order {
		if file := g.eraFile(era, movies, stats); len(file.Recommendations) > 0 {
			add(EraFilename(era), file)
		}
	}

	add(models.FallbackPopularFilename, g.popularFile(movies, stats))
	add(models.FallbackAcclaimedFilename, g.acclaimedFile(movies, stats))

	out.Index = g.index(generatedAt, out.Files, movies, stats)
	return out
}

// WriteOutput writes every recommendation file and then index.json into dir.
// The index goes last so it never lists a file that is not on disk.
func WriteOutput(dir string, out *Output) error {
	for _, a := range out.Files {
		if err := writeJSON(filepath.Join(dir, a.Filename), a.File); err != nil {
			return fmt.Errorf("write %s: %w", a.Filename, err)
		}
	}
	if err := writeJSON(filepath.Join(dir, models.IndexFilename), out.Index); err != nil {
		return fmt.Errorf("write %s: %w", models.IndexFilename, err)
	}
	return nil
}

func (g *Generator) segmentFile(tag string, seg *Segment, prefs *SegmentPreferences, movies *MovieIndex, stats *UserStats) *models.RecommendationFile {
	hits := NewTally()
	for _, id := range seg.HighRatedMovies {
		hits.Add(id)
	}

	users := len(seg.Users)
	recs := make([]models.Recommendation, 0, g.cfg.TopN)
	for _, id := range hits.Top(-1) {
		if len(recs) == g.cfg.TopN {
			break
		}
		info, ok := movies.Lookup[id]
		if !ok {
			continue
		}

		var rs RatingStats
		if found, ok := stats.MovieRatings[id]; ok {
			rs = *found
		}
		avg := rs.Average()
		count := hits.Count(id)
		pct := float64(count) / float64(users) * 100

		why := fmt.Sprintf("%d%% of %s users rated this %g+ stars. Average rating: %.1f/5.0",
			int(pct), tag, g.cfg.HighRatingThreshold, avg)
		recs = append(recs, g.entry(len(recs)+1, id, info, why, models.Stats{
			"avg_rating_in_segment":   round2(avg),
			"rating_count_in_segment": float64(count),
			"overall_avg_rating":      round2(avg),
			"total_ratings":           float64(rs.Count),
		}))
	}

	if prefs == nil {
		prefs = &SegmentPreferences{Genres: NewTally(), Moods: NewTally(), Eras: NewTally()}
	}
	keywords := []string{tag, strings.ReplaceAll(tag, "_", " ")}
	keywords = append(keywords, lowerAll(prefs.Genres.Top(3))...)
	keywords = append(keywords, lowerAll(prefs.Moods.Top(3))...)

	return &models.RecommendationFile{
		Meta: models.FileMeta{
			Tag:                tag,
			Type:               models.FacetSegment,
			Description:        fmt.Sprintf("Movies highly rated by %s users", tag),
			MatchKeywords:      dedupe(keywords),
			UserCountInSegment: users,
			CandidateMovies:    hits.Len(),
		},
		DiscoveryQuestions: []models.DiscoveryQuestion{{
			Question:        fmt.Sprintf("Are you interested in movies that %s users typically enjoy?", tag),
			PositiveSignals: []string{tag, "yes", "interested"},
		}},
		Recommendations: recs,
	}
}

func (g *Generator) moodFile(group MoodGroup, movies *MovieIndex, stats *UserStats) *models.RecommendationFile {
	var candidates []string
	for _, moodTag := range group.Tags {
		candidates = append(candidates, movies.MoviesByMood[moodTag]...)
	}
	candidates = dedupe(candidates)

	recs := g.rankedEntries(candidates, movies, stats, func(m scoredMovie) string {
		return fmt.Sprintf("Perfect for a %s mood. Rated %.1f/5.0 by %d users.", group.Name, m.Avg, m.Count)
	})

	signals := append([]string{group.Name, "yes"}, lowerAll(group.Tags)...)
	return &models.RecommendationFile{
		Meta: models.FileMeta{
			Tag:             group.Name,
			Type:            models.FacetMood,
			Description:     fmt.Sprintf("Movies perfect for a %s mood", group.Name),
			MatchKeywords:   dedupe(append([]string{group.Name}, group.Tags...)),
			CandidateMovies: len(candidates),
		},
		DiscoveryQuestions: []models.DiscoveryQuestion{{
			Question:        fmt.Sprintf("Are you in the mood for something %s?", group.Name),
			PositiveSignals: signals,
		}},
		Recommendations: recs,
	}
}

func (g *Generator) genreFile(genre string, movies *MovieIndex, stats *UserStats) *models.RecommendationFile {
	candidates := movies.MoviesByGenre[genre]
	recs := g.rankedEntries(candidates, movies, stats, func(m scoredMovie) string {
		return fmt.Sprintf("Top-rated %s movie. Average rating: %.1f/5.0", genre, m.Avg)
	})

	lower := strings.ToLower(genre)
	return &models.RecommendationFile{
		Meta: models.FileMeta{
			Tag:             genre,
			Type:            models.FacetGenre,
			Description:     fmt.Sprintf("Top %s movies", genre),
			MatchKeywords:   dedupe([]string{lower, genre}),
			CandidateMovies: len(candidates),
		},
		DiscoveryQuestions: []models.DiscoveryQuestion{{
			Question:        fmt.Sprintf("Do you enjoy %s movies?", genre),
			PositiveSignals: dedupe([]string{lower, "yes", "love", genre}),
		}},
		Recommendations: recs,
	}
}

func (g *Generator) eraFile(era string, movies *MovieIndex, stats *UserStats) *models.RecommendationFile {
	candidates := movies.MoviesByEra[era]
	recs := g.rankedEntries(candidates, movies, stats, func(m scoredMovie) string {
		return fmt.Sprintf("Top-rated %s movie. Average rating: %.1f/5.0", era, m.Avg)
	})

	lower := strings.ToLower(era)
	return &models.RecommendationFile{
		Meta: models.FileMeta{
			Tag:             era,
			Type:            models.FacetEra,
			Description:     fmt.Sprintf("Top movies from the %s era", era),
			MatchKeywords:   dedupe([]string{lower, era}),
			CandidateMovies: len(candidates),
		},
		DiscoveryQuestions: []models.DiscoveryQuestion{{
			Question:        fmt.Sprintf("Do you enjoy movies from the %s era?", era),
			PositiveSignals: dedupe([]string{lower, "yes", "love", era}),
		}},
		Recommendations: recs,
	}
}

// rankedEntries scores candidates, ranks them by (high count, average) and
// builds the top N entries with mood/genre/era style stats. An item listed
// more than once is ranked once.
func (g *Generator) rankedEntries(candidates []string, movies *MovieIndex, stats *UserStats, why func(scoredMovie) string) []models.Recommendation {
	scored := scoreCandidates(dedupe(candidates), stats.MovieRatings)
	byHighThenAverage(scored)

	recs := make([]models.Recommendation, 0, g.cfg.TopN)
	for _, m := range scored {
		if len(recs) == g.cfg.TopN {
			break
		}
		info, ok := movies.Lookup[m.ItemID]
		if !ok {
			continue
		}
		recs = append(recs, g.entry(len(recs)+1, m.ItemID, info, why(m), models.Stats{
			"avg_rating":        round2(m.Avg),
			"high_rating_count": float64(m.High),
			"total_ratings":     float64(m.Count),
		}))
	}
	return recs
}

func (g *Generator) popularFile(movies *MovieIndex, stats *UserStats) *models.RecommendationFile {
	scored := scoreAll(stats.MovieRatings, func(rs *RatingStats) bool {
		return rs.Count >= g.cfg.MinPopularRatings
	})
	byAverage(scored)

	recs := make([]models.Recommendation, 0, g.cfg.TopN)
	for _, m := range scored {
		if len(recs) == g.cfg.TopN {
			break
		}
		info, ok := movies.Lookup[m.ItemID]
		if !ok {
			continue
		}
		why := fmt.Sprintf("Highly rated movie with %.1f/5.0 average from %d users.", m.Avg, m.Count)
		recs = append(recs, g.entry(len(recs)+1, m.ItemID, info, why, models.Stats{
			"avg_rating":    round2(m.Avg),
			"total_ratings": float64(m.Count),
		}))
	}

	return fallbackFile("popular", models.FallbackPopularDescription, len(scored), recs)
}

func (g *Generator) acclaimedFile(movies *MovieIndex, stats *UserStats) *models.RecommendationFile {
	scored := scoreAll(stats.MovieRatings, func(rs *RatingStats) bool {
		return rs.HighCount >= g.cfg.MinAcclaimedHighRatings
	})
	byHighThenAverage(scored)

	recs := make([]models.Recommendation, 0, g.cfg.TopN)
	for _, m := range scored {
		if len(recs) == g.cfg.TopN {
			break
		}
		info, ok := movies.Lookup[m.ItemID]
		if !ok {
			continue
		}
		why := fmt.Sprintf("Critically acclaimed with %d high ratings. Average: %.1f/5.0", m.High, m.Avg)
		recs = append(recs, g.entry(len(recs)+1, m.ItemID, info, why, models.Stats{
			"avg_rating":        round2(m.Avg),
			"high_rating_count": float64(m.High),
			"total_ratings":     float64(m.Count),
		}))
	}

	return fallbackFile("acclaimed", models.FallbackAcclaimedDescription, len(scored), recs)
}

func fallbackFile(tag, description string, candidates int, recs []models.Recommendation) *models.RecommendationFile {
	return &models.RecommendationFile{
		Meta: models.FileMeta{
			Tag:             tag,
			Type:            models.FacetFallback,
			Description:     description,
			MatchKeywords:   []string{},
			CandidateMovies: candidates,
			IsFallback:      true,
		},
		Recommendations: recs,
	}
}

func (g *Generator) entry(rank int, id string, info MovieInfo, why string, stats models.Stats) models.Recommendation {
	return models.Recommendation{
		Rank:             rank,
		ItemID:           id,
		Title:            info.Title,
		Year:             info.Year,
		Director:         info.Director,
		Genre:            cloneStrings(info.Genre),
		Mood:             cloneStrings(info.Mood),
		Era:              info.Era,
		DescriptionBrief: info.Description,
		WhyRecommended:   why,
		Stats:            stats,
	}
}

func (g *Generator) index(generatedAt string, files []Artifact, movies *MovieIndex, stats *UserStats) *models.MasterIndex {
	entries := make([]models.FileEntry, len(files))
	for i, a := range files {
		meta := a.File.Meta
		entries[i] = models.FileEntry{
			Filename:      a.Filename,
			Type:          meta.Type,
			Tag:           meta.Tag,
			Description:   meta.Description,
			MatchKeywords: cloneStrings(meta.MatchKeywords),
			ItemCount:     len(a.File.Recommendations),
			IsFallback:    meta.IsFallback,
		}
	}

	return &models.MasterIndex{
		GeneratedAt:              generatedAt,
		TotalMoviesIndexed:       len(movies.Lookup),
		TotalUsersAnalyzed:       stats.TotalUsers(),
		TotalRecommendationFiles: len(files),
		SegmentsFound:            cloneStrings(stats.SegmentOrder),
		GenresFound:              cloneStrings(movies.Genres.Order),
		MoodsFound:               cloneStrings(movies.Moods.Order),
		ErasFound:                cloneStrings(movies.Eras.Order),
		Files:                    entries,
	}
}
