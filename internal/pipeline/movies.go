// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"github.com/tomtom215/reelmatch/internal/models"
)

// FoldMovieChunk registers every movie of a chunk under its genre, mood and
// era tags and writes its lookup record, then marks the chunk processed.
// It does not check whether the chunk was folded before; the Runner does.
func FoldMovieChunk(idx *MovieIndex, chunk string, movies []models.MovieRecord, cfg *Config) int {
	for i := range movies {
		movie := &movies[i]
		id := movie.ItemID

		for _, genre := range movie.Tags.Genre {
			idx.Genres.Add(genre)
			idx.MoviesByGenre[genre] = append(idx.MoviesByGenre[genre], id)
		}

		for _, mood := range movie.Tags.Mood {
			idx.Moods.Add(mood)
			idx.MoviesByMood[mood] = append(idx.MoviesByMood[mood], id)
		}

		if era := movie.Tags.Era; era != "" {
			idx.Eras.Add(era)
			idx.MoviesByEra[era] = append(idx.MoviesByEra[era], id)
		}

		idx.Lookup[id] = MovieInfo{
			Title:       movie.Title,
			Year:        movie.Year,
			Description: truncate(movie.Content.Description, cfg.DescriptionMaxLen),
			Director:    movie.Content.Director,
			Cast:        firstN(movie.Content.Cast, cfg.CastLimit),
			Genre:       cloneStrings(movie.Tags.Genre),
			Mood:        cloneStrings(movie.Tags.Mood),
			Era:         movie.Tags.Era,
		}
	}

	idx.ProcessedChunks = append(idx.ProcessedChunks, chunk)
	return len(movies)
}

// truncate hard-cuts s to max characters.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func firstN(list []string, n int) []string {
	if len(list) > n {
		list = list[:n]
	}
	return cloneStrings(list)
}

// cloneStrings copies list, turning nil into an empty slice so JSON shows [].
func cloneStrings(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
