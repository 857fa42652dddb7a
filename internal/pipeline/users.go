// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

// FoldUserChunk files every user under their segments, aggregates their
// ratings and, for high ratings, records the item in each segment's
// high-rated list and preference profile. It returns the number of ratings
// folded, or ErrMovieIndexMissing when movies is nil.
//
// Ratings for items missing from the movie index still count toward
// MovieRatings and the high-rated lists; they only skip the preference profile.
func FoldUserChunk(stats *UserStats, movies *MovieIndex, chunk string, users []UserEntry, cfg *Config) (int, error) {
	if movies == nil {
		return 0, ErrMovieIndexMissing
	}

	ratings := 0
	for _, user := range users {
		tags := user.Record.Tags
		if len(tags) == 0 {
			tags = []string{GeneralSegment}
		}

		for _, tag := range tags {
			seg := stats.segment(tag)
			seg.Users = append(seg.Users, user.ID)
		}

		for _, score := range user.Record.Scores {
			ratings++

			rs, ok := stats.MovieRatings[score.ItemID]
			if !ok {
				rs = &RatingStats{}
				stats.MovieRatings[score.ItemID] = rs
			}
			rs.TotalScore += score.Score
			rs.Count++

			if score.Score < cfg.HighRatingThreshold {
				continue
			}
			rs.HighCount++

			for _, tag := range tags {
				seg := stats.Segments[tag]
				seg.HighRatedMovies = append(seg.HighRatedMovies, score.ItemID)
			}

			info, known := movies.Lookup[score.ItemID]
			if !known {
				continue
			}
			for _, tag := range tags {
				prefs := stats.preferences(tag)
				for _, g := range info.Genre {
					prefs.Genres.Add(g)
				}
				for _, m := range info.Mood {
					prefs.Moods.Add(m)
				}
				if info.Era != "" {
					prefs.Eras.Add(info.Era)
				}
			}
		}
	}

	stats.ProcessedChunks = append(stats.ProcessedChunks, chunk)
	return ratings, nil
}
