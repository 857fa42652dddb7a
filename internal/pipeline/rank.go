// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"math"
	"sort"
)

// scoredMovie is a rated candidate with its aggregate rating figures.
type scoredMovie struct {
	ItemID string
	Avg    float64
	High   int
	Count  int
}

// scoreCandidates keeps the candidates that have at least one rating, in
// candidate order.
func scoreCandidates(candidates []string, ratings map[string]*RatingStats) []scoredMovie {
	scored := make([]scoredMovie, 0, len(candidates))
	for _, id := range candidates {
		rs, ok := ratings[id]
		if !ok || rs.Count == 0 {
			continue
		}
		scored = append(scored, scoredMovie{ItemID: id, Avg: rs.Average(), High: rs.HighCount, Count: rs.Count})
	}
	return scored
}

// scoreAll scores every rated item that passes keep, ordered by item id.
func scoreAll(ratings map[string]*RatingStats, keep func(*RatingStats) bool) []scoredMovie {
	ids := make([]string, 0, len(ratings))
	for id, rs := range ratings {
		if rs.Count > 0 && keep(rs) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return scoreCandidates(ids, ratings)
}

// byHighThenAverage sorts by high-rating count, then average, both
// descending. Ties keep their input order.
func byHighThenAverage(scored []scoredMovie) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].High != scored[j].High {
			return scored[i].High > scored[j].High
		}
		return scored[i].Avg > scored[j].Avg
	})
}

// byAverage sorts by average rating descending. Ties keep their input order.
func byAverage(scored []scoredMovie) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Avg > scored[j].Avg
	})
}

// round2 rounds to two decimals for the stats objects.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
