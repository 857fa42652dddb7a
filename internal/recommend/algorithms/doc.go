// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package algorithms implements user-based collaborative filtering over
// explicit ratings.
//
// A dataset maps each user to the items they rated (see
// models.RatingsDataset). Similarity between two users is the Pearson
// correlation over the items both rated. Recommendations for a user are the
// items they have not rated, scored by the similarity-weighted average of the
// ratings given by positively correlated neighbors:
//
//	score(i) = Σ sim(u, n) · r(n, i) / Σ sim(u, n)    for n with sim(u, n) > 0
//
// Degenerate inputs are not errors. Users with no shared items, or whose
// shared ratings have no spread, have similarity 0. When no candidate item
// remains, Recommend returns the single sentinel NoRecommendations.
//
// Only an unknown user id fails, with ErrUnknownUser.
//
// # References
//
//   - Resnick et al. "GroupLens: An Open Architecture for Collaborative
//     Filtering of Netnews" (CSCW 1994)
package algorithms
