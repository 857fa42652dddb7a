// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/reelmatch/internal/models"
)

// NoRecommendations is the single entry returned by Recommend when no
// candidate item survives filtering. It is a valid result, not an error.
const NoRecommendations = "No recommendations possible"

// varianceEpsilon is the relative size below which a sum of squared
// deviations is treated as zero.
const varianceEpsilon = 1e-12

// ErrUnknownUser is returned when a user id is absent from the dataset.
var ErrUnknownUser = errors.New("user not found in dataset")

// Neighbor is another user together with their similarity to the target user.
type Neighbor struct {
	User       string
	Similarity float64
}

// ScoredItem is a candidate item and its similarity-weighted average rating.
type ScoredItem struct {
	Item  string
	Score float64
}

// PearsonScore computes the Pearson correlation between two users over the
// items both have rated. It returns 0 when they share no items or when either
// user's ratings have no spread over the shared items.
func PearsonScore(dataset models.RatingsDataset, userA, userB string) (float64, error) {
	ratingsA, ok := dataset[userA]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUser, userA)
	}
	ratingsB, ok := dataset[userB]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUser, userB)
	}

	shared := make([]string, 0, len(ratingsA))
	for item := range ratingsA {
		if _, ok := ratingsB[item]; ok {
			shared = append(shared, item)
		}
	}
	if len(shared) == 0 {
		return 0, nil
	}
	// Fixed summation order keeps the score symmetric in its arguments.
	sort.Strings(shared)

	n := float64(len(shared))
	var sumA, sumB float64
	for _, item := range shared {
		sumA += ratingsA[item]
		sumB += ratingsB[item]
	}
	meanA, meanB := sumA/n, sumB/n

	var sxy, sxx, syy, sqA, sqB float64
	for _, item := range shared {
		a, b := ratingsA[item], ratingsB[item]
		da, db := a-meanA, b-meanB
		sxy += da * db
		sxx += da * da
		syy += db * db
		sqA += a * a
		sqB += b * b
	}

	// Residual spread left by rounding on constant ratings counts as none.
	if sxx <= varianceEpsilon*sqA || syy <= varianceEpsilon*sqB {
		return 0, nil
	}

	r := sxy / math.Sqrt(sxx*syy)
	return max(-1, min(1, r)), nil
}

// FindSimilarUsers scores every other user against user and returns the top k
// by similarity, highest first. A non-positive k returns all other users.
func FindSimilarUsers(dataset models.RatingsDataset, user string, k int) ([]Neighbor, error) {
	if _, ok := dataset[user]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, user)
	}

	others := make([]string, 0, len(dataset)-1)
	for other := range dataset {
		if other != user {
			others = append(others, other)
		}
	}
	sort.Strings(others)

	neighbors := make([]Neighbor, 0, len(others))
	for _, other := range others {
		sim, err := PearsonScore(dataset, user, other)
		if err != nil {
			return nil, err
		}
		neighbors = append(neighbors, Neighbor{User: other, Similarity: sim})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})

	if k > 0 && k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// RecommendScored ranks the items user has not rated (or rated exactly 0) by
// the similarity-weighted average of positively correlated neighbors' ratings.
// k limits how many neighbors are consulted; non-positive means all.
// The result is empty when no candidate survives.
func RecommendScored(dataset models.RatingsDataset, user string, k int) ([]ScoredItem, error) {
	neighbors, err := FindSimilarUsers(dataset, user, k)
	if err != nil {
		return nil, err
	}

	own := dataset[user]
	weighted := make(map[string]float64)
	weights := make(map[string]float64)

	for _, nb := range neighbors {
		if nb.Similarity <= 0 {
			continue
		}
		for item, rating := range dataset[nb.User] {
			if r, rated := own[item]; rated && r != 0 {
				continue
			}
			weighted[item] += rating * nb.Similarity
			weights[item] += nb.Similarity
		}
	}

	scored := make([]ScoredItem, 0, len(weighted))
	for item, sum := range weighted {
		scored = append(scored, ScoredItem{Item: item, Score: sum / weights[item]})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Item < scored[j].Item
	})

	return scored, nil
}

// Recommend returns item identifiers ordered by predicted rating. When nothing
// can be recommended it returns the one-element []string{NoRecommendations}.
func Recommend(dataset models.RatingsDataset, user string, k int) ([]string, error) {
	scored, err := RecommendScored(dataset, user, k)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return []string{NoRecommendations}, nil
	}

	items := make([]string, len(scored))
	for i, s := range scored {
		items[i] = s.Item
	}
	return items, nil
}
