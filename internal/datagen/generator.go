// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package datagen

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/pipeline"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// TagOptions are the segment tag sets a synthetic user is drawn with.
// A nil entry writes "tags": null, an empty one "tags": []; both end up in
// the general segment.
var TagOptions = [][]string{
	nil,
	{"gen Z", "male"},
	{"gen Z", "female"},
	{"millennial", "male"},
	{"millennial", "female"},
	{"boomer", "male"},
	{"boomer", "female"},
	{"student"},
	{"parent"},
	{"gamer"},
	{},
}

// CommentOptions are the rating comments; nil writes "comment": null.
var CommentOptions = []*string{
	nil,
	ptr("Loved it!"),
	ptr("Boring plot"),
	ptr("Great acting!"),
	ptr("Too long"),
	ptr("Must watch"),
	ptr("Not my taste"),
	ptr("Amazing visuals"),
	ptr("Predictable ending"),
	ptr("Very emotional"),
	ptr("Super fun!"),
}

// ErrNoMovies is returned when the catalogue is empty.
var ErrNoMovies = errors.New("movie catalogue is empty")

// Config controls the generated dataset.
type Config struct {
	Seed      uint64
	Users     int     `validate:"min=1,max=9999"`
	MinMovies int     `validate:"min=1"`
	MaxMovies int     `validate:"gtefield=MinMovies"`
	MinScore  float64 `validate:"gte=0"`
	MaxScore  float64 `validate:"lte=5,gtefield=MinScore"`
}

// DefaultConfig returns the settings of the bundled sample dataset.
func DefaultConfig() Config {
	return Config{
		Seed:      42,
		Users:     2800,
		MinMovies: 1,
		MaxMovies: 8,
		MinScore:  0.5,
		MaxScore:  5.0,
	}
}

// Validate checks the user count, movie range and score range.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid generator config: %w", verr)
	}
	return nil
}

// Summary describes a generated dataset.
type Summary struct {
	Users   int
	Ratings int
	Bytes   int64
}

// Generate draws cfg.Users users, each rating between MinMovies and
// MaxMovies distinct movies with scores uniform in [MinScore, MaxScore]
// rounded to one decimal. The same seed and catalogue give the same users.
//
//nolint:gocritic // hugeParam: cfg is small and read-only
func Generate(movies []models.MovieRecord, cfg Config) (models.UserChunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, ErrNoMovies
	}

	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)) //nolint:gosec // reproducible sample data
	order := make([]int, len(movies))
	for i := range order {
		order[i] = i
	}

	users := make(models.UserChunk, cfg.Users)
	for i := 1; i <= cfg.Users; i++ {
		n := cfg.MinMovies + r.IntN(cfg.MaxMovies-cfg.MinMovies+1)
		n = min(n, len(movies))

		// Partial Fisher-Yates: the first n slots become a uniform sample.
		for j := 0; j < n; j++ {
			k := j + r.IntN(len(order)-j)
			order[j], order[k] = order[k], order[j]
		}

		scores := make([]models.Score, n)
		for j := 0; j < n; j++ {
			m := movies[order[j]]
			scores[j] = models.Score{
				ItemID:  m.ItemID,
				Title:   m.Title,
				Score:   roundTenth(cfg.MinScore + r.Float64()*(cfg.MaxScore-cfg.MinScore)),
				Comment: CommentOptions[r.IntN(len(CommentOptions))],
			}
		}

		users[UserID(i)] = models.UserRecord{
			Tags:   TagOptions[r.IntN(len(TagOptions))],
			Scores: scores,
		}
	}
	return users, nil
}

// UserID formats the i-th synthetic user id (id0001, id0002, ...).
func UserID(i int) string {
	return fmt.Sprintf("id%04d", i)
}

// LoadCatalogue reads a movie list in the movie chunk format. Records that
// fail validation are dropped.
func LoadCatalogue(path string) ([]models.MovieRecord, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator flags
	if err != nil {
		return nil, fmt.Errorf("read movie catalogue: %w", err)
	}
	movies, _, err := pipeline.DecodeMovieChunk(data)
	if err != nil {
		return nil, fmt.Errorf("decode movie catalogue: %w", err)
	}
	return movies, nil
}

// Write stores users at path as a user ratings chunk.
func Write(path string, users models.UserChunk) (*Summary, error) {
	if err := pipeline.WriteJSON(path, users); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	summary := &Summary{Users: len(users), Bytes: info.Size()}
	for _, u := range users {
		summary.Ratings += len(u.Scores)
	}
	return summary, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func ptr(s string) *string {
	return &s
}
