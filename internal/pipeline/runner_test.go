// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
)

const movieChunk1 = `[
	{"item_id": "m1", "title": "One", "year": 1991, "tags": {"genre": ["Action"], "mood": ["Exciting"], "era": "90s"}},
	{"item_id": "m2", "title": "Two", "year": 1992, "tags": {"genre": ["Action"], "mood": ["Thrilling"], "era": "90s"}},
	{"item_id": "", "title": "Broken"}
]`

const movieChunk2 = `[
	{"item_id": "m3", "title": "Three", "year": 2020, "tags": {"genre": ["Comedy"], "mood": ["Witty"], "era": "Modern"}}
]`

const userChunk1 = `{
	"u1": {"tags": ["gamer"], "scores": [{"item_id": "m1", "score": 5}, {"item_id": "m2", "score": 4}]},
	"u2": {"tags": ["gamer"], "scores": [{"item_id": "m1", "score": 4.5}]},
	"u3": {"tags": ["gamer"], "scores": [{"item_id": "m1", "score": 4}, {"item_id": "m3", "score": 9}]}
}`

func newTestRunner(t *testing.T) (*Runner, *Config, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = filepath.Join(root, "data")
	cfg.StateDir = filepath.Join(root, "_state")
	cfg.OutputDir = filepath.Join(root, "shared_recommendations")
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	runner, err := NewRunner(cfg, logging.NewTestLogger(&buf))
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	return runner, cfg, &buf
}

func TestRunner_Run(t *testing.T) {
	runner, cfg, logs := newTestRunner(t)
	writeFile(t, cfg.DataDir, "movies_001.json", movieChunk1)
	writeFile(t, cfg.DataDir, "movies_002.json", movieChunk2)
	writeFile(t, cfg.DataDir, "user_ratings_001.json", userChunk1)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.MovieChunksProcessed != 2 || stats.MoviesFolded != 3 {
		t.Errorf("movie stats = %+v", stats)
	}
	if stats.UserChunksProcessed != 1 || stats.RatingsFolded != 4 {
		t.Errorf("user stats = %+v", stats)
	}
	if stats.RecordsRejected != 2 {
		t.Errorf("RecordsRejected = %d, want 2", stats.RecordsRejected)
	}
	if stats.RunID == "" {
		t.Error("RunID not set")
	}

	for _, name := range []string{models.IndexFilename, "segment_gamer.json", "mood_exciting.json", models.FallbackPopularFilename} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if !strings.Contains(logs.String(), "Skipping invalid record") {
		t.Error("rejected records were not logged")
	}
	for _, rule := range []string{`"rules":["required"]`, `"rules":["lte=5"]`} {
		if !strings.Contains(logs.String(), rule) {
			t.Errorf("log does not name the broken rule %s", rule)
		}
	}
	if !strings.Contains(logs.String(), stats.RunID) {
		t.Error("log lines do not carry the run id")
	}
}

func TestRunner_ResumesFromState(t *testing.T) {
	runner, cfg, _ := newTestRunner(t)
	writeFile(t, cfg.DataDir, "movies_001.json", movieChunk1)
	writeFile(t, cfg.DataDir, "user_ratings_001.json", userChunk1)

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	writeFile(t, cfg.DataDir, "movies_002.json", movieChunk2)
	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if stats.MovieChunksSkipped != 1 || stats.MovieChunksProcessed != 1 {
		t.Errorf("movie chunks processed/skipped = %d/%d, want 1/1", stats.MovieChunksProcessed, stats.MovieChunksSkipped)
	}
	if stats.UserChunksSkipped != 1 || stats.RatingsFolded != 0 {
		t.Errorf("user chunk was folded twice: %+v", stats)
	}

	userStats, err := runner.Store().LoadUserStats()
	if err != nil {
		t.Fatal(err)
	}
	if got := userStats.MovieRatings["m1"].Count; got != 3 {
		t.Errorf("m1 rating count = %d, want 3", got)
	}
}

// outputRecommendations reads the recommendations array of every generated
// file, keyed by filename.
func outputRecommendations(t *testing.T, dir string) map[string]string {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		t.Fatal(err)
	}

	recs := make(map[string]string)
	for _, path := range paths {
		name := filepath.Base(path)
		if name == models.IndexFilename {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		var file struct {
			Recommendations json.RawMessage `json:"recommendations"`
		}
		if err := json.Unmarshal(data, &file); err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		recs[name] = string(file.Recommendations)
	}
	return recs
}

func TestRunner_RerunFromScratchIsIdentical(t *testing.T) {
	runner, cfg, _ := newTestRunner(t)
	writeFile(t, cfg.DataDir, "movies_001.json", movieChunk1)
	writeFile(t, cfg.DataDir, "movies_002.json", movieChunk2)
	writeFile(t, cfg.DataDir, "user_ratings_001.json", userChunk1)

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	first := outputRecommendations(t, cfg.OutputDir)
	if len(first) == 0 {
		t.Fatal("no recommendation files generated")
	}

	if err := runner.Store().Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if stats.MovieChunksProcessed != 2 || stats.UserChunksProcessed != 1 {
		t.Fatalf("second run did not start from scratch: %+v", stats)
	}

	second := outputRecommendations(t, cfg.OutputDir)
	if !reflect.DeepEqual(first, second) {
		for name, recs := range first {
			if second[name] != recs {
				t.Errorf("%s recommendations differ between runs", name)
			}
		}
		if len(first) != len(second) {
			t.Errorf("file count = %d then %d", len(first), len(second))
		}
	}
}

func TestRunner_UsersBeforeMovies(t *testing.T) {
	runner, cfg, _ := newTestRunner(t)
	writeFile(t, cfg.DataDir, "user_ratings_001.json", userChunk1)

	err := runner.ProcessUsers(context.Background(), &RunStats{})
	if !errors.Is(err, ErrMovieIndexMissing) {
		t.Errorf("ProcessUsers() error = %v, want ErrMovieIndexMissing", err)
	}
}

func TestRunner_MalformedChunk(t *testing.T) {
	runner, cfg, _ := newTestRunner(t)
	writeFile(t, cfg.DataDir, "movies_001.json", `{"oops": true}`)

	if _, err := runner.Run(context.Background()); err == nil {
		t.Error("expected error for a chunk that is not a JSON array")
	}
}

func TestRunner_CanceledContext(t *testing.T) {
	runner, cfg, _ := newTestRunner(t)
	writeFile(t, cfg.DataDir, "movies_001.json", movieChunk1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestNewRunner_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopN = 0
	if _, err := NewRunner(cfg, logging.NewTestLogger(&bytes.Buffer{})); err == nil {
		t.Error("expected error for top_n = 0")
	}
}
