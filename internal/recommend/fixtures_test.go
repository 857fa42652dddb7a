// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
)

type fixtureFile struct {
	name     string
	facet    models.FacetType
	tag      string
	desc     string
	keywords []string
	items    []string
}

var fixtureFiles = []fixtureFile{
	{"segment_gamer.json", models.FacetSegment, "gamer", "Movies highly rated by gamer users", []string{"gamer", "action", "exciting"}, []string{"a", "b", "c"}},
	{"segment_gen_z.json", models.FacetSegment, "gen z", "Movies highly rated by gen z users", []string{"gen z", "comedy"}, []string{"g"}},
	{"mood_exciting.json", models.FacetMood, "exciting", "Movies perfect for a exciting mood", []string{"exciting", "Thrilling"}, []string{"b", "d"}},
	{"genre_action.json", models.FacetGenre, "Action", "Top Action movies", []string{"action", "Action"}, []string{"a", "e"}},
	{"genre_sci_fi.json", models.FacetGenre, "Sci-Fi", "Top Sci-Fi movies", []string{"sci-fi", "Sci-Fi"}, []string{"s"}},
	{"era_90s.json", models.FacetEra, "90s", "Top movies from the 90s era", []string{"90s"}, []string{"f", "a"}},
	{"era_classic.json", models.FacetEra, "Classic", "Top movies from the Classic era", []string{"classic", "Classic"}, nil},
	{models.FallbackPopularFilename, models.FacetFallback, "popular", models.FallbackPopularDescription, []string{"popular", "action"}, []string{"p1", "p2"}},
}

// writeFixture writes an index and the files above to a temp dir.
// Files in skip are listed in the index but not written.
func writeFixture(t *testing.T, files []fixtureFile, skip ...string) string {
	t.Helper()
	dir := t.TempDir()

	skipped := map[string]bool{}
	for _, s := range skip {
		skipped[s] = true
	}

	index := models.MasterIndex{GeneratedAt: "2026-03-01T00:00:00Z"}
	for _, f := range files {
		recs := make([]models.Recommendation, len(f.items))
		for i, id := range f.items {
			recs[i] = models.Recommendation{
				Rank:           i + 1,
				ItemID:         id,
				Title:          "Title " + id,
				Year:           1990 + i,
				Genre:          []string{"Action"},
				Mood:           []string{"Exciting"},
				Era:            "90s",
				WhyRecommended: "because " + id,
				Stats:          models.Stats{"avg_rating": 4.5},
			}
		}
		file := models.RecommendationFile{
			Meta: models.FileMeta{
				Tag:           f.tag,
				Type:          f.facet,
				Description:   f.desc,
				MatchKeywords: f.keywords,
				IsFallback:    f.facet == models.FacetFallback,
			},
			Recommendations: recs,
		}
		if !skipped[f.name] {
			writeJSONFile(t, filepath.Join(dir, f.name), file)
		}
		index.Files = append(index.Files, models.FileEntry{
			Filename:      f.name,
			Type:          f.facet,
			Tag:           f.tag,
			Description:   f.desc,
			MatchKeywords: f.keywords,
			ItemCount:     len(recs),
			IsFallback:    f.facet == models.FacetFallback,
		})
	}
	index.TotalRecommendationFiles = len(index.Files)
	writeJSONFile(t, filepath.Join(dir, models.IndexFilename), index)
	return dir
}

func writeJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Dir = dir
	engine, err := NewEngine(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func testLogger() zerolog.Logger {
	return logging.NewTestLogger(&bytes.Buffer{})
}

func resultIDs(results []Result) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ItemID
	}
	return ids
}
