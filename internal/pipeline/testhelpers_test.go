// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/reelmatch/internal/models"
)

func movie(id, title string, year int, genres, moods []string, era string) models.MovieRecord {
	return models.MovieRecord{
		ItemID: id,
		Title:  title,
		Year:   year,
		Tags:   models.MovieTags{Genre: genres, Mood: moods, Era: era},
		Content: models.MovieContent{
			Description: title + " description",
			Director:    "Director " + id,
			Cast:        []string{"A", "B", "C", "D"},
		},
	}
}

func user(id string, tags []string, scores ...models.Score) UserEntry {
	return UserEntry{ID: id, Record: models.UserRecord{Tags: tags, Scores: scores}}
}

func rate(item string, score float64) models.Score {
	return models.Score{ItemID: item, Score: score}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func findArtifact(out *Output, filename string) *models.RecommendationFile {
	for _, a := range out.Files {
		if a.Filename == filename {
			return a.File
		}
	}
	return nil
}
