// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tomtom215/reelmatch/internal/models"
)

func TestStateStore_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	store := NewStateStore(filepath.Join(t.TempDir(), "_state"))

	idx := NewMovieIndex()
	FoldMovieChunk(idx, "movies_001.json", []models.MovieRecord{
		movie("m1", "One", 1991, []string{"Action", "Drama"}, []string{"Exciting"}, "90s"),
	}, cfg)
	stats := NewUserStats()
	if _, err := FoldUserChunk(stats, idx, "user_ratings_001.json", []UserEntry{
		user("u1", []string{"gamer", "parent"}, rate("m1", 5)),
	}, cfg); err != nil {
		t.Fatal(err)
	}

	if err := store.SaveMovieIndex(idx); err != nil {
		t.Fatalf("SaveMovieIndex() error = %v", err)
	}
	if err := store.SaveUserStats(stats); err != nil {
		t.Fatalf("SaveUserStats() error = %v", err)
	}

	gotIdx, err := store.LoadMovieIndex()
	if err != nil {
		t.Fatalf("LoadMovieIndex() error = %v", err)
	}
	if !reflect.DeepEqual(gotIdx, idx) {
		t.Errorf("movie index changed across save/load:\n got %+v\nwant %+v", gotIdx, idx)
	}

	gotStats, err := store.LoadUserStats()
	if err != nil {
		t.Fatalf("LoadUserStats() error = %v", err)
	}
	if !reflect.DeepEqual(gotStats.SegmentOrder, []string{"gamer", "parent"}) {
		t.Errorf("segment order = %v", gotStats.SegmentOrder)
	}
	if gotStats.MovieRatings["m1"].HighCount != 1 {
		t.Errorf("m1 ratings = %+v", gotStats.MovieRatings["m1"])
	}

	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("state dir has %d entries, want 2 (no temp files left)", len(entries))
	}
}

func TestStateStore_Missing(t *testing.T) {
	store := NewStateStore(t.TempDir())

	if _, err := store.LoadMovieIndex(); !errors.Is(err, ErrStateMissing) {
		t.Errorf("LoadMovieIndex() error = %v, want ErrStateMissing", err)
	}
	if _, err := store.LoadUserStats(); !errors.Is(err, ErrStateMissing) {
		t.Errorf("LoadUserStats() error = %v, want ErrStateMissing", err)
	}
}

func TestStateStore_Corrupt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, MovieIndexFilename, "{not json")

	_, err := NewStateStore(dir).LoadMovieIndex()
	if err == nil || errors.Is(err, ErrStateMissing) {
		t.Errorf("LoadMovieIndex() error = %v, want a decode error", err)
	}
}

func TestStateStore_Reset(t *testing.T) {
	dir := t.TempDir()
	store := NewStateStore(dir)
	if err := store.SaveMovieIndex(NewMovieIndex()); err != nil {
		t.Fatal(err)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("second Reset() error = %v", err)
	}
	if _, err := store.LoadMovieIndex(); !errors.Is(err, ErrStateMissing) {
		t.Errorf("state still present after Reset: %v", err)
	}
}
