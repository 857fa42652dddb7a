// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// State file names inside the state directory.
const (
	MovieIndexFilename = "movies_index.json"
	UserStatsFilename  = "user_stats.json"
)

var (
	// ErrStateMissing is returned when a state file has not been written yet.
	ErrStateMissing = errors.New("pipeline state not found")

	// ErrMovieIndexMissing is returned when user chunks are folded before
	// any movie chunk. The phases must run in order.
	ErrMovieIndexMissing = errors.New("movie index not found, process movie chunks first")
)

// StateStore persists the intermediate pipeline state. Every save replaces
// the whole file, so an interrupted run never leaves a half-written state.
type StateStore struct {
	dir string
}

// NewStateStore returns a store rooted at dir.
func NewStateStore(dir string) *StateStore {
	return &StateStore{dir: dir}
}

// Dir returns the state directory.
func (s *StateStore) Dir() string {
	return s.dir
}

// LoadMovieIndex reads the movie index. It returns ErrStateMissing when no
// movie chunk has been processed yet.
func (s *StateStore) LoadMovieIndex() (*MovieIndex, error) {
	idx := NewMovieIndex()
	if err := readJSON(filepath.Join(s.dir, MovieIndexFilename), idx); err != nil {
		return nil, err
	}
	idx.normalize()
	return idx, nil
}

// SaveMovieIndex writes the movie index.
func (s *StateStore) SaveMovieIndex(idx *MovieIndex) error {
	return writeJSON(filepath.Join(s.dir, MovieIndexFilename), idx)
}

// LoadUserStats reads the user statistics. It returns ErrStateMissing when
// no user chunk has been processed yet.
func (s *StateStore) LoadUserStats() (*UserStats, error) {
	stats := NewUserStats()
	if err := readJSON(filepath.Join(s.dir, UserStatsFilename), stats); err != nil {
		return nil, err
	}
	stats.normalize()
	return stats, nil
}

// SaveUserStats writes the user statistics.
func (s *StateStore) SaveUserStats(stats *UserStats) error {
	return writeJSON(filepath.Join(s.dir, UserStatsFilename), stats)
}

// Reset removes both state files so the next run starts from scratch.
func (s *StateStore) Reset() error {
	for _, name := range []string{MovieIndexFilename, UserStatsFilename} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

// normalize fills maps that a hand-edited or partial state file left nil.
func (m *MovieIndex) normalize() {
	for _, t := range []*Tally{&m.Genres, &m.Moods, &m.Eras} {
		if t.Counts == nil {
			*t = NewTally()
		}
	}
	if m.MoviesByGenre == nil {
		m.MoviesByGenre = map[string][]string{}
	}
	if m.MoviesByMood == nil {
		m.MoviesByMood = map[string][]string{}
	}
	if m.MoviesByEra == nil {
		m.MoviesByEra = map[string][]string{}
	}
	if m.Lookup == nil {
		m.Lookup = map[string]MovieInfo{}
	}
}

func (u *UserStats) normalize() {
	if u.Segments == nil {
		u.Segments = map[string]*Segment{}
	}
	if u.MovieRatings == nil {
		u.MovieRatings = map[string]*RatingStats{}
	}
	if u.SegmentPreferences == nil {
		u.SegmentPreferences = map[string]*SegmentPreferences{}
	}
	// Recover an order for segments missing from segment_order.
	for tag := range u.Segments {
		if !containsString(u.SegmentOrder, tag) {
			u.SegmentOrder = append(u.SegmentOrder, tag)
		}
	}
}

// readJSON decodes path into v, mapping a missing file to ErrStateMissing.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is built from configured directories
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrStateMissing, path)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// WriteJSON pretty-prints v to path through a temporary file and a rename,
// so readers never see a partial file.
func WriteJSON(path string, v any) error {
	return writeJSON(path, v)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
