// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/models"
)

var (
	// ErrIndexMissing is returned when index.json does not exist. The
	// aggregation pipeline has to run first.
	ErrIndexMissing = errors.New("recommendation index not found")

	// ErrFileMissing is returned when a recommendation file does not exist.
	ErrFileMissing = errors.New("recommendation file not found")

	// ErrDuplicateFacet is returned when the index lists two files with the
	// same type and tag.
	ErrDuplicateFacet = errors.New("duplicate facet in recommendation index")
)

// Store reads the generated artifacts. Files are treated as an immutable
// snapshot and may be cached.
type Store struct {
	dir   string
	files *cache.LRU[*models.RecommendationFile]
}

// NewStore returns a store reading dir. A nil cache config disables caching.
func NewStore(dir string, cacheCfg *CacheConfig) *Store {
	s := &Store{dir: dir}
	if cacheCfg != nil && cacheCfg.Enabled {
		s.files = cache.NewLRU[*models.RecommendationFile](cacheCfg.Size, cacheCfg.TTL)
	}
	return s
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

// LoadIndex reads index.json. It fails with ErrIndexMissing when the file is
// absent and with ErrDuplicateFacet when two entries share type and tag.
func (s *Store) LoadIndex() (*models.MasterIndex, error) {
	var index models.MasterIndex
	if err := s.read(models.IndexFilename, &index, ErrIndexMissing); err != nil {
		return nil, err
	}
	if err := checkDuplicateFacets(&index); err != nil {
		return nil, err
	}
	return &index, nil
}

// LoadFile reads one recommendation file. It fails with ErrFileMissing when
// the file is absent, including when the index lists it.
func (s *Store) LoadFile(name string) (*models.RecommendationFile, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid recommendation file name %q", name)
	}

	load := func() (*models.RecommendationFile, error) {
		var file models.RecommendationFile
		if err := s.read(name, &file, ErrFileMissing); err != nil {
			return nil, err
		}
		return &file, nil
	}

	if s.files == nil {
		return load()
	}

	file, hit, err := s.files.GetOrLoad(name, load)
	if err != nil {
		return nil, err
	}
	if hit {
		metrics.FileCacheHits.Inc()
	} else {
		metrics.FileCacheMisses.Inc()
	}
	return file, nil
}

// CacheStats returns file cache statistics; zero when caching is off.
func (s *Store) CacheStats() cache.Stats {
	if s.files == nil {
		return cache.Stats{}
	}
	return s.files.Stats()
}

func (s *Store) read(name string, v any, missing error) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path) //nolint:gosec // name is checked to be a plain file name
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", missing, path)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// checkDuplicateFacets rejects an index in which a (type, tag) pair appears
// twice. Tags compare case-insensitively, the way queries resolve them.
func checkDuplicateFacets(index *models.MasterIndex) error {
	seen := make(map[string]string, len(index.Files))
	for _, entry := range index.Files {
		key := string(entry.Type) + "\x00" + strings.ToLower(entry.Tag)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s %q in %s and %s", ErrDuplicateFacet, entry.Type, entry.Tag, prev, entry.Filename)
		}
		seen[key] = entry.Filename
	}
	return nil
}
