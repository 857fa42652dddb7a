// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Dir is the directory holding index.json and the recommendation files.
	Dir string `json:"dir"`

	// MaxKeywordFiles caps how many files a free-text query may add.
	MaxKeywordFiles int `json:"max_keyword_files"`

	// ColdStartFile is served when a query matches nothing.
	ColdStartFile string `json:"cold_start_file"`

	// Cache contains file cache parameters.
	Cache CacheConfig `json:"cache"`
}

// CacheConfig contains caching parameters for loaded recommendation files.
type CacheConfig struct {
	// Enabled turns on the file cache.
	Enabled bool `json:"enabled"`

	// Size is the maximum number of cached files.
	Size int `json:"size"`

	// TTL is how long a loaded file stays cached. Zero keeps it until evicted.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns a configuration reading shared_recommendations/.
func DefaultConfig() *Config {
	return &Config{
		Dir:             "shared_recommendations",
		MaxKeywordFiles: 3,
		ColdStartFile:   models.FallbackPopularFilename,
		Cache: CacheConfig{
			Enabled: true,
			Size:    64,
			TTL:     10 * time.Minute,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("dir is required")
	}
	if c.MaxKeywordFiles < 0 {
		return fmt.Errorf("max_keyword_files must be non-negative, got %d", c.MaxKeywordFiles)
	}
	if c.ColdStartFile == "" {
		return fmt.Errorf("cold_start_file is required")
	}
	if filepath.Base(c.ColdStartFile) != c.ColdStartFile || !strings.HasSuffix(c.ColdStartFile, ".json") {
		return fmt.Errorf("cold_start_file must be a plain .json file name, got %q", c.ColdStartFile)
	}
	if c.Cache.Enabled && c.Cache.Size < 1 {
		return fmt.Errorf("cache.size must be positive when the cache is enabled, got %d", c.Cache.Size)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative, got %v", c.Cache.TTL)
	}
	return nil
}
