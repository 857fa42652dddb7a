// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty output dir", func(c *Config) { c.Paths.OutputDir = "" }, "OUTPUT_DIR"},
		{"bad glob", func(c *Config) { c.Paths.MovieChunkPattern = "movies_[.json" }, "MOVIE_CHUNK_PATTERN"},
		{"threshold above five", func(c *Config) { c.Pipeline.HighRatingThreshold = 6 }, "PIPELINE_HIGH_RATING_THRESHOLD"},
		{"zero top n", func(c *Config) { c.Pipeline.TopN = 0 }, "PIPELINE_TOP_N"},
		{"negative minimum", func(c *Config) { c.Pipeline.MinSegmentUsers = -1 }, "must not be negative"},
		{"no cold start file", func(c *Config) { c.Recommend.ColdStartFile = "" }, "RECOMMEND_COLD_START_FILE"},
		{"zero cache", func(c *Config) { c.Recommend.CacheSize = 0 }, "RECOMMEND_CACHE_SIZE"},
		{"ftp api base", func(c *Config) { c.LLM.APIBase = "ftp://example.com" }, "scheme"},
		{"api base with query", func(c *Config) { c.LLM.APIBase = "http://localhost/v1?x=1" }, "query"},
		{"api base with version path", func(c *Config) { c.LLM.APIBase = "https://api.openai.com/v1" }, ""},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 3 }, "LLM_TEMPERATURE"},
		{"no rate", func(c *Config) { c.LLM.RequestsPerSecond = 0 }, "LLM_REQUESTS_PER_SECOND"},
		{"max below min rounds", func(c *Config) { c.Conversation.MaxRounds = 2 }, "CHAT_MAX_ROUNDS"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
