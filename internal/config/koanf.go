// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir:           "data",
			MovieChunkPattern: "movies_*.json",
			UserChunkPattern:  "user_ratings_*.json",
			StateDir:          "_state",
			OutputDir:         "shared_recommendations",
			RatingsFile:       "data/ratings.json",
			MetricsFile:       "",
		},
		Pipeline: PipelineConfig{
			HighRatingThreshold:     4.0,
			MinSegmentUsers:         3,
			MinGenreMovies:          5,
			MinPopularRatings:       3,
			MinAcclaimedHighRatings: 2,
			TopN:                    20,
			DescriptionMaxLen:       200,
			CastLimit:               3,
		},
		Recommend: RecommendConfig{
			MaxKeywordFiles: 3,
			ColdStartFile:   "fallback_popular.json",
			CacheSize:       64,
			CacheTTL:        10 * time.Minute,
		},
		LLM: LLMConfig{
			APIBase:                 "http://localhost:11434/v1",
			APIKey:                  "",
			Model:                   "gpt-3.5-turbo",
			Temperature:             0.3,
			ConversationTemperature: 0.8,
			Timeout:                 60 * time.Second,
			MaxRetries:              3,
			RetryBaseDelay:          time.Second,
			RequestsPerSecond:       2,
			BreakerFailures:         5,
			BreakerTimeout:          30 * time.Second,
		},
		Conversation: ConversationConfig{
			MinRounds:     3,
			MaxRounds:     10,
			DefaultTopN:   5,
			HistoryWindow: 800,
			QuitWords:     []string{"done", "skip", "that's it", "bye", "goodbye", "quit", "exit", "stop"},
			LogDir:        "logs",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
			File:   "",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// OUTPUT_DIR -> paths.output_dir
	// LLM_MODEL  -> llm.model
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"conversation.quit_words",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while YAML lists arrive as slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Paths
	"data_dir":            "paths.data_dir",
	"movie_chunk_pattern": "paths.movie_chunk_pattern",
	"user_chunk_pattern":  "paths.user_chunk_pattern",
	"state_dir":           "paths.state_dir",
	"output_dir":          "paths.output_dir",
	"ratings_file":        "paths.ratings_file",
	"metrics_file":        "paths.metrics_file",

	// Pipeline thresholds
	"pipeline_high_rating_threshold":      "pipeline.high_rating_threshold",
	"pipeline_min_segment_users":          "pipeline.min_segment_users",
	"pipeline_min_genre_movies":           "pipeline.min_genre_movies",
	"pipeline_min_popular_ratings":        "pipeline.min_popular_ratings",
	"pipeline_min_acclaimed_high_ratings": "pipeline.min_acclaimed_high_ratings",
	"pipeline_top_n":                      "pipeline.top_n",
	"pipeline_description_max_len":        "pipeline.description_max_len",
	"pipeline_cast_limit":                 "pipeline.cast_limit",

	// Matcher
	"recommend_max_keyword_files": "recommend.max_keyword_files",
	"recommend_cold_start_file":   "recommend.cold_start_file",
	"recommend_cache_size":        "recommend.cache_size",
	"recommend_cache_ttl":         "recommend.cache_ttl",

	// LLM endpoint (OPENAI_* accepted for compatibility with existing tooling)
	"llm_api_base":                 "llm.api_base",
	"openai_base_url":              "llm.api_base",
	"llm_api_key":                  "llm.api_key",
	"openai_api_key":               "llm.api_key",
	"llm_model":                    "llm.model",
	"llm_temperature":              "llm.temperature",
	"llm_conversation_temperature": "llm.conversation_temperature",
	"llm_timeout":                  "llm.timeout",
	"llm_max_retries":              "llm.max_retries",
	"llm_retry_base_delay":         "llm.retry_base_delay",
	"llm_requests_per_second":      "llm.requests_per_second",
	"llm_breaker_failures":         "llm.breaker_failures",
	"llm_breaker_timeout":          "llm.breaker_timeout",

	// Conversation
	"chat_min_rounds":     "conversation.min_rounds",
	"chat_max_rounds":     "conversation.max_rounds",
	"chat_default_top_n":  "conversation.default_top_n",
	"chat_history_window": "conversation.history_window",
	"chat_quit_words":     "conversation.quit_words",
	"chat_log_dir":        "conversation.log_dir",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
	"log_file":   "logging.file",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped keys return an empty string so random environment variables
// never pollute the configuration.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
