// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import "time"

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults matching the reference data layout
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
type Config struct {
	Paths        PathsConfig        `koanf:"paths"`
	Pipeline     PipelineConfig     `koanf:"pipeline"`
	Recommend    RecommendConfig    `koanf:"recommend"`
	LLM          LLMConfig          `koanf:"llm"`
	Conversation ConversationConfig `koanf:"conversation"`
	Logging      LoggingConfig      `koanf:"logging"`
}

// PathsConfig locates every file the batch pipeline and the query tools touch.
type PathsConfig struct {
	// DataDir holds the raw chunk files and the prime ratings dataset.
	DataDir string `koanf:"data_dir"`

	// MovieChunkPattern and UserChunkPattern are glob patterns relative to DataDir.
	MovieChunkPattern string `koanf:"movie_chunk_pattern"`
	UserChunkPattern  string `koanf:"user_chunk_pattern"`

	// StateDir stores the intermediate movie index and user statistics.
	StateDir string `koanf:"state_dir"`

	// OutputDir receives the recommendation files and index.json.
	OutputDir string `koanf:"output_dir"`

	// RatingsFile is the user -> title -> rating dataset for the prime path.
	RatingsFile string `koanf:"ratings_file"`

	// MetricsFile, when set, receives a Prometheus textfile snapshot after each command.
	MetricsFile string `koanf:"metrics_file"`
}

// PipelineConfig holds the aggregation thresholds.
type PipelineConfig struct {
	HighRatingThreshold     float64 `koanf:"high_rating_threshold"`
	MinSegmentUsers         int     `koanf:"min_segment_users"`
	MinGenreMovies          int     `koanf:"min_genre_movies"`
	MinPopularRatings       int     `koanf:"min_popular_ratings"`
	MinAcclaimedHighRatings int     `koanf:"min_acclaimed_high_ratings"`
	TopN                    int     `koanf:"top_n"`
	DescriptionMaxLen       int     `koanf:"description_max_len"`
	CastLimit               int     `koanf:"cast_limit"`
}

// RecommendConfig configures the query-time matcher.
type RecommendConfig struct {
	// MaxKeywordFiles caps how many free-text matches join the result.
	MaxKeywordFiles int `koanf:"max_keyword_files"`

	// ColdStartFile is served when nothing matched.
	ColdStartFile string `koanf:"cold_start_file"`

	// CacheSize is the number of parsed recommendation files kept in memory.
	CacheSize int `koanf:"cache_size"`

	// CacheTTL bounds how long a parsed file is reused. Zero disables expiry.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// LLMConfig configures the OpenAI-compatible chat completions endpoint.
type LLMConfig struct {
	APIBase string `koanf:"api_base"`
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`

	// Temperature is used for preference extraction.
	Temperature float64 `koanf:"temperature"`

	// ConversationTemperature is used for the small-talk replies.
	ConversationTemperature float64 `koanf:"conversation_temperature"`

	Timeout           time.Duration `koanf:"timeout"`
	MaxRetries        int           `koanf:"max_retries"`
	RetryBaseDelay    time.Duration `koanf:"retry_base_delay"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`

	// BreakerFailures consecutive failures open the circuit for BreakerTimeout.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// ConversationConfig configures the interactive preference discovery session.
type ConversationConfig struct {
	MinRounds     int      `koanf:"min_rounds"`
	MaxRounds     int      `koanf:"max_rounds"`
	DefaultTopN   int      `koanf:"default_top_n"`
	HistoryWindow int      `koanf:"history_window"`
	QuitWords     []string `koanf:"quit_words"`

	// LogDir receives one log file per chat session.
	LogDir string `koanf:"log_dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
	File   string `koanf:"file"`
}
