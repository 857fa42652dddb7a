// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"path/filepath"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}

	if err := c.validatePipeline(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateLLM(); err != nil {
		return err
	}

	if err := c.validateConversation(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	if c.Paths.StateDir == "" {
		return fmt.Errorf("STATE_DIR is required")
	}
	for name, pattern := range map[string]string{
		"MOVIE_CHUNK_PATTERN": c.Paths.MovieChunkPattern,
		"USER_CHUNK_PATTERN":  c.Paths.UserChunkPattern,
	} {
		if pattern == "" {
			return fmt.Errorf("%s is required", name)
		}
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%s is not a valid glob pattern: %w", name, err)
		}
	}
	return nil
}

func (c *Config) validatePipeline() error {
	p := c.Pipeline
	if p.HighRatingThreshold <= 0 || p.HighRatingThreshold > 5 {
		return fmt.Errorf("PIPELINE_HIGH_RATING_THRESHOLD must be in (0, 5], got %v", p.HighRatingThreshold)
	}
	if p.TopN < 1 {
		return fmt.Errorf("PIPELINE_TOP_N must be at least 1, got %d", p.TopN)
	}
	if p.DescriptionMaxLen < 1 {
		return fmt.Errorf("PIPELINE_DESCRIPTION_MAX_LEN must be at least 1, got %d", p.DescriptionMaxLen)
	}
	if p.MinSegmentUsers < 0 || p.MinGenreMovies < 0 || p.MinPopularRatings < 0 ||
		p.MinAcclaimedHighRatings < 0 || p.CastLimit < 0 {
		return fmt.Errorf("pipeline minimums must not be negative")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.MaxKeywordFiles < 0 {
		return fmt.Errorf("RECOMMEND_MAX_KEYWORD_FILES must not be negative, got %d", c.Recommend.MaxKeywordFiles)
	}
	if c.Recommend.ColdStartFile == "" {
		return fmt.Errorf("RECOMMEND_COLD_START_FILE is required")
	}
	if c.Recommend.CacheSize < 1 {
		return fmt.Errorf("RECOMMEND_CACHE_SIZE must be at least 1, got %d", c.Recommend.CacheSize)
	}
	if c.Recommend.CacheTTL < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must not be negative")
	}
	return nil
}

// validateLLM checks the chat endpoint settings. The endpoint is only
// contacted by the chat command, but a malformed base URL is reported early.
func (c *Config) validateLLM() error {
	if err := validateAPIBaseURL(c.LLM.APIBase, "LLM_API_BASE"); err != nil {
		return err
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	for name, temp := range map[string]float64{
		"LLM_TEMPERATURE":              c.LLM.Temperature,
		"LLM_CONVERSATION_TEMPERATURE": c.LLM.ConversationTemperature,
	} {
		if temp < 0 || temp > 2 {
			return fmt.Errorf("%s must be between 0 and 2, got %v", name, temp)
		}
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("LLM_MAX_RETRIES must not be negative, got %d", c.LLM.MaxRetries)
	}
	if c.LLM.RequestsPerSecond <= 0 {
		return fmt.Errorf("LLM_REQUESTS_PER_SECOND must be positive, got %v", c.LLM.RequestsPerSecond)
	}
	if c.LLM.BreakerFailures == 0 {
		return fmt.Errorf("LLM_BREAKER_FAILURES must be at least 1")
	}
	return nil
}

func (c *Config) validateConversation() error {
	conv := c.Conversation
	if conv.MinRounds < 1 {
		return fmt.Errorf("CHAT_MIN_ROUNDS must be at least 1, got %d", conv.MinRounds)
	}
	if conv.MaxRounds < conv.MinRounds {
		return fmt.Errorf("CHAT_MAX_ROUNDS (%d) must be >= CHAT_MIN_ROUNDS (%d)", conv.MaxRounds, conv.MinRounds)
	}
	if conv.DefaultTopN < 1 {
		return fmt.Errorf("CHAT_DEFAULT_TOP_N must be at least 1, got %d", conv.DefaultTopN)
	}
	if conv.HistoryWindow < 1 {
		return fmt.Errorf("CHAT_HISTORY_WINDOW must be at least 1, got %d", conv.HistoryWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
