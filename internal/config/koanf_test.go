// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns the reference layout
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Paths.OutputDir != "shared_recommendations" {
		t.Errorf("Paths.OutputDir = %q, want shared_recommendations", cfg.Paths.OutputDir)
	}
	if cfg.Paths.StateDir != "_state" {
		t.Errorf("Paths.StateDir = %q, want _state", cfg.Paths.StateDir)
	}
	if cfg.Pipeline.HighRatingThreshold != 4.0 {
		t.Errorf("Pipeline.HighRatingThreshold = %v, want 4.0", cfg.Pipeline.HighRatingThreshold)
	}
	if cfg.Pipeline.TopN != 20 {
		t.Errorf("Pipeline.TopN = %d, want 20", cfg.Pipeline.TopN)
	}
	if cfg.Recommend.MaxKeywordFiles != 3 {
		t.Errorf("Recommend.MaxKeywordFiles = %d, want 3", cfg.Recommend.MaxKeywordFiles)
	}
	if cfg.LLM.APIBase != "http://localhost:11434/v1" {
		t.Errorf("LLM.APIBase = %q", cfg.LLM.APIBase)
	}
	if cfg.LLM.Temperature != 0.3 || cfg.LLM.ConversationTemperature != 0.8 {
		t.Errorf("LLM temperatures = %v/%v, want 0.3/0.8", cfg.LLM.Temperature, cfg.LLM.ConversationTemperature)
	}
	if cfg.Conversation.MinRounds != 3 || cfg.Conversation.MaxRounds != 10 {
		t.Errorf("Conversation rounds = %d/%d, want 3/10", cfg.Conversation.MinRounds, cfg.Conversation.MaxRounds)
	}
	if len(cfg.Conversation.QuitWords) != 8 {
		t.Errorf("len(QuitWords) = %d, want 8", len(cfg.Conversation.QuitWords))
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Recommend.CacheTTL != 10*time.Minute {
		t.Errorf("Recommend.CacheTTL = %v, want 10m", cfg.Recommend.CacheTTL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
paths:
  output_dir: /tmp/recs
pipeline:
  top_n: 10
llm:
  model: llama3
  timeout: 15s
conversation:
  quit_words: [done, adios]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Paths.OutputDir != "/tmp/recs" {
		t.Errorf("Paths.OutputDir = %q, want /tmp/recs", cfg.Paths.OutputDir)
	}
	if cfg.Pipeline.TopN != 10 {
		t.Errorf("Pipeline.TopN = %d, want 10", cfg.Pipeline.TopN)
	}
	if cfg.LLM.Model != "llama3" {
		t.Errorf("LLM.Model = %q, want llama3", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != 15*time.Second {
		t.Errorf("LLM.Timeout = %v, want 15s", cfg.LLM.Timeout)
	}
	if !reflect.DeepEqual(cfg.Conversation.QuitWords, []string{"done", "adios"}) {
		t.Errorf("QuitWords = %v, want [done adios]", cfg.Conversation.QuitWords)
	}
	// Untouched sections keep their defaults.
	if cfg.Paths.StateDir != "_state" {
		t.Errorf("Paths.StateDir = %q, want _state", cfg.Paths.StateDir)
	}
}

func TestLoadWithKoanf_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  model: from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LLM_MODEL", "from-env")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CHAT_QUIT_WORDS", "done, later ,")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SOME_UNRELATED_VAR", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.LLM.Model != "from-env" {
		t.Errorf("LLM.Model = %q, want from-env", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("LLM.APIKey = %q, want sk-test", cfg.LLM.APIKey)
	}
	if !reflect.DeepEqual(cfg.Conversation.QuitWords, []string{"done", "later"}) {
		t.Errorf("QuitWords = %v, want [done later]", cfg.Conversation.QuitWords)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_InvalidConfig(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("expected validation error for bad LOG_LEVEL")
	}
	if !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("error = %v, want mention of LOG_LEVEL", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"OUTPUT_DIR", "paths.output_dir"},
		{"LLM_API_BASE", "llm.api_base"},
		{"OPENAI_BASE_URL", "llm.api_base"},
		{"CHAT_MAX_ROUNDS", "conversation.max_rounds"},
		{"log_format", "logging.format"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}
