// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config provides centralized configuration management for ReelMatch.

Configuration is layered with Koanf v2: struct defaults, then an optional YAML
file, then environment variables. The result is validated before use.

# Configuration Structure

  - PathsConfig: chunk locations, state directory, output directory, ratings file
  - PipelineConfig: aggregation thresholds (high rating, minimum segment size, top N)
  - RecommendConfig: keyword file limit, cold-start file, file cache
  - LLMConfig: OpenAI-compatible endpoint, retries, rate limit, circuit breaker
  - ConversationConfig: chat round limits, quit words, session log directory
  - LoggingConfig: level, format, optional log file

# Config File

The file is located through CONFIG_PATH or the first of config.yaml,
config.yml, /etc/reelmatch/config.yaml, /etc/reelmatch/config.yml:

	paths:
	  data_dir: data
	  output_dir: shared_recommendations
	llm:
	  api_base: http://localhost:11434/v1
	  model: llama3
	conversation:
	  min_rounds: 3
	  quit_words: [done, bye, quit]

# Environment Variables

Only mapped variables are read (see envMappings). Common ones:

	OUTPUT_DIR=shared_recommendations
	STATE_DIR=_state
	LLM_API_BASE=http://localhost:11434/v1
	LLM_API_KEY=sk-...
	LLM_MODEL=gpt-3.5-turbo
	CHAT_QUIT_WORDS=done,bye,quit
	LOG_LEVEL=debug

# Thread Safety

Config is read-only after LoadWithKoanf returns and is safe to share.
*/
package config
