// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Command reelmatch builds and serves facet-indexed movie recommendations.

# Commands

	process            fold data chunks and generate recommendation files
	recommend          query the generated recommendation files
	prime              collaborative filtering recommendations for one user
	demo               run the canned recommendation scenarios
	chat               discover preferences in a conversation, then recommend
	generate-ratings   write a synthetic user ratings chunk

The batch flow is process once (and again whenever new chunks land in the
data directory), then query as often as needed:

	reelmatch process
	reelmatch recommend -segment gamer -genre Action -top 5
	reelmatch recommend -query "sci-fi adventure space"

process is resumable. Chunks already folded into the saved state are
skipped, so an interrupted run picks up where it stopped; -reset starts over.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

The config file is the first of config.yaml, config.yml,
/etc/reelmatch/config.yaml found, or the path in CONFIG_PATH or -config.
Common environment variables:

	DATA_DIR=data                     # movie and user rating chunks
	OUTPUT_DIR=shared_recommendations # generated files and index.json
	STATE_DIR=_state                  # resumable pipeline state
	METRICS_FILE=                     # Prometheus textfile written after each command
	LLM_API_BASE=http://localhost:11434/v1
	LLM_API_KEY=
	LLM_MODEL=gpt-3.5-turbo
	LOG_LEVEL=info
	LOG_FORMAT=json

# Chat

chat talks to any OpenAI-compatible endpoint (OpenAI, Ollama, LM Studio).
Logs go to a file under conversation.log_dir so they never interleave with
the conversation. -test-config checks the endpoint with one extraction
request; -demo skips the conversation.
*/
package main
