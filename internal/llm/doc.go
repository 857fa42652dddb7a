// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package llm is a small client for OpenAI-compatible chat completion
// endpoints (OpenAI, Ollama, LM Studio, vLLM).
//
// Requests are rate limited on the client side, retried on transient
// failures and guarded by a circuit breaker so a dead endpoint fails fast
// instead of stalling every conversational turn:
//
//	client, err := llm.NewClient(&cfg.LLM, logger)
//	reply, err := client.Complete(ctx, "converse", []llm.Message{
//	    {Role: llm.RoleSystem, Content: prompt},
//	    {Role: llm.RoleUser, Content: input},
//	}, cfg.LLM.ConversationTemperature)
//
// Breaker state and transitions are exported through internal/metrics under
// the name "llm-chat".
package llm
