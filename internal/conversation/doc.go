// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package conversation discovers movie preferences through casual chat.

The user never gets asked what movies they like. A Session keeps a short
conversation going and, after every message, asks an Inferrer what the
exchange so far says about the user's segment, mood, genre and era. Values
are normalized onto the facet enumerations the recommendation files are
generated for, and non-empty values from later turns replace earlier ones.

After MinRounds the user is offered recommendations. The session ends on a
quit word, a declined offer, MaxRounds or end of input, and the merged
preferences become a recommend.Query. Nothing inferred means a cold-start
query.

LLMInferrer backs the Inferrer with an OpenAI-compatible chat endpoint via
internal/llm. It never fails a turn: extraction errors yield low-confidence
empty preferences and reply errors yield a canned line, so a flaky endpoint
degrades the chat instead of ending it.
*/
package conversation
