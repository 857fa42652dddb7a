// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package conversation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/llm"
)

// DefaultReply is used when a generated reply is empty after cleaning.
const DefaultReply = "I see, tell me more."

// replyArtifacts are fragments of serialized message objects some
// endpoints leak into the content.
var replyArtifacts = []string{"content='", "additional_kwargs=", "response_metadata=", "true", "null"}

// Turn is the input to one preference inference.
type Turn struct {
	// Input is the user's latest message.
	Input string

	// Conversation is the full transcript so far, including Input.
	Conversation string

	Round     int
	MaxRounds int
}

// History is the input to reply generation.
type History struct {
	// Conversation is the transcript so far; empty before the greeting.
	Conversation string

	// LastInput is the user's latest message.
	LastInput string

	Round  int
	Topics []string
}

// Inferrer turns conversation into preferences and keeps the conversation
// going. Implementations degrade instead of failing: InferPreferences returns
// low-confidence empty preferences and NextPrompt a canned reply when the
// backend misbehaves. Only context cancellation is returned as an error.
type Inferrer interface {
	InferPreferences(ctx context.Context, turn Turn) (Preferences, error)
	NextPrompt(ctx context.Context, history History) (string, error)
}

// Completer is the part of *llm.Client the inferrer needs.
type Completer interface {
	Complete(ctx context.Context, purpose string, messages []llm.Message, temperature float64) (string, error)
}

// LLMInferrer implements Inferrer on a chat completion endpoint. Extraction
// runs at the configured temperature, replies at the warmer conversation
// temperature.
type LLMInferrer struct {
	client                  Completer
	temperature             float64
	conversationTemperature float64
	historyWindow           int
	systemPrompt            string
	pick                    func(int) int
	logger                  zerolog.Logger
}

// NewLLMInferrer creates an inferrer from the llm and conversation settings.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLLMInferrer(client Completer, cfg *config.Config, logger zerolog.Logger) *LLMInferrer {
	return &LLMInferrer{
		client:                  client,
		temperature:             cfg.LLM.Temperature,
		conversationTemperature: cfg.LLM.ConversationTemperature,
		historyWindow:           cfg.Conversation.HistoryWindow,
		systemPrompt:            extractionSystemPrompt(),
		pick:                    rand.IntN,
		logger:                  logger.With().Str("component", "inferrer").Logger(),
	}
}

// InferPreferences asks the model for the facets the conversation suggests
// and normalizes them against the known values.
//
//nolint:gocritic // hugeParam: turn passed by value like a request
func (i *LLMInferrer) InferPreferences(ctx context.Context, turn Turn) (Preferences, error) {
	i.logger.Info().Int("round", turn.Round).Str("input", truncate(turn.Input, 100)).Msg("Parsing preferences")

	full := turn.Conversation
	if full == "" {
		full = "User: " + turn.Input
	}

	content, err := i.client.Complete(ctx, "extract", []llm.Message{
		{Role: llm.RoleSystem, Content: i.systemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(extractionInput, full, turn.Input, turn.Round, turn.MaxRounds)},
	}, i.temperature)
	if err == nil {
		var prefs Preferences
		if prefs, err = decodeExtraction(content); err == nil {
			i.logger.Info().
				Str("segment", prefs.Segment).
				Str("mood", prefs.Mood).
				Str("genre", prefs.Genre).
				Str("era", prefs.Era).
				Str("confidence", prefs.Confidence).
				Msg("Parsed preferences")
			return prefs, nil
		}
	}

	if errors.Is(err, context.Canceled) {
		return Preferences{}, err
	}
	i.logger.Error().Err(err).Int("round", turn.Round).Msg("Error parsing preferences")
	return parseError(err), nil
}

// NextPrompt generates a short reply that steers toward a new topic.
//
//nolint:gocritic // hugeParam: history passed by value like a request
func (i *LLMInferrer) NextPrompt(ctx context.Context, history History) (string, error) {
	conversation := tailRunes(history.Conversation, i.historyWindow)
	if conversation == "" {
		conversation = "Just starting"
	}
	discussed := "nothing yet"
	if len(history.Topics) > 0 {
		discussed = strings.Join(history.Topics, ", ")
	}
	seed := TopicSeeds[i.pick(len(TopicSeeds))]

	i.logger.Info().Int("round", history.Round).Strs("topics", history.Topics).Msg("Generating conversational response")

	content, err := i.client.Complete(ctx, "converse", []llm.Message{
		{Role: llm.RoleSystem, Content: replyPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(replyInput, conversation, history.Round, discussed, seed)},
	}, i.conversationTemperature)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		reply := fallbackReply(history.Round, i.pick)
		i.logger.Warn().Err(err).Str("fallback", reply).Msg("Using fallback response")
		return reply, nil
	}

	reply := CleanReply(content)
	i.logger.Info().Str("reply", reply).Msg("Cleaned response")
	return reply, nil
}

// decodeExtraction parses the JSON object in a completion into normalized
// preferences.
func decodeExtraction(content string) (Preferences, error) {
	raw, err := llm.ExtractJSON(content)
	if err != nil {
		return Preferences{}, err
	}
	var ext extraction
	if err := json.Unmarshal([]byte(raw), &ext); err != nil {
		return Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return ext.preferences(), nil
}

// CleanReply strips surrounding quotes and serialization artifacts from a
// generated reply, falling back to DefaultReply when nothing is left.
func CleanReply(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, `'`)
	for _, artifact := range replyArtifacts {
		s = strings.ReplaceAll(s, artifact, "")
	}
	if s = strings.TrimSpace(s); s == "" {
		return DefaultReply
	}
	return s
}

// extractionSystemPrompt appends the allowed values to the extraction prompt.
func extractionSystemPrompt() string {
	var b strings.Builder
	b.WriteString(extractionPrompt)
	b.WriteString("\nALLOWED VALUES (use these spellings, combine several with commas):\n")
	fmt.Fprintf(&b, "- segment: %s\n", strings.Join(Segments, ", "))
	fmt.Fprintf(&b, "- mood: %s\n", strings.Join(Moods, ", "))
	fmt.Fprintf(&b, "- genre: %s\n", strings.Join(Genres, ", "))
	fmt.Fprintf(&b, "- era: %s\n", strings.Join(Eras, ", "))
	return b.String()
}

// tailRunes returns the last n runes of s. n <= 0 returns s unchanged.
func tailRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
