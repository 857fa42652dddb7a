// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package conversation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/present"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Why a discovery conversation ended.
const (
	EndQuit      = "quit"
	EndAccepted  = "accepted"
	EndDeclined  = "declined"
	EndMaxRounds = "max_rounds"
	EndEOF       = "eof"
	EndCanceled  = "canceled"
)

const headerWidth = 60

// Recommender serves a query; *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, q recommend.Query) (*recommend.Response, error)
}

// Session is one interactive preference discovery conversation.
type Session struct {
	ID string

	// ShowInferences prints what each turn revealed, for debugging prompts.
	ShowInferences bool

	inferrer Inferrer
	cfg      config.ConversationConfig
	in       *bufio.Scanner
	out      io.Writer
	logger   zerolog.Logger

	round   int
	prefs   Preferences
	history strings.Builder
	topics  []string
}

// NewSession creates a session reading user input from in and writing the
// conversation to out.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSession(inferrer Inferrer, cfg *config.ConversationConfig, in io.Reader, out io.Writer, logger zerolog.Logger) *Session {
	id := uuid.New().String()
	return &Session{
		ID:       id,
		inferrer: inferrer,
		cfg:      *cfg,
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   logger.With().Str("session_id", id).Logger(),
	}
}

// Rounds returns the number of rounds played so far.
func (s *Session) Rounds() int {
	return s.round
}

// Topics returns the topics the user has touched on.
func (s *Session) Topics() []string {
	return s.topics
}

// Transcript returns the conversation so far.
func (s *Session) Transcript() string {
	return s.history.String()
}

// Discover chats with the user until they ask for recommendations, quit,
// run out of input or hit the round limit, and returns the merged
// preferences.
func (s *Session) Discover(ctx context.Context) (Preferences, error) {
	rule := strings.Repeat("=", headerWidth)
	fmt.Fprintf(s.out, "%s\nMovie Recommendation System\n(Just having a casual chat...)\n%s\n", rule, rule)

	greeting, err := s.inferrer.NextPrompt(ctx, History{Round: 1})
	if err != nil {
		return s.finish(EndCanceled, err)
	}
	fmt.Fprintf(s.out, "\n%s\n", greeting)
	s.history.WriteString("\nAssistant: " + greeting)

	for {
		if err := ctx.Err(); err != nil {
			return s.finish(EndCanceled, err)
		}
		s.round++

		fmt.Fprint(s.out, "\n\nYou: ")
		input, ok := s.readLine()
		if !ok {
			return s.finish(EndEOF, nil)
		}
		if input == "" {
			continue
		}
		if s.isQuitWord(input) {
			fmt.Fprintln(s.out, "\nAlright, let me find some recommendations for you...")
			return s.finish(EndQuit, nil)
		}

		s.history.WriteString("\nYou: " + input)
		s.topics = TrackTopics(s.topics, input)

		inferred, err := s.inferrer.InferPreferences(ctx, Turn{
			Input:        input,
			Conversation: s.history.String(),
			Round:        s.round,
			MaxRounds:    s.cfg.MaxRounds,
		})
		if err != nil {
			return s.finish(EndCanceled, err)
		}
		s.prefs.Merge(&inferred)

		reply, err := s.inferrer.NextPrompt(ctx, History{
			Conversation: s.history.String(),
			LastInput:    input,
			Round:        s.round,
			Topics:       s.topics,
		})
		if err != nil {
			return s.finish(EndCanceled, err)
		}
		s.history.WriteString("\nAssistant: " + reply)
		fmt.Fprintf(s.out, "\n%s\n", reply)

		if s.ShowInferences {
			s.showInference(&inferred)
		}

		if s.cfg.MaxRounds > 0 && s.round >= s.cfg.MaxRounds {
			return s.finish(EndMaxRounds, nil)
		}
		if s.round < s.cfg.MinRounds {
			continue
		}

		if !s.prefs.IsEmpty() {
			fmt.Fprint(s.out, "\nI'm getting a sense of your vibe. Want to see some recommendations now, or keep chatting? ( recommendations / chat ): ")
			answer, ok := s.readLine()
			if !ok {
				return s.finish(EndEOF, nil)
			}
			switch strings.ToLower(answer) {
			case "chat", "continue", "more", "c":
				fmt.Fprintln(s.out)
			default:
				return s.finish(EndAccepted, nil)
			}
		} else {
			fmt.Fprint(s.out, "\nWant to keep chatting a bit more? (Y/n): ")
			answer, ok := s.readLine()
			if !ok {
				return s.finish(EndEOF, nil)
			}
			if strings.ToLower(answer) == "n" {
				return s.finish(EndDeclined, nil)
			}
		}
	}
}

// Present queries rec with prefs and prints the top topN results, offering
// the rest when there are more.
//
//nolint:gocritic // hugeParam: prefs passed by value, it is not modified
func (s *Session) Present(ctx context.Context, rec Recommender, prefs Preferences, topN int) error {
	present.Header(s.out, "Your Movie Recommendations", headerWidth)

	q := recommend.Query{}
	if prefs.IsEmpty() {
		fmt.Fprint(s.out, "\nNo specific preferences detected - showing popular movies!\n\n")
	} else {
		q = prefs.Query()
	}

	resp, err := rec.Recommend(ctx, q)
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	s.logger.Info().
		Strs("files", resp.Files).
		Int("results", len(resp.Results)).
		Bool("cold_start", resp.ColdStart).
		Msg("Recommendations served")

	if err := present.Format(s.out, resp.Results, resp.Sources, "You", topN); err != nil {
		return err
	}

	if fields := prefs.Fields(); len(fields) > 0 {
		fmt.Fprintln(s.out, "\n[Matched based on your preferences:]")
		for _, f := range fields {
			fmt.Fprintf(s.out, "  - %s: %s\n", f.Key, strings.ReplaceAll(f.Value, ",", ", "))
		}
	}

	if len(resp.Results) > topN {
		fmt.Fprintf(s.out, "\nShow more results? (%d total available) (Y/n): ", len(resp.Results))
		answer, ok := s.readLine()
		if ok && strings.ToLower(answer) != "n" {
			return present.Format(s.out, resp.Results, resp.Sources, "You", len(resp.Results))
		}
	}
	return nil
}

// Run discovers preferences and presents recommendations for them.
func (s *Session) Run(ctx context.Context, rec Recommender) error {
	prefs, err := s.Discover(ctx)
	if err != nil {
		return err
	}
	return s.Present(ctx, rec, prefs, s.cfg.DefaultTopN)
}

func (s *Session) finish(reason string, err error) (Preferences, error) {
	metrics.RecordChatSession(reason, s.round)
	event := s.logger.Info()
	if err != nil {
		event = s.logger.Warn().Err(err)
	}
	event.
		Str("end_reason", reason).
		Int("rounds", s.round).
		Strs("topics", s.topics).
		Str("segment", s.prefs.Segment).
		Str("mood", s.prefs.Mood).
		Str("genre", s.prefs.Genre).
		Str("era", s.prefs.Era).
		Msg("Discovery finished")
	return s.prefs, err
}

func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) isQuitWord(input string) bool {
	lower := strings.ToLower(input)
	for _, w := range s.cfg.QuitWords {
		if lower == strings.ToLower(w) {
			return true
		}
	}
	return false
}

func (s *Session) showInference(p *Preferences) {
	fmt.Fprintln(s.out, "\n[Inferred from this response:]")
	if fields := p.Fields(); len(fields) > 0 {
		fmt.Fprintf(s.out, "  %s\n", joinFields(fields))
	}
	if p.Reasoning != "" {
		fmt.Fprintf(s.out, "  Reasoning: %s\n", p.Reasoning)
	}
	if fields := s.prefs.Fields(); len(fields) > 0 {
		fmt.Fprintf(s.out, "\n[Profile so far: %s]\n", joinFields(fields))
	}
}

func joinFields(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Key + ": " + f.Value
	}
	return strings.Join(parts, ", ")
}
