// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/conversation"
	"github.com/tomtom215/reelmatch/internal/datagen"
	"github.com/tomtom215/reelmatch/internal/llm"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/pipeline"
	"github.com/tomtom215/reelmatch/internal/present"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
)

// errUsage marks an error caused by bad command-line input.
var errUsage = errors.New("usage error")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"process", "fold data chunks and generate recommendation files", runProcess},
	{"recommend", "query the generated recommendation files", runRecommend},
	{"prime", "collaborative filtering recommendations for one user", runPrime},
	{"demo", "run the canned recommendation scenarios", runDemo},
	{"chat", "discover preferences in a conversation, then recommend", runChat},
	{"generate-ratings", "write a synthetic user ratings chunk", runGenerateRatings},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func newFlagSet(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stdout)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	return nil
}

func runProcess(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "process")
	reset := fs.Bool("reset", false, "discard saved state and fold every chunk again")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	runner, err := pipeline.NewRunner(a.pipelineConfig(), a.logger)
	if err != nil {
		return err
	}
	if *reset {
		if err := runner.Store().Reset(); err != nil {
			return err
		}
		a.logger.Info().Msg("Pipeline state reset")
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(a.stdout, "%s\nMovie Recommendation Generator - Incremental Processing\n%s\n", rule, rule)

	stats, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "\nMovie chunks: %d processed, %d already done (%d movies)\n",
		stats.MovieChunksProcessed, stats.MovieChunksSkipped, stats.MoviesFolded)
	fmt.Fprintf(a.stdout, "User chunks: %d processed, %d already done (%d ratings)\n",
		stats.UserChunksProcessed, stats.UserChunksSkipped, stats.RatingsFolded)
	if stats.RecordsRejected > 0 {
		fmt.Fprintf(a.stdout, "Rejected records: %d (see log)\n", stats.RecordsRejected)
	}
	fmt.Fprintf(a.stdout, "\nSuccessfully generated %d recommendation files in %s/ (%s)\n",
		stats.FilesGenerated, a.cfg.Paths.OutputDir, stats.Duration().Round(time.Millisecond))
	return nil
}

func runRecommend(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "recommend")
	var q recommend.Query
	fs.StringVar(&q.Segment, "segment", "", "user segment(s), comma-separated (e.g. gamer)")
	fs.StringVar(&q.Mood, "mood", "", "mood(s), comma-separated (e.g. exciting)")
	fs.StringVar(&q.Genre, "genre", "", "genre(s), comma-separated (e.g. Action,Sci-Fi)")
	fs.StringVar(&q.Era, "era", "", "era(s), comma-separated (e.g. 90s)")
	fs.StringVar(&q.Text, "query", "", "free text matched against file keywords")
	top := fs.Int("top", 10, "number of results to show (0 shows all)")
	user := fs.String("user", "You", "name used in the output header")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	engine, err := a.engine()
	if err != nil {
		return err
	}
	resp, err := engine.Recommend(ctx, q)
	if err != nil {
		return err
	}
	return present.Format(a.stdout, resp.Results, resp.Sources, *user, *top)
}

func runPrime(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "prime")
	user := fs.String("user", "", "user to recommend for (required)")
	ratings := fs.String("ratings", a.cfg.Paths.RatingsFile, "user -> title -> rating dataset")
	neighbors := fs.Int("k", 0, "number of similar users to consult (0 uses all)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("%w: -user is required", errUsage)
	}

	dataset, err := algorithms.LoadDataset(*ratings)
	if err != nil {
		return err
	}
	movies, err := algorithms.Recommend(dataset, *user, *neighbors)
	if err != nil {
		outcome := "error"
		if errors.Is(err, algorithms.ErrUnknownUser) {
			outcome = "unknown_user"
		}
		metrics.PrimeRequests.WithLabelValues(outcome).Inc()
		return err
	}

	outcome := "ok"
	if len(movies) == 1 && movies[0] == algorithms.NoRecommendations {
		outcome = "empty"
	}
	metrics.PrimeRequests.WithLabelValues(outcome).Inc()

	fmt.Fprintf(a.stdout, "\nMovie recommendations for %s (using prime approach):\n", *user)
	present.Numbered(a.stdout, movies)
	return nil
}

func runChat(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "chat")
	demo := fs.Bool("demo", false, "skip the conversation and use canned preferences")
	testConfig := fs.Bool("test-config", false, "send one extraction request and print the result")
	verbose := fs.Bool("show-inferences", false, "print what each message revealed")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	client, err := llm.NewClient(&a.cfg.LLM, a.logger)
	if err != nil {
		return err
	}
	inferrer := conversation.NewLLMInferrer(client, a.cfg, a.logger)

	if *testConfig {
		fmt.Fprintln(a.stdout, "Testing configuration...")
		fmt.Fprintf(a.stdout, "API Base: %s\n", client.BaseURL())
		fmt.Fprintf(a.stdout, "Model: %s\n", client.Model())

		prefs, err := inferrer.InferPreferences(ctx, conversation.Turn{
			Input:     "I like action movies and exciting content",
			Round:     1,
			MaxRounds: a.cfg.Conversation.MaxRounds,
		})
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(prefs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "\nAPI Test Result: %s\n", out)
		if strings.HasPrefix(prefs.Reasoning, "Parse error: ") {
			return fmt.Errorf("configuration test failed: %s", prefs.Reasoning)
		}
		fmt.Fprintln(a.stdout, "\nConfiguration is working!")
		return nil
	}

	engine, err := a.engine()
	if err != nil {
		return err
	}
	index, err := engine.Index()
	if err != nil {
		return err
	}

	session := conversation.NewSession(inferrer, &a.cfg.Conversation, a.stdin, a.stdout, a.logger)
	session.ShowInferences = *verbose

	if *demo {
		present.Header(a.stdout, "Demo Mode", 60)
		prefs := conversation.Preferences{Segment: "gamer", Mood: "exciting", Genre: "Action"}
		out, err := json.Marshal(prefs)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Demo preferences: %s\n\n", out)
		return session.Present(ctx, engine, prefs, a.cfg.Conversation.DefaultTopN)
	}

	present.Header(a.stdout, "Interactive Movie Recommendation System", 60)
	fmt.Fprintf(a.stdout, "Connected to LLM at: %s\n", client.BaseURL())
	fmt.Fprintf(a.stdout, "Using model: %s\n", client.Model())
	fmt.Fprintf(a.stdout, "Movies available: %d\n", index.TotalMoviesIndexed)
	fmt.Fprintf(a.stdout, "Recommendation files: %d\n", index.TotalRecommendationFiles)

	err = session.Run(ctx, engine)
	a.logger.Debug().
		Int("rounds", session.Rounds()).
		Strs("topics", session.Topics()).
		Int("transcript_bytes", len(session.Transcript())).
		Msg("Chat closed")
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(a.stdout, "\n\nGoodbye! Thanks for using the Movie Recommendation System.")
			return nil
		}
		return err
	}
	return nil
}

func runGenerateRatings(_ context.Context, a *app, args []string) error {
	cfg := datagen.DefaultConfig()
	fs := newFlagSet(a, "generate-ratings")
	movies := fs.String("movies", "data/movie_massive_ratings.json", "movie catalogue (movie chunk format)")
	output := fs.String("out", "data/user_massive_ratings.json", "user ratings file to write")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	fs.IntVar(&cfg.Users, "users", cfg.Users, "number of users")
	fs.IntVar(&cfg.MinMovies, "min-movies", cfg.MinMovies, "fewest movies rated per user")
	fs.IntVar(&cfg.MaxMovies, "max-movies", cfg.MaxMovies, "most movies rated per user")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	catalogue, err := datagen.LoadCatalogue(*movies)
	if err != nil {
		return err
	}
	users, err := datagen.Generate(catalogue, cfg)
	if err != nil {
		return err
	}
	summary, err := datagen.Write(*output, users)
	if err != nil {
		return err
	}

	a.logger.Info().
		Int("users", summary.Users).
		Int("ratings", summary.Ratings).
		Str("path", *output).
		Msg("Synthetic ratings written")
	fmt.Fprintf(a.stdout, "File size: %.2f MB\n", float64(summary.Bytes)/(1024*1024))
	fmt.Fprintf(a.stdout, "Generated %d users with total %d ratings in %s\n", summary.Users, summary.Ratings, *output)
	return nil
}
