// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// Phase names used in logs and metrics.
const (
	PhaseMovies   = "movies"
	PhaseUsers    = "users"
	PhaseGenerate = "generate"
)

// RunStats summarizes one pipeline run.
type RunStats struct {
	RunID string

	MovieChunksProcessed int
	MovieChunksSkipped   int
	MoviesFolded         int

	UserChunksProcessed int
	UserChunksSkipped   int
	RatingsFolded       int

	RecordsRejected int
	FilesGenerated  int

	StartTime time.Time
	EndTime   time.Time
}

// Duration returns the wall time of the run.
func (s *RunStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Runner drives the three pipeline phases over the chunk files in DataDir.
// Phases run strictly one after another; state is saved after every chunk so
// an interrupted run resumes where it stopped.
type Runner struct {
	cfg       *Config
	store     *StateStore
	generator *Generator
	logger    zerolog.Logger
}

// NewRunner creates a runner. The configuration is validated and copied.
func NewRunner(cfg *Config, logger zerolog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	cfg = cfg.Clone()
	return &Runner{
		cfg:       cfg,
		store:     NewStateStore(cfg.StateDir),
		generator: NewGenerator(cfg),
		logger:    logger.With().Str("component", "pipeline").Logger(),
	}, nil
}

// Store exposes the state store.
func (r *Runner) Store() *StateStore {
	return r.store
}

// Run executes phase 1, 2 and 3.
func (r *Runner) Run(ctx context.Context) (*RunStats, error) {
	if logging.RunIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewRunID(ctx)
	}
	ctx = logging.ContextWithLogger(ctx, r.logger)

	stats := &RunStats{RunID: logging.RunIDFromContext(ctx), StartTime: time.Now()}
	defer func() { stats.EndTime = time.Now() }()

	log := logging.Ctx(ctx)
	log.Info().Str("data_dir", r.cfg.DataDir).Str("output_dir", r.cfg.OutputDir).Msg("Starting pipeline run")

	if err := r.timed(PhaseMovies, func() error { return r.ProcessMovies(ctx, stats) }); err != nil {
		return stats, err
	}
	if err := r.timed(PhaseUsers, func() error { return r.ProcessUsers(ctx, stats) }); err != nil {
		return stats, err
	}
	if err := r.timed(PhaseGenerate, func() error { return r.Generate(ctx, stats) }); err != nil {
		return stats, err
	}

	metrics.RecordPipelineSuccess()
	log.Info().
		Int("movies", stats.MoviesFolded).
		Int("ratings", stats.RatingsFolded).
		Int("rejected", stats.RecordsRejected).
		Int("files", stats.FilesGenerated).
		Dur("duration", time.Since(stats.StartTime)).
		Msg("Pipeline run complete")
	return stats, nil
}

func (r *Runner) timed(phase string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordPhase(phase, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%s phase: %w", phase, err)
	}
	return nil
}

// ProcessMovies folds every unprocessed movie chunk into the movie index.
func (r *Runner) ProcessMovies(ctx context.Context, stats *RunStats) error {
	log := logging.Ctx(ctx)

	idx, err := r.store.LoadMovieIndex()
	if errors.Is(err, ErrStateMissing) {
		idx = NewMovieIndex()
	} else if err != nil {
		return err
	}

	chunks, err := r.discover(r.cfg.MovieChunkPattern)
	if err != nil {
		return err
	}

	for _, path := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.Base(path)
		if idx.HasChunk(name) {
			stats.MovieChunksSkipped++
			metrics.RecordChunkSkipped(PhaseMovies)
			log.Debug().Str("chunk", name).Msg("Movie chunk already processed, skipping")
			continue
		}

		data, err := os.ReadFile(path) //nolint:gosec // path comes from a glob inside the data dir
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		movies, rejected, err := DecodeMovieChunk(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		r.reportRejected(ctx, name, rejected, stats)

		n := FoldMovieChunk(idx, name, movies, r.cfg)
		if err := r.store.SaveMovieIndex(idx); err != nil {
			return fmt.Errorf("save movie index: %w", err)
		}

		stats.MovieChunksProcessed++
		stats.MoviesFolded += n
		metrics.RecordChunk(PhaseMovies, n)
		log.Info().Str("chunk", name).Int("movies", n).Int("indexed", len(idx.Lookup)).Msg("Processed movie chunk")
	}
	return nil
}

// ProcessUsers folds every unprocessed user chunk into the user statistics.
// It fails with ErrMovieIndexMissing when phase 1 never ran.
func (r *Runner) ProcessUsers(ctx context.Context, stats *RunStats) error {
	log := logging.Ctx(ctx)

	idx, err := r.store.LoadMovieIndex()
	if errors.Is(err, ErrStateMissing) {
		return ErrMovieIndexMissing
	} else if err != nil {
		return err
	}

	userStats, err := r.store.LoadUserStats()
	if errors.Is(err, ErrStateMissing) {
		userStats = NewUserStats()
	} else if err != nil {
		return err
	}

	chunks, err := r.discover(r.cfg.UserChunkPattern)
	if err != nil {
		return err
	}

	for _, path := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.Base(path)
		if userStats.HasChunk(name) {
			stats.UserChunksSkipped++
			metrics.RecordChunkSkipped(PhaseUsers)
			log.Debug().Str("chunk", name).Msg("User chunk already processed, skipping")
			continue
		}

		data, err := os.ReadFile(path) //nolint:gosec // path comes from a glob inside the data dir
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		users, rejected, err := DecodeUserChunk(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		r.reportRejected(ctx, name, rejected, stats)

		n, err := FoldUserChunk(userStats, idx, name, users, r.cfg)
		if err != nil {
			return err
		}
		if err := r.store.SaveUserStats(userStats); err != nil {
			return fmt.Errorf("save user stats: %w", err)
		}

		stats.UserChunksProcessed++
		stats.RatingsFolded += n
		metrics.RecordChunk(PhaseUsers, len(users))
		metrics.RecordRatingsFolded(n)
		log.Info().Str("chunk", name).Int("users", len(users)).Int("ratings", n).Msg("Processed user chunk")
	}
	return nil
}

// Generate writes every recommendation file and the master index from the
// saved state.
func (r *Runner) Generate(ctx context.Context, stats *RunStats) error {
	log := logging.Ctx(ctx)

	idx, err := r.store.LoadMovieIndex()
	if errors.Is(err, ErrStateMissing) {
		return ErrMovieIndexMissing
	} else if err != nil {
		return err
	}
	userStats, err := r.store.LoadUserStats()
	if errors.Is(err, ErrStateMissing) {
		userStats = NewUserStats()
	} else if err != nil {
		return err
	}

	out := r.generator.Build(idx, userStats)
	if err := WriteOutput(r.cfg.OutputDir, out); err != nil {
		return err
	}

	for _, a := range out.Files {
		metrics.RecordFileGenerated(string(a.File.Meta.Type))
		log.Debug().Str("file", a.Filename).Int("items", len(a.File.Recommendations)).Msg("Wrote recommendation file")
	}
	stats.FilesGenerated = len(out.Files)
	log.Info().Int("files", len(out.Files)).Str("output_dir", r.cfg.OutputDir).Msg("Generated recommendation files")
	return nil
}

// discover returns the chunk files matching pattern in DataDir, sorted by name.
func (r *Runner) discover(pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(r.cfg.DataDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func (r *Runner) reportRejected(ctx context.Context, chunk string, rejected []RejectedRecord, stats *RunStats) {
	log := logging.Ctx(ctx)
	for _, rec := range rejected {
		stats.RecordsRejected++
		field := "record"
		if len(rec.Fields) > 0 {
			field = rec.Fields[0]
		}
		metrics.RecordRejected(rec.Kind, field)
		log.Warn().
			Str("chunk", chunk).
			Str("kind", rec.Kind).
			Str("key", rec.Key).
			Strs("rules", failedRules(rec.Err)).
			Err(rec.Err).
			Msg("Skipping invalid record")
	}
}

// failedRules lists the validation rules a rejected record broke, such as
// "required" or "lte=5". Decode failures have none.
func failedRules(err error) []string {
	var recErr *validation.RecordError
	if !errors.As(err, &recErr) {
		return nil
	}
	fieldErrs := recErr.Errors()
	rules := make([]string, 0, len(fieldErrs))
	for i := range fieldErrs {
		rule := fieldErrs[i].Tag()
		if p := fieldErrs[i].Param(); p != "" {
			rule += "=" + p
		}
		rules = append(rules, rule)
	}
	return rules
}
