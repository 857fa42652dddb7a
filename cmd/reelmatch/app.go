// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/pipeline"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// app carries what every command needs.
type app struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
	logger zerolog.Logger
}

// pipelineConfig maps the loaded configuration onto the pipeline settings.
func (a *app) pipelineConfig() *pipeline.Config {
	p := a.cfg.Pipeline
	return &pipeline.Config{
		DataDir:                 a.cfg.Paths.DataDir,
		MovieChunkPattern:       a.cfg.Paths.MovieChunkPattern,
		UserChunkPattern:        a.cfg.Paths.UserChunkPattern,
		StateDir:                a.cfg.Paths.StateDir,
		OutputDir:               a.cfg.Paths.OutputDir,
		HighRatingThreshold:     p.HighRatingThreshold,
		MinSegmentUsers:         p.MinSegmentUsers,
		MinGenreMovies:          p.MinGenreMovies,
		MinPopularRatings:       p.MinPopularRatings,
		MinAcclaimedHighRatings: p.MinAcclaimedHighRatings,
		TopN:                    p.TopN,
		DescriptionMaxLen:       p.DescriptionMaxLen,
		CastLimit:               p.CastLimit,
	}
}

// recommendConfig maps the loaded configuration onto the matcher settings.
func (a *app) recommendConfig() *recommend.Config {
	r := a.cfg.Recommend
	return &recommend.Config{
		Dir:             a.cfg.Paths.OutputDir,
		MaxKeywordFiles: r.MaxKeywordFiles,
		ColdStartFile:   r.ColdStartFile,
		Cache: recommend.CacheConfig{
			Enabled: r.CacheSize > 0,
			Size:    r.CacheSize,
			TTL:     r.CacheTTL,
		},
	}
}

func (a *app) engine() (*recommend.Engine, error) {
	return recommend.NewEngine(a.recommendConfig(), a.logger)
}

// setupLogging initializes the global logger. The chat command logs to a
// per-session file under the conversation log directory unless a log file is
// configured, so log lines never interleave with the conversation.
func setupLogging(cfg *config.Config, command string) (func(), error) {
	path := cfg.Logging.File
	if path == "" && command == "chat" {
		name := fmt.Sprintf("recommender_%s.log", time.Now().Format("20060102_150405"))
		path = filepath.Join(cfg.Conversation.LogDir, name)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" {
		f, err := logging.OpenFile(path)
		if err != nil {
			return nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    out,
	})
	return closeFn, nil
}
