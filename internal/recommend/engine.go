// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/models"
)

// Engine answers queries from the generated index and recommendation files.
// The index is loaded on first use and kept for the lifetime of the engine.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	store  *Store

	indexMu sync.Mutex
	index   *models.MasterIndex
}

// facetOrder is the order in which query facets are resolved.
var facetOrder = []models.FacetType{
	models.FacetSegment,
	models.FacetMood,
	models.FacetGenre,
	models.FacetEra,
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var cacheCfg *CacheConfig
	if cfg.Cache.Enabled {
		cacheCfg = &cfg.Cache
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		store:  NewStore(cfg.Dir, cacheCfg),
	}, nil
}

// Store returns the artifact store backing the engine.
func (e *Engine) Store() *Store {
	return e.store
}

// Index returns the master index, loading it on first call.
func (e *Engine) Index() (*models.MasterIndex, error) {
	e.indexMu.Lock()
	defer e.indexMu.Unlock()

	if e.index != nil {
		return e.index, nil
	}
	index, err := e.store.LoadIndex()
	if err != nil {
		return nil, err
	}
	e.index = index
	return index, nil
}

// Recommend resolves q to recommendation files and merges their entries.
//
// Facets are resolved first (segment, mood, genre, era; each value in order),
// then free text adds up to MaxKeywordFiles keyword matches. A query that
// matches nothing is served from the cold-start file. Entries are merged in
// file order and deduplicated by item id, first file wins; every kept entry
// has Source set to its file's description.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, q Query) (*Response, error) {
	start := time.Now()
	log := logging.Ctx(ctx).With().Str("component", "recommend").Logger()

	index, err := e.Index()
	if err != nil {
		return nil, err
	}

	files := e.resolve(index, q)
	coldStart := len(files) == 0
	if coldStart {
		files = []string{e.config.ColdStartFile}
		log.Debug().Msg("query matched no files, serving cold-start recommendations")
	}

	resp := &Response{Files: files, ColdStart: coldStart}
	seen := make(map[string]struct{})

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file, err := e.store.LoadFile(name)
		if err != nil {
			return nil, err
		}

		source := file.Meta.Description
		resp.Sources = append(resp.Sources, source)

		for _, rec := range file.Recommendations {
			if _, dup := seen[rec.ItemID]; dup {
				continue
			}
			seen[rec.ItemID] = struct{}{}
			rec.Source = source
			resp.Results = append(resp.Results, rec)
		}
	}

	metrics.RecordQuery(coldStart, len(files), time.Since(start))
	log.Debug().
		Strs("files", files).
		Int("results", len(resp.Results)).
		Bool("cold_start", coldStart).
		Msg("recommendation query complete")

	return resp, nil
}

// resolve returns the matched filenames for q in match order.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) resolve(index *models.MasterIndex, q Query) []string {
	set := newFileSet()

	values := map[models.FacetType]string{
		models.FacetSegment: q.Segment,
		models.FacetMood:    q.Mood,
		models.FacetGenre:   q.Genre,
		models.FacetEra:     q.Era,
	}
	for _, facet := range facetOrder {
		for _, value := range splitValues(values[facet]) {
			if name := ResolveFacet(index, facet, value); name != "" {
				set.add(name)
			}
		}
	}

	if terms := q.Terms(); len(terms) > 0 {
		added := 0
		for _, m := range MatchByKeywords(index, terms) {
			if added == e.config.MaxKeywordFiles {
				break
			}
			if set.add(m.Filename) {
				added++
			}
		}
	}

	return set.names
}
