// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/reelmatch/internal/present"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

const demoWidth = 70

type scenario struct {
	name  string
	query recommend.Query
}

var scenarios = []scenario{
	{"Scenario 1: Cold Start - New User", recommend.Query{}},
	{"Scenario 2: Gamer wants Action", recommend.Query{Segment: "gamer", Genre: "Action", Mood: "exciting"}},
	{"Scenario 3: Student wants Thrillers", recommend.Query{Segment: "student", Genre: "Thriller", Mood: "exciting"}},
	{"Scenario 4: Parent wants Family Comedy", recommend.Query{Segment: "parent", Genre: "Comedy", Mood: "relaxing"}},
	{"Scenario 5: 90s Nostalgia", recommend.Query{Era: "90s"}},
	{"Scenario 6: Deep & Philosophical", recommend.Query{Text: "deep philosophical mind-bending movies"}},
	{"Scenario 7: Horror Fan", recommend.Query{Genre: "Horror", Mood: "intense"}},
	{"Scenario 8: Sci-Fi Adventure", recommend.Query{Text: "sci-fi adventure space"}},
	{"Scenario 9: Romantic & Emotional", recommend.Query{Mood: "emotional", Genre: "Romance"}},
	{"Scenario 10: Classic Films", recommend.Query{Era: "Classic"}},
}

func runDemo(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "demo")
	top := fs.Int("top", 3, "results shown per scenario")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	engine, err := a.engine()
	if err != nil {
		return err
	}

	present.Header(a.stdout, "Movie Recommendation System - Demo Scenarios", demoWidth)
	for _, sc := range scenarios {
		if err := runScenario(ctx, a.stdout, engine, sc, *top); err != nil {
			return fmt.Errorf("%s: %w", sc.name, err)
		}
	}
	cacheStats := engine.Store().CacheStats()
	a.logger.Debug().
		Int64("cache_hits", cacheStats.Hits).
		Int64("cache_misses", cacheStats.Misses).
		Int("cached_files", cacheStats.Size).
		Msg("Demo scenarios finished")

	present.Header(a.stdout, "Demo Complete", demoWidth)
	fmt.Fprintln(a.stdout, "All scenarios demonstrated!")
	return nil
}

func runScenario(ctx context.Context, w io.Writer, engine *recommend.Engine, sc scenario, top int) error {
	present.Header(w, sc.name, demoWidth)
	fmt.Fprintf(w, "\n[Searching for:] %s\n", describeQuery(sc.query))

	resp, err := engine.Recommend(ctx, sc.query)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n[Found %d candidates from %d source(s)]\n", len(resp.Results), len(resp.Sources))
	fmt.Fprintf(w, "[Sources: %s]\n", strings.Join(resp.Sources, ", "))
	return present.Format(w, resp.Results, resp.Sources, "Demo User", top)
}

// describeQuery lists the facets and text of q, or names the cold start.
func describeQuery(q recommend.Query) string {
	var parts []string
	if q.Segment != "" {
		parts = append(parts, "Segment: "+q.Segment)
	}
	if q.Mood != "" {
		parts = append(parts, "Mood: "+q.Mood)
	}
	if q.Genre != "" {
		parts = append(parts, "Genre: "+q.Genre)
	}
	if q.Era != "" {
		parts = append(parts, "Era: "+q.Era)
	}
	if q.Text != "" {
		parts = append(parts, fmt.Sprintf("Query: %q", q.Text))
	}
	if len(parts) == 0 {
		return "Popular movies (cold start)"
	}
	return strings.Join(parts, ", ")
}
