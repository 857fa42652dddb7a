// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend answers recommendation queries from the files written by
// the aggregation pipeline.
//
// # Artifacts
//
// The engine only discovers files through index.json; it never lists the
// output directory. Each index entry names a file, its facet type (segment,
// mood, genre, era or fallback), its tag and its match keywords. An index in
// which two entries share a type and tag is rejected with ErrDuplicateFacet.
//
// # Query Resolution
//
//  1. Each facet value (comma-separated lists allowed) is matched
//     case-insensitively against the tags of that facet type. Segment values
//     read underscores as spaces. Unknown values are ignored.
//  2. Free text is split into lowercase terms and scored against the match
//     keywords of every non-fallback file; up to three new files are added.
//  3. If nothing matched, fallback_popular.json is served (cold start).
//  4. Files are merged in order, deduplicating by item id (first wins), and
//     each result records the description of its source file.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	resp, err := engine.Recommend(ctx, recommend.Query{Segment: "gamer", Mood: "exciting"})
//
// Loaded files are cached in an LRU (see internal/cache) because the
// artifacts are an immutable snapshot for the lifetime of the process.
//
// The algorithms subpackage holds the user-based collaborative filtering
// path, which works from raw ratings instead of generated files.
package recommend
