// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package models defines the data contracts shared between the batch pipeline,
the matcher and the command line tools.

Input Contracts:

  - MovieRecord: one movie of a movie chunk (item_id, title, year, tags, content)
  - UserChunk / UserRecord / Score: user id -> {tags, scores}
  - RatingsDataset: user -> item -> rating, consumed by the collaborative filter

Output Artifacts:

  - RecommendationFile: meta + up to 20 ranked Recommendation entries
  - MasterIndex / FileEntry: index.json, the catalogue of generated files

All artifacts are UTF-8 JSON under a single output directory. They are written
once per batch run and are read-only at query time.
*/
package models
