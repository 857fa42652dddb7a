// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package pipeline turns raw movie and user rating chunks into the
pre-computed recommendation files served by the matcher.

The work is split into three phases that must run in order:

 1. Movie fold: every movies_*.json chunk is registered by genre, mood and
    era, and a trimmed lookup record is kept per movie. State lives in
    <state_dir>/movies_index.json.
 2. User fold: every user_ratings_*.json chunk is filed by user segment,
    ratings are aggregated per item and high ratings feed each segment's
    preference profile. State lives in <state_dir>/user_stats.json.
 3. Generation: segment, mood, genre and era files plus two fallback files
    are written to the output directory, followed by index.json.

Both state files record the chunks already folded, so a second run only
processes new chunks. Each chunk is persisted as soon as it is folded.

Usage:

	runner, err := pipeline.NewRunner(cfg, logging.Logger())
	if err != nil {
		return err
	}
	stats, err := runner.Run(ctx)

Ordering of tags, segments and ranked entries is deterministic: tags keep
first-seen order, user chunks are folded by sorted user id, and fallback
ties break on item id.
*/
package pipeline
