// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package datagen generates a reproducible synthetic user ratings chunk from
// a movie catalogue, for demos and for exercising the pipeline at volume.
package datagen
