// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/models"
)

// LoadDataset reads a ratings file of the form {"user": {"item": rating}}.
func LoadDataset(path string) (models.RatingsDataset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read ratings: %w", err)
	}

	var ds models.RatingsDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode ratings %s: %w", path, err)
	}
	if ds == nil {
		ds = models.RatingsDataset{}
	}
	return ds, nil
}

