// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"sort"

	"github.com/uber/h3-go/v4"

	"github.com/fjankowsk/meertrap-misc/beams"
)

// CellCount is the number of beams falling into one H3 sky cell.
type CellCount struct {
	Cell  h3.Cell `json:"cell"`
	Count int     `json:"count"`
}

// Occupancy bins the beam positions into H3 cells at the given resolution
// and returns the per-cell counts, most populated cells first (ties broken
// by cell id). The x coordinate maps to longitude and y to latitude; beam
// offsets are fractions of a degree, so the hexagonal tiling gives a usable
// density overview of the ungrouped set.
func Occupancy(set beams.Set, resolution int) ([]CellCount, error) {
	if resolution < 0 || resolution > 15 {
		return nil, fmt.Errorf("h3 resolution out of range: %d", resolution)
	}

	counts := make(map[h3.Cell]int)

	for _, b := range set {
		latLng := h3.NewLatLng(b.Point.Y, b.Point.X)

		cell, err := h3.LatLngToCell(latLng, resolution)
		if err != nil {
			return nil, fmt.Errorf("converting beam %d to h3 cell: %w", b.ID, err)
		}

		counts[cell]++
	}

	ret := make([]CellCount, 0, len(counts))
	for cell, count := range counts {
		ret = append(ret, CellCount{Cell: cell, Count: count})
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Count != ret[j].Count {
			return ret[i].Count > ret[j].Count
		}

		return ret[i].Cell < ret[j].Cell
	})

	return ret, nil
}
