// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

// Package report turns packed beam sets and their compactness scores into
// operator-facing output: summary statistics, a coarse sky occupancy
// overview, interactive HTML charts and static PNG plots.
package report

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/fjankowsk/meertrap-misc/beams"
)

// Summary holds the distribution statistics of the per-group compactness
// scores of a packing run.
type Summary struct {
	Groups int     `json:"groups"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Sum    float64 `json:"sum"`
}

// Summarize computes the distribution statistics of a packing report. An
// empty report yields the zero Summary.
func Summarize(r beams.Report) Summary {
	if len(r) == 0 {
		return Summary{}
	}

	dist := make([]float64, len(r))
	for i, gs := range r {
		dist[i] = gs.TotalDistance
	}

	sort.Float64s(dist)

	return Summary{
		Groups: len(r),
		Min:    dist[0],
		Median: stat.Quantile(0.5, stat.Empirical, dist, nil),
		Max:    dist[len(dist)-1],
		Mean:   stat.Mean(dist, nil),
		Sum:    floats.Sum(dist),
	}
}
