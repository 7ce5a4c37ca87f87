// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package beams

import (
	"fmt"
	"sort"
)

const (
	// DefaultNBeams is the number of beams considered for packing. The
	// TUSE ingest can take at most that many coherent beams.
	DefaultNBeams = 396
	// DefaultBunch is the number of beams packed per multicast address.
	DefaultBunch = 6
)

// NoticeFunc receives diagnostic notices from the packer, e.g. when beams
// are removed by the nbeams cap. A nil NoticeFunc discards notices.
type NoticeFunc func(format string, args ...interface{})

// PackOptions configures a packing run.
type PackOptions struct {
	// NBeams caps how many beams are considered for packing, by ascending
	// x. Beams beyond the cap are dropped from the result. Must be > 0.
	NBeams int
	// Bunch is the target group size. Must be > 0.
	Bunch int
	// Notify is the diagnostics sink.
	Notify NoticeFunc
}

// DefaultPackOptions returns the standard MeerTRAP configuration of 396
// beams in bunches of 6.
func DefaultPackOptions() PackOptions {
	return PackOptions{
		NBeams: DefaultNBeams,
		Bunch:  DefaultBunch,
	}
}

// Pack maps the on-sky beams to multicast addresses/compute nodes using a
// simplistic and extremely fast greedy nearest-neighbor algorithm.
//
// The input is stable-sorted by x, truncated to NBeams, and then consumed
// in rounds: each round takes the first remaining beam as the anchor,
// stable-sorts the remaining beams by their distance to it, and packs the
// closest Bunch of them (the anchor included, at distance zero) into the
// next group. The anchor is deliberately "whatever remains first", not a
// nearest-to-origin heuristic; changing that would change which beams seed
// each group.
//
// The input Set is not mutated. The result is ordered by group ascending,
// with members in selection order, so packing the same input twice yields
// identical output. Every group except possibly the last has exactly Bunch
// members.
func Pack(set Set, opts PackOptions) (Set, error) {
	if opts.NBeams <= 0 {
		return nil, &Error{
			Type:    ErrorTypeInvalidArgument,
			Message: fmt.Sprintf("nbeams must be positive, got %d", opts.NBeams),
		}
	}

	if opts.Bunch <= 0 {
		return nil, &Error{
			Type:    ErrorTypeInvalidArgument,
			Message: fmt.Sprintf("bunch must be positive, got %d", opts.Bunch),
		}
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	notify := opts.Notify
	if notify == nil {
		notify = func(string, ...interface{}) {}
	}

	work := make(Set, len(set))
	copy(work, set)
	work.sortByX()

	// Only consider that many beams.
	if len(work) > opts.NBeams {
		notify("removed %d beams beyond the %d beam cap", len(work)-opts.NBeams, opts.NBeams)
		work = work[:opts.NBeams]
	} else if len(work) < opts.NBeams {
		notify("input holds %d beams, fewer than the %d considered for packing", len(work), opts.NBeams)
	}

	result := make(Set, 0, len(work))
	group := 0

	for len(work) > 0 {
		anchor := work[0].Point

		dist := make([]float64, len(work))
		for i, b := range work {
			dist[i] = b.Point.Distance(anchor)
		}

		order := make([]int, len(work))
		for i := range order {
			order[i] = i
		}

		// Stable, so equidistant beams keep their current relative order.
		sort.SliceStable(order, func(i, j int) bool {
			return dist[order[i]] < dist[order[j]]
		})

		sorted := make(Set, len(work))
		for i, idx := range order {
			sorted[i] = work[idx]
		}

		// Pick the closest `bunch` beams.
		picked := opts.Bunch
		if picked > len(sorted) {
			picked = len(sorted)
		}

		for _, b := range sorted[:picked] {
			b.Group = group
			result = append(result, b)
		}

		work = sorted[picked:]
		group++
	}

	return result, nil
}
