// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

// Package beams implements the MeerTRAP beam packing core: the beam data
// model, the greedy nearest-neighbor packer that maps on-sky beams to
// multicast addresses/compute nodes, and the compactness metric the
// resulting grouping is scored with.
package beams

import (
	"fmt"
	"sort"

	"github.com/fjankowsk/meertrap-misc/skycoord"
)

// GroupUnassigned marks a beam that has not been packed into a group yet.
const GroupUnassigned = -1

// Beam is a labeled on-sky point. ID is assigned once at ingestion, in read
// order starting at 0, and is the stable handle used to reconcile working
// subsets back into the full collection.
type Beam struct {
	ID    int            `json:"id"`
	Point skycoord.Point `json:"point"`
	Group int            `json:"group"`
}

// Set is an ordered sequence of beams. IDs are unique across a Set.
type Set []Beam

// GroupScore is the compactness score of a single group: the sum of the
// Euclidean distances over all member pairs. Smaller is tighter packing.
type GroupScore struct {
	Group         int     `json:"group"`
	TotalDistance float64 `json:"total_distance"`
}

// Report holds per-group compactness scores, ascending by group.
type Report []GroupScore

// Validate checks the Set invariant: beam IDs are unique.
func (s Set) Validate() error {
	seen := make(map[int]struct{}, len(s))

	for _, b := range s {
		if _, ok := seen[b.ID]; ok {
			return &Error{
				Type:    ErrorTypeInvalidArgument,
				Message: fmt.Sprintf("duplicate beam id %d", b.ID),
			}
		}

		seen[b.ID] = struct{}{}
	}

	return nil
}

// Packed reports whether every beam in the Set carries a non-negative group.
func (s Set) Packed() bool {
	for _, b := range s {
		if b.Group < 0 {
			return false
		}
	}

	return true
}

// Groups partitions a packed Set into per-group member slices, ordered by
// ascending group id. Members keep their relative order within the Set.
func (s Set) Groups() []Set {
	if len(s) == 0 {
		return nil
	}

	maxGroup := 0
	for _, b := range s {
		if b.Group > maxGroup {
			maxGroup = b.Group
		}
	}

	groups := make([]Set, maxGroup+1)

	for _, b := range s {
		if b.Group < 0 {
			continue
		}

		groups[b.Group] = append(groups[b.Group], b)
	}

	return groups
}

// Extents returns the bounding box of the Set. The second return value is
// false for an empty Set.
func (s Set) Extents() (minPt, maxPt skycoord.Point, ok bool) {
	if len(s) == 0 {
		return skycoord.Point{}, skycoord.Point{}, false
	}

	minPt = s[0].Point
	maxPt = s[0].Point

	for _, b := range s[1:] {
		if b.Point.X < minPt.X {
			minPt.X = b.Point.X
		}

		if b.Point.X > maxPt.X {
			maxPt.X = b.Point.X
		}

		if b.Point.Y < minPt.Y {
			minPt.Y = b.Point.Y
		}

		if b.Point.Y > maxPt.Y {
			maxPt.Y = b.Point.Y
		}
	}

	return minPt, maxPt, true
}

// sortByX stable-sorts the Set by x ascending in place. Ties keep the
// current relative order, which preserves ingestion order on first use.
func (s Set) sortByX() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Point.X < s[j].Point.X
	})
}
