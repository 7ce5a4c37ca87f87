// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package beams

import (
	"fmt"
	"sort"
)

// Evaluate scores a packed Set by computing, for every group, the sum of
// the Euclidean distances over all member pairs. The sum runs over the
// members sorted by x (ties broken by id), which makes the score
// independent of the member order in the input. A group of size 0 or 1
// scores 0. An empty Set yields an empty Report.
func Evaluate(packed Set) (Report, error) {
	if len(packed) == 0 {
		return Report{}, nil
	}

	for _, b := range packed {
		if b.Group < 0 {
			return nil, &Error{
				Type:    ErrorTypeInvalidArgument,
				Message: fmt.Sprintf("beam %d has no group assigned", b.ID),
			}
		}
	}

	groups := packed.Groups()
	report := make(Report, 0, len(groups))

	for g, members := range groups {
		sorted := make(Set, len(members))
		copy(sorted, members)

		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Point.X != sorted[j].Point.X {
				return sorted[i].Point.X < sorted[j].Point.X
			}

			return sorted[i].ID < sorted[j].ID
		})

		var total float64

		for i := 0; i < len(sorted); i++ {
			for j := i + 1; j < len(sorted); j++ {
				total += sorted[i].Point.Distance(sorted[j].Point)
			}
		}

		report = append(report, GroupScore{
			Group:         g,
			TotalDistance: total,
		})
	}

	return report, nil
}
