// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package beams

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjankowsk/meertrap-misc/skycoord"
)

// lineOfBeams builds n ungrouped beams at integer x positions on the x axis.
func lineOfBeams(n int) Set {
	set := make(Set, n)
	for i := range set {
		set[i] = Beam{
			ID:    i,
			Point: skycoord.Point{X: float64(i), Y: 0},
			Group: GroupUnassigned,
		}
	}

	return set
}

// randomBeams builds n ungrouped beams with reproducible pseudo-random
// positions.
func randomBeams(n int, seed int64) Set {
	rng := rand.New(rand.NewSource(seed))

	set := make(Set, n)
	for i := range set {
		set[i] = Beam{
			ID:    i,
			Point: skycoord.Point{X: rng.Float64(), Y: rng.Float64()},
			Group: GroupUnassigned,
		}
	}

	return set
}

func TestPackInvalidArguments(t *testing.T) {
	tests := []struct {
		name   string
		nbeams int
		bunch  int
	}{
		{name: "zero nbeams", nbeams: 0, bunch: 6},
		{name: "negative nbeams", nbeams: -1, bunch: 6},
		{name: "zero bunch", nbeams: 396, bunch: 0},
		{name: "negative bunch", nbeams: 396, bunch: -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(lineOfBeams(10), PackOptions{NBeams: tt.nbeams, Bunch: tt.bunch})
			require.Error(t, err)
			assert.True(t, IsInvalidArgument(err))
		})
	}
}

func TestPackEmptyInput(t *testing.T) {
	packed, err := Pack(Set{}, DefaultPackOptions())
	require.NoError(t, err)
	assert.Empty(t, packed)
}

func TestPackSingleGroup(t *testing.T) {
	// Six collinear beams with bunch 6 form exactly one group.
	packed, err := Pack(lineOfBeams(6), DefaultPackOptions())
	require.NoError(t, err)

	require.Len(t, packed, 6)
	for _, b := range packed {
		assert.Equal(t, 0, b.Group)
	}
}

func TestPackTwoCollinearGroups(t *testing.T) {
	// On a line the anchor is always the leftmost remaining beam and the
	// distance sort reproduces x order, so twelve beams split into
	// {0..5} and {6..11}.
	packed, err := Pack(lineOfBeams(12), DefaultPackOptions())
	require.NoError(t, err)
	require.Len(t, packed, 12)

	want := map[int]int{
		0: 0, 1: 0, 2: 0, 3: 0, 4: 0, 5: 0,
		6: 1, 7: 1, 8: 1, 9: 1, 10: 1, 11: 1,
	}

	got := make(map[int]int, len(packed))
	for _, b := range packed {
		got[b.ID] = b.Group
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("group assignment mismatch (-want +got):\n%s", diff)
	}
}

func TestPackCapacityCap(t *testing.T) {
	set := lineOfBeams(500)

	var notices []string

	opts := DefaultPackOptions()
	opts.Notify = func(format string, args ...interface{}) {
		notices = append(notices, fmt.Sprintf(format, args...))
	}

	packed, err := Pack(set, opts)
	require.NoError(t, err)
	require.Len(t, packed, 396)

	// The 104 beams with the largest x must be absent from every group.
	for _, b := range packed {
		assert.Less(t, b.Point.X, 396.0)
	}

	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "removed 104 beams")
}

func TestPackShortInputNotice(t *testing.T) {
	var notices []string

	opts := DefaultPackOptions()
	opts.Notify = func(format string, args ...interface{}) {
		notices = append(notices, fmt.Sprintf(format, args...))
	}

	packed, err := Pack(lineOfBeams(10), opts)
	require.NoError(t, err)
	assert.Len(t, packed, 10)

	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "fewer")
}

func TestPackCoverageAndGroupSizing(t *testing.T) {
	tests := []struct {
		name  string
		count int
		bunch int
	}{
		{name: "exact multiple", count: 60, bunch: 6},
		{name: "with remainder", count: 64, bunch: 6},
		{name: "remainder of one", count: 13, bunch: 4},
		{name: "single beam", count: 1, bunch: 6},
		{name: "bunch larger than input", count: 4, bunch: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := randomBeams(tt.count, 42)

			packed, err := Pack(set, PackOptions{NBeams: DefaultNBeams, Bunch: tt.bunch})
			require.NoError(t, err)
			require.Len(t, packed, tt.count)

			// Every retained beam carries exactly one group and no beam
			// is duplicated or lost.
			seen := make(map[int]int)
			for _, b := range packed {
				require.GreaterOrEqual(t, b.Group, 0)
				_, dup := seen[b.ID]
				require.False(t, dup, "beam %d assigned twice", b.ID)
				seen[b.ID] = b.Group
			}

			assert.Len(t, seen, tt.count)

			// All groups except at most the last have exactly bunch
			// members; the last holds the remainder.
			sizes := make(map[int]int)
			for _, g := range seen {
				sizes[g]++
			}

			wantGroups := (tt.count + tt.bunch - 1) / tt.bunch
			require.Len(t, sizes, wantGroups)

			for g := 0; g < wantGroups-1; g++ {
				assert.Equal(t, tt.bunch, sizes[g], "group %d", g)
			}

			remainder := tt.count % tt.bunch
			if remainder == 0 {
				remainder = tt.bunch
			}

			assert.Equal(t, remainder, sizes[wantGroups-1], "last group")
		})
	}
}

func TestPackDeterministic(t *testing.T) {
	set := randomBeams(396, 7)

	first, err := Pack(set, DefaultPackOptions())
	require.NoError(t, err)

	second, err := Pack(set, DefaultPackOptions())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("packing is not deterministic (-first +second):\n%s", diff)
	}
}

func TestPackDoesNotMutateInput(t *testing.T) {
	set := randomBeams(50, 3)

	original := make(Set, len(set))
	copy(original, set)

	_, err := Pack(set, DefaultPackOptions())
	require.NoError(t, err)

	if diff := cmp.Diff(original, set); diff != "" {
		t.Errorf("input set was mutated (-want +got):\n%s", diff)
	}
}

func TestPackResultOrderedByGroup(t *testing.T) {
	packed, err := Pack(randomBeams(64, 11), DefaultPackOptions())
	require.NoError(t, err)

	last := 0
	for _, b := range packed {
		require.GreaterOrEqual(t, b.Group, last)
		last = b.Group
	}
}

func TestPackDuplicateIDs(t *testing.T) {
	set := Set{
		{ID: 0, Point: skycoord.Point{X: 0}},
		{ID: 0, Point: skycoord.Point{X: 1}},
	}

	_, err := Pack(set, DefaultPackOptions())
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}
