// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package beams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjankowsk/meertrap-misc/skycoord"
)

func TestSetValidate(t *testing.T) {
	assert.NoError(t, Set{}.Validate())
	assert.NoError(t, lineOfBeams(5).Validate())

	dup := Set{
		{ID: 1, Point: skycoord.Point{X: 0}},
		{ID: 1, Point: skycoord.Point{X: 1}},
	}
	assert.Error(t, dup.Validate())
}

func TestSetPacked(t *testing.T) {
	set := lineOfBeams(3)
	assert.False(t, set.Packed())

	for i := range set {
		set[i].Group = 0
	}

	assert.True(t, set.Packed())
	assert.True(t, Set{}.Packed())
}

func TestSetGroups(t *testing.T) {
	packed, err := Pack(lineOfBeams(14), DefaultPackOptions())
	require.NoError(t, err)

	groups := packed.Groups()
	require.Len(t, groups, 3)
	assert.Len(t, groups[0], 6)
	assert.Len(t, groups[1], 6)
	assert.Len(t, groups[2], 2)

	assert.Nil(t, Set{}.Groups())
}

func TestSetExtents(t *testing.T) {
	set := Set{
		{ID: 0, Point: skycoord.Point{X: 2, Y: -1}},
		{ID: 1, Point: skycoord.Point{X: -3, Y: 5}},
		{ID: 2, Point: skycoord.Point{X: 1, Y: 0}},
	}

	minPt, maxPt, ok := set.Extents()
	require.True(t, ok)
	assert.Equal(t, skycoord.Point{X: -3, Y: -1}, minPt)
	assert.Equal(t, skycoord.Point{X: 2, Y: 5}, maxPt)

	_, _, ok = Set{}.Extents()
	assert.False(t, ok)
}
