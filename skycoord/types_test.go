// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package skycoord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    Point
		b    Point
		want float64
	}{
		{
			name: "same point",
			a:    Point{X: 1.5, Y: -0.25},
			b:    Point{X: 1.5, Y: -0.25},
			want: 0,
		},
		{
			name: "unit along x",
			a:    Point{X: 0, Y: 0},
			b:    Point{X: 1, Y: 0},
			want: 1,
		},
		{
			name: "3-4-5 triangle",
			a:    Point{X: 0, Y: 0},
			b:    Point{X: 3, Y: 4},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.Distance(tt.b), 1e-12)
			assert.InDelta(t, tt.want, tt.b.Distance(tt.a), 1e-12)
		})
	}
}

func TestPointScanRoundTrip(t *testing.T) {
	p := Point{X: 134.0696, Y: -0.125}

	v, err := p.Value()
	require.NoError(t, err)

	var got Point
	// DuckDB returns "POINT (x y)" with a space after the keyword.
	require.NoError(t, got.Scan([]byte("POINT (134.069600 -0.125000)")))
	assert.InDelta(t, p.X, got.X, 1e-6)
	assert.InDelta(t, p.Y, got.Y, 1e-6)

	assert.Equal(t, "POINT(134.069600 -0.125000)", v)
}

func TestPointScanInvalid(t *testing.T) {
	var p Point
	assert.Error(t, p.Scan(42))

	require.NoError(t, p.Scan(nil))
	assert.Zero(t, p.X)
	assert.Zero(t, p.Y)
}
