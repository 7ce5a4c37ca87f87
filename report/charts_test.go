// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjankowsk/meertrap-misc/beams"
	"github.com/fjankowsk/meertrap-misc/skycoord"
)

func packedFixture(t *testing.T, n int) beams.Set {
	t.Helper()

	set := make(beams.Set, n)
	for i := range set {
		set[i] = beams.Beam{
			ID:    i,
			Point: skycoord.Point{X: float64(i) * 0.01, Y: float64(i%3) * 0.01},
			Group: beams.GroupUnassigned,
		}
	}

	packed, err := beams.Pack(set, beams.DefaultPackOptions())
	require.NoError(t, err)

	return packed
}

func reportFixture(t *testing.T, n int) beams.Report {
	t.Helper()

	r, err := beams.Evaluate(packedFixture(t, n))
	require.NoError(t, err)

	return r
}

func TestRenderGroupScatter(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderGroupScatter(&buf, packedFixture(t, 24), "test scatter"))
	assert.Contains(t, buf.String(), "echarts")
	assert.Contains(t, buf.String(), "group 0")
	assert.Contains(t, buf.String(), "group 3")
}

func TestRenderGroupScatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderGroupScatter(&buf, beams.Set{}, "empty"))
}

func TestRenderScoreHistogram(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderScoreHistogram(&buf, reportFixture(t, 60), "test histogram"))
	assert.Contains(t, buf.String(), "echarts")
}

func TestRenderScoreHistogramEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderScoreHistogram(&buf, beams.Report{}, "empty"))
}

func TestRenderScoreCDF(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderScoreCDF(&buf, reportFixture(t, 60), "test cdf"))
	assert.Contains(t, buf.String(), "echarts")
}

func TestRenderScoreCDFEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderScoreCDF(&buf, beams.Report{}, "empty"))
}
