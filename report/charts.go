// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fjankowsk/meertrap-misc/beams"
)

const histogramBins = 20

// RenderGroupScatter writes an interactive HTML scatter plot of a packed
// beam set, one series per group, to w.
func RenderGroupScatter(w io.Writer, packed beams.Set, title string) error {
	minPt, maxPt, ok := packed.Extents()
	if !ok {
		return fmt.Errorf("nothing to plot: empty beam set")
	}

	// Small padding so points at the edges stay visible.
	padX := (maxPt.X - minPt.X) * 0.05
	padY := (maxPt.Y - minPt.Y) * 0.05

	if padX == 0 {
		padX = 0.01
	}

	if padY == 0 {
		padY = 0.01
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("beams=%d groups=%d", len(packed), len(packed.Groups()))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: minPt.X - padX, Max: maxPt.X + padX, Name: "x (deg)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: minPt.Y - padY, Max: maxPt.Y + padY, Name: "y (deg)", NameLocation: "middle", NameGap: 30}),
	)

	for g, members := range packed.Groups() {
		data := make([]opts.ScatterData, 0, len(members))
		for _, b := range members {
			data = append(data, opts.ScatterData{Value: []interface{}{b.Point.X, b.Point.Y}})
		}

		scatter.AddSeries(fmt.Sprintf("group %d", g), data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}),
		)
	}

	return scatter.Render(w)
}

// RenderScoreHistogram writes an HTML histogram of the per-group
// compactness scores to w.
func RenderScoreHistogram(w io.Writer, r beams.Report, title string) error {
	if len(r) == 0 {
		return fmt.Errorf("nothing to plot: empty report")
	}

	lo, hi := r[0].TotalDistance, r[0].TotalDistance
	for _, gs := range r[1:] {
		lo = math.Min(lo, gs.TotalDistance)
		hi = math.Max(hi, gs.TotalDistance)
	}

	width := (hi - lo) / histogramBins
	if width == 0 {
		width = 1
	}

	labels := make([]string, histogramBins)
	counts := make([]opts.BarData, histogramBins)

	for i := range counts {
		labels[i] = fmt.Sprintf("%.3g", lo+(float64(i)+0.5)*width)
		counts[i] = opts.BarData{Value: 0}
	}

	for _, gs := range r {
		bin := int((gs.TotalDistance - lo) / width)
		if bin >= histogramBins {
			bin = histogramBins - 1
		}

		counts[bin].Value = counts[bin].Value.(int) + 1
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("groups=%d", len(r))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "total distance (deg)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "groups"}),
	)

	bar.SetXAxis(labels).AddSeries("groups", counts)

	return bar.Render(w)
}

// RenderScoreCDF writes an HTML empirical CDF of the per-group compactness
// scores to w.
func RenderScoreCDF(w io.Writer, r beams.Report, title string) error {
	if len(r) == 0 {
		return fmt.Errorf("nothing to plot: empty report")
	}

	dist := make([]float64, len(r))
	for i, gs := range r {
		dist[i] = gs.TotalDistance
	}

	sort.Float64s(dist)

	labels := make([]string, len(dist))
	data := make([]opts.LineData, len(dist))

	for i, d := range dist {
		labels[i] = fmt.Sprintf("%.4g", d)
		data[i] = opts.LineData{Value: float64(i+1) / float64(len(dist))}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("groups=%d", len(r))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "total distance (deg)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "fraction of groups", Min: 0, Max: 1}),
	)

	line.SetXAxis(labels).AddSeries("cdf", data)

	return line.Render(w)
}
