// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fjankowsk/meertrap-misc/beams"
)

// SaveOverviewPlot writes a PNG scatter of an (ungrouped) beam set to
// outDir/beams_overview.png and returns the file path.
func SaveOverviewPlot(set beams.Set, outDir string) (string, error) {
	if len(set) == 0 {
		return "", fmt.Errorf("nothing to plot: empty beam set")
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return "", fmt.Errorf("creating plot directory: %w", err)
	}

	p := plot.New()
	p.Title.Text = "Beam positions"
	p.X.Label.Text = "x (deg)"
	p.Y.Label.Text = "y (deg)"

	pts := make(plotter.XYs, len(set))
	for i, b := range set {
		pts[i] = plotter.XY{X: b.Point.X, Y: b.Point.Y}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return "", fmt.Errorf("creating scatter: %w", err)
	}

	scatter.Radius = vg.Points(2)
	p.Add(scatter)

	file := filepath.Join(outDir, "beams_overview.png")
	if err := p.Save(8*vg.Inch, 8*vg.Inch, file); err != nil {
		return "", fmt.Errorf("saving overview plot: %w", err)
	}

	return file, nil
}

// SaveGroupPlot writes a PNG scatter of a packed beam set colored by group
// to outDir/beams_packed.png and returns the file path.
func SaveGroupPlot(packed beams.Set, outDir string) (string, error) {
	groups := packed.Groups()
	if len(groups) == 0 {
		return "", fmt.Errorf("nothing to plot: empty beam set")
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return "", fmt.Errorf("creating plot directory: %w", err)
	}

	p := plot.New()
	p.Title.Text = "Beam packing"
	p.X.Label.Text = "x (deg)"
	p.Y.Label.Text = "y (deg)"

	colors := groupColors(len(groups))

	for g, members := range groups {
		if len(members) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(members))
		for i, b := range members {
			pts[i] = plotter.XY{X: b.Point.X, Y: b.Point.Y}
		}

		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return "", fmt.Errorf("creating scatter for group %d: %w", g, err)
		}

		scatter.Radius = vg.Points(2)
		scatter.Color = colors[g]
		p.Add(scatter)
	}

	file := filepath.Join(outDir, "beams_packed.png")
	if err := p.Save(8*vg.Inch, 8*vg.Inch, file); err != nil {
		return "", fmt.Errorf("saving group plot: %w", err)
	}

	return file, nil
}

// groupColors creates a palette of distinct colors, one per group.
func groupColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}

	return colors
}

// hslToRGB converts HSL to RGB in the 0-255 range.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}

		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}

	if t > 1 {
		t--
	}

	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
