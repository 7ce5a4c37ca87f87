// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjankowsk/meertrap-misc/beams"
	"github.com/fjankowsk/meertrap-misc/report"
)

var overviewFlags struct {
	resolution int
	plotsDir   string
}

func init() {
	overviewCmd.Flags().IntVar(&overviewFlags.resolution, "resolution", 7, "H3 resolution for the sky occupancy table (0-15)")
	overviewCmd.Flags().StringVar(&overviewFlags.plotsDir, "plots", "", "write an overview PNG plot to this directory")

	rootCmd.AddCommand(overviewCmd)
}

var overviewCmd = &cobra.Command{
	Use:   "overview <beam_pos.dat>",
	Short: "Show an overview of a beam position file without packing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		set, err := beams.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d beams\n", args[0], len(set))

		if minPt, maxPt, ok := set.Extents(); ok {
			fmt.Printf("x: %.6f .. %.6f deg\n", minPt.X, maxPt.X)
			fmt.Printf("y: %.6f .. %.6f deg\n", minPt.Y, maxPt.Y)
		}

		cells, err := report.Occupancy(set, overviewFlags.resolution)
		if err != nil {
			return err
		}

		fmt.Printf("sky occupancy (H3 resolution %d, %d cells):\n", overviewFlags.resolution, len(cells))

		for _, cc := range cells {
			fmt.Printf("  %s  %d\n", cc.Cell, cc.Count)
		}

		if overviewFlags.plotsDir != "" {
			file, err := report.SaveOverviewPlot(set, overviewFlags.plotsDir)
			if err != nil {
				return err
			}

			fmt.Printf("overview plot written to %s\n", file)
		}

		return nil
	},
}
