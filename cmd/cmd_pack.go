// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/fjankowsk/meertrap-misc/beams"
	"github.com/fjankowsk/meertrap-misc/report"
	"github.com/fjankowsk/meertrap-misc/store"
)

var packFlags struct {
	nbeams    int
	bunch     int
	persist   bool
	plotsDir  string
	chartsDir string
	quiet     bool
}

func init() {
	packCmd.Flags().IntVar(&packFlags.nbeams, "nbeams", beams.DefaultNBeams, "maximum number of beams considered for packing")
	packCmd.Flags().IntVar(&packFlags.bunch, "bunch", beams.DefaultBunch, "number of beams to pack into a group")
	packCmd.Flags().BoolVar(&packFlags.persist, "store", false, "persist the run(s) to the packing run database")
	packCmd.Flags().StringVar(&packFlags.plotsDir, "plots", "", "write PNG plots to this directory")
	packCmd.Flags().StringVar(&packFlags.chartsDir, "charts", "", "write interactive HTML charts to this directory")
	packCmd.Flags().BoolVarP(&packFlags.quiet, "quiet", "q", false, "suppress the per-group table")

	rootCmd.AddCommand(packCmd)
}

var packCmd = &cobra.Command{
	Use:   "pack <beam_pos.dat>...",
	Short: "Pack on-sky beams into multicast groups and score the result",
	Long: `
Reads beam positions from one or more tab-delimited files (x and y on-sky
coordinates, one beam per line), packs them into groups of --bunch beams with
the greedy nearest-neighbor algorithm, and evaluates the compactness of every
group as the sum of its pairwise member distances.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		var repo store.RunRepository

		if packFlags.persist {
			db, r, err := openRunsDB(true)
			if err != nil {
				return err
			}
			defer db.Close()

			repo = r
		}

		var bar *progressbar.ProgressBar
		if len(args) > 1 && isatty.IsTerminal(os.Stderr.Fd()) {
			bar = progressbar.NewOptions(len(args),
				progressbar.OptionSetDescription("Packing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		for _, filename := range args {
			if err := packOne(filename, repo); err != nil {
				return fmt.Errorf("packing %s: %w", filename, err)
			}

			if bar != nil {
				_ = bar.Add(1)
			}
		}

		return nil
	},
}

func packOne(filename string, repo store.RunRepository) error {
	set, err := beams.Load(filename)
	if err != nil {
		return err
	}

	opts := beams.PackOptions{
		NBeams: packFlags.nbeams,
		Bunch:  packFlags.bunch,
		Notify: func(format string, args ...interface{}) {
			log.Printf("%s: %s", filename, fmt.Sprintf(format, args...))
		},
	}

	packed, err := beams.Pack(set, opts)
	if err != nil {
		return err
	}

	scores, err := beams.Evaluate(packed)
	if err != nil {
		return err
	}

	if !packFlags.quiet {
		printGroupTable(packed, scores)
	}

	printSummary(filename, len(set), len(packed), report.Summarize(scores))

	if packFlags.plotsDir != "" {
		dir := filepath.Join(packFlags.plotsDir, baseName(filename))

		if _, err := report.SaveOverviewPlot(set, dir); err != nil {
			return err
		}

		if _, err := report.SaveGroupPlot(packed, dir); err != nil {
			return err
		}
	}

	if packFlags.chartsDir != "" {
		if err := writeCharts(filename, packed, scores); err != nil {
			return err
		}
	}

	if repo != nil {
		run := &store.Run{
			SourceFile: filename,
			NBeams:     packFlags.nbeams,
			Bunch:      packFlags.bunch,
			Beams:      packed,
			Scores:     scores,
		}

		if err := repo.SaveRun(run); err != nil {
			return fmt.Errorf("storing run: %w", err)
		}

		log.Printf("stored run %d", run.ID)
	}

	return nil
}

func writeCharts(filename string, packed beams.Set, scores beams.Report) error {
	dir := filepath.Join(packFlags.chartsDir, baseName(filename))

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating charts directory: %w", err)
	}

	charts := []struct {
		file   string
		render func(f *os.File) error
	}{
		{file: "scatter.html", render: func(f *os.File) error {
			return report.RenderGroupScatter(f, packed, "Beam packing")
		}},
		{file: "histogram.html", render: func(f *os.File) error {
			return report.RenderScoreHistogram(f, scores, "Total distance histogram")
		}},
		{file: "cdf.html", render: func(f *os.File) error {
			return report.RenderScoreCDF(f, scores, "Total distance CDF")
		}},
	}

	for _, c := range charts {
		f, err := os.Create(filepath.Clean(filepath.Join(dir, c.file)))
		if err != nil {
			return fmt.Errorf("creating %s: %w", c.file, err)
		}

		if err := c.render(f); err != nil {
			f.Close()

			return fmt.Errorf("rendering %s: %w", c.file, err)
		}

		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", c.file, err)
		}
	}

	return nil
}

func printGroupTable(packed beams.Set, scores beams.Report) {
	groups := packed.Groups()

	a, b, c := strings.Repeat("─", 5), strings.Repeat("─", 5), strings.Repeat("─", 14)
	fmt.Printf("╭─%s─┬─%s─┬─%s─╮\n", a, b, c)
	fmt.Printf("│ %5s │ %5s │ %14s │\n", "Group", "Beams", "Total distance")
	fmt.Printf("├─%s─┼─%s─┼─%s─┤\n", a, b, c)

	for _, gs := range scores {
		size := 0
		if gs.Group < len(groups) {
			size = len(groups[gs.Group])
		}

		fmt.Printf("│ %5d │ %5d │ %14.6f │\n", gs.Group, size, gs.TotalDistance)
	}

	fmt.Printf("╰─%s─┴─%s─┴─%s─╯\n", a, b, c)
}

func printSummary(filename string, loaded, packed int, s report.Summary) {
	fmt.Printf("%s: %d beams read, %d packed into %d groups\n", filename, loaded, packed, s.Groups)
	fmt.Printf("total distance: min %.6f, median %.6f, max %.6f, sum %.6f\n",
		s.Min, s.Median, s.Max, s.Sum)
}

// baseName strips directory and extension from a path for use as an output
// subdirectory name.
func baseName(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
