// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fjankowsk/meertrap-misc/report"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse stored packing runs",
}

var runsListLimit int

func init() {
	runsListCmd.Flags().IntVar(&runsListLimit, "limit", 50, "maximum number of runs to list")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored packing runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		db, repo, err := openRunsDB(false)
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := repo.ListRuns(runsListLimit, 0)
		if err != nil {
			return err
		}

		a, b, c, d := strings.Repeat("─", 4), strings.Repeat("─", 30), strings.Repeat("─", 13), strings.Repeat("─", 19)
		fmt.Printf("╭─%s─┬─%s─┬─%s─┬─%s─╮\n", a, b, c, d)
		fmt.Printf("│ %4s │ %-30s │ %13s │ %-19s │\n", "Id", "Source", "Beams/Groups", "Created")
		fmt.Printf("├─%s─┼─%s─┼─%s─┼─%s─┤\n", a, b, c, d)

		for _, run := range runs {
			fmt.Printf("│ %4d │ %-30s │ %6d/%6d │ %-19s │\n",
				run.ID, run.SourceFile, run.BeamCount, run.GroupCount,
				run.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		fmt.Printf("╰─%s─┴─%s─┴─%s─┴─%s─╯\n", a, b, c, d)

		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored packing run in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}

		db, repo, err := openRunsDB(false)
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := repo.GetRun(id)
		if err != nil {
			return err
		}

		fmt.Printf("run %d: %s (nbeams=%d, bunch=%d), created %s\n",
			run.ID, run.SourceFile, run.NBeams, run.Bunch,
			run.CreatedAt.Format("2006-01-02 15:04:05"))

		printGroupTable(run.Beams, run.Scores)

		s := report.Summarize(run.Scores)
		fmt.Printf("total distance: min %.6f, median %.6f, max %.6f, sum %.6f\n",
			s.Min, s.Median, s.Max, s.Sum)

		return nil
	},
}
