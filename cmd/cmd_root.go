// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "db", "directory holding the packing run database")
}

// dbPath is the directory that holds beampack.duckdb.
var dbPath string

var rootCmd = &cobra.Command{
	Use:   "beampack",
	Short: "MeerTRAP beam packing",
	Long: `
beampack maps the on-sky coherent beams of the MeerTRAP backend to multicast
addresses/compute nodes using a greedy nearest-neighbor algorithm, scores the
resulting grouping by a per-group compactness metric, and keeps a history of
packing runs for comparison.
`,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
