// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjankowsk/meertrap-misc/web"
)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the packing run browser web server (local only)",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		db, repo, err := openRunsDB(false)
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Printf("Open http://localhost:%d in your browser\n", servePort)
		fmt.Println("Local only - not exposed to the network")

		return web.NewServer(repo).Run(servePort)
	},
}
