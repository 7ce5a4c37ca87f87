// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver

	"github.com/fjankowsk/meertrap-misc/store"
)

const runsDBFile = "beampack.duckdb"

// openRunsDB opens (and with create, initializes) the packing run database
// under the --db directory. The caller owns the returned *sql.DB.
func openRunsDB(create bool) (*sql.DB, store.RunRepository, error) {
	file := filepath.Join(dbPath, runsDBFile)

	if create {
		if err := os.MkdirAll(dbPath, 0o750); err != nil {
			return nil, nil, fmt.Errorf("creating db directory: %w", err)
		}
	} else if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("database not found at %s - run 'pack --store' first", file)
	}

	db, err := sql.Open("duckdb", file)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	repo, err := store.NewRunRepository(db)
	if err != nil {
		db.Close()

		return nil, nil, err
	}

	if create {
		if err := repo.CreateSchema(); err != nil {
			db.Close()

			return nil, nil, fmt.Errorf("creating runs schema: %w", err)
		}
	}

	return db, repo, nil
}
