// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

// Package store persists packing runs to DuckDB so earlier configurations
// can be compared and served without re-running the packer.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fjankowsk/meertrap-misc/beams"
	"github.com/fjankowsk/meertrap-misc/skycoord"
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run is one persisted packing run: its configuration, the packed beam
// assignments and the per-group compactness scores.
type Run struct {
	ID         int          `json:"id"`
	SourceFile string       `json:"source_file"`
	NBeams     int          `json:"nbeams"`
	Bunch      int          `json:"bunch"`
	BeamCount  int          `json:"beam_count"`
	GroupCount int          `json:"group_count"`
	CreatedAt  time.Time    `json:"created_at"`
	Beams      beams.Set    `json:"beams,omitempty"`
	Scores     beams.Report `json:"scores,omitempty"`
}

// RunRepository handles persistence of packing runs.
type RunRepository interface {
	// CreateSchema creates the runs tables.
	CreateSchema() error

	// SaveRun stores a run with its beams and scores, assigning Run.ID.
	SaveRun(run *Run) error

	// ListRuns returns run headers (no beams or scores), newest first.
	ListRuns(limit, offset int) ([]*Run, error)

	// GetRun returns a full run including beams and scores.
	GetRun(id int) (*Run, error)

	// CountRuns returns the total number of stored runs.
	CountRuns() (int, error)
}

type sqlRunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a DuckDB-backed run repository.
func NewRunRepository(db *sql.DB) (RunRepository, error) {
	// DuckDB needs to load the spatial extension for POINT_2D columns.
	_, err := db.Exec(`INSTALL spatial; LOAD spatial;`)
	if err != nil {
		return nil, fmt.Errorf("loading duckdb spatial extension: %w", err)
	}

	return &sqlRunRepository{db: db}, nil
}

func (r *sqlRunRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE SEQUENCE IF NOT EXISTS runs_seq START 1;

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY DEFAULT nextval('runs_seq'),
			source_file VARCHAR NOT NULL,
			nbeams INTEGER NOT NULL,
			bunch INTEGER NOT NULL,
			beam_count INTEGER NOT NULL,
			group_count INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS run_beams (
			run_id INTEGER NOT NULL,
			beam_id INTEGER NOT NULL,
			point POINT_2D NOT NULL,
			group_nr INTEGER NOT NULL,
			UNIQUE(run_id, beam_id)
		);

		CREATE TABLE IF NOT EXISTS run_groups (
			run_id INTEGER NOT NULL,
			group_nr INTEGER NOT NULL,
			total_distance DOUBLE NOT NULL,
			UNIQUE(run_id, group_nr)
		);
	`)

	return err
}

func (r *sqlRunRepository) SaveRun(run *Run) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	run.CreatedAt = time.Now()
	run.BeamCount = len(run.Beams)
	run.GroupCount = len(run.Scores)

	err = tx.QueryRow(`
		INSERT INTO runs(source_file, nbeams, bunch, beam_count, group_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		run.SourceFile,
		run.NBeams,
		run.Bunch,
		run.BeamCount,
		run.GroupCount,
		run.CreatedAt,
	).Scan(&run.ID)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	beamStmt, err := tx.Prepare(`
		INSERT INTO run_beams(run_id, beam_id, point, group_nr)
		VALUES (?, ?, ST_Point(?, ?), ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing beam insert: %w", err)
	}
	defer beamStmt.Close()

	for _, b := range run.Beams {
		if _, err = beamStmt.Exec(run.ID, b.ID, b.Point.X, b.Point.Y, b.Group); err != nil {
			return fmt.Errorf("inserting beam %d: %w", b.ID, err)
		}
	}

	groupStmt, err := tx.Prepare(`
		INSERT INTO run_groups(run_id, group_nr, total_distance)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing group insert: %w", err)
	}
	defer groupStmt.Close()

	for _, gs := range run.Scores {
		if _, err = groupStmt.Exec(run.ID, gs.Group, gs.TotalDistance); err != nil {
			return fmt.Errorf("inserting group %d: %w", gs.Group, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}

	return nil
}

func (r *sqlRunRepository) ListRuns(limit, offset int) ([]*Run, error) {
	rows, err := r.db.Query(`
		SELECT id, source_file, nbeams, bunch, beam_count, group_count, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run

	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.SourceFile, &run.NBeams, &run.Bunch,
			&run.BeamCount, &run.GroupCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

func (r *sqlRunRepository) GetRun(id int) (*Run, error) {
	var run Run

	err := r.db.QueryRow(`
		SELECT id, source_file, nbeams, bunch, beam_count, group_count, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.SourceFile, &run.NBeams, &run.Bunch,
		&run.BeamCount, &run.GroupCount, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	} else if err != nil {
		return nil, fmt.Errorf("reading run %d: %w", id, err)
	}

	rows, err := r.db.Query(`
		SELECT beam_id, point, group_nr
		FROM run_beams
		WHERE run_id = ?
		ORDER BY group_nr, beam_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("reading beams for run %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			b  beams.Beam
			pt skycoord.Point
		)

		if err := rows.Scan(&b.ID, &pt, &b.Group); err != nil {
			return nil, fmt.Errorf("scanning beam: %w", err)
		}

		b.Point = pt
		run.Beams = append(run.Beams, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	groupRows, err := r.db.Query(`
		SELECT group_nr, total_distance
		FROM run_groups
		WHERE run_id = ?
		ORDER BY group_nr
	`, id)
	if err != nil {
		return nil, fmt.Errorf("reading groups for run %d: %w", id, err)
	}
	defer groupRows.Close()

	for groupRows.Next() {
		var gs beams.GroupScore
		if err := groupRows.Scan(&gs.Group, &gs.TotalDistance); err != nil {
			return nil, fmt.Errorf("scanning group score: %w", err)
		}

		run.Scores = append(run.Scores, gs)
	}

	return &run, groupRows.Err()
}

func (r *sqlRunRepository) CountRuns() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}

	return n, nil
}
