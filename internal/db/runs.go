package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Output is one file written by a run.
type Output struct {
	Input  string
	Output string
}

// Run summarizes a recorded compile run.
type Run struct {
	ID        string
	StartedAt time.Time
	Passes    []string
	Inputs    int
	Outputs   int
}

// RecordRun stores a run with its passes and outputs and returns its id.
func RecordRun(db *sql.DB, startedAt time.Time, passes []string, outputs []Output) (string, error) {
	id := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs (id, started_at, passes) VALUES (?, ?, ?)`,
		id, startedAt.UTC().Format(time.RFC3339), strings.Join(passes, ","))
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	for _, o := range outputs {
		_, err := tx.Exec(`INSERT INTO outputs (run_id, input_path, output_path) VALUES (?, ?, ?)`, id, o.Input, o.Output)
		if err != nil {
			return "", fmt.Errorf("inserting output %s: %w", o.Output, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// ListRuns returns up to limit runs, newest first. A limit below 1 returns
// every run.
func ListRuns(db *sql.DB, limit int) ([]Run, error) {
	if limit < 1 {
		limit = -1
	}
	rows, err := db.Query(`
		SELECT r.id, r.started_at, r.passes,
			COUNT(DISTINCT o.input_path), COUNT(o.id)
		FROM runs r
		LEFT JOIN outputs o ON o.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, passes string
		if err := rows.Scan(&r.ID, &started, &passes, &r.Inputs, &r.Outputs); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		if passes != "" {
			r.Passes = strings.Split(passes, ",")
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// RunOutputs returns the files written by run id in the order they were
// recorded.
func RunOutputs(db *sql.DB, id string) ([]Output, error) {
	rows, err := db.Query(`SELECT input_path, output_path FROM outputs WHERE run_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("querying outputs: %w", err)
	}
	defer rows.Close()

	var out []Output
	for rows.Next() {
		var o Output
		if err := rows.Scan(&o.Input, &o.Output); err != nil {
			return nil, fmt.Errorf("scanning output: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
