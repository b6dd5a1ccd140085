package data

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
	id          VARCHAR PRIMARY KEY,
	tool        VARCHAR NOT NULL,
	args        VARCHAR,
	status      VARCHAR,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP,
	processed   INTEGER DEFAULT 0,
	skipped     INTEGER DEFAULT 0,
	bytes       BIGINT DEFAULT 0
	)`,
	`CREATE SEQUENCE IF NOT EXISTS operation_seq START 1`,
	`CREATE TABLE IF NOT EXISTS operations (
	id      BIGINT PRIMARY KEY DEFAULT nextval('operation_seq'),
	run_id  VARCHAR NOT NULL,
	kind    VARCHAR NOT NULL,
	source  VARCHAR,
	target  VARCHAR,
	status  VARCHAR NOT NULL,
	detail  VARCHAR,
	at      TIMESTAMP NOT NULL
	)`,
}

// InitDuckDB opens the ledger at path, creating its directory and tables.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return db, nil
}

type Repository struct {
	db *sql.DB
}

// NewDuckDBRepository opens the run ledger stored at path.
func NewDuckDBRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) SaveRun(run *Run) error {
	_, err := r.db.Exec(
		`INSERT INTO runs (id, tool, args, status, started_at, finished_at, processed, skipped, bytes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Tool, run.Args, run.Status, run.StartedAt, nullTime(run.FinishedAt),
		run.Processed, run.Skipped, run.Bytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

func (r *Repository) UpdateRun(run *Run) error {
	res, err := r.db.Exec(
		`UPDATE runs SET status = ?, finished_at = ?, processed = ?, skipped = ?, bytes = ?
		 WHERE id = ?`,
		run.Status, nullTime(run.FinishedAt), run.Processed, run.Skipped, run.Bytes, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run %s: %w", run.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s not found", run.ID)
	}
	return nil
}

// GetRun returns nil, nil when no run has that id.
func (r *Repository) GetRun(id string) (*Run, error) {
	row := r.db.QueryRow(
		`SELECT id, tool, args, status, started_at, finished_at, processed, skipped, bytes
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

// ListRuns returns the most recent runs first; limit <= 0 means all.
func (r *Repository) ListRuns(limit int) ([]*Run, error) {
	query := `SELECT id, tool, args, status, started_at, finished_at, processed, skipped, bytes
		FROM runs ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *Repository) DeleteRun(id string) error {
	if _, err := r.db.Exec(`DELETE FROM operations WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete operations of run %s: %w", id, err)
	}
	if _, err := r.db.Exec(`DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	return nil
}

func (r *Repository) SaveOperation(op *Operation) error {
	if op.At.IsZero() {
		op.At = time.Now()
	}
	err := r.db.QueryRow(
		`INSERT INTO operations (run_id, kind, source, target, status, detail, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		op.RunID, op.Kind, op.Source, op.Target, op.Status, op.Detail, op.At,
	).Scan(&op.ID)
	if err != nil {
		return fmt.Errorf("failed to save operation: %w", err)
	}
	return nil
}

// GetOperations returns the operations of a run in the order they happened.
func (r *Repository) GetOperations(runID string) ([]*Operation, error) {
	rows, err := r.db.Query(
		`SELECT id, run_id, kind, source, target, status, detail, at
		 FROM operations WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get operations: %w", err)
	}
	defer rows.Close()

	var ops []*Operation
	for rows.Next() {
		op := &Operation{}
		var source, target, detail sql.NullString
		if err := rows.Scan(&op.ID, &op.RunID, &op.Kind, &source, &target, &op.Status, &detail, &op.At); err != nil {
			return nil, err
		}
		op.Source = source.String
		op.Target = target.String
		op.Detail = detail.String
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// CountOperations returns how many operations of a run ended with each status.
func (r *Repository) CountOperations(runID string) (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT status, COUNT(*) FROM operations WHERE run_id = ? GROUP BY status`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to count operations: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	run := &Run{}
	var args, status sql.NullString
	var finished sql.NullTime
	if err := s.Scan(&run.ID, &run.Tool, &args, &status, &run.StartedAt, &finished,
		&run.Processed, &run.Skipped, &run.Bytes); err != nil {
		return nil, err
	}
	run.Args = args.String
	run.Status = status.String
	if finished.Valid {
		run.FinishedAt = finished.Time
	}
	return run, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
