package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run statuses persisted in the runs table.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    source      TEXT NOT NULL,
    dest        TEXT NOT NULL,
    status      TEXT NOT NULL,
    files       INTEGER NOT NULL DEFAULT 0,
    started_at  TEXT NOT NULL,
    finished_at TEXT
);
CREATE TABLE IF NOT EXISTS files (
    run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    source_path TEXT NOT NULL,
    dest_path   TEXT NOT NULL,
    bytes       INTEGER NOT NULL,
    copied_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id);
`

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one recorded organize invocation.
type Run struct {
	ID         string
	Source     string
	Dest       string
	Status     string
	Files      int
	StartedAt  time.Time
	FinishedAt time.Time
}

// File is one recorded copy within a run.
type File struct {
	RunID      string
	SourcePath string
	DestPath   string
	Bytes      int64
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// BeginRun inserts a new run row in the running state and returns it.
func (s *Store) BeginRun(ctx context.Context, source, dest string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Source:    source,
		Dest:      dest,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, source, dest, status, files, started_at) VALUES (?, ?, ?, ?, 0, ?)`,
		run.ID, run.Source, run.Dest, run.Status, run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordFile appends one copied file to the run.
func (s *Store) RecordFile(ctx context.Context, runID, sourcePath, destPath string, bytes int64) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO files (run_id, source_path, dest_path, bytes, copied_at) VALUES (?, ?, ?, ?, ?)`,
		runID, sourcePath, destPath, bytes, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

// FinishRun stamps the run with its final status and file count.
func (s *Store) FinishRun(ctx context.Context, runID, status string, files int) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET status = ?, files = ?, finished_at = ? WHERE id = ?`,
		status, files, time.Now().UTC().Format(time.RFC3339Nano), runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, source, dest, status, files, started_at, COALESCE(finished_at, '') FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Source, &run.Dest, &run.Status, &run.Files, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if finished != "" {
			if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
				return nil, fmt.Errorf("parse finished_at: %w", err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunFiles returns the files recorded for one run, in insertion order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]File, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, source_path, dest_path, bytes FROM files WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var file File
		if err := rows.Scan(&file.RunID, &file.SourcePath, &file.DestPath, &file.Bytes); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}
	return files, rows.Err()
}
