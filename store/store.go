// Package store persists one measurement per SQLite file: the measurement
// settings (including located impulses), the analysis settings last used,
// and the captured channel pairs as compressed blobs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNoSignal is returned when a measurement holds no enabled signal.
var ErrNoSignal = errors.New("store: no enabled signal")

// Signal is one captured channel pair.
type Signal struct {
	ID         int64
	Microphone []float64
	Generator  []float64
	Enabled    bool
}

// Store is a measurement file.
type Store struct {
	db *sql.DB
}

// Create creates a new measurement file at path, replacing any existing
// one.
func Create(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store: database path is required")
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("store: remove existing measurement: %w", err)
	}

	return Open(path)
}

// Open opens (or creates) the measurement file at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store: database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite database: %w", err)
	}

	st := &Store{db: db}
	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Debug("measurement store opened", "path", path)

	return st, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS attributes (
	"key" TEXT PRIMARY KEY,
	"value" TEXT
);
CREATE TABLE IF NOT EXISTS analysis (
	"key" TEXT PRIMARY KEY,
	"value" TEXT
);
CREATE TABLE IF NOT EXISTS signal (
	id INTEGER PRIMARY KEY,
	signal BLOB,
	generator BLOB,
	enabled INTEGER DEFAULT 1
);
`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: run migrations: %w", err)
	}

	return nil
}

// SaveMeasurementSettings stores or replaces the given measurement
// settings.
func (s *Store) SaveMeasurementSettings(ctx context.Context, settings map[string]string) error {
	return s.saveSettings(ctx, "attributes", settings)
}

// SaveAnalysisSettings stores or replaces the given analysis settings.
func (s *Store) SaveAnalysisSettings(ctx context.Context, settings map[string]string) error {
	return s.saveSettings(ctx, "analysis", settings)
}

// MeasurementSettings returns all stored measurement settings.
func (s *Store) MeasurementSettings(ctx context.Context) (map[string]string, error) {
	return s.settings(ctx, "attributes")
}

// AnalysisSettings returns all stored analysis settings.
func (s *Store) AnalysisSettings(ctx context.Context) (map[string]string, error) {
	return s.settings(ctx, "analysis")
}

// IsAnalyzed reports whether analysis settings have been stored.
func (s *Store) IsAnalyzed(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis`).Scan(&n); err != nil {
		return false, fmt.Errorf("store: count analysis settings: %w", err)
	}

	return n > 0, nil
}

// table is one of the two fixed settings tables, never user input.
func (s *Store) saveSettings(ctx context.Context, table string, settings map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := `REPLACE INTO ` + table + ` ("key", "value") VALUES (?, ?)`
	for key, value := range settings {
		if _, err := tx.ExecContext(ctx, q, key, value); err != nil {
			return fmt.Errorf("store: save %s %q: %w", table, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit %s: %w", table, err)
	}

	slog.Debug("settings saved", "table", table, "keys", len(settings))

	return nil
}

func (s *Store) settings(ctx context.Context, table string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT "key", "value" FROM `+table)
	if err != nil {
		return nil, fmt.Errorf("store: query %s: %w", table, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var (
			key   string
			value sql.NullString
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("store: scan %s: %w", table, err)
		}

		out[key] = value.String
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate %s: %w", table, err)
	}

	return out, nil
}
