package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// SaveSignal stores a captured channel pair and returns its id.
func (s *Store) SaveSignal(ctx context.Context, microphone, generator []float64) (int64, error) {
	mic, err := encodeSamples(microphone)
	if err != nil {
		return 0, err
	}

	gen, err := encodeSamples(generator)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO signal (signal, generator) VALUES (?, ?)`, mic, gen)
	if err != nil {
		return 0, fmt.Errorf("store: insert signal: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: signal id: %w", err)
	}

	slog.Debug("signal saved", "id", id, "samples", len(microphone), "compressed_bytes", len(mic)+len(gen))

	return id, nil
}

// SetEnabled includes or excludes a signal from analysis.
func (s *Store) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	v := 0
	if enabled {
		v = 1
	}

	res, err := s.db.ExecContext(ctx, `UPDATE signal SET enabled = ? WHERE id = ?`, v, id)
	if err != nil {
		return fmt.Errorf("store: update signal %d: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("store: signal %d: %w", id, sql.ErrNoRows)
	}

	return nil
}

// Signals returns every stored signal in insertion order.
func (s *Store) Signals(ctx context.Context) ([]Signal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, signal, generator, enabled FROM signal ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("store: query signals: %w", err)
	}
	defer rows.Close()

	var out []Signal
	for rows.Next() {
		var (
			sig      Signal
			mic, gen []byte
			enabled  sql.NullInt64
		)
		if err := rows.Scan(&sig.ID, &mic, &gen, &enabled); err != nil {
			return nil, fmt.Errorf("store: scan signal: %w", err)
		}

		if sig.Microphone, err = decodeSamples(mic); err != nil {
			return nil, fmt.Errorf("store: signal %d microphone: %w", sig.ID, err)
		}

		if sig.Generator, err = decodeSamples(gen); err != nil {
			return nil, fmt.Errorf("store: signal %d generator: %w", sig.ID, err)
		}

		sig.Enabled = !enabled.Valid || enabled.Int64 != 0
		out = append(out, sig)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate signals: %w", err)
	}

	return out, nil
}

// Recording returns the first enabled signal.
func (s *Store) Recording(ctx context.Context) ([]float64, []float64, error) {
	signals, err := s.Signals(ctx)
	if err != nil {
		return nil, nil, err
	}

	for _, sig := range signals {
		if sig.Enabled {
			return sig.Microphone, sig.Generator, nil
		}
	}

	return nil, nil, ErrNoSignal
}
