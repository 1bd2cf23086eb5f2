package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/novakart/storesync/internal/client/storage"
)

const keyLastDrainAt = "last_drain_at"

// SaveLastDrainAt records when the offline queue last drained successfully
func (s *Storage) SaveLastDrainAt(ctx context.Context, t time.Time) error {
	query := `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	_, err := s.db.ExecContext(ctx, query, keyLastDrainAt, t.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save last drain time: %w", err)
	}

	return nil
}

// GetLastDrainAt returns the last successful drain time
func (s *Storage) GetLastDrainAt(ctx context.Context) (time.Time, error) {
	query := `SELECT value FROM metadata WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, keyLastDrainAt).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, storage.ErrMetadataNotFound
		}
		return time.Time{}, fmt.Errorf("failed to get last drain time: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse drain timestamp: %w", err)
	}

	return t, nil
}

// AppendPerfLog appends one timing sample to the local performance log
func (s *Storage) AppendPerfLog(ctx context.Context, event string, duration time.Duration) error {
	query := `INSERT INTO perf_log (event, duration_ms, at) VALUES (?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, event, duration.Milliseconds(), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to append perf log: %w", err)
	}

	return nil
}
