package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/novakart/storesync/internal/client/storage"
	"github.com/novakart/storesync/internal/models"
)

// AddToSyncQueue durably appends an operation
func (s *Storage) AddToSyncQueue(ctx context.Context, op *models.Operation) error {
	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("failed to marshal operation: %w", err)
	}

	query := `INSERT INTO sync_queue (id, data) VALUES (?, ?)`

	if _, err := s.db.ExecContext(ctx, query, op.ID, string(data)); err != nil {
		return fmt.Errorf("failed to enqueue operation: %w", err)
	}

	return nil
}

// GetSyncQueue returns all queued operations in enqueue order
func (s *Storage) GetSyncQueue(ctx context.Context) ([]*models.Operation, error) {
	query := `SELECT data FROM sync_queue ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync queue: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ops []*models.Operation
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}

		var op models.Operation
		if err := json.Unmarshal([]byte(data), &op); err != nil {
			return nil, fmt.Errorf("failed to unmarshal operation: %w", err)
		}
		ops = append(ops, &op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync queue: %w", err)
	}

	return ops, nil
}

// UpdateSyncItem rewrites a queued operation in place
func (s *Storage) UpdateSyncItem(ctx context.Context, op *models.Operation) error {
	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("failed to marshal operation: %w", err)
	}

	query := `UPDATE sync_queue SET data = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, string(data), op.ID)
	if err != nil {
		return fmt.Errorf("failed to update operation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrOperationNotFound
	}

	return nil
}

// RemoveSyncItem deletes an operation by id
func (s *Storage) RemoveSyncItem(ctx context.Context, id string) error {
	query := `DELETE FROM sync_queue WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to remove operation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrOperationNotFound
	}

	return nil
}
