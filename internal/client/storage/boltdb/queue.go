package boltdb

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/novakart/storesync/internal/client/storage"
	"github.com/novakart/storesync/internal/models"
)

// Queue keys are the bucket's monotonically increasing sequence number,
// big-endian encoded so bolt's key order is enqueue order.

// AddToSyncQueue durably appends an operation
func (s *Storage) AddToSyncQueue(ctx context.Context, op *models.Operation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("failed to marshal operation: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketQueue)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		if err := bucket.Put(key, data); err != nil {
			return fmt.Errorf("failed to save operation: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("enqueue transaction failed: %w", err)
	}

	return nil
}

// GetSyncQueue returns all queued operations in enqueue order
func (s *Storage) GetSyncQueue(ctx context.Context) ([]*models.Operation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var ops []*models.Operation

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var op models.Operation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}
			ops = append(ops, &op)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get sync queue: %w", err)
	}

	return ops, nil
}

// UpdateSyncItem rewrites a queued operation in place
func (s *Storage) UpdateSyncItem(ctx context.Context, op *models.Operation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("failed to marshal operation: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return storage.ErrOperationNotFound
		}

		key, err := findOperationKey(bucket, op.ID)
		if err != nil {
			return err
		}

		return bucket.Put(key, data)
	})

	if err != nil {
		if err == storage.ErrOperationNotFound {
			return err
		}
		return fmt.Errorf("update transaction failed: %w", err)
	}

	return nil
}

// RemoveSyncItem deletes an operation by id
func (s *Storage) RemoveSyncItem(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return storage.ErrOperationNotFound
		}

		key, err := findOperationKey(bucket, id)
		if err != nil {
			return err
		}

		return bucket.Delete(key)
	})

	if err != nil {
		if err == storage.ErrOperationNotFound {
			return err
		}
		return fmt.Errorf("remove transaction failed: %w", err)
	}

	return nil
}

// findOperationKey scans for the sequence key holding the operation id.
// The queue stays small (offline writes only), a scan is fine.
func findOperationKey(bucket *bbolt.Bucket, id string) ([]byte, error) {
	var found []byte

	err := bucket.ForEach(func(k, v []byte) error {
		var op models.Operation
		if err := json.Unmarshal(v, &op); err != nil {
			return fmt.Errorf("failed to unmarshal operation: %w", err)
		}
		if op.ID == id {
			found = bytes.Clone(k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, storage.ErrOperationNotFound
	}

	return found, nil
}
