package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/novakart/storesync/internal/client/storage"
)

var keyLastDrainAt = []byte("last_drain_at")

// perfSample is one appended performance-log record
type perfSample struct {
	At         time.Time `json:"at"`
	Event      string    `json:"event"`
	DurationMs int64     `json:"duration_ms"`
}

// SaveLastDrainAt records when the offline queue last drained successfully
func (s *Storage) SaveLastDrainAt(ctx context.Context, t time.Time) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		return bucket.Put(keyLastDrainAt, []byte(t.Format(time.RFC3339Nano)))
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetLastDrainAt returns the last successful drain time
func (s *Storage) GetLastDrainAt(ctx context.Context) (time.Time, error) {
	if s.db == nil {
		return time.Time{}, storage.ErrStorageClosed
	}

	var result time.Time

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return storage.ErrMetadataNotFound
		}

		data := bucket.Get(keyLastDrainAt)
		if data == nil {
			return storage.ErrMetadataNotFound
		}

		t, err := time.Parse(time.RFC3339Nano, string(data))
		if err != nil {
			return fmt.Errorf("failed to parse drain timestamp: %w", err)
		}
		result = t
		return nil
	})

	if err != nil {
		return time.Time{}, err
	}

	return result, nil
}

// AppendPerfLog appends one timing sample to the local performance log
func (s *Storage) AppendPerfLog(ctx context.Context, event string, duration time.Duration) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	sample := perfSample{
		Event:      event,
		DurationMs: duration.Milliseconds(),
		At:         time.Now(),
	}

	data, err := json.Marshal(&sample)
	if err != nil {
		return fmt.Errorf("failed to marshal perf sample: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketPerf)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}

		return bucket.Put([]byte(fmt.Sprintf("%020d", seq)), data)
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
