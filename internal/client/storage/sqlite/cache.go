package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/novakart/storesync/internal/client/storage"
	"github.com/novakart/storesync/internal/models"
)

// GetCachedData retrieves a cached entry by (collection, key)
func (s *Storage) GetCachedData(ctx context.Context, collection models.Collection, key string) (*storage.CachedEntry, error) {
	query := `SELECT value, inserted_at, ttl_ns FROM cache_entries WHERE collection = ? AND key = ?`

	var (
		value      []byte
		insertedAt int64
		ttlNs      int64
	)

	err := s.db.QueryRowContext(ctx, query, string(collection), key).Scan(&value, &insertedAt, &ttlNs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	return &storage.CachedEntry{
		Value:      value,
		InsertedAt: time.Unix(0, insertedAt),
		TTL:        time.Duration(ttlNs),
	}, nil
}

// SetCachedData stores a cache entry stamped with the current time
func (s *Storage) SetCachedData(ctx context.Context, collection models.Collection, key string, value []byte, ttl time.Duration) error {
	query := `
		INSERT INTO cache_entries (collection, key, value, inserted_at, ttl_ns)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection, key) DO UPDATE SET
			value = excluded.value,
			inserted_at = excluded.inserted_at,
			ttl_ns = excluded.ttl_ns`

	_, err := s.db.ExecContext(ctx, query, string(collection), key, value, time.Now().UnixNano(), int64(ttl))
	if err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}

	return nil
}

// EvictCachedData removes a cache entry. Absent keys are not an error.
func (s *Storage) EvictCachedData(ctx context.Context, collection models.Collection, key string) error {
	query := `DELETE FROM cache_entries WHERE collection = ? AND key = ?`

	if _, err := s.db.ExecContext(ctx, query, string(collection), key); err != nil {
		return fmt.Errorf("failed to evict cache entry: %w", err)
	}

	return nil
}
