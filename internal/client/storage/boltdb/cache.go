package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/novakart/storesync/internal/client/storage"
	"github.com/novakart/storesync/internal/models"
)

// cacheKey namespaces entries by collection inside the cache bucket
func cacheKey(collection models.Collection, key string) []byte {
	return []byte(string(collection) + "/" + key)
}

// GetCachedData retrieves a cached entry by (collection, key)
func (s *Storage) GetCachedData(ctx context.Context, collection models.Collection, key string) (*storage.CachedEntry, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entry *storage.CachedEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return storage.ErrCacheMiss
		}

		data := bucket.Get(cacheKey(collection, key))
		if data == nil {
			return storage.ErrCacheMiss
		}

		entry = &storage.CachedEntry{}
		if err := json.Unmarshal(data, entry); err != nil {
			return fmt.Errorf("failed to unmarshal cache entry: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return entry, nil
}

// SetCachedData stores a cache entry stamped with the current time
func (s *Storage) SetCachedData(ctx context.Context, collection models.Collection, key string, value []byte, ttl time.Duration) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	entry := storage.CachedEntry{
		Value:      value,
		InsertedAt: time.Now(),
		TTL:        ttl,
	}

	data, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketCache)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		if err := bucket.Put(cacheKey(collection, key), data); err != nil {
			return fmt.Errorf("failed to save cache entry: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// EvictCachedData removes a cache entry. Absent keys are not an error.
func (s *Storage) EvictCachedData(ctx context.Context, collection models.Collection, key string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return nil
		}
		return bucket.Delete(cacheKey(collection, key))
	})

	if err != nil {
		return fmt.Errorf("evict transaction failed: %w", err)
	}

	return nil
}
