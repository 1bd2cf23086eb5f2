package storage

import (
	"context"
	"time"

	"github.com/novakart/storesync/internal/models"
)

//go:generate moq -out cachestorage_mock.go . CacheStorage

// CachedEntry is one persisted cache entry with its freshness envelope
type CachedEntry struct {
	InsertedAt time.Time     `json:"inserted_at"`
	Value      []byte        `json:"value"`
	TTL        time.Duration `json:"ttl"`
}

// Fresh reports whether the entry is still within its TTL at the given time.
// Stale entries may still be served (stale-while-revalidate), callers decide.
func (e *CachedEntry) Fresh(now time.Time) bool {
	return now.Sub(e.InsertedAt) < e.TTL
}

// CacheStorage defines the persistent cache tier.
// Implementations never panic; I/O failures surface as errors and callers
// degrade them to cache misses.
type CacheStorage interface {
	// GetCachedData retrieves a cached entry by (collection, key).
	// Returns ErrCacheMiss if no entry exists.
	GetCachedData(ctx context.Context, collection models.Collection, key string) (*CachedEntry, error)

	// SetCachedData stores a cache entry, stamping it with the current time
	SetCachedData(ctx context.Context, collection models.Collection, key string, value []byte, ttl time.Duration) error

	// EvictCachedData removes a cache entry. Evicting an absent key is not an error.
	EvictCachedData(ctx context.Context, collection models.Collection, key string) error
}
