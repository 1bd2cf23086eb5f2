package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/novakart/storesync/internal/client/storage"
	"github.com/novakart/storesync/internal/models"
)

// Options configures the tiered cache. Zero values take the defaults.
type Options struct {
	// MemorySize bounds the number of entries in the memory tier
	MemorySize int
	// MemoryTTL bounds staleness under rapid UI navigation
	MemoryTTL time.Duration
	// PersistentTTL is the longer horizon serving as the offline fallback
	PersistentTTL time.Duration
}

func (o *Options) defaults() {
	if o.MemorySize == 0 {
		o.MemorySize = 256
	}
	if o.MemoryTTL == 0 {
		o.MemoryTTL = 5 * time.Minute
	}
	if o.PersistentTTL == 0 {
		o.PersistentTTL = 30 * time.Minute
	}
}

// Tiered is the two-tier cache: memory first, persistent second.
// The persistent tier never aborts a read; its I/O errors degrade to misses.
type Tiered struct {
	memory     *Memory
	persistent storage.CacheStorage
	logger     *slog.Logger
	opts       Options
}

// NewTiered creates a tiered cache over the given persistent tier
func NewTiered(persistent storage.CacheStorage, opts *Options, logger *slog.Logger) (*Tiered, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.defaults()

	memory, err := NewMemory(o.MemorySize)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory tier: %w", err)
	}

	return &Tiered{
		memory:     memory,
		persistent: persistent,
		logger:     logger,
		opts:       o,
	}, nil
}

// Get looks up memory, then persistent, then reports a miss.
// The returned fresh flag drives stale-while-revalidate decisions.
// A fresh persistent hit is written through to the memory tier.
func (t *Tiered) Get(ctx context.Context, collection models.Collection, key string) ([]byte, bool, bool) {
	memValue, memFresh, memOK := t.memory.Get(collection, key)
	if memOK && memFresh {
		return memValue, true, true
	}

	entry, err := t.persistent.GetCachedData(ctx, collection, key)
	if err != nil {
		if !errors.Is(err, storage.ErrCacheMiss) {
			t.logger.Warn("persistent cache read failed, treating as miss",
				"collection", collection, "key", key, "error", err)
		}
		// Stale memory beats nothing
		if memOK {
			return memValue, false, true
		}
		return nil, false, false
	}

	fresh := entry.Fresh(time.Now())
	if fresh {
		t.memory.Set(collection, key, entry.Value, t.opts.MemoryTTL)
	}
	return entry.Value, fresh, true
}

// Set writes both tiers. The persistent write is awaited so mutation paths
// get durability; its failure is degraded to a log line, never an error.
func (t *Tiered) Set(ctx context.Context, collection models.Collection, key string, value []byte) {
	t.memory.Set(collection, key, value, t.opts.MemoryTTL)

	if err := t.persistent.SetCachedData(ctx, collection, key, value, t.opts.PersistentTTL); err != nil {
		t.logger.Warn("persistent cache write failed",
			"collection", collection, "key", key, "error", err)
	}
}

// Evict removes the entry from both tiers
func (t *Tiered) Evict(ctx context.Context, collection models.Collection, key string) {
	t.memory.Evict(collection, key)

	if err := t.persistent.EvictCachedData(ctx, collection, key); err != nil {
		t.logger.Warn("persistent cache evict failed",
			"collection", collection, "key", key, "error", err)
	}
}
