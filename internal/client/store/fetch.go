package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/novakart/storesync/internal/client/api"
	"github.com/novakart/storesync/internal/client/cache"
	"github.com/novakart/storesync/internal/models"
)

// KeyAll is the cache partition key for a full collection snapshot
const KeyAll = "all"

// fetchMaxRetries bounds online retries of a transient network failure
const fetchMaxRetries = 2

// Fetcher decides per fetch whether to serve from cache, refresh in the
// background, or block on the network, based on staleness and connectivity.
type Fetcher[T models.Entity] struct {
	slice      *Slice[T]
	cache      *cache.Tiered
	online     func() bool
	remote     func(ctx context.Context) ([]T, error)
	logger     *slog.Logger
	collection models.Collection
	group      singleflight.Group
}

// NewFetcher creates a fetch orchestrator for one slice.
// remote performs the network read and returns normalized entities.
func NewFetcher[T models.Entity](
	slice *Slice[T],
	collection models.Collection,
	tiered *cache.Tiered,
	online func() bool,
	remote func(ctx context.Context) ([]T, error),
	logger *slog.Logger,
) *Fetcher[T] {
	return &Fetcher[T]{
		slice:      slice,
		collection: collection,
		cache:      tiered,
		online:     online,
		remote:     remote,
		logger:     logger,
	}
}

// Fetch populates the slice. With force=false a populated slice is left
// alone; that is a cheap guard, freshness is the cache layer's job.
// Concurrent calls coalesce into a single in-flight fetch.
func (f *Fetcher[T]) Fetch(ctx context.Context, force bool) error {
	if !force && f.slice.Len() > 0 {
		return nil
	}

	v, err, _ := f.group.Do(string(f.collection), func() (interface{}, error) {
		return f.fetch(ctx)
	})
	if err != nil {
		return err
	}

	if needsRefresh, _ := v.(bool); needsRefresh {
		// Stale-while-revalidate: the caller already has data, refresh
		// without blocking it. The refresh runs through the same
		// singleflight group, so a fetch issued while it is in flight
		// joins it instead of dialing the network a second time.
		refreshCtx := context.WithoutCancel(ctx)
		go func() {
			_, err, _ := f.group.Do(string(f.collection), func() (interface{}, error) {
				return false, f.refresh(refreshCtx)
			})
			if err != nil {
				f.logger.Warn("background refresh failed",
					"collection", f.collection, "error", err)
			}
		}()
	}
	return nil
}

// fetch serves one coalesced fetch. It reports whether a stale cache
// snapshot was served and a background revalidation is wanted.
func (f *Fetcher[T]) fetch(ctx context.Context) (bool, error) {
	f.slice.setLoading(true)
	defer f.slice.setLoading(false)

	online := f.online()

	if data, fresh, ok := f.cache.Get(ctx, f.collection, KeyAll); ok {
		items, err := decodeCached[T](data)
		if err == nil {
			// The snapshot was written before any edit the slice still
			// tracks, so install it under every live touch and tombstone.
			// A pending offline mutation must survive a cache serve.
			f.slice.ReplaceAllSince(0, items)
			f.slice.setErr(nil)
			return online && !fresh, nil
		}
		f.logger.Warn("failed to decode cached collection, refetching",
			"collection", f.collection, "error", err)
	}

	if !online {
		// No cached value and no network: surface an empty collection
		// and record the error state. Offline fetches are not retried.
		err := fmt.Errorf("offline and no cached data for %s", f.collection)
		f.slice.setErr(err)
		return false, err
	}

	return false, f.refresh(ctx)
}

// refresh performs the network fetch, writes through both cache tiers and
// installs the result. Transient server failures are retried a bounded
// number of times; connectivity loss is not (wasted I/O while offline).
func (f *Fetcher[T]) refresh(ctx context.Context) error {
	start := time.Now()
	gen := f.slice.Generation()

	var items []T
	backoff := retry.WithMaxRetries(fetchMaxRetries, retry.NewFibonacci(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result, err := f.remote(ctx)
		if err != nil {
			if api.IsTransient(err) && !api.IsUnavailable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		items = result
		return nil
	})

	if err != nil {
		// Whatever was in the slice (cached, possibly stale) stays; the
		// failure is recorded, never thrown past the slice boundary.
		f.slice.setErr(err)
		f.logger.Warn("network fetch failed",
			"collection", f.collection, "error", err)
		return err
	}

	if data, err := json.Marshal(items); err == nil {
		f.cache.Set(ctx, f.collection, KeyAll, data)
	} else {
		f.logger.Warn("failed to encode collection for cache",
			"collection", f.collection, "error", err)
	}

	f.slice.ReplaceAllSince(gen, items)
	f.slice.setErr(nil)

	f.logger.Debug("collection fetched",
		"collection", f.collection,
		"count", len(items),
		"took", time.Since(start))
	return nil
}

// Invalidate drops the collection's cached snapshot so the next fetch is
// guaranteed fresh
func (f *Fetcher[T]) Invalidate(ctx context.Context) {
	f.cache.Evict(ctx, f.collection, KeyAll)
}

func decodeCached[T models.Entity](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached collection: %w", err)
	}
	return items, nil
}
