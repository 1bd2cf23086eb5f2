package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/novakart/storesync/internal/models"
)

// memEntry keeps the freshness envelope next to the value so staleness
// is decided at read time, not by the LRU's eviction
type memEntry struct {
	insertedAt time.Time
	value      []byte
	ttl        time.Duration
}

// Memory is the volatile cache tier. Entry count is bounded by a 2Q LRU;
// freshness is per entry.
type Memory struct {
	lru *lru.TwoQueueCache[string, memEntry]
}

// NewMemory creates a memory cache holding at most size entries
func NewMemory(size int) (*Memory, error) {
	l, err := lru.New2Q[string, memEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru: %w", err)
	}
	return &Memory{lru: l}, nil
}

func memKey(collection models.Collection, key string) string {
	return string(collection) + "/" + key
}

// Get returns (value, fresh, ok). Stale entries are returned with
// fresh=false so callers can serve them while revalidating.
func (m *Memory) Get(collection models.Collection, key string) ([]byte, bool, bool) {
	entry, ok := m.lru.Get(memKey(collection, key))
	if !ok {
		return nil, false, false
	}
	fresh := time.Since(entry.insertedAt) < entry.ttl
	return entry.value, fresh, true
}

// Set stores a value with the given ttl, stamped with the current time
func (m *Memory) Set(collection models.Collection, key string, value []byte, ttl time.Duration) {
	m.lru.Add(memKey(collection, key), memEntry{
		value:      value,
		insertedAt: time.Now(),
		ttl:        ttl,
	})
}

// Evict removes an entry
func (m *Memory) Evict(collection models.Collection, key string) {
	m.lru.Remove(memKey(collection, key))
}

// Purge drops all entries
func (m *Memory) Purge() {
	m.lru.Purge()
}
