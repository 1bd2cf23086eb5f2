package store

import (
	"sync"

	"github.com/novakart/storesync/internal/models"
)

// Slice owns the in-memory state for one collection. All mutation entry
// points (fetch completion, realtime delta, optimistic mutation, queue
// replay) funnel through its merge methods, which are synchronous and
// never block on I/O.
//
// Every change bumps a generation counter, and per-entity touch/tombstone
// generations are kept so a fetch that was in flight while changes arrived
// merges instead of stomping them: the realtime channel is authoritative,
// a periodic fetch is the freshness safety net.
type Slice[T models.Entity] struct {
	lastErr    error
	touched    map[string]uint64
	tombstones map[string]uint64
	items      []T
	gen        uint64
	mu         sync.RWMutex
	loading    bool
}

// NewSlice creates an empty slice
func NewSlice[T models.Entity]() *Slice[T] {
	return &Slice[T]{
		touched:    make(map[string]uint64),
		tombstones: make(map[string]uint64),
	}
}

// Items returns a copy of the current item array
func (s *Slice[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the current item count
func (s *Slice[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the entity with the given id and its position
func (s *Slice[T]) Get(id string) (T, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, item := range s.items {
		if item.EntityID() == id {
			return item, i, true
		}
	}
	var zero T
	return zero, 0, false
}

// IsLoading reports whether a fetch is in flight for this slice
func (s *Slice[T]) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the slice's recorded fetch error state
func (s *Slice[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Generation returns the current change generation
func (s *Slice[T]) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

func (s *Slice[T]) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Slice[T]) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// ApplyInsert prepends an entity. An insert for an id already present is
// treated as an update, so duplicate insert deltas stay safe.
// Returns the generation assigned to the change.
func (s *Slice[T]) ApplyInsert(item T) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := item.EntityID()
	s.gen++
	s.touched[id] = s.gen
	delete(s.tombstones, id)

	for i, existing := range s.items {
		if existing.EntityID() == id {
			s.items[i] = item
			return s.gen
		}
	}

	s.items = append([]T{item}, s.items...)
	return s.gen
}

// ApplyUpdate replaces the entity with the same id in place.
// An update for an unknown id is inserted, which keeps replaying the
// same delta idempotent regardless of what arrived before it.
func (s *Slice[T]) ApplyUpdate(item T) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := item.EntityID()
	s.gen++
	s.touched[id] = s.gen
	delete(s.tombstones, id)

	for i, existing := range s.items {
		if existing.EntityID() == id {
			s.items[i] = item
			return s.gen
		}
	}

	s.items = append([]T{item}, s.items...)
	return s.gen
}

// ApplyDelete removes the entity by id and records a tombstone so an
// in-flight fetch cannot resurrect it. Deleting an absent id is a no-op
// apart from the tombstone, which keeps delete deltas idempotent.
func (s *Slice[T]) ApplyDelete(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.tombstones[id] = s.gen
	delete(s.touched, id)

	for i, existing := range s.items {
		if existing.EntityID() == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	return s.gen
}

// RollbackInsert removes an optimistically inserted entity, but only if
// nothing touched it since the given generation. Returns whether the
// rollback applied.
func (s *Slice[T]) RollbackInsert(id string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.touched[id] != gen {
		return false
	}

	s.gen++
	delete(s.touched, id)
	for i, existing := range s.items {
		if existing.EntityID() == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

// RollbackUpdate restores the pre-mutation value, but only if nothing
// touched the entity since the given generation. A later mutation or
// realtime delta owns the entity and must not be stomped by a stale
// rollback.
func (s *Slice[T]) RollbackUpdate(prior T, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := prior.EntityID()
	if s.touched[id] != gen {
		return false
	}

	s.gen++
	s.touched[id] = s.gen
	for i, existing := range s.items {
		if existing.EntityID() == id {
			s.items[i] = prior
			return true
		}
	}
	return false
}

// RollbackDelete reinserts a deleted entity at its original position,
// but only if the tombstone still belongs to the given generation.
func (s *Slice[T]) RollbackDelete(prior T, index int, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := prior.EntityID()
	if s.tombstones[id] != gen {
		return false
	}

	s.gen++
	delete(s.tombstones, id)
	s.touched[id] = s.gen

	if index < 0 {
		index = 0
	}
	if index > len(s.items) {
		index = len(s.items)
	}
	s.items = append(s.items[:index:index], append([]T{prior}, s.items[index:]...)...)
	return true
}

// ReplaceID swaps a temporary id for the server-committed entity,
// preserving the entity's position
func (s *Slice[T]) ReplaceID(tempID string, item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	delete(s.touched, tempID)
	s.touched[item.EntityID()] = s.gen

	for i, existing := range s.items {
		if existing.EntityID() == tempID {
			s.items[i] = item
			return true
		}
	}
	return false
}

// ReplaceAllSince installs a fetch result that was issued at generation
// gen. Entities deleted since then stay deleted, entities touched since
// then keep their current (newer) value, and entities inserted since then
// survive at the front. When nothing changed mid-flight this is a plain
// replace. Touch and tombstone records newer than gen outlive the
// install: the snapshot does not account for them, and a later install
// must not resurrect or stomp what they guard.
func (s *Slice[T]) ReplaceAllSince(gen uint64, items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen == s.gen {
		s.items = items
		s.gen++
		clear(s.touched)
		clear(s.tombstones)
		return
	}

	seen := make(map[string]bool, len(items))
	merged := make([]T, 0, len(items))
	for _, item := range items {
		id := item.EntityID()
		seen[id] = true
		if tg, ok := s.tombstones[id]; ok && tg > gen {
			continue
		}
		if tg, ok := s.touched[id]; ok && tg > gen {
			for _, current := range s.items {
				if current.EntityID() == id {
					merged = append(merged, current)
					break
				}
			}
			continue
		}
		merged = append(merged, item)
	}

	// Entities the fetch does not know about yet, inserted mid-flight
	var front []T
	for _, current := range s.items {
		id := current.EntityID()
		if seen[id] {
			continue
		}
		if tg, ok := s.touched[id]; ok && tg > gen {
			front = append(front, current)
		}
	}

	s.items = append(front, merged...)
	s.gen++
	s.pruneThrough(gen)
}

// pruneThrough drops touch and tombstone records an install at gen has
// accounted for, keeping the newer ones
func (s *Slice[T]) pruneThrough(gen uint64) {
	for id, tg := range s.touched {
		if tg <= gen {
			delete(s.touched, id)
		}
	}
	for id, tg := range s.tombstones {
		if tg <= gen {
			delete(s.tombstones, id)
		}
	}
}
