package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novakart/storesync/internal/models"
)

func product(id string, price float64) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: price, ImageURLs: []string{}}
}

func productIDs(items []models.Product) []string {
	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestSlice_ApplyInsert_Prepends(t *testing.T) {
	s := NewSlice[models.Product]()

	s.ApplyInsert(product("p1", 10))
	s.ApplyInsert(product("p2", 20))

	assert.Equal(t, []string{"p2", "p1"}, productIDs(s.Items()))
}

func TestSlice_ApplyInsert_DuplicateIDBecomesUpdate(t *testing.T) {
	s := NewSlice[models.Product]()

	s.ApplyInsert(product("p1", 10))
	s.ApplyInsert(product("p2", 20))
	s.ApplyInsert(product("p1", 15))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, []string{"p2", "p1"}, productIDs(items))
	_, _, found := s.Get("p1")
	assert.True(t, found)

	p1, _, _ := s.Get("p1")
	assert.Equal(t, 15.0, p1.Price)
}

func TestSlice_ApplyUpdate_Idempotent(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("p1", 10))

	s.ApplyUpdate(product("p1", 12))
	once := s.Items()

	s.ApplyUpdate(product("p1", 12))
	twice := s.Items()

	assert.Equal(t, once, twice)
}

func TestSlice_ApplyDelete_Idempotent(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("p1", 10))
	s.ApplyInsert(product("p2", 20))

	s.ApplyDelete("p1")
	once := s.Items()

	s.ApplyDelete("p1")
	twice := s.Items()

	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"p2"}, productIDs(twice))
}

func TestSlice_ApplyUpdate_UnknownIDInserts(t *testing.T) {
	s := NewSlice[models.Product]()

	s.ApplyUpdate(product("p1", 10))

	assert.Equal(t, 1, s.Len())
}

func TestSlice_RollbackUpdate_RestoresExactState(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("p1", 10))
	s.ApplyInsert(product("p2", 20))
	before := s.Items()

	gen := s.ApplyUpdate(product("p1", 99))
	ok := s.RollbackUpdate(product("p1", 10), gen)

	assert.True(t, ok)
	assert.Equal(t, before, s.Items())
}

func TestSlice_RollbackUpdate_SkippedWhenSuperseded(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("p1", 10))

	gen := s.ApplyUpdate(product("p1", 90))
	// A second rapid edit supersedes the first
	s.ApplyUpdate(product("p1", 80))

	ok := s.RollbackUpdate(product("p1", 10), gen)

	assert.False(t, ok)
	p1, _, _ := s.Get("p1")
	assert.Equal(t, 80.0, p1.Price)
}

func TestSlice_RollbackInsert(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("p1", 10))
	before := s.Items()

	gen := s.ApplyInsert(product("temp-1", 5))
	ok := s.RollbackInsert("temp-1", gen)

	assert.True(t, ok)
	assert.Equal(t, before, s.Items())
}

func TestSlice_RollbackDelete_RestoresPosition(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("p3", 30))
	s.ApplyInsert(product("p2", 20))
	s.ApplyInsert(product("p1", 10))
	before := s.Items()

	prior, index, found := s.Get("p2")
	require.True(t, found)

	gen := s.ApplyDelete("p2")
	ok := s.RollbackDelete(prior, index, gen)

	assert.True(t, ok)
	assert.Equal(t, before, s.Items())
}

func TestSlice_RollbackDelete_SkippedAfterRealtimeDelete(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("p1", 10))

	prior, index, _ := s.Get("p1")
	gen := s.ApplyDelete("p1")
	// A realtime delete for the same id lands before the rollback
	s.ApplyDelete("p1")

	ok := s.RollbackDelete(prior, index, gen)

	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestSlice_ReplaceID(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("p1", 10))
	s.ApplyInsert(product("temp-42", 5))

	ok := s.ReplaceID("temp-42", product("p42", 5))

	assert.True(t, ok)
	assert.Equal(t, []string{"p42", "p1"}, productIDs(s.Items()))
}

func TestSlice_ReplaceAllSince_PlainReplace(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("old", 1))

	gen := s.Generation()
	s.ReplaceAllSince(gen, []models.Product{product("p1", 10), product("p2", 20)})

	assert.Equal(t, []string{"p1", "p2"}, productIDs(s.Items()))
}

// A delete delta arriving while a full fetch is in flight must win over
// the fetch result, regardless of completion order.
func TestSlice_ReplaceAllSince_HonorsMidFlightDelete(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("c1", 1))
	s.ApplyInsert(product("c2", 2))

	gen := s.Generation()
	// Fetch is in flight; the realtime stream deletes c1
	s.ApplyDelete("c1")
	// The fetch completes with the pre-delete snapshot
	s.ReplaceAllSince(gen, []models.Product{product("c1", 1), product("c2", 2)})

	assert.Equal(t, []string{"c2"}, productIDs(s.Items()))
}

func TestSlice_ReplaceAllSince_KeepsMidFlightUpdate(t *testing.T) {
	s := NewSlice[models.Product]()

	gen := s.Generation()
	s.ApplyUpdate(product("p1", 99))
	s.ReplaceAllSince(gen, []models.Product{product("p1", 10), product("p2", 20)})

	p1, _, found := s.Get("p1")
	require.True(t, found)
	assert.Equal(t, 99.0, p1.Price)
	assert.Equal(t, 2, s.Len())
}

func TestSlice_ReplaceAllSince_KeepsMidFlightInsert(t *testing.T) {
	s := NewSlice[models.Product]()

	gen := s.Generation()
	s.ApplyInsert(product("fresh", 7))
	s.ReplaceAllSince(gen, []models.Product{product("p1", 10)})

	assert.Equal(t, []string{"fresh", "p1"}, productIDs(s.Items()))
}

// Installing a snapshot that predates pending local edits must leave
// their touch and tombstone records in place, so reinstalling the same
// snapshot cannot resurrect a deleted row or drop a pending create.
func TestSlice_ReplaceAllSince_RetainsNewerGuardsAcrossInstalls(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("temp-1", 5))
	s.ApplyDelete("p2")

	snapshot := []models.Product{product("p1", 10), product("p2", 20)}
	s.ReplaceAllSince(0, snapshot)
	assert.Equal(t, []string{"temp-1", "p1"}, productIDs(s.Items()))

	s.ReplaceAllSince(0, snapshot)
	assert.Equal(t, []string{"temp-1", "p1"}, productIDs(s.Items()))
}

func TestSlice_ItemsReturnsCopy(t *testing.T) {
	s := NewSlice[models.Product]()
	s.ApplyInsert(product("p1", 10))

	items := s.Items()
	items[0] = product("mutated", 0)

	p1, _, found := s.Get("p1")
	assert.True(t, found)
	assert.Equal(t, "p1", p1.ID)
}
