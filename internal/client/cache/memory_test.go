package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novakart/storesync/internal/models"
)

func TestMemory_SetGet(t *testing.T) {
	m, err := NewMemory(16)
	require.NoError(t, err)

	m.Set(models.CollectionProducts, "all", []byte("v"), time.Minute)

	value, fresh, ok := m.Get(models.CollectionProducts, "all")
	assert.True(t, ok)
	assert.True(t, fresh)
	assert.Equal(t, []byte("v"), value)
}

func TestMemory_Get_Miss(t *testing.T) {
	m, err := NewMemory(16)
	require.NoError(t, err)

	_, _, ok := m.Get(models.CollectionProducts, "all")
	assert.False(t, ok)
}

func TestMemory_StaleEntryStillReturned(t *testing.T) {
	m, err := NewMemory(16)
	require.NoError(t, err)

	// TTL already elapsed
	m.Set(models.CollectionProducts, "all", []byte("v"), -time.Second)

	value, fresh, ok := m.Get(models.CollectionProducts, "all")
	assert.True(t, ok)
	assert.False(t, fresh)
	assert.Equal(t, []byte("v"), value)
}

func TestMemory_CollectionsDoNotCollide(t *testing.T) {
	m, err := NewMemory(16)
	require.NoError(t, err)

	m.Set(models.CollectionProducts, "all", []byte("p"), time.Minute)
	m.Set(models.CollectionOrders, "all", []byte("o"), time.Minute)

	p, _, _ := m.Get(models.CollectionProducts, "all")
	o, _, _ := m.Get(models.CollectionOrders, "all")
	assert.Equal(t, []byte("p"), p)
	assert.Equal(t, []byte("o"), o)
}

func TestMemory_Evict(t *testing.T) {
	m, err := NewMemory(16)
	require.NoError(t, err)

	m.Set(models.CollectionProducts, "all", []byte("v"), time.Minute)
	m.Evict(models.CollectionProducts, "all")

	_, _, ok := m.Get(models.CollectionProducts, "all")
	assert.False(t, ok)
}

func TestNewMemory_InvalidSize(t *testing.T) {
	_, err := NewMemory(-1)
	assert.Error(t, err)
}
