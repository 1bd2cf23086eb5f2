package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novakart/storesync/internal/client/storage"
	"github.com/novakart/storesync/internal/models"
)

func testOperation(id string, opType models.OperationType) *models.Operation {
	return &models.Operation{
		ID:         id,
		Type:       opType,
		Collection: models.CollectionProducts,
		EntityID:   "prod-" + id,
		Payload:    json.RawMessage(`{"price":10}`),
		EnqueuedAt: time.Now(),
	}
}

func TestStorage_AddToSyncQueue_PreservesOrder(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		op := testOperation(fmt.Sprintf("op-%d", i), models.OperationUpdate)
		require.NoError(t, store.AddToSyncQueue(ctx, op))
	}

	ops, err := store.GetSyncQueue(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 5)

	for i, op := range ops {
		assert.Equal(t, fmt.Sprintf("op-%d", i), op.ID)
	}
}

func TestStorage_GetSyncQueue_Empty(t *testing.T) {
	store := createTestStorage(t)

	ops, err := store.GetSyncQueue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestStorage_UpdateSyncItem(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	op := testOperation("op-1", models.OperationUpdate)
	require.NoError(t, store.AddToSyncQueue(ctx, op))

	op.RetryCount = 2
	require.NoError(t, store.UpdateSyncItem(ctx, op))

	ops, err := store.GetSyncQueue(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, 2, ops[0].RetryCount)
}

func TestStorage_UpdateSyncItem_NotFound(t *testing.T) {
	store := createTestStorage(t)

	err := store.UpdateSyncItem(context.Background(), testOperation("ghost", models.OperationDelete))
	assert.ErrorIs(t, err, storage.ErrOperationNotFound)
}

func TestStorage_RemoveSyncItem(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.AddToSyncQueue(ctx, testOperation("op-1", models.OperationCreate)))
	require.NoError(t, store.AddToSyncQueue(ctx, testOperation("op-2", models.OperationUpdate)))

	require.NoError(t, store.RemoveSyncItem(ctx, "op-1"))

	ops, err := store.GetSyncQueue(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "op-2", ops[0].ID)
}

func TestStorage_RemoveSyncItem_NotFound(t *testing.T) {
	store := createTestStorage(t)

	err := store.RemoveSyncItem(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrOperationNotFound)
}

// Queued operations must survive a process restart.
func TestStorage_Queue_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.AddToSyncQueue(ctx, testOperation(fmt.Sprintf("op-%d", i), models.OperationUpdate)))
	}
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	ops, err := reopened.GetSyncQueue(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 3)
	for i, op := range ops {
		assert.Equal(t, fmt.Sprintf("op-%d", i), op.ID)
	}
}
