package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novakart/storesync/internal/client/api"
	"github.com/novakart/storesync/internal/client/cache"
	"github.com/novakart/storesync/internal/client/notify"
	"github.com/novakart/storesync/internal/client/storage"
	"github.com/novakart/storesync/internal/client/storage/boltdb"
	"github.com/novakart/storesync/internal/client/store"
	"github.com/novakart/storesync/internal/models"
)

type connStub struct {
	mu        sync.Mutex
	online    bool
	callbacks []func(bool)
}

func (c *connStub) IsOnline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

func (c *connStub) SetOnline(online bool) {
	c.mu.Lock()
	changed := c.online != online
	c.online = online
	callbacks := c.callbacks
	c.mu.Unlock()
	if !changed {
		return
	}
	for _, fn := range callbacks {
		fn(online)
	}
}

func (c *connStub) OnChange(fn func(bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks = append(c.callbacks, fn)
}

type notifierStub struct {
	mu       sync.Mutex
	messages []string
}

func (n *notifierStub) Notify(_ notify.Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *notifierStub) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testCache(t *testing.T) *cache.Tiered {
	t.Helper()

	persistent := &storage.CacheStorageMock{
		GetCachedDataFunc: func(_ context.Context, _ models.Collection, _ string) (*storage.CachedEntry, error) {
			return nil, storage.ErrCacheMiss
		},
		SetCachedDataFunc: func(_ context.Context, _ models.Collection, _ string, _ []byte, _ time.Duration) error {
			return nil
		},
		EvictCachedDataFunc: func(_ context.Context, _ models.Collection, _ string) error {
			return nil
		},
	}
	tiered, err := cache.NewTiered(persistent, nil, testLogger())
	require.NoError(t, err)
	return tiered
}

type metaStub struct {
	mu        sync.Mutex
	drainedAt time.Time
	perfLogs  int
}

func (m *metaStub) SaveLastDrainAt(_ context.Context, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drainedAt = t
	return nil
}

func (m *metaStub) GetLastDrainAt(_ context.Context) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.drainedAt.IsZero() {
		return time.Time{}, storage.ErrMetadataNotFound
	}
	return m.drainedAt, nil
}

func (m *metaStub) AppendPerfLog(_ context.Context, _ string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.perfLogs++
	return nil
}

func newBoltQueue(t *testing.T, path string) *boltdb.Storage {
	t.Helper()

	bolt, err := boltdb.New(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bolt.Close() })
	return bolt
}

func newService(t *testing.T, qs storage.QueueStorage, client api.ClientAPI, conn *connStub, notifier *notifierStub) (*Service, *store.Store) {
	t.Helper()

	tiered := testCache(t)
	st := store.New(client, tiered, conn.IsOnline, testLogger())
	return NewService(qs, &metaStub{}, client, st, tiered, conn, notifier, testLogger()), st
}

func op(id string, opType models.OperationType, collection models.Collection, entityID string) models.Operation {
	return models.Operation{
		ID:         id,
		Type:       opType,
		Collection: collection,
		EntityID:   entityID,
		Payload:    json.RawMessage(`{}`),
		EnqueuedAt: time.Now(),
	}
}

func TestService_Enqueue_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.db")
	ctx := context.Background()

	bolt := newBoltQueue(t, path)
	svc, _ := newService(t, bolt, &api.ClientAPIMock{}, &connStub{online: false}, &notifierStub{})

	require.NoError(t, svc.Enqueue(ctx, op("op-1", models.OperationUpdate, models.CollectionProducts, "p-1")))
	require.NoError(t, svc.Enqueue(ctx, op("op-2", models.OperationDelete, models.CollectionProducts, "p-2")))
	require.NoError(t, bolt.Close())

	reopened := newBoltQueue(t, path)
	svc2, _ := newService(t, reopened, &api.ClientAPIMock{}, &connStub{online: false}, &notifierStub{})

	pending, err := svc2.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "op-1", pending[0].ID)
	assert.Equal(t, "op-2", pending[1].ID)
}

func TestService_Drain_ReplaysInOrder(t *testing.T) {
	bolt := newBoltQueue(t, filepath.Join(t.TempDir(), "queue.db"))
	ctx := context.Background()

	var replayed []string
	client := &api.ClientAPIMock{
		UpdateFunc: func(_ context.Context, _ models.Collection, id string, _ json.RawMessage) (json.RawMessage, error) {
			replayed = append(replayed, "update:"+id)
			return json.RawMessage(`{"id":"` + id + `"}`), nil
		},
		DeleteFunc: func(_ context.Context, _ models.Collection, id string) error {
			replayed = append(replayed, "delete:"+id)
			return nil
		},
	}
	svc, _ := newService(t, bolt, client, &connStub{online: true}, &notifierStub{})

	// Two rapid edits to the same entity, then a delete of another
	require.NoError(t, svc.Enqueue(ctx, op("op-1", models.OperationUpdate, models.CollectionProducts, "p-1")))
	require.NoError(t, svc.Enqueue(ctx, op("op-2", models.OperationUpdate, models.CollectionProducts, "p-1")))
	require.NoError(t, svc.Enqueue(ctx, op("op-3", models.OperationDelete, models.CollectionProducts, "p-2")))

	require.NoError(t, svc.Drain(ctx))

	assert.Equal(t, []string{"update:p-1", "update:p-1", "delete:p-2"}, replayed)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestService_Drain_CreateReconcilesTempID(t *testing.T) {
	bolt := newBoltQueue(t, filepath.Join(t.TempDir(), "queue.db"))
	ctx := context.Background()

	client := &api.ClientAPIMock{
		InsertFunc: func(_ context.Context, _ models.Collection, _ json.RawMessage) (json.RawMessage, error) {
			return json.RawMessage(`{"id":"p-real","name":"Widget"}`), nil
		},
	}
	svc, st := newService(t, bolt, client, &connStub{online: true}, &notifierStub{})
	st.Products.ApplyInsert(models.Product{ID: "temp-1", Name: "Widget", ImageURLs: []string{}})

	createOp := op("op-1", models.OperationCreate, models.CollectionProducts, "temp-1")
	createOp.TempID = "temp-1"
	require.NoError(t, svc.Enqueue(ctx, createOp))

	require.NoError(t, svc.Drain(ctx))

	_, _, found := st.Products.Get("p-real")
	assert.True(t, found)
	_, _, tempFound := st.Products.Get("temp-1")
	assert.False(t, tempFound)
}

func TestService_Drain_UnavailableStopsAndGoesOffline(t *testing.T) {
	bolt := newBoltQueue(t, filepath.Join(t.TempDir(), "queue.db"))
	ctx := context.Background()

	calls := 0
	client := &api.ClientAPIMock{
		UpdateFunc: func(_ context.Context, _ models.Collection, _ string, _ json.RawMessage) (json.RawMessage, error) {
			calls++
			return nil, api.ErrUnavailable
		},
	}
	conn := &connStub{online: true}
	svc, _ := newService(t, bolt, client, conn, &notifierStub{})

	require.NoError(t, svc.Enqueue(ctx, op("op-1", models.OperationUpdate, models.CollectionProducts, "p-1")))
	require.NoError(t, svc.Enqueue(ctx, op("op-2", models.OperationUpdate, models.CollectionCategories, "c-1")))

	require.NoError(t, svc.Drain(ctx))

	// The drain stops at the first connection failure, nothing is consumed
	assert.Equal(t, 1, calls)
	assert.False(t, conn.IsOnline())

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestService_Drain_TransientFailureStallsCollectionOnly(t *testing.T) {
	bolt := newBoltQueue(t, filepath.Join(t.TempDir(), "queue.db"))
	ctx := context.Background()

	var replayed []string
	client := &api.ClientAPIMock{
		UpdateFunc: func(_ context.Context, collection models.Collection, id string, _ json.RawMessage) (json.RawMessage, error) {
			if collection == models.CollectionProducts {
				return nil, &api.RemoteError{Code: "bad_gateway", Message: "upstream", Status: 502}
			}
			replayed = append(replayed, string(collection)+":"+id)
			return json.RawMessage(`{"id":"` + id + `"}`), nil
		},
	}
	svc, _ := newService(t, bolt, client, &connStub{online: true}, &notifierStub{})

	require.NoError(t, svc.Enqueue(ctx, op("op-1", models.OperationUpdate, models.CollectionProducts, "p-1")))
	require.NoError(t, svc.Enqueue(ctx, op("op-2", models.OperationUpdate, models.CollectionProducts, "p-2")))
	require.NoError(t, svc.Enqueue(ctx, op("op-3", models.OperationUpdate, models.CollectionCategories, "c-1")))

	require.NoError(t, svc.Drain(ctx))

	// p-2 must not jump ahead of the failed p-1; categories proceed
	assert.Equal(t, []string{"categories:c-1"}, replayed)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "op-1", pending[0].ID)
	assert.Equal(t, 1, pending[0].RetryCount)
	assert.Equal(t, "op-2", pending[1].ID)
	assert.Equal(t, 0, pending[1].RetryCount)
}

func TestService_Drain_RejectionDropsWithOneNotification(t *testing.T) {
	bolt := newBoltQueue(t, filepath.Join(t.TempDir(), "queue.db"))
	ctx := context.Background()

	client := &api.ClientAPIMock{
		UpdateFunc: func(_ context.Context, _ models.Collection, _ string, _ json.RawMessage) (json.RawMessage, error) {
			return nil, &api.RemoteError{Code: "validation_failed", Message: "bad", Status: 422}
		},
	}
	notifier := &notifierStub{}
	svc, _ := newService(t, bolt, client, &connStub{online: true}, notifier)

	require.NoError(t, svc.Enqueue(ctx, op("op-1", models.OperationUpdate, models.CollectionProducts, "p-1")))

	require.NoError(t, svc.Drain(ctx))
	require.NoError(t, svc.Drain(ctx))

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Equal(t, 1, notifier.count())
}

func TestService_Drain_RetryBudgetExhaustedNotifiesOnce(t *testing.T) {
	bolt := newBoltQueue(t, filepath.Join(t.TempDir(), "queue.db"))
	ctx := context.Background()

	attempts := 0
	client := &api.ClientAPIMock{
		UpdateFunc: func(_ context.Context, _ models.Collection, _ string, _ json.RawMessage) (json.RawMessage, error) {
			attempts++
			return nil, &api.RemoteError{Code: "server_error", Message: "boom", Status: 500}
		},
	}
	notifier := &notifierStub{}
	svc, _ := newService(t, bolt, client, &connStub{online: true}, notifier)

	require.NoError(t, svc.Enqueue(ctx, op("op-1", models.OperationUpdate, models.CollectionProducts, "p-1")))

	// One attempt per drain; the third exhausts the budget
	for range 5 {
		require.NoError(t, svc.Drain(ctx))
	}

	assert.Equal(t, 3, attempts)
	assert.Equal(t, 1, notifier.count())

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestService_Drain_Reentrant(t *testing.T) {
	bolt := newBoltQueue(t, filepath.Join(t.TempDir(), "queue.db"))
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	client := &api.ClientAPIMock{
		UpdateFunc: func(_ context.Context, _ models.Collection, id string, _ json.RawMessage) (json.RawMessage, error) {
			close(entered)
			<-release
			return json.RawMessage(`{"id":"` + id + `"}`), nil
		},
	}
	svc, _ := newService(t, bolt, client, &connStub{online: true}, &notifierStub{})
	require.NoError(t, svc.Enqueue(ctx, op("op-1", models.OperationUpdate, models.CollectionProducts, "p-1")))

	done := make(chan error, 1)
	go func() { done <- svc.Drain(ctx) }()

	<-entered
	// Second drain while the first is mid-flight is a no-op
	require.NoError(t, svc.Drain(ctx))
	close(release)
	require.NoError(t, <-done)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestService_Bind_DrainsOnReconnect(t *testing.T) {
	bolt := newBoltQueue(t, filepath.Join(t.TempDir(), "queue.db"))
	ctx := context.Background()

	drained := make(chan string, 1)
	client := &api.ClientAPIMock{
		DeleteFunc: func(_ context.Context, _ models.Collection, id string) error {
			drained <- id
			return nil
		},
	}
	conn := &connStub{online: false}
	svc, _ := newService(t, bolt, client, conn, &notifierStub{})
	svc.Bind()

	require.NoError(t, svc.Enqueue(ctx, op("op-1", models.OperationDelete, models.CollectionProducts, "p-1")))

	conn.SetOnline(true)

	select {
	case id := <-drained:
		assert.Equal(t, "p-1", id)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for auto drain")
	}
}

func TestService_LastDrainAt_RecordedAfterProgress(t *testing.T) {
	bolt := newBoltQueue(t, filepath.Join(t.TempDir(), "queue.db"))
	ctx := context.Background()

	client := &api.ClientAPIMock{
		DeleteFunc: func(_ context.Context, _ models.Collection, _ string) error {
			return nil
		},
	}
	svc, _ := newService(t, bolt, client, &connStub{online: true}, &notifierStub{})

	_, err := svc.LastDrainAt(ctx)
	assert.ErrorIs(t, err, storage.ErrMetadataNotFound)

	require.NoError(t, svc.Enqueue(ctx, op("op-1", models.OperationDelete, models.CollectionProducts, "p-1")))
	require.NoError(t, svc.Drain(ctx))

	at, err := svc.LastDrainAt(ctx)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), at, 5*time.Second)
}
