// Package mutation applies writes optimistically and reconciles them with
// the remote service. The slice is updated before the network round trip;
// the outcome then commits, rolls back, or routes the write to the
// offline queue.
package mutation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/novakart/storesync/internal/client/api"
	"github.com/novakart/storesync/internal/client/cache"
	"github.com/novakart/storesync/internal/client/store"
	"github.com/novakart/storesync/internal/models"
)

// ErrEntityNotFound is returned when an update or delete targets an id
// the local slice does not hold.
var ErrEntityNotFound = errors.New("entity not found")

// Connectivity is the slice of the connectivity monitor mutations need:
// read the flag, and report an observed loss.
type Connectivity interface {
	IsOnline() bool
	SetOnline(online bool)
}

// Enqueuer persists operations for later replay.
// The sync queue service satisfies this.
type Enqueuer interface {
	Enqueue(ctx context.Context, op models.Operation) error
}

// Coordinator runs optimistic mutations against the store.
type Coordinator struct {
	client api.ClientAPI
	conn   Connectivity
	queue  Enqueuer
	store  *store.Store
	cache  *cache.Tiered
	logger *slog.Logger
}

func NewCoordinator(
	client api.ClientAPI,
	st *store.Store,
	tiered *cache.Tiered,
	queue Enqueuer,
	conn Connectivity,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		client: client,
		store:  st,
		cache:  tiered,
		queue:  queue,
		conn:   conn,
		logger: logger,
	}
}

// TempID builds a client-local placeholder id for an optimistic create
func TempID() string {
	return "temp-" + uuid.NewString()
}

// IsTempID reports whether an id is a client-local placeholder
func IsTempID(id string) bool {
	return len(id) > 5 && id[:5] == "temp-"
}

func (c *Coordinator) CreateProduct(ctx context.Context, p models.Product) (models.Product, bool, error) {
	return createEntity(ctx, c, c.store.Products, models.CollectionProducts, p,
		func(p models.Product, id string) models.Product { p.ID = id; return p },
		decodeWith(models.CollectionProducts, models.NormalizeProduct))
}

func (c *Coordinator) UpdateProduct(ctx context.Context, p models.Product) (models.Product, bool, error) {
	return updateEntity(ctx, c, c.store.Products, models.CollectionProducts, p,
		decodeWith(models.CollectionProducts, models.NormalizeProduct))
}

func (c *Coordinator) DeleteProduct(ctx context.Context, id string) (bool, error) {
	return deleteEntity(ctx, c, c.store.Products, models.CollectionProducts, id)
}

func (c *Coordinator) CreateCategory(ctx context.Context, cat models.Category) (models.Category, bool, error) {
	return createEntity(ctx, c, c.store.Categories, models.CollectionCategories, cat,
		func(cat models.Category, id string) models.Category { cat.ID = id; return cat },
		decodeWith(models.CollectionCategories, models.NormalizeCategory))
}

func (c *Coordinator) UpdateCategory(ctx context.Context, cat models.Category) (models.Category, bool, error) {
	return updateEntity(ctx, c, c.store.Categories, models.CollectionCategories, cat,
		decodeWith(models.CollectionCategories, models.NormalizeCategory))
}

func (c *Coordinator) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return deleteEntity(ctx, c, c.store.Categories, models.CollectionCategories, id)
}

func (c *Coordinator) CreateOrder(ctx context.Context, o models.Order) (models.Order, bool, error) {
	return createEntity(ctx, c, c.store.Orders, models.CollectionOrders, o,
		func(o models.Order, id string) models.Order { o.ID = id; return o },
		decodeWith(models.CollectionOrders, models.NormalizeOrder))
}

func (c *Coordinator) UpdateOrder(ctx context.Context, o models.Order) (models.Order, bool, error) {
	return updateEntity(ctx, c, c.store.Orders, models.CollectionOrders, o,
		decodeWith(models.CollectionOrders, models.NormalizeOrder))
}

func (c *Coordinator) DeleteOrder(ctx context.Context, id string) (bool, error) {
	return deleteEntity(ctx, c, c.store.Orders, models.CollectionOrders, id)
}

func (c *Coordinator) CreateCustomer(ctx context.Context, cu models.Customer) (models.Customer, bool, error) {
	return createEntity(ctx, c, c.store.Customers, models.CollectionCustomers, cu,
		func(cu models.Customer, id string) models.Customer { cu.ID = id; return cu },
		decodeWith(models.CollectionCustomers, models.NormalizeCustomer))
}

func (c *Coordinator) UpdateCustomer(ctx context.Context, cu models.Customer) (models.Customer, bool, error) {
	return updateEntity(ctx, c, c.store.Customers, models.CollectionCustomers, cu,
		decodeWith(models.CollectionCustomers, models.NormalizeCustomer))
}

func (c *Coordinator) DeleteCustomer(ctx context.Context, id string) (bool, error) {
	return deleteEntity(ctx, c, c.store.Customers, models.CollectionCustomers, id)
}

func decodeWith[R any, T models.Entity](collection models.Collection, normalize func(R) T) func(json.RawMessage) (T, error) {
	return func(raw json.RawMessage) (T, error) {
		return store.DecodeRecord(raw, collection, normalize)
	}
}

// createEntity applies an optimistic insert under a temporary id, then
// either commits the server-assigned row, rolls back and queues, or rolls
// back and reports the rejection. Returns the entity as currently shown,
// whether the write was queued, and the rejection error if any.
func createEntity[T models.Entity](
	ctx context.Context,
	c *Coordinator,
	slice *store.Slice[T],
	collection models.Collection,
	entity T,
	withID func(T, string) T,
	decode func(json.RawMessage) (T, error),
) (T, bool, error) {
	var zero T

	payload, err := json.Marshal(entity)
	if err != nil {
		return zero, false, fmt.Errorf("failed to encode %s: %w", collection, err)
	}

	tempID := TempID()
	optimistic := withID(entity, tempID)
	gen := slice.ApplyInsert(optimistic)

	if !c.conn.IsOnline() {
		if err := c.enqueue(ctx, models.Operation{
			ID:         uuid.NewString(),
			Type:       models.OperationCreate,
			Collection: collection,
			EntityID:   tempID,
			TempID:     tempID,
			Payload:    payload,
			EnqueuedAt: time.Now(),
		}); err != nil {
			slice.RollbackInsert(tempID, gen)
			return zero, false, err
		}
		return optimistic, true, nil
	}

	raw, err := c.client.Insert(ctx, collection, payload)
	if err != nil {
		slice.RollbackInsert(tempID, gen)
		return handleWriteFailure(ctx, c, zero, err, models.Operation{
			ID:         uuid.NewString(),
			Type:       models.OperationCreate,
			Collection: collection,
			EntityID:   tempID,
			TempID:     tempID,
			Payload:    payload,
			EnqueuedAt: time.Now(),
		})
	}

	committed, err := decode(raw)
	if err != nil {
		// The server committed the row but the response is unreadable.
		// Keep the optimistic entity and let the next fetch reconcile.
		c.logger.Warn("failed to decode committed record",
			"collection", collection, "error", err)
		c.invalidate(ctx, collection)
		return optimistic, false, nil
	}

	slice.ReplaceID(tempID, committed)
	c.invalidate(ctx, collection)
	return committed, false, nil
}

// updateEntity applies an optimistic in-place update by id
func updateEntity[T models.Entity](
	ctx context.Context,
	c *Coordinator,
	slice *store.Slice[T],
	collection models.Collection,
	entity T,
	decode func(json.RawMessage) (T, error),
) (T, bool, error) {
	var zero T
	id := entity.EntityID()

	prior, _, found := slice.Get(id)
	if !found {
		return zero, false, fmt.Errorf("%w: %s %q", ErrEntityNotFound, collection, id)
	}

	payload, err := json.Marshal(entity)
	if err != nil {
		return zero, false, fmt.Errorf("failed to encode %s: %w", collection, err)
	}

	gen := slice.ApplyUpdate(entity)
	op := models.Operation{
		ID:         uuid.NewString(),
		Type:       models.OperationUpdate,
		Collection: collection,
		EntityID:   id,
		Payload:    payload,
		EnqueuedAt: time.Now(),
	}

	if !c.conn.IsOnline() {
		if err := c.enqueue(ctx, op); err != nil {
			slice.RollbackUpdate(prior, gen)
			return zero, false, err
		}
		return entity, true, nil
	}

	raw, err := c.client.Update(ctx, collection, id, payload)
	if err != nil {
		slice.RollbackUpdate(prior, gen)
		return handleWriteFailure(ctx, c, zero, err, op)
	}

	if committed, err := decode(raw); err == nil {
		slice.ApplyUpdate(committed)
		c.invalidate(ctx, collection)
		return committed, false, nil
	}

	c.invalidate(ctx, collection)
	return entity, false, nil
}

// deleteEntity applies an optimistic removal by id
func deleteEntity[T models.Entity](
	ctx context.Context,
	c *Coordinator,
	slice *store.Slice[T],
	collection models.Collection,
	id string,
) (bool, error) {
	prior, index, found := slice.Get(id)
	if !found {
		return false, fmt.Errorf("%w: %s %q", ErrEntityNotFound, collection, id)
	}

	gen := slice.ApplyDelete(id)
	op := models.Operation{
		ID:         uuid.NewString(),
		Type:       models.OperationDelete,
		Collection: collection,
		EntityID:   id,
		EnqueuedAt: time.Now(),
	}

	if !c.conn.IsOnline() {
		if err := c.enqueue(ctx, op); err != nil {
			slice.RollbackDelete(prior, index, gen)
			return false, err
		}
		return true, nil
	}

	if err := c.client.Delete(ctx, collection, id); err != nil {
		slice.RollbackDelete(prior, index, gen)
		_, enqueued, ferr := handleWriteFailure(ctx, c, prior, err, op)
		return enqueued, ferr
	}

	c.invalidate(ctx, collection)
	return false, nil
}

// handleWriteFailure routes a failed online write: connectivity-class
// failures queue the operation for replay, rejections surface to the
// caller. The optimistic change was already rolled back.
func handleWriteFailure[T any](ctx context.Context, c *Coordinator, fallback T, err error, op models.Operation) (T, bool, error) {
	if api.IsUnavailable(err) {
		c.conn.SetOnline(false)
	}

	if api.IsTransient(err) {
		if qerr := c.enqueue(ctx, op); qerr != nil {
			return fallback, false, errors.Join(err, qerr)
		}
		c.logger.Info("write queued for replay",
			"collection", op.Collection, "type", op.Type, "error", err)
		return fallback, true, nil
	}

	return fallback, false, err
}

func (c *Coordinator) enqueue(ctx context.Context, op models.Operation) error {
	if err := c.queue.Enqueue(ctx, op); err != nil {
		return fmt.Errorf("failed to enqueue %s %s: %w", op.Type, op.Collection, err)
	}
	return nil
}

// invalidate drops the collection snapshot plus the dashboard aggregates,
// which are derived from every collection.
func (c *Coordinator) invalidate(ctx context.Context, collection models.Collection) {
	c.cache.Evict(ctx, collection, store.KeyAll)
	c.cache.Evict(ctx, models.CollectionStats, store.KeyAll)
}
