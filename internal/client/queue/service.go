// Package queue replays offline mutations against the remote service.
// Operations are durably enqueued in order and drained when connectivity
// returns; a replay that keeps failing is dropped after a bounded number
// of attempts with a single user-facing notification.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/novakart/storesync/internal/client/api"
	"github.com/novakart/storesync/internal/client/cache"
	"github.com/novakart/storesync/internal/client/notify"
	"github.com/novakart/storesync/internal/client/storage"
	"github.com/novakart/storesync/internal/client/store"
	"github.com/novakart/storesync/internal/models"
)

// maxAttempts bounds replays of one operation across drains
const maxAttempts = 3

// Connectivity is the monitor surface the queue needs
type Connectivity interface {
	IsOnline() bool
	SetOnline(online bool)
	OnChange(fn func(online bool))
}

// Service owns the durable sync queue
type Service struct {
	storage  storage.QueueStorage
	meta     storage.MetadataStorage
	client   api.ClientAPI
	conn     Connectivity
	notifier notify.Notifier
	store    *store.Store
	cache    *cache.Tiered
	logger   *slog.Logger
	draining atomic.Bool
}

func NewService(
	qs storage.QueueStorage,
	meta storage.MetadataStorage,
	client api.ClientAPI,
	st *store.Store,
	tiered *cache.Tiered,
	conn Connectivity,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:  qs,
		meta:     meta,
		client:   client,
		store:    st,
		cache:    tiered,
		conn:     conn,
		notifier: notifier,
		logger:   logger,
	}
}

// Bind starts draining automatically whenever connectivity comes back
func (s *Service) Bind() {
	s.conn.OnChange(func(online bool) {
		if !online {
			return
		}
		go func() {
			if err := s.Drain(context.Background()); err != nil {
				s.logger.Warn("queue drain failed", "error", err)
			}
		}()
	})
}

// Enqueue durably persists an operation. The operation counts as queued
// only once this returns nil.
func (s *Service) Enqueue(ctx context.Context, op models.Operation) error {
	if err := s.storage.AddToSyncQueue(ctx, &op); err != nil {
		return fmt.Errorf("failed to persist operation: %w", err)
	}
	s.logger.Debug("operation enqueued",
		"id", op.ID, "type", op.Type, "collection", op.Collection)
	return nil
}

// Pending returns the queued operations in enqueue order
func (s *Service) Pending(ctx context.Context) ([]*models.Operation, error) {
	return s.storage.GetSyncQueue(ctx)
}

// LastDrainAt returns when the queue last drained to completion
func (s *Service) LastDrainAt(ctx context.Context) (time.Time, error) {
	return s.meta.GetLastDrainAt(ctx)
}

// Drain replays queued operations in enqueue order. Within one drain a
// collection stops at its first transiently failed operation so writes to
// it stay ordered; other collections continue. Losing the connection
// stops the whole drain. Reentrant calls are no-ops.
func (s *Service) Drain(ctx context.Context) error {
	if !s.draining.CompareAndSwap(false, true) {
		return nil
	}
	defer s.draining.Store(false)

	ops, err := s.storage.GetSyncQueue(ctx)
	if err != nil {
		return fmt.Errorf("failed to read sync queue: %w", err)
	}
	if len(ops) == 0 {
		return nil
	}

	start := time.Now()
	replayed := 0
	stalled := make(map[models.Collection]bool)

	for _, op := range ops {
		if stalled[op.Collection] {
			continue
		}

		err := s.replay(ctx, op)
		if err == nil {
			if rerr := s.storage.RemoveSyncItem(ctx, op.ID); rerr != nil {
				s.logger.Warn("failed to remove replayed operation",
					"id", op.ID, "error", rerr)
			}
			s.cache.Evict(ctx, op.Collection, store.KeyAll)
			replayed++
			continue
		}

		if api.IsUnavailable(err) {
			s.conn.SetOnline(false)
			s.logger.Info("drain interrupted, connection lost",
				"replayed", replayed, "remaining", len(ops)-replayed)
			break
		}

		if api.IsRejection(err) {
			s.drop(ctx, op, err)
			continue
		}

		// Transient server failure: one attempt per drain, bounded overall
		op.RetryCount++
		if op.RetryCount >= maxAttempts {
			s.drop(ctx, op, err)
			continue
		}
		if uerr := s.storage.UpdateSyncItem(ctx, op); uerr != nil {
			s.logger.Warn("failed to persist retry count",
				"id", op.ID, "error", uerr)
		}
		stalled[op.Collection] = true
		s.logger.Warn("replay failed, will retry next drain",
			"id", op.ID, "collection", op.Collection,
			"attempt", op.RetryCount, "error", err)
	}

	if replayed > 0 {
		if err := s.meta.SaveLastDrainAt(ctx, time.Now()); err != nil {
			s.logger.Warn("failed to record drain time", "error", err)
		}
		if err := s.meta.AppendPerfLog(ctx, "queue_drain", time.Since(start)); err != nil {
			s.logger.Warn("failed to record drain timing", "error", err)
		}
		s.cache.Evict(ctx, models.CollectionStats, store.KeyAll)
		s.logger.Info("queue drained",
			"replayed", replayed, "took", time.Since(start))
	}
	return nil
}

// replay performs one operation against the remote service
func (s *Service) replay(ctx context.Context, op *models.Operation) error {
	switch op.Type {
	case models.OperationCreate:
		raw, err := s.client.Insert(ctx, op.Collection, op.Payload)
		if err != nil {
			return err
		}
		s.commitCreate(op.Collection, op.TempID, raw)
		return nil

	case models.OperationUpdate:
		_, err := s.client.Update(ctx, op.Collection, op.EntityID, op.Payload)
		return err

	case models.OperationDelete:
		return s.client.Delete(ctx, op.Collection, op.EntityID)

	default:
		return fmt.Errorf("unknown operation type %q", op.Type)
	}
}

// drop removes an operation for good and tells the user once
func (s *Service) drop(ctx context.Context, op *models.Operation, cause error) {
	if err := s.storage.RemoveSyncItem(ctx, op.ID); err != nil {
		s.logger.Warn("failed to remove dead operation",
			"id", op.ID, "error", err)
	}
	s.logger.Error("queued operation dropped",
		"id", op.ID, "type", op.Type, "collection", op.Collection,
		"attempts", op.RetryCount, "error", cause)
	s.notifier.Notify(notify.LevelError,
		fmt.Sprintf("A pending %s of %s could not be synced and was discarded.",
			op.Type, op.Collection))
}

// commitCreate swaps a replayed create's temporary id for the committed
// server row in the matching slice.
func (s *Service) commitCreate(collection models.Collection, tempID string, raw json.RawMessage) {
	if tempID == "" || s.store == nil {
		return
	}

	var ok bool
	var err error
	switch collection {
	case models.CollectionProducts:
		var committed models.Product
		if committed, err = store.DecodeRecord(raw, collection, models.NormalizeProduct); err == nil {
			ok = s.store.Products.ReplaceID(tempID, committed)
		}
	case models.CollectionCategories:
		var committed models.Category
		if committed, err = store.DecodeRecord(raw, collection, models.NormalizeCategory); err == nil {
			ok = s.store.Categories.ReplaceID(tempID, committed)
		}
	case models.CollectionOrders:
		var committed models.Order
		if committed, err = store.DecodeRecord(raw, collection, models.NormalizeOrder); err == nil {
			ok = s.store.Orders.ReplaceID(tempID, committed)
		}
	case models.CollectionCustomers:
		var committed models.Customer
		if committed, err = store.DecodeRecord(raw, collection, models.NormalizeCustomer); err == nil {
			ok = s.store.Customers.ReplaceID(tempID, committed)
		}
	default:
		return
	}

	if err != nil {
		s.logger.Warn("failed to decode replayed create",
			"collection", collection, "error", err)
		return
	}
	if !ok {
		// The slice no longer holds the temp row, a fetch already replaced it
		s.logger.Debug("temp id already reconciled",
			"collection", collection, "temp_id", tempID)
	}
}
