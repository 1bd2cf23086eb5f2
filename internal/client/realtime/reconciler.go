package realtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/novakart/storesync/internal/client/cache"
	"github.com/novakart/storesync/internal/client/store"
	"github.com/novakart/storesync/internal/models"
)

// Reconciler folds change stream deltas into the store. Deltas are
// authoritative: they apply even while a fetch for the same collection is
// in flight, and the slice's merge rules keep the delta's outcome.
type Reconciler struct {
	store  *store.Store
	cache  *cache.Tiered
	logger *slog.Logger
}

func NewReconciler(st *store.Store, tiered *cache.Tiered, logger *slog.Logger) *Reconciler {
	return &Reconciler{store: st, cache: tiered, logger: logger}
}

// Run applies deltas until the channel closes or ctx is cancelled
func (r *Reconciler) Run(ctx context.Context, deltas <-chan models.Delta) {
	for {
		select {
		case <-ctx.Done():
			return
		case delta, ok := <-deltas:
			if !ok {
				return
			}
			if err := r.Apply(ctx, delta); err != nil {
				r.logger.Warn("failed to apply delta",
					"collection", delta.Collection, "type", delta.Type, "error", err)
			}
		}
	}
}

// Apply folds one delta into the matching slice and drops the stale
// cached snapshots.
func (r *Reconciler) Apply(ctx context.Context, delta models.Delta) error {
	var err error
	switch delta.Collection {
	case models.CollectionProducts:
		err = applyDelta(r.store.Products, delta, models.NormalizeProduct)
	case models.CollectionCategories:
		err = applyDelta(r.store.Categories, delta, models.NormalizeCategory)
	case models.CollectionOrders:
		err = applyDelta(r.store.Orders, delta, models.NormalizeOrder)
	case models.CollectionCustomers:
		err = applyDelta(r.store.Customers, delta, models.NormalizeCustomer)
	case models.CollectionStats:
		err = applyDelta(r.store.Stats, delta, models.NormalizeStats)
	default:
		return fmt.Errorf("unknown collection %q", delta.Collection)
	}
	if err != nil {
		return err
	}

	r.cache.Evict(ctx, delta.Collection, store.KeyAll)
	if delta.Collection != models.CollectionStats {
		// Aggregates are derived from every collection
		r.cache.Evict(ctx, models.CollectionStats, store.KeyAll)
	}

	r.logger.Debug("delta applied",
		"collection", delta.Collection, "type", delta.Type)
	return nil
}

func applyDelta[R any, T models.Entity](slice *store.Slice[T], delta models.Delta, normalize func(R) T) error {
	entity, err := store.DecodeRecord(delta.Entity, delta.Collection, normalize)
	if err != nil {
		return err
	}

	switch delta.Type {
	case models.DeltaInsert:
		slice.ApplyInsert(entity)
	case models.DeltaUpdate:
		slice.ApplyUpdate(entity)
	case models.DeltaDelete:
		slice.ApplyDelete(entity.EntityID())
	default:
		return fmt.Errorf("unknown delta type %q", delta.Type)
	}
	return nil
}
