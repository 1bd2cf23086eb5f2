package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/novakart/storesync/internal/client/api"
	"github.com/novakart/storesync/internal/client/cache"
	"github.com/novakart/storesync/internal/models"
)

// Store holds one slice per collection. It is plain dependency-injected
// state, not a singleton: tests and embedders create as many as they need.
type Store struct {
	Products   *Slice[models.Product]
	Categories *Slice[models.Category]
	Orders     *Slice[models.Order]
	Customers  *Slice[models.Customer]
	Stats      *Slice[models.DashboardStats]

	ProductFetcher  *Fetcher[models.Product]
	CategoryFetcher *Fetcher[models.Category]
	OrderFetcher    *Fetcher[models.Order]
	CustomerFetcher *Fetcher[models.Customer]
	StatsFetcher    *Fetcher[models.DashboardStats]
}

// New creates a store wired to the remote service and cache.
// online reports current connectivity and gates network fetches.
func New(client api.ClientAPI, tiered *cache.Tiered, online func() bool, logger *slog.Logger) *Store {
	s := &Store{
		Products:   NewSlice[models.Product](),
		Categories: NewSlice[models.Category](),
		Orders:     NewSlice[models.Order](),
		Customers:  NewSlice[models.Customer](),
		Stats:      NewSlice[models.DashboardStats](),
	}

	s.ProductFetcher = NewFetcher(s.Products, models.CollectionProducts, tiered, online,
		remoteList(client, models.CollectionProducts, models.NormalizeProduct), logger)
	s.CategoryFetcher = NewFetcher(s.Categories, models.CollectionCategories, tiered, online,
		remoteList(client, models.CollectionCategories, models.NormalizeCategory), logger)
	s.OrderFetcher = NewFetcher(s.Orders, models.CollectionOrders, tiered, online,
		remoteList(client, models.CollectionOrders, models.NormalizeOrder), logger)
	s.CustomerFetcher = NewFetcher(s.Customers, models.CollectionCustomers, tiered, online,
		remoteList(client, models.CollectionCustomers, models.NormalizeCustomer), logger)
	s.StatsFetcher = NewFetcher(s.Stats, models.CollectionStats, tiered, online,
		remoteList(client, models.CollectionStats, models.NormalizeStats), logger)

	return s
}

// FetchAll populates every slice. Per-slice failures are collected, not
// fatal: one unreachable collection must not block the others.
func (s *Store) FetchAll(ctx context.Context, force bool) error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	record(s.ProductFetcher.Fetch(ctx, force))
	record(s.CategoryFetcher.Fetch(ctx, force))
	record(s.OrderFetcher.Fetch(ctx, force))
	record(s.CustomerFetcher.Fetch(ctx, force))
	record(s.StatsFetcher.Fetch(ctx, force))

	return firstErr
}

// remoteList builds the network read for one collection: list raw wire
// records, then normalize each into the domain shape.
func remoteList[R any, T models.Entity](
	client api.ClientAPI,
	collection models.Collection,
	normalize func(R) T,
) func(ctx context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		raw, err := client.List(ctx, collection)
		if err != nil {
			return nil, err
		}

		var records []R
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("failed to decode %s records: %w", collection, err)
		}

		items := make([]T, 0, len(records))
		for _, rec := range records {
			items = append(items, normalize(rec))
		}
		return items, nil
	}
}

// DecodeRecord normalizes a single wire record of the given collection.
// Used by the realtime reconciler and the mutation coordinator when the
// server hands back a committed row.
func DecodeRecord[R any, T models.Entity](raw json.RawMessage, collection models.Collection, normalize func(R) T) (T, error) {
	var rec R
	if err := json.Unmarshal(raw, &rec); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to decode %s record: %w", collection, err)
	}
	return normalize(rec), nil
}
