package storage

import (
	"context"

	"github.com/novakart/storesync/internal/models"
)

//go:generate moq -out queuestorage_mock.go . QueueStorage

// QueueStorage defines the durable offline operation queue.
// An operation counts as enqueued only after AddToSyncQueue returns nil;
// the queue must survive a process restart.
type QueueStorage interface {
	// AddToSyncQueue durably appends an operation
	AddToSyncQueue(ctx context.Context, op *models.Operation) error

	// GetSyncQueue returns all queued operations in enqueue order
	GetSyncQueue(ctx context.Context) ([]*models.Operation, error)

	// UpdateSyncItem rewrites a queued operation in place (retry count bumps).
	// Returns ErrOperationNotFound if the operation is gone.
	UpdateSyncItem(ctx context.Context, op *models.Operation) error

	// RemoveSyncItem deletes an operation by id.
	// Returns ErrOperationNotFound if the operation is gone.
	RemoveSyncItem(ctx context.Context, id string) error
}
