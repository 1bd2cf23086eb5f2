package storage

import (
	"context"
	"time"
)

// MetadataStorage holds small bookkeeping values and the performance log
type MetadataStorage interface {
	// SaveLastDrainAt records when the offline queue last drained successfully
	SaveLastDrainAt(ctx context.Context, t time.Time) error

	// GetLastDrainAt returns the last successful drain time.
	// Returns ErrMetadataNotFound before the first drain.
	GetLastDrainAt(ctx context.Context) (time.Time, error)

	// AppendPerfLog appends one timing sample to the local performance log
	AppendPerfLog(ctx context.Context, event string, duration time.Duration) error
}
