package storage

import "errors"

// Common client storage errors
var (
	// ErrCacheMiss indicates no cached entry exists for the key
	ErrCacheMiss = errors.New("cache entry not found")

	// ErrOperationNotFound indicates the queued operation does not exist
	ErrOperationNotFound = errors.New("queued operation not found")

	// ErrMetadataNotFound indicates the metadata key has never been written
	ErrMetadataNotFound = errors.New("metadata not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
