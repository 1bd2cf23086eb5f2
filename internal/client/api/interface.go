package api

import (
	"context"
	"encoding/json"

	"github.com/novakart/storesync/internal/models"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI defines the remote data service surface this layer depends on.
// Records cross this boundary as raw JSON; typing and defaulting happen in
// the normalization layer.
type ClientAPI interface {
	// List returns the full record array for a collection
	List(ctx context.Context, collection models.Collection) (json.RawMessage, error)

	// Insert creates a record and returns it as committed by the server,
	// including the server-assigned id
	Insert(ctx context.Context, collection models.Collection, record json.RawMessage) (json.RawMessage, error)

	// Update overwrites fields of the record with the given id
	Update(ctx context.Context, collection models.Collection, id string, record json.RawMessage) (json.RawMessage, error)

	// Delete removes the record with the given id
	Delete(ctx context.Context, collection models.Collection, id string) error

	// Health probes service reachability, used by the connectivity monitor
	Health(ctx context.Context) error
}
