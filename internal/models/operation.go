package models

import (
	"encoding/json"
	"time"
)

// OperationType classifies a queued write
type OperationType string

// Operation types
const (
	OperationCreate OperationType = "create"
	OperationUpdate OperationType = "update"
	OperationDelete OperationType = "delete"
)

// Operation is one mutation recorded for offline replay.
// It is persisted before being considered enqueued and survives restarts.
type Operation struct {
	EnqueuedAt time.Time       `json:"enqueued_at"`
	ID         string          `json:"id"`
	Type       OperationType   `json:"type"`
	Collection Collection      `json:"collection"`
	EntityID   string          `json:"entity_id"`
	TempID     string          `json:"temp_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	RetryCount int             `json:"retry_count"`
}

// DeltaType classifies a realtime change event
type DeltaType string

// Delta types, matching the stream's event types
const (
	DeltaInsert DeltaType = "insert"
	DeltaUpdate DeltaType = "update"
	DeltaDelete DeltaType = "delete"
)

// Delta is one decoded change event from the remote stream
type Delta struct {
	Type       DeltaType       `json:"type"`
	Collection Collection      `json:"collection"`
	Entity     json.RawMessage `json:"entity"`
}
