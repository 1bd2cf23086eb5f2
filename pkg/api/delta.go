package api

import "encoding/json"

// Event types pushed on the change stream
const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

// DeltaEvent is one change notification for a collection
type DeltaEvent struct {
	EventType  string          `json:"event_type"`
	Collection string          `json:"collection"`
	Record     json.RawMessage `json:"record"`
}

// Envelope is the wire format for all messages on the change stream socket
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Envelope types
const (
	EnvelopeDelta      = "delta"
	EnvelopeSubscribed = "subscribed"
	EnvelopeError      = "error"
)

// SubscribeCommand asks the server to start streaming deltas for one collection
type SubscribeCommand struct {
	Action     string `json:"action"`
	Collection string `json:"collection"`
}
