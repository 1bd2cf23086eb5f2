package api

import "encoding/json"

// ListResponse is the envelope for collection reads
type ListResponse struct {
	Records json.RawMessage `json:"records"`
	Count   int             `json:"count"`
}

// MutateRequest carries one record write to the remote service
type MutateRequest struct {
	Record json.RawMessage `json:"record"`
}

// MutateResponse returns the record as the server committed it,
// including server-assigned fields (id, timestamps)
type MutateResponse struct {
	Record json.RawMessage `json:"record"`
}

// ErrorResponse is the error envelope the remote service returns on non-2xx
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
