package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/novakart/storesync/internal/models"
	"github.com/novakart/storesync/pkg/api"
)

// Client is the HTTP implementation of ClientAPI
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a new API client. token is the opaque session token
// issued by the external auth layer and is passed through unchanged.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Redirects drop the Authorization header, keep it
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// List returns the full record array for a collection
func (c *Client) List(ctx context.Context, collection models.Collection) (json.RawMessage, error) {
	var resp api.ListResponse
	path := fmt.Sprintf("/api/v1/data/%s", collection)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list %s failed: %w", collection, err)
	}
	return resp.Records, nil
}

// Insert creates a record and returns the committed row
func (c *Client) Insert(ctx context.Context, collection models.Collection, record json.RawMessage) (json.RawMessage, error) {
	var resp api.MutateResponse
	path := fmt.Sprintf("/api/v1/data/%s", collection)
	req := api.MutateRequest{Record: record}
	if err := c.doRequest(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("insert into %s failed: %w", collection, err)
	}
	return resp.Record, nil
}

// Update overwrites fields of the record with the given id
func (c *Client) Update(ctx context.Context, collection models.Collection, id string, record json.RawMessage) (json.RawMessage, error) {
	var resp api.MutateResponse
	path := fmt.Sprintf("/api/v1/data/%s/%s", collection, id)
	req := api.MutateRequest{Record: record}
	if err := c.doRequest(ctx, http.MethodPut, path, req, &resp); err != nil {
		return nil, fmt.Errorf("update %s/%s failed: %w", collection, id, err)
	}
	return resp.Record, nil
}

// Delete removes the record with the given id
func (c *Client) Delete(ctx context.Context, collection models.Collection, id string) error {
	path := fmt.Sprintf("/api/v1/data/%s/%s", collection, id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete %s/%s failed: %w", collection, id, err)
	}
	return nil
}

// Health probes service reachability
func (c *Client) Health(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, nil)
}

// doRequest performs an HTTP request against the remote service.
// Transport failures come back wrapped in ErrUnavailable, non-2xx
// responses as *RemoteError.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		remoteErr := &RemoteError{Status: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			remoteErr.Code = errResp.Code
			remoteErr.Message = errResp.Message
		} else {
			remoteErr.Message = string(respBody)
		}
		return remoteErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
