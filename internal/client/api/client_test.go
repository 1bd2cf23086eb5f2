package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novakart/storesync/internal/models"
	"github.com/novakart/storesync/pkg/api"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080", "token-123")

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.Equal(t, "token-123", client.token)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/data/products", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		resp := api.ListResponse{
			Records: json.RawMessage(`[{"id":"prod-1","name":"Keyboard"}]`),
			Count:   1,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123")

	records, err := client.List(context.Background(), models.CollectionProducts)

	require.NoError(t, err)
	var recs []api.ProductRecord
	require.NoError(t, json.Unmarshal(records, &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "prod-1", recs[0].ID)
}

func TestClient_Insert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/data/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.MutateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.WriteHeader(http.StatusCreated)
		resp := api.MutateResponse{Record: json.RawMessage(`{"id":"prod-42"}`)}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	rec, err := client.Insert(context.Background(), models.CollectionProducts,
		json.RawMessage(`{"name":"Mouse"}`))

	require.NoError(t, err)
	var committed api.ProductRecord
	require.NoError(t, json.Unmarshal(rec, &committed))
	assert.Equal(t, "prod-42", committed.ID)
}

func TestClient_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/data/orders/ord-1", r.URL.Path)

		resp := api.MutateResponse{Record: json.RawMessage(`{"id":"ord-1","status":"shipped"}`)}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	rec, err := client.Update(context.Background(), models.CollectionOrders, "ord-1",
		json.RawMessage(`{"status":"shipped"}`))

	require.NoError(t, err)
	assert.Contains(t, string(rec), "shipped")
}

func TestClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/data/customers/cust-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	err := client.Delete(context.Background(), models.CollectionCustomers, "cust-1")

	require.NoError(t, err)
}

func TestClient_Rejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		resp := api.ErrorResponse{Error: "validation", Message: "price must be positive", Code: "invalid_price"}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.Insert(context.Background(), models.CollectionProducts,
		json.RawMessage(`{"price":-1}`))

	require.Error(t, err)
	assert.True(t, IsRejection(err))
	assert.False(t, IsTransient(err))
	assert.Contains(t, err.Error(), "invalid_price")
}

func TestClient_ServerError_IsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.List(context.Background(), models.CollectionProducts)

	require.Error(t, err)
	assert.True(t, IsTransient(err))
	assert.False(t, IsRejection(err))
	assert.False(t, IsUnavailable(err))
}

func TestClient_Unreachable_IsUnavailable(t *testing.T) {
	// Grab a port that is guaranteed closed
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "")

	err := client.Health(context.Background())

	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
	assert.True(t, IsTransient(err))
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	require.NoError(t, client.Health(context.Background()))
}
