package printful

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", "9001")
	_, err := client.CatalogVariant(context.Background(), 4012)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-key", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "9001", got.Get("X-PF-Store-Id"))
}

func TestClientOmitsStoreHeaderWhenUnset(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", "")
	_, err := client.CatalogVariant(context.Background(), 4012)
	require.NoError(t, err)
	_, present := got["X-Pf-Store-Id"]
	assert.False(t, present)
}

func TestClientAPIErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"message":"Invalid placement"}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "")
	_, err := client.CreateOrder(context.Background(), &PreparedOrder{}, false)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Invalid placement")
	assert.Contains(t, apiErr.Error(), "400")
}

func TestClientCreateOrderConfirmFlag(t *testing.T) {
	var path, query, method string
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.RawQuery
		method = r.Method
		body, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "ord_1"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "")
	payload := &PreparedOrder{
		ExternalID: "ext_1",
		Recipient:  json.RawMessage(`{"name":"Cole"}`),
		Items: []*Item{{
			CatalogVariantID: 4012,
			Quantity:         1,
			Placements: []Placement{{
				Placement: "front", Technique: "dtg",
				Layers: []Layer{{Type: "file", URL: "https://x/a.png"}},
			}},
		}},
	}

	order, err := client.CreateOrder(context.Background(), payload, false)
	require.NoError(t, err)
	assert.Equal(t, "ord_1", order["id"])
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/v2/orders", path)
	assert.Equal(t, "confirm=false", query)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Equal(t, "ext_1", sent["external_id"])
	require.Contains(t, sent, "items")
	require.Contains(t, sent, "order_items")
}

func TestClientConfirmOrderPath(t *testing.T) {
	var path, method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		method = r.Method
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "ord_1", "status": "pending"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "")
	order, err := client.ConfirmOrder(context.Background(), "ord_1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/v2/orders/ord_1/confirm", path)
	assert.Equal(t, "pending", order["status"])
}

func TestClientEstimationTaskUnwrapsShapes(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"array data", map[string]any{"data": []any{map[string]any{"id": "task_1", "status": "pending"}}}},
		{"object data", map[string]any{"data": map[string]any{"id": "task_1", "status": "pending"}}},
		{"bare object", map[string]any{"id": "task_1", "status": "pending"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "task_1", r.URL.Query().Get("id"))
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer srv.Close()

			task, err := NewClient(srv.URL, "key", "").EstimationTask(context.Background(), "task_1")
			require.NoError(t, err)
			assert.Equal(t, "task_1", task["id"])
		})
	}
}

func TestClientStoresResultKey(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"data key", map[string]any{"data": []any{map[string]any{"id": 1.0, "name": "Main"}}}},
		{"result key", map[string]any{"result": []any{map[string]any{"id": 1.0, "name": "Main"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/stores", r.URL.Path)
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer srv.Close()

			stores, err := NewClient(srv.URL, "key", "").Stores(context.Background())
			require.NoError(t, err)
			require.Len(t, stores, 1)
			assert.Equal(t, "Main", stores[0]["name"])
		})
	}
}

func TestClientIsConfigured(t *testing.T) {
	assert.True(t, NewClient("", "key", "").IsConfigured())
	assert.False(t, NewClient("", "", "9001").IsConfigured())
}

func TestMemoryCacheStoresNil(t *testing.T) {
	cache := NewMemoryCache()
	if _, ok := cache.Get("missing"); ok {
		t.Fatal("empty cache reported a hit")
	}
	cache.Set("k", nil)
	v, ok := cache.Get("k")
	if !ok || v != nil {
		t.Errorf("Get() = (%v, %v), want cached nil hit", v, ok)
	}
}
