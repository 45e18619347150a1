package printful

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.printful.com"

	defaultTimeout = 30 * time.Second
)

// Client is a thin bearer-token client for the Printful v2 API. An
// optional store id scopes every request via the X-PF-Store-Id header.
type Client struct {
	baseURL    string
	apiKey     string
	storeID    string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, storeID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		storeID: storeID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

func (c *Client) StoreID() string {
	return c.storeID
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.storeID != "" {
		req.Header.Set("X-PF-Store-Id", c.storeID)
	}

	return c.httpClient.Do(req)
}

// getJSON runs a request and decodes the response body. Non-2xx
// statuses come back as *APIError with the raw body attached.
func (c *Client) getJSON(ctx context.Context, method, path string, body any) (map[string]any, error) {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var decoded map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return decoded, nil
}

// unwrapData peels the v2 envelope; endpoints that respond without one
// pass through untouched.
func unwrapData(m map[string]any) map[string]any {
	if data, ok := m["data"].(map[string]any); ok {
		return data
	}
	return m
}

// CatalogVariant fetches catalog-variant detail. Catalog ids only;
// sync-store variant ids resolve to 404 here.
func (c *Client) CatalogVariant(ctx context.Context, variantID int64) (map[string]any, error) {
	m, err := c.getJSON(ctx, http.MethodGet, fmt.Sprintf("/v2/catalog-variants/%d", variantID), nil)
	if err != nil {
		return nil, err
	}
	return unwrapData(m), nil
}

// CatalogProduct fetches catalog-product detail, including the
// technique catalog.
func (c *Client) CatalogProduct(ctx context.Context, productID int64) (map[string]any, error) {
	m, err := c.getJSON(ctx, http.MethodGet, fmt.Sprintf("/v2/catalog-products/%d", productID), nil)
	if err != nil {
		return nil, err
	}
	return unwrapData(m), nil
}

// CreateOrder submits a prepared order. Drafts (confirm=false) trigger
// the asynchronous cost calculation polled by WaitForOrderCosts.
func (c *Client) CreateOrder(ctx context.Context, payload *PreparedOrder, confirm bool) (map[string]any, error) {
	m, err := c.getJSON(ctx, http.MethodPost, fmt.Sprintf("/v2/orders?confirm=%t", confirm), payload)
	if err != nil {
		return nil, err
	}
	return unwrapData(m), nil
}

func (c *Client) Order(ctx context.Context, orderID string) (map[string]any, error) {
	m, err := c.getJSON(ctx, http.MethodGet, "/v2/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, err
	}
	return unwrapData(m), nil
}

func (c *Client) ConfirmOrder(ctx context.Context, orderID string) (map[string]any, error) {
	m, err := c.getJSON(ctx, http.MethodPost, "/v2/orders/"+url.PathEscape(orderID)+"/confirm", nil)
	if err != nil {
		return nil, err
	}
	return unwrapData(m), nil
}

// CreateEstimationTask starts an asynchronous quote calculation.
func (c *Client) CreateEstimationTask(ctx context.Context, payload *PreparedOrder) (map[string]any, error) {
	m, err := c.getJSON(ctx, http.MethodPost, "/v2/order-estimation-tasks", payload)
	if err != nil {
		return nil, err
	}
	return unwrapData(m), nil
}

func (c *Client) EstimationTask(ctx context.Context, taskID string) (map[string]any, error) {
	m, err := c.getJSON(ctx, http.MethodGet, "/v2/order-estimation-tasks?id="+url.QueryEscape(taskID), nil)
	if err != nil {
		return nil, err
	}
	data := unwrapData(m)
	// The list form wraps the single task in an array.
	if tasks, ok := m["data"].([]any); ok && len(tasks) > 0 {
		if task, ok := tasks[0].(map[string]any); ok {
			return task, nil
		}
	}
	return data, nil
}

// Stores lists the stores visible to the API key.
func (c *Client) Stores(ctx context.Context) ([]map[string]any, error) {
	m, err := c.getJSON(ctx, http.MethodGet, "/stores", nil)
	if err != nil {
		return nil, err
	}
	var raw []any
	for _, key := range []string{"data", "result"} {
		if list, ok := m[key].([]any); ok {
			raw = list
			break
		}
	}
	stores := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if store, ok := entry.(map[string]any); ok {
			stores = append(stores, store)
		}
	}
	return stores, nil
}
