package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colemanmx/coleman-mx/internal/shopify"
)

type fakeStorefront struct {
	products    []shopify.Product
	collections []shopify.Collection
	err         error
}

func (f *fakeStorefront) Products(ctx context.Context) ([]shopify.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeStorefront) Collections(ctx context.Context) ([]shopify.Collection, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.collections, nil
}

func TestListProducts(t *testing.T) {
	h := NewProductsHandler(&fakeStorefront{
		products: []shopify.Product{
			{ID: "gid://shopify/Product/1", Title: "Coleman MX Jersey", Handle: "coleman-mx-jersey", Price: "45.00", Currency: "USD"},
		},
		collections: []shopify.Collection{
			{ID: "gid://shopify/Collection/1", Title: "Apparel", Handle: "apparel"},
		},
	})

	rec, _ := submitJSON(h.HandleListProducts, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Products    []shopify.Product    `json:"products"`
		Collections []shopify.Collection `json:"collections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Coleman MX Jersey", resp.Products[0].Title)
	require.Len(t, resp.Collections, 1)
	assert.Equal(t, "apparel", resp.Collections[0].Handle)
}

func TestListProductsUpstreamFailure(t *testing.T) {
	h := NewProductsHandler(&fakeStorefront{err: errors.New("storefront unavailable")})

	rec, _ := submitJSON(h.HandleListProducts, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestListProductsUnconfigured(t *testing.T) {
	h := NewProductsHandler(nil)

	rec, _ := submitJSON(h.HandleListProducts, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
