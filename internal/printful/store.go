package printful

import (
	"context"
	"fmt"
	"strconv"
)

// StoreContext identifies the Printful store requests are scoped to.
type StoreContext struct {
	ID   string
	Name string
}

const storeContextKey = "store-context"

// StoreResolver resolves the account's default store once and keeps it
// for the life of the process. Used when PRINTFUL_STORE_ID is not
// configured explicitly.
type StoreResolver struct {
	client *Client
	cache  Cache
}

func NewStoreResolver(client *Client, cache Cache) *StoreResolver {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &StoreResolver{client: client, cache: cache}
}

// Default returns the first store visible to the API key.
func (r *StoreResolver) Default(ctx context.Context) (*StoreContext, error) {
	if cached, ok := r.cache.Get(storeContextKey); ok {
		store, _ := cached.(*StoreContext)
		if store == nil {
			return nil, fmt.Errorf("no store available for this API key")
		}
		return store, nil
	}

	stores, err := r.client.Stores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	if len(stores) == 0 {
		r.cache.Set(storeContextKey, nil)
		return nil, fmt.Errorf("no store available for this API key")
	}

	store := &StoreContext{}
	if id, ok := numberValue(stores[0]["id"]); ok {
		store.ID = strconv.FormatInt(id, 10)
	}
	if name, ok := stringValue(stores[0]["name"]); ok {
		store.Name = name
	}
	r.cache.Set(storeContextKey, store)
	return store, nil
}
