package printful

import (
	"context"
	"log/slog"
)

// Preparer orchestrates item preparation across a whole order,
// producing the request body for either a draft order or an estimation
// task.
type Preparer struct {
	resolver *Resolver
}

func NewPreparer(client *Client, cache Cache) *Preparer {
	return &Preparer{resolver: NewResolver(client, cache)}
}

// PrepareOrder prepares every line item of the request. Any single
// item failure fails the whole order; partial orders are never
// submitted. The returned payload carries the prepared list under both
// accepted keys.
func (p *Preparer) PrepareOrder(ctx context.Context, req *OrderRequest) (*PreparedOrder, error) {
	out := &PreparedOrder{
		ExternalID: req.ExternalID,
		Recipient:  req.Recipient,
		Shipping:   req.Shipping,
	}

	items := req.lineItems()
	if len(items) == 0 {
		return out, nil
	}

	// Per-call memo on top of the shared process-wide cache, so one
	// order with many lines of the same variant resolves it once.
	local := make(map[int64]*VariantConfig)

	prepared := make([]*Item, 0, len(items))
	for _, raw := range items {
		variantID, ok := raw.CatalogVariantID()

		var cfg *VariantConfig
		if ok {
			if cached, hit := local[variantID]; hit {
				cfg = cached
			} else {
				cfg = p.resolver.VariantConfig(ctx, variantID)
				local[variantID] = cfg
			}
		} else {
			slog.Warn("order item carries no numeric variant id, preparing without catalog config")
		}

		item, err := PrepareItem(raw, cfg)
		if err != nil {
			return nil, &PrepareError{VariantID: variantID, Err: err}
		}
		item.CatalogVariantID = variantID
		if item.Source == "" {
			item.Source = "catalog"
		}
		prepared = append(prepared, item)
	}

	out.Items = prepared
	out.OrderItems = prepared
	return out, nil
}
