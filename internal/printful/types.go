package printful

import (
	"encoding/json"
)

// Layer is one artwork layer inside a placement. A layer must reference
// either an already-uploaded Printful file or a fetchable URL; anything
// else is dropped during sanitization.
type Layer struct {
	Type   string      `json:"type"`
	URL    string      `json:"url,omitempty"`
	FileID json.Number `json:"file_id,omitempty"`
}

func (l *Layer) valid() bool {
	return l != nil && (l.URL != "" || l.FileID != "")
}

// ItemFile is a sanitized legacy flat-file entry. The "type" field on
// these doubles as a placement hint ("front", "back", ...) in most
// caller payloads, so both type and placement are kept.
type ItemFile struct {
	Type      string      `json:"type,omitempty"`
	Placement string      `json:"placement,omitempty"`
	Technique string      `json:"technique,omitempty"`
	URL       string      `json:"url,omitempty"`
	FileID    json.Number `json:"file_id,omitempty"`
}

// placementHint returns the placement name the file claims to belong to.
func (f *ItemFile) placementHint() string {
	if f.Type != "" {
		return f.Type
	}
	return f.Placement
}

func (f *ItemFile) layer() Layer {
	return Layer{Type: "file", URL: f.URL, FileID: f.FileID}
}

// PlacementDefinition is the canonical internal form of an upstream
// placement record, whatever shape it arrived in. Canonical is always
// derived from Placement via Canonical(), never set independently.
type PlacementDefinition struct {
	Placement  string
	Canonical  string
	Techniques []string
	Layers     []Layer
}

// Placement is the wire form sent to the orders and estimation APIs.
type Placement struct {
	Placement string  `json:"placement"`
	Technique string  `json:"technique,omitempty"`
	Layers    []Layer `json:"layers,omitempty"`
}

// RawItem is an order line item as callers send it: anywhere between a
// bare variant id plus a file list and a fully specified v2 item. The
// variant id fields and the files/placements entries are sniffed and
// normalized once, here at the boundary; nothing downstream re-parses
// loose JSON.
type RawItem struct {
	PrintfulVariantID any    `json:"printfulVariantId,omitempty"`
	VariantID         any    `json:"variant_id,omitempty"`
	VariantIDCamel    any    `json:"variantId,omitempty"`
	ExternalID        string `json:"external_id,omitempty"`
	Quantity          int    `json:"quantity,omitempty"`
	Name              string `json:"name,omitempty"`
	RetailPrice       string `json:"retail_price,omitempty"`
	Source            string `json:"source,omitempty"`
	Files             []any  `json:"files,omitempty"`
	Placements        []any  `json:"placements,omitempty"`
	Options           []any  `json:"options,omitempty"`
}

// CatalogVariantID returns the first field that parses as a finite
// number, in the documented precedence order. Sync-store variant ids
// live in a different numeric namespace, so callers populate
// printfulVariantId with the catalog id when they have both.
func (it *RawItem) CatalogVariantID() (int64, bool) {
	for _, v := range []any{it.PrintfulVariantID, it.VariantID, it.VariantIDCamel} {
		if id, ok := numberValue(v); ok {
			return id, true
		}
	}
	return 0, false
}

// Item is a prepared, API-conformant order line item. Exactly one of
// Files or Placements carries the artwork.
type Item struct {
	CatalogVariantID int64       `json:"catalog_variant_id,omitempty"`
	ExternalID       string      `json:"external_id,omitempty"`
	Source           string      `json:"source,omitempty"`
	Quantity         int         `json:"quantity"`
	Name             string      `json:"name,omitempty"`
	RetailPrice      string      `json:"retail_price,omitempty"`
	Files            []ItemFile  `json:"files,omitempty"`
	Placements       []Placement `json:"placements,omitempty"`
}

// OrderRequest is the inbound draft-order or quote payload.
type OrderRequest struct {
	ExternalID string          `json:"external_id,omitempty"`
	Recipient  json.RawMessage `json:"recipient,omitempty"`
	Shipping   string          `json:"shipping,omitempty"`
	Items      []*RawItem      `json:"items,omitempty"`
	OrderItems []*RawItem      `json:"order_items,omitempty"`
}

// lineItems returns whichever of the two accepted keys is populated.
func (r *OrderRequest) lineItems() []*RawItem {
	if len(r.Items) > 0 {
		return r.Items
	}
	return r.OrderItems
}

// PreparedOrder is the outbound payload. Items and OrderItems hold the
// same prepared list because the draft-order and estimation endpoints
// disagree on the key name.
type PreparedOrder struct {
	ExternalID string          `json:"external_id,omitempty"`
	Recipient  json.RawMessage `json:"recipient,omitempty"`
	Shipping   string          `json:"shipping,omitempty"`
	Items      []*Item         `json:"items,omitempty"`
	OrderItems []*Item         `json:"order_items,omitempty"`
}
