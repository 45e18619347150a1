package printful

import (
	"context"
	"fmt"
	"log/slog"
)

// VariantConfig is the allowed (placement, technique) surface derived
// from a catalog variant and its parent product's technique catalog.
type VariantConfig struct {
	AllowedPlacements []*PlacementDefinition
	AllowedMap        map[string]*PlacementDefinition
	DefaultPlacement  *PlacementDefinition
	DefaultTechnique  string
	AllowedTechniques []string
}

// Resolver lazily resolves and caches VariantConfigs per
// (store, catalog-variant) pair. Resolution failures are swallowed:
// they log a warning and cache nil so one bad catalog entry never
// blocks unrelated items and never triggers a second fetch.
type Resolver struct {
	client *Client
	cache  Cache
}

func NewResolver(client *Client, cache Cache) *Resolver {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Resolver{client: client, cache: cache}
}

func configCacheKey(storeID string, variantID int64) string {
	if storeID == "" {
		storeID = "default"
	}
	return fmt.Sprintf("%s:%d", storeID, variantID)
}

// VariantConfig resolves the configuration for one catalog variant id.
// Returns nil (never an error) when the variant cannot be fetched.
func (r *Resolver) VariantConfig(ctx context.Context, variantID int64) *VariantConfig {
	key := configCacheKey(r.client.StoreID(), variantID)
	if cached, ok := r.cache.Get(key); ok {
		cfg, _ := cached.(*VariantConfig)
		return cfg
	}

	cfg := r.resolve(ctx, variantID)
	if cfg == nil {
		r.cache.Set(key, nil)
		return nil
	}
	r.cache.Set(key, cfg)
	return cfg
}

func (r *Resolver) resolve(ctx context.Context, variantID int64) *VariantConfig {
	variant, err := r.client.CatalogVariant(ctx, variantID)
	if err != nil {
		slog.Warn("failed to fetch catalog variant", "variant_id", variantID, "error", err)
		return nil
	}

	// Placement names from the variant's own print-area dimensions.
	// These carry no technique association.
	var defs []*PlacementDefinition
	if dims, ok := variant["placement_dimensions"].([]any); ok {
		for _, entry := range dims {
			if def := ParsePlacement(entry); def != nil {
				def.Techniques = nil
				defs = append(defs, def)
			}
		}
	}

	// The parent product's technique catalog implies more placements
	// through each technique's associated files. A failed product fetch
	// is non-fatal; the variant config just loses technique data.
	var allowedTechniques []string
	if productID, ok := firstNumber(variant, "catalog_product_id", "product_id"); ok {
		product, err := r.client.CatalogProduct(ctx, productID)
		if err != nil {
			slog.Warn("failed to fetch catalog product, proceeding without technique catalog",
				"product_id", productID, "variant_id", variantID, "error", err)
		} else {
			techDefs, techniques := placementsFromTechniqueCatalog(product)
			defs = append(defs, techDefs...)
			allowedTechniques = techniques
		}
	}

	allowed := dedupeByCanonical(defs)
	if len(allowed) == 0 && len(allowedTechniques) == 0 {
		slog.Warn("catalog variant has no usable placement data", "variant_id", variantID)
	}

	// A placement the catalog never constrained should not be
	// artificially constrained here either.
	for _, def := range allowed {
		if len(def.Techniques) == 0 {
			def.Techniques = append([]string(nil), allowedTechniques...)
		}
	}

	cfg := &VariantConfig{
		AllowedPlacements: allowed,
		AllowedMap:        BuildPlacementMap(allowed),
		AllowedTechniques: allowedTechniques,
	}
	if len(allowed) > 0 {
		cfg.DefaultPlacement = allowed[0]
		if len(cfg.DefaultPlacement.Techniques) > 0 {
			cfg.DefaultTechnique = cfg.DefaultPlacement.Techniques[0]
		}
	}
	if cfg.DefaultTechnique == "" && len(allowedTechniques) > 0 {
		cfg.DefaultTechnique = allowedTechniques[0]
	}
	return cfg
}

// placementsFromTechniqueCatalog walks the product's technique catalog:
// every placement referenced by a technique's associated_files becomes a
// PlacementDefinition carrying that technique.
func placementsFromTechniqueCatalog(product map[string]any) ([]*PlacementDefinition, []string) {
	raw, ok := product["techniques"].([]any)
	if !ok {
		return nil, nil
	}

	var defs []*PlacementDefinition
	var techniques []string
	for _, entry := range raw {
		tech, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name := techniqueName(tech)
		if name == "" {
			continue
		}
		techniques = appendTechniques(techniques, name)

		files, ok := tech["associated_files"].([]any)
		if !ok {
			continue
		}
		for _, file := range files {
			if def := ParsePlacement(file); def != nil {
				def.Techniques = []string{name}
				def.Layers = nil
				defs = append(defs, def)
			}
		}
	}
	return defs, techniques
}

// dedupeByCanonical keeps the first definition seen for each canonical
// placement form, preserving order.
func dedupeByCanonical(defs []*PlacementDefinition) []*PlacementDefinition {
	seen := make(map[string]bool, len(defs))
	out := make([]*PlacementDefinition, 0, len(defs))
	for _, def := range defs {
		if def == nil || seen[def.Canonical] {
			continue
		}
		seen[def.Canonical] = true
		out = append(out, def)
	}
	return out
}

func firstNumber(m map[string]any, keys ...string) (int64, bool) {
	for _, key := range keys {
		if n, ok := numberValue(m[key]); ok && n != 0 {
			return n, true
		}
	}
	return 0, false
}
