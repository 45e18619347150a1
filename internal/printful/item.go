package printful

import (
	"errors"
	"strings"
)

// fallbackTechnique covers the last-resort synthesized placement when
// neither the item nor the catalog names a technique.
const fallbackTechnique = "dtg"

// PrepareItem turns a raw order line item into an API-conformant one
// using the variant's resolved configuration. cfg may be nil when
// resolution failed; preparation then relies entirely on what the item
// itself declares. Fails when no placement/layer combination can be
// built.
//
// Caller-supplied items range from fully specified placements to bare
// file lists, and catalogs disagree on where techniques live, so
// preparation works through a chain of fallbacks: explicit placements,
// placements derived from file tags, the variant's default placement,
// and finally a synthesized default carrying every file.
func PrepareItem(raw *RawItem, cfg *VariantConfig) (*Item, error) {
	itemTechnique := techniqueFromOptions(raw.Options)
	files := sanitizeFiles(raw.Files, itemTechnique)
	candidates := sanitizePlacements(raw.Placements)

	if len(candidates) == 0 && len(files) > 0 {
		candidates = placementsFromFiles(files, cfg)
	}
	if len(candidates) == 0 && cfg != nil && cfg.DefaultPlacement != nil {
		def := &PlacementDefinition{
			Placement: cfg.DefaultPlacement.Placement,
			Canonical: cfg.DefaultPlacement.Canonical,
		}
		if cfg.DefaultTechnique != "" {
			def.Techniques = []string{cfg.DefaultTechnique}
		}
		candidates = []*PlacementDefinition{def}
	}
	if len(candidates) == 0 {
		return nil, errors.New("item has no files, no placements, and no default placement to fall back on")
	}

	fileUsed := make([]bool, len(files))
	var finalized []Placement
	for i, def := range candidates {
		name := def.Placement
		canonical := def.Canonical

		// Align against the allowed set: exact canonical match or its
		// _large alias, else the variant's default placement, else the
		// entry stands as supplied.
		var aligned *PlacementDefinition
		if cfg != nil {
			aligned = cfg.AllowedMap[canonical]
			if aligned == nil {
				aligned = cfg.DefaultPlacement
			}
		}
		var allowedTechniques []string
		impliedTechnique := ""
		if aligned != nil {
			name = aligned.Placement
			canonical = aligned.Canonical
			allowedTechniques = aligned.Techniques
			if len(allowedTechniques) > 0 {
				impliedTechnique = allowedTechniques[0]
			}
		}

		technique := ""
		if len(def.Techniques) > 0 {
			technique = def.Techniques[0]
		}
		if technique == "" {
			technique = impliedTechnique
		}
		if technique == "" && cfg != nil {
			technique = cfg.DefaultTechnique
		}
		// Never send a combination the catalog rejects.
		if len(allowedTechniques) > 0 && !containsString(allowedTechniques, technique) {
			technique = allowedTechniques[0]
		}

		layers := def.Layers
		if len(layers) == 0 {
			layers = matchFileLayers(files, fileUsed, canonical)
		}
		if len(layers) == 0 && i == 0 && len(files) > 0 {
			// Single-placement products commonly omit per-file placement
			// tags; the first placement takes every file. Unclear whether
			// multi-placement catalogs can make this mis-assign artwork.
			layers = takeAllFileLayers(files, fileUsed)
		}
		if len(layers) == 0 || technique == "" {
			continue
		}
		finalized = append(finalized, Placement{Placement: name, Technique: technique, Layers: layers})
	}

	// Everything got dropped: synthesize one placement from the default
	// with whatever files the item brought.
	if len(finalized) == 0 {
		if cfg == nil || cfg.DefaultPlacement == nil || len(files) == 0 {
			return nil, errors.New("no usable placement and layer combination could be built")
		}
		technique := cfg.DefaultTechnique
		if technique == "" {
			technique = fallbackTechnique
		}
		layers := make([]Layer, 0, len(files))
		for _, f := range files {
			layers = append(layers, f.layer())
		}
		finalized = []Placement{{
			Placement: cfg.DefaultPlacement.Placement,
			Technique: technique,
			Layers:    layers,
		}}
	}

	item := &Item{
		ExternalID:  raw.ExternalID,
		Source:      raw.Source,
		Quantity:    raw.Quantity,
		Name:        raw.Name,
		RetailPrice: raw.RetailPrice,
		Placements:  finalized,
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	// The API rejects receiving both forms at once: once any placement
	// carries layers the flat files field is dropped entirely.
	hasLayers := false
	for _, p := range finalized {
		if len(p.Layers) > 0 {
			hasLayers = true
			break
		}
	}
	if !hasLayers {
		item.Files = files
	}
	return item, nil
}

// sanitizeFiles normalizes the legacy flat file list: entries lacking
// both file_id and url are dropped, type/placement/technique are
// normalized, and a missing technique falls back to one extracted from
// the file's (or the item's) Shopify-style options array.
func sanitizeFiles(raw []any, itemTechnique string) []ItemFile {
	var out []ItemFile
	for _, entry := range raw {
		var f ItemFile
		switch v := entry.(type) {
		case string:
			f.URL = strings.TrimSpace(v)
		case map[string]any:
			if s, ok := stringValue(v["type"]); ok {
				f.Type = strings.ToLower(strings.TrimSpace(s))
			}
			if s, ok := stringValue(v["placement"]); ok {
				f.Placement = strings.ToLower(strings.TrimSpace(s))
			}
			if s, ok := stringValue(v["technique"]); ok {
				f.Technique = strings.ToLower(strings.TrimSpace(s))
			}
			if f.Technique == "" {
				if opts, ok := v["options"].([]any); ok {
					f.Technique = techniqueFromOptions(opts)
				}
			}
			if s, ok := stringValue(v["url"]); ok {
				f.URL = strings.TrimSpace(s)
			}
			f.FileID = numberLiteral(v["file_id"])
		default:
			continue
		}
		if f.Technique == "" {
			f.Technique = itemTechnique
		}
		if f.URL == "" && f.FileID == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// sanitizePlacements parses the structured placements list, dropping
// entries with no resolvable name. Nested layers go through the same
// sanitization as top-level files.
func sanitizePlacements(raw []any) []*PlacementDefinition {
	var out []*PlacementDefinition
	for _, entry := range raw {
		if def := ParsePlacement(entry); def != nil {
			out = append(out, def)
		}
	}
	return out
}

// placementsFromFiles derives placements when the item supplied only
// files: one definition per distinct placement tag, carrying that
// group's files as layers. Untagged files are left for the
// first-placement fallback.
func placementsFromFiles(files []ItemFile, cfg *VariantConfig) []*PlacementDefinition {
	var order []string
	groups := make(map[string][]Layer)
	techniques := make(map[string]string)
	for _, f := range files {
		hint := f.placementHint()
		if hint == "" {
			continue
		}
		if _, ok := groups[hint]; !ok {
			order = append(order, hint)
		}
		groups[hint] = append(groups[hint], f.layer())
		if techniques[hint] == "" {
			techniques[hint] = f.Technique
		}
	}

	var out []*PlacementDefinition
	for _, hint := range order {
		technique := techniques[hint]
		if technique == "" && cfg != nil {
			technique = cfg.DefaultTechnique
		}
		def := newPlacementDefinition(hint, nil, groups[hint])
		if def == nil {
			continue
		}
		if technique != "" {
			def.Techniques = []string{technique}
		}
		out = append(out, def)
	}
	return out
}

// matchFileLayers consumes files whose placement tag canonicalizes to
// the given placement or its _large alias.
func matchFileLayers(files []ItemFile, used []bool, canonical string) []Layer {
	var layers []Layer
	for i, f := range files {
		if used[i] {
			continue
		}
		fc := Canonical(f.placementHint())
		if fc == "" {
			continue
		}
		if fc == canonical || aliasOf(fc) == canonical {
			used[i] = true
			layers = append(layers, f.layer())
		}
	}
	return layers
}

func takeAllFileLayers(files []ItemFile, used []bool) []Layer {
	var layers []Layer
	for i, f := range files {
		if used[i] {
			continue
		}
		used[i] = true
		layers = append(layers, f.layer())
	}
	return layers
}

// techniqueFromOptions pulls a technique out of a Shopify-style options
// array: [{"id": "technique", "value": "dtg"}, ...].
func techniqueFromOptions(options []any) string {
	for _, entry := range options {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		key := ""
		for _, k := range []string{"id", "name"} {
			if s, ok := stringValue(m[k]); ok && s != "" {
				key = strings.ToLower(strings.TrimSpace(s))
				break
			}
		}
		if key != "technique" {
			continue
		}
		if s, ok := stringValue(m["value"]); ok && strings.TrimSpace(s) != "" {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return ""
}

func containsString(list []string, s string) bool {
	for _, entry := range list {
		if entry == s {
			return true
		}
	}
	return false
}
