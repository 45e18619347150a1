package printful

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var canonicalRe = regexp.MustCompile(`[\s-]+`)

// Canonical lower-cases a placement name and collapses runs of
// whitespace or hyphens into a single underscore. Canonical(Canonical(p))
// == Canonical(p) for any input.
func Canonical(name string) string {
	return canonicalRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

const largeSuffix = "_large"

// aliasOf maps between the "_large" and standard forms of a canonical
// placement name. Printful treats them as the same print area at
// different sizes, so config declared under one must resolve from the
// other.
func aliasOf(canonical string) string {
	if strings.HasSuffix(canonical, largeSuffix) {
		return strings.TrimSuffix(canonical, largeSuffix)
	}
	return canonical + largeSuffix
}

// placementNameKeys are tried in order when a placement arrives as an
// object. Upstream catalog records and caller payloads disagree on the
// key; "type" is last because flat file entries use it.
var placementNameKeys = []string{"placement", "id", "name", "value", "type"}

// techniqueKeys is every spelling the technique list has been observed
// under across catalog endpoints and caller payloads.
var techniqueKeys = []string{
	"technique", "techniques",
	"supported_techniques", "supportedTechniques",
	"allowed_techniques", "allowedTechniques",
	"available_techniques", "availableTechniques",
}

// ParsePlacement converts a heterogeneous upstream placement record (a
// bare string, or an object with any of the known name/technique/layer
// keys) into a PlacementDefinition. Records with no resolvable name
// yield nil and are dropped by callers.
func ParsePlacement(v any) *PlacementDefinition {
	switch p := v.(type) {
	case string:
		return newPlacementDefinition(p, nil, nil)
	case map[string]any:
		name := ""
		for _, key := range placementNameKeys {
			if s, ok := stringValue(p[key]); ok && strings.TrimSpace(s) != "" {
				name = s
				break
			}
		}
		techniques := collectTechniques(p)
		var layers []Layer
		if raw, ok := p["layers"].([]any); ok {
			for _, entry := range raw {
				if layer := ParseLayer(entry); layer != nil {
					layers = append(layers, *layer)
				}
				if m, ok := entry.(map[string]any); ok {
					techniques = appendTechniques(techniques, collectTechniques(m)...)
				}
			}
		}
		return newPlacementDefinition(name, techniques, layers)
	default:
		return nil
	}
}

func newPlacementDefinition(name string, techniques []string, layers []Layer) *PlacementDefinition {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	return &PlacementDefinition{
		Placement:  name,
		Canonical:  Canonical(name),
		Techniques: techniques,
		Layers:     layers,
	}
}

// ParseLayer converts an upstream layer record into a Layer. A layer
// referencing neither a file id nor a URL is invalid and yields nil.
func ParseLayer(v any) *Layer {
	switch l := v.(type) {
	case string:
		if strings.TrimSpace(l) == "" {
			return nil
		}
		return &Layer{Type: "file", URL: l}
	case map[string]any:
		layer := Layer{Type: "file"}
		if s, ok := stringValue(l["type"]); ok && s != "" {
			layer.Type = strings.ToLower(strings.TrimSpace(s))
		}
		if s, ok := stringValue(l["url"]); ok {
			layer.URL = strings.TrimSpace(s)
		}
		layer.FileID = numberLiteral(l["file_id"])
		if !layer.valid() {
			return nil
		}
		return &layer
	default:
		return nil
	}
}

// collectTechniques gathers technique identifiers from every known key
// of an upstream record, normalized to lower case and de-duplicated in
// order of first appearance.
func collectTechniques(m map[string]any) []string {
	var out []string
	for _, key := range techniqueKeys {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case []any:
			for _, entry := range t {
				out = appendTechniques(out, techniqueName(entry))
			}
		default:
			out = appendTechniques(out, techniqueName(t))
		}
	}
	return out
}

// techniqueName extracts the identifier from a technique record, which
// may be a bare string or an object keyed by any of key/technique/name.
func techniqueName(v any) string {
	switch t := v.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(t))
	case map[string]any:
		for _, key := range []string{"key", "technique", "name", "id", "value"} {
			if s, ok := stringValue(t[key]); ok && strings.TrimSpace(s) != "" {
				return strings.ToLower(strings.TrimSpace(s))
			}
		}
	}
	return ""
}

func appendTechniques(list []string, names ...string) []string {
	for _, name := range names {
		if name == "" {
			continue
		}
		seen := false
		for _, existing := range list {
			if existing == name {
				seen = true
				break
			}
		}
		if !seen {
			list = append(list, name)
		}
	}
	return list
}

// BuildPlacementMap indexes definitions by canonical form and, for every
// entry, also under its "_large"/standard alias when that key is free.
// An order referencing "front" therefore resolves config declared under
// "front_large" and vice versa without duplicating entries.
func BuildPlacementMap(defs []*PlacementDefinition) map[string]*PlacementDefinition {
	out := make(map[string]*PlacementDefinition, len(defs)*2)
	for _, def := range defs {
		if def == nil {
			continue
		}
		if _, ok := out[def.Canonical]; !ok {
			out[def.Canonical] = def
		}
		if alias := aliasOf(def.Canonical); alias != def.Canonical {
			if _, ok := out[alias]; !ok {
				out[alias] = def
			}
		}
	}
	return out
}

// stringValue reports v as a string when it is one.
func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// numberValue sniffs a finite numeric id out of whatever shape the
// caller sent it in: JSON numbers, numeric strings, or Go ints from
// already-decoded maps.
func numberValue(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}

// numberLiteral preserves an id in its upstream textual form so it
// round-trips as a JSON number.
func numberLiteral(v any) json.Number {
	switch n := v.(type) {
	case json.Number:
		return n
	case float64:
		if n == float64(int64(n)) {
			return json.Number(strconv.FormatInt(int64(n), 10))
		}
		return json.Number(strconv.FormatFloat(n, 'f', -1, 64))
	case int64:
		return json.Number(strconv.FormatInt(n, 10))
	case int:
		return json.Number(strconv.Itoa(n))
	case string:
		s := strings.TrimSpace(n)
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return json.Number(s)
		}
	}
	return ""
}
