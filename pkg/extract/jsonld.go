package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/donaldgifford/product-extractor/pkg/document"
)

var errEmptyFragment = errors.New("empty script")

// Fragment is the outcome of parsing one JSON-LD script. Data is only
// meaningful when Err is nil.
type Fragment struct {
	Data any
	Err  error
}

// OK reports whether the fragment parsed.
func (f Fragment) OK() bool {
	return f.Err == nil
}

// ParseFragment decodes a single JSON-LD script body. A top-level "@graph"
// container is unwrapped into its node list.
func ParseFragment(raw string) Fragment {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Fragment{Err: fmt.Errorf("parsing JSON-LD: %w", errEmptyFragment)}
	}

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return Fragment{Err: fmt.Errorf("parsing JSON-LD: %w", err)}
	}

	if obj, ok := data.(map[string]any); ok {
		if graph, ok := obj["@graph"]; ok {
			data = graph
		}
	}
	return Fragment{Data: data}
}

// ParseFragments parses every JSON-LD script in the document independently.
func ParseFragments(doc document.Document) []Fragment {
	scripts := doc.StructuredData()
	out := make([]Fragment, 0, len(scripts))
	for _, s := range scripts {
		out = append(out, ParseFragment(s))
	}
	return out
}

// FindField searches a decoded JSON-LD node for field. Arrays are scanned in
// order and the first hit wins; objects descend into relation before
// checking field itself. Scalars, nulls and empty strings are misses.
func FindField(node any, field, relation string) (any, bool) {
	switch n := node.(type) {
	case []any:
		for _, child := range n {
			if v, ok := FindField(child, field, relation); ok {
				return v, true
			}
		}
	case map[string]any:
		if rel, ok := n[relation]; ok && relation != "" {
			if v, ok := FindField(rel, field, relation); ok {
				return v, true
			}
		}
		if v, ok := n[field]; ok && present(v) {
			return v, true
		}
	}
	return nil, false
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	default:
		return true
	}
}
