package extract

import (
	"log/slog"
	"strings"

	"github.com/donaldgifford/product-extractor/pkg/document"
)

// priceSource identifies which cascade tier produced a price.
type priceSource string

const (
	sourceRetailer      priceSource = "retailer-override"
	sourceSchemaContent priceSource = "schema-content-attribute"
	sourceSchemaText    priceSource = "schema-text"
	sourceJSONLD        priceSource = "json-ld"
	sourceMeta          priceSource = "meta-tag"
	sourceHeuristic     priceSource = "heuristic-selector"
)

type priceResult struct {
	value  float64
	source priceSource
}

// priceMetaKeys are the meta tags carrying a price amount, in priority order.
var priceMetaKeys = []string{"product:price:amount", "og:price:amount"}

// priceSelectors are common price-display selectors, tried in order.
var priceSelectors = []string{
	".price",
	"#price",
	".product-price",
	"#product-price",
	".product__price",
	".price-current",
	".current-price",
	".sale-price",
	".offer-price",
	".price-now",
	`[class*="price"]`,
	`[id*="price"]`,
	`[class*="amount"]`,
	`[class*="cost"]`,
}

// FindPrice runs the price cascade against doc and returns the first price
// found.
func FindPrice(doc document.Document, profile SiteProfile) (float64, bool) {
	r, ok := findPrice(doc, profile, discardLogger)
	return r.value, ok
}

func findPrice(doc document.Document, profile SiteProfile, log *slog.Logger) (priceResult, bool) {
	tiers := []struct {
		step string
		find func() (priceResult, bool)
	}{
		{"retailer price", func() (priceResult, bool) {
			v, ok := profile.Price(doc)
			return priceResult{value: v, source: sourceRetailer}, ok
		}},
		{"schema price", func() (priceResult, bool) { return schemaPrice(doc) }},
		{"json-ld price", func() (priceResult, bool) { return jsonLDPrice(doc, log) }},
		{"meta price", func() (priceResult, bool) { return metaPrice(doc) }},
		{"heuristic price", func() (priceResult, bool) { return heuristicPrice(doc) }},
	}

	for _, t := range tiers {
		if r, ok := attempt(log, t.step, t.find); ok {
			return r, true
		}
	}
	return priceResult{}, false
}

func schemaPrice(doc document.Document) (priceResult, bool) {
	for _, el := range doc.Query(`[itemprop="price"]`) {
		if content, ok := el.Attr("content"); ok && strings.TrimSpace(content) != "" {
			if v, ok := NormalizePrice(content); ok {
				return priceResult{value: v, source: sourceSchemaContent}, true
			}
		}
		if v, ok := NormalizePrice(el.Text()); ok {
			return priceResult{value: v, source: sourceSchemaText}, true
		}
	}
	return priceResult{}, false
}

func jsonLDPrice(doc document.Document, log *slog.Logger) (priceResult, bool) {
	for i, f := range ParseFragments(doc) {
		if !f.OK() {
			log.Debug("skipping malformed JSON-LD", "index", i, "err", f.Err)
			continue
		}
		for _, field := range []string{"price", "lowPrice"} {
			raw, ok := FindField(f.Data, field, "offers")
			if !ok {
				continue
			}
			if v, ok := jsonPrice(raw); ok {
				return priceResult{value: v, source: sourceJSONLD}, true
			}
		}
	}
	return priceResult{}, false
}

// jsonPrice converts a decoded JSON-LD price value.
func jsonPrice(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return validPrice(v)
	case string:
		return NormalizePrice(v)
	case map[string]any:
		if inner, ok := v["@value"]; ok {
			return jsonPrice(inner)
		}
	}
	return 0, false
}

func metaPrice(doc document.Document) (priceResult, bool) {
	for _, key := range priceMetaKeys {
		if raw, ok := doc.Meta(key); ok {
			if v, ok := NormalizePrice(raw); ok {
				return priceResult{value: v, source: sourceMeta}, true
			}
		}
	}
	return priceResult{}, false
}

func heuristicPrice(doc document.Document) (priceResult, bool) {
	for _, sel := range priceSelectors {
		els := doc.Query(sel)
		if len(els) == 0 {
			continue
		}
		if v, ok := NormalizePrice(els[0].Text()); ok {
			return priceResult{value: v, source: sourceHeuristic}, true
		}
	}
	return priceResult{}, false
}
