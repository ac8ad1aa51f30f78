package extract

import (
	"log/slog"
	"strings"

	"golang.org/x/text/currency"

	"github.com/donaldgifford/product-extractor/pkg/document"
	domain "github.com/donaldgifford/product-extractor/pkg/types"
)

// currencySymbols maps price symbols to currency codes.
var currencySymbols = map[string]string{
	"$": "USD",
	"£": "GBP",
	"€": "EUR",
	"¥": "JPY",
}

// symbolOrder fixes the scan order so sniffing is deterministic.
var symbolOrder = []string{"€", "£", "¥", "$"}

// currencyMetaKeys are the meta tags carrying a currency code, in priority order.
var currencyMetaKeys = []string{"product:price:currency", "og:price:currency"}

// ResolveCurrency determines the ISO 4217 code for the page, defaulting to
// EUR when no source yields a valid code.
func ResolveCurrency(doc document.Document, profile SiteProfile) string {
	return resolveCurrency(doc, profile, discardLogger)
}

func resolveCurrency(doc document.Document, profile SiteProfile, log *slog.Logger) string {
	tiers := []struct {
		step string
		find func() (string, bool)
	}{
		{"retailer currency", func() (string, bool) { return profile.Currency(doc) }},
		{"schema currency", func() (string, bool) { return schemaCurrency(doc) }},
		{"meta currency", func() (string, bool) { return metaCurrency(doc) }},
		{"json-ld currency", func() (string, bool) { return jsonLDCurrency(doc) }},
	}

	for _, t := range tiers {
		if code, ok := attempt(log, t.step, t.find); ok {
			return code
		}
	}
	return domain.DefaultCurrency
}

// CurrencyCode validates raw as an ISO 4217 code, also accepting a bare
// currency symbol.
func CurrencyCode(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if code, ok := currencySymbols[raw]; ok {
		return code, true
	}
	if len(raw) != 3 {
		return "", false
	}
	unit, err := currency.ParseISO(strings.ToUpper(raw))
	if err != nil {
		return "", false
	}
	return unit.String(), true
}

// sniffCurrency returns the currency of the first known symbol found in text.
func sniffCurrency(text string) (string, bool) {
	first, code := -1, ""
	for _, sym := range symbolOrder {
		if i := strings.Index(text, sym); i >= 0 && (first < 0 || i < first) {
			first, code = i, currencySymbols[sym]
		}
	}
	return code, first >= 0
}

func schemaCurrency(doc document.Document) (string, bool) {
	for _, el := range doc.Query(`[itemprop="priceCurrency"]`) {
		if content, ok := el.Attr("content"); ok {
			if code, ok := CurrencyCode(content); ok {
				return code, true
			}
		}
		if code, ok := CurrencyCode(el.Text()); ok {
			return code, true
		}
	}
	return "", false
}

func metaCurrency(doc document.Document) (string, bool) {
	for _, key := range currencyMetaKeys {
		if raw, ok := doc.Meta(key); ok {
			if code, ok := CurrencyCode(raw); ok {
				return code, true
			}
		}
	}
	return "", false
}

func jsonLDCurrency(doc document.Document) (string, bool) {
	for _, f := range ParseFragments(doc) {
		if !f.OK() {
			continue
		}
		raw, ok := FindField(f.Data, "priceCurrency", "offers")
		if !ok {
			continue
		}
		if s, ok := raw.(string); ok {
			if code, ok := CurrencyCode(s); ok {
				return code, true
			}
		}
	}
	return "", false
}
