// Package domain defines the core types shared by the extraction engine,
// the API, and the CLI.
package domain

// DefaultCurrency is reported when no currency can be determined from the page.
const DefaultCurrency = "EUR"

// ExtractedProduct is the structured metadata extracted from a single page.
type ExtractedProduct struct {
	URL         string   `json:"url"               doc:"Canonical product URL"`
	Title       string   `json:"title"             doc:"Plain-text product title"`
	Description string   `json:"description"       doc:"Plain-text product description"`
	Images      []string `json:"images"            doc:"Absolute image URLs in priority order"`
	Price       *float64 `json:"price,omitempty"   doc:"Normalized price, omitted when not found"`
	Currency    string   `json:"currency"          doc:"ISO 4217 currency code"                     example:"EUR"`
}

// HasPrice reports whether a price was found.
func (p *ExtractedProduct) HasPrice() bool {
	return p.Price != nil
}

// PriceValue returns the price, or 0 when absent.
func (p *ExtractedProduct) PriceValue() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// ProfileInfo describes a site profile known to the engine.
type ProfileInfo struct {
	Name        string `json:"name"        example:"amazon"`
	Description string `json:"description"`
}
