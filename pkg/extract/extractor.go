// Package extract implements the product metadata extraction engine: a
// cascade of heuristics over a read-only document snapshot that degrades
// gracefully when structured markup is missing.
package extract

import (
	"log/slog"

	"github.com/donaldgifford/product-extractor/pkg/document"
	domain "github.com/donaldgifford/product-extractor/pkg/types"
)

// Extractor extracts product metadata from a document snapshot.
type Extractor interface {
	Extract(doc document.Document) domain.ExtractedProduct
}

// Engine implements Extractor. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	log *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for debug output and recovered panics.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine creates a new Engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{log: discardLogger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Extract runs the default engine against doc.
func Extract(doc document.Document) domain.ExtractedProduct {
	return defaultEngine.Extract(doc)
}

// Extract builds an ExtractedProduct from doc. It never fails: sources that
// yield nothing, or panic, are skipped.
func (e *Engine) Extract(doc document.Document) domain.ExtractedProduct {
	profile, _ := attempt(e.log, "profile", func() (SiteProfile, bool) {
		return ProfileFor(doc.Location()), true
	})
	if profile == nil {
		profile = Generic
	}

	p := domain.ExtractedProduct{
		URL:         e.pageURL(doc),
		Title:       e.title(doc),
		Description: e.description(doc),
		Images:      selectImages(doc, profile, e.log),
	}

	if r, ok := findPrice(doc, profile, e.log); ok {
		price := r.value
		p.Price = &price
		e.log.Debug("price found", "source", string(r.source), "price", price)
	}

	p.Currency = resolveCurrency(doc, profile, e.log)

	e.log.Debug("extracted product",
		"profile", profile.Name(),
		"url", p.URL,
		"images", len(p.Images),
		"has_price", p.HasPrice(),
		"currency", p.Currency,
	)
	return p
}

// pageURL prefers the canonical link, then og:url, then the location href.
func (e *Engine) pageURL(doc document.Document) string {
	u, ok := attempt(e.log, "url", func() (string, bool) {
		base := doc.Location().Href
		if href, ok := doc.CanonicalURL(); ok {
			if abs, ok := ResolveURL(href, base); ok {
				return abs, true
			}
		}
		if og, ok := doc.Meta("og:url"); ok {
			if abs, ok := ResolveURL(og, base); ok {
				return abs, true
			}
		}
		return base, base != ""
	})
	if !ok {
		return ""
	}
	return u
}

func (e *Engine) title(doc document.Document) string {
	return firstText(e.log, "title",
		func() string { return metaText(doc, "og:title") },
		func() string { return markerText(doc, "name") },
		func() string {
			if h := doc.ByTag("h1"); len(h) > 0 {
				return h[0].Text()
			}
			return ""
		},
		doc.Title,
	)
}

func (e *Engine) description(doc document.Document) string {
	return firstText(e.log, "description",
		func() string { return metaText(doc, "og:description") },
		func() string { return metaText(doc, "description") },
		func() string { return markerText(doc, "description") },
	)
}

// firstText returns the first source that is non-empty after cleaning.
func firstText(log *slog.Logger, step string, sources ...func() string) string {
	for _, src := range sources {
		if s, ok := attempt(log, step, func() (string, bool) {
			s := CleanText(src())
			return s, s != ""
		}); ok {
			return s
		}
	}
	return ""
}

func metaText(doc document.Document, key string) string {
	v, _ := doc.Meta(key)
	return v
}

// markerText returns the first non-empty itemprop value, preferring the
// content attribute over the element text.
func markerText(doc document.Document, prop string) string {
	for _, el := range doc.Query(`[itemprop="` + prop + `"]`) {
		if v := firstAttr(el, "content"); v != "" {
			return v
		}
		if v := CleanText(el.Text()); v != "" {
			return v
		}
	}
	return ""
}
