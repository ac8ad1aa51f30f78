// Package document provides the read-only page snapshot consumed by the
// extraction engine, abstracted behind interfaces for testability.
package document

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrInvalidURL is returned when the page URL is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("page URL must be an absolute http or https URL")

// Location is the address the document was loaded from.
type Location struct {
	Href     string
	Hostname string
	Scheme   string // "http" or "https", without the trailing colon
}

// MetaTag is a single <meta> element keyed by its property or name attribute.
type MetaTag struct {
	Key     string // lower-cased property, or name when property is absent
	Content string
}

// Element is a read-only view of a single DOM element.
type Element interface {
	Attr(name string) (string, bool)
	Text() string
	// NaturalSize is the intrinsic size declared by the width and height
	// attributes. Zero values mean the size is unknown.
	NaturalSize() (width, height int)
	// RenderedSize is the size from the inline style. Zero values mean unknown.
	RenderedSize() (width, height int)
}

// Document is a read-only snapshot of a loaded page.
type Document interface {
	Location() Location
	MetaTags() []MetaTag
	// Meta returns the first non-empty content of a meta tag whose property
	// or name matches key, case-insensitively.
	Meta(key string) (string, bool)
	Query(selector string) []Element
	ByTag(tag string) []Element
	// StructuredData returns the raw text of every JSON-LD script in
	// document order.
	StructuredData() []string
	CanonicalURL() (string, bool)
	Title() string
}

// HTMLDocument implements Document over a parsed HTML tree.
type HTMLDocument struct {
	doc  *goquery.Document
	loc  Location
	meta []MetaTag
}

// Parse reads HTML from r and returns a document located at pageURL.
func Parse(r io.Reader, pageURL string) (*HTMLDocument, error) {
	loc, err := ParseLocation(pageURL)
	if err != nil {
		return nil, err
	}

	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	d := &HTMLDocument{
		doc: goquery.NewDocumentFromNode(node),
		loc: loc,
	}
	d.meta = collectMeta(d.doc)
	return d, nil
}

// ParseString is Parse for an in-memory HTML string.
func ParseString(markup, pageURL string) (*HTMLDocument, error) {
	return Parse(strings.NewReader(markup), pageURL)
}

// ParseLocation validates raw as an absolute http(s) URL.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return Location{}, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	return Location{
		Href:     u.String(),
		Hostname: strings.ToLower(u.Hostname()),
		Scheme:   scheme,
	}, nil
}

func collectMeta(doc *goquery.Document) []MetaTag {
	var tags []MetaTag
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := strings.TrimSpace(s.AttrOr("property", ""))
		if key == "" {
			key = strings.TrimSpace(s.AttrOr("name", ""))
		}
		if key == "" {
			key = strings.TrimSpace(s.AttrOr("itemprop", ""))
		}
		content, ok := s.Attr("content")
		if key == "" || !ok {
			return
		}
		tags = append(tags, MetaTag{
			Key:     strings.ToLower(key),
			Content: strings.TrimSpace(content),
		})
	})
	return tags
}

// Location returns where the document was loaded from.
func (d *HTMLDocument) Location() Location {
	return d.loc
}

// MetaTags returns every keyed meta tag in document order.
func (d *HTMLDocument) MetaTags() []MetaTag {
	return d.meta
}

// Meta returns the first non-empty content for key.
func (d *HTMLDocument) Meta(key string) (string, bool) {
	key = strings.ToLower(key)
	for _, m := range d.meta {
		if m.Key == key && m.Content != "" {
			return m.Content, true
		}
	}
	return "", false
}

// Query returns every element matching a CSS selector. Invalid selectors
// match nothing.
func (d *HTMLDocument) Query(selector string) []Element {
	return wrap(d.doc.Find(selector))
}

// ByTag returns every element with the given tag name.
func (d *HTMLDocument) ByTag(tag string) []Element {
	return wrap(d.doc.Find(strings.ToLower(tag)))
}

// StructuredData returns the raw JSON-LD script bodies.
func (d *HTMLDocument) StructuredData() []string {
	var out []string
	d.doc.Find("script[type]").Each(func(_ int, s *goquery.Selection) {
		typ := strings.ToLower(s.AttrOr("type", ""))
		if i := strings.IndexByte(typ, ';'); i >= 0 {
			typ = typ[:i]
		}
		if strings.TrimSpace(typ) != "application/ld+json" {
			return
		}
		out = append(out, s.Text())
	})
	return out
}

// CanonicalURL returns the href of the first rel=canonical link.
func (d *HTMLDocument) CanonicalURL() (string, bool) {
	var href string
	d.doc.Find("link[rel][href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, rel := range strings.Fields(s.AttrOr("rel", "")) {
			if strings.EqualFold(rel, "canonical") {
				href = strings.TrimSpace(s.AttrOr("href", ""))
				return href == ""
			}
		}
		return true
	})
	return href, href != ""
}

// Title returns the text of the document <title>.
func (d *HTMLDocument) Title() string {
	t := d.doc.Find("head title").First()
	if t.Length() == 0 {
		t = d.doc.Find("title").First()
	}
	return t.Text()
}

func wrap(sel *goquery.Selection) []Element {
	if sel.Length() == 0 {
		return nil
	}
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &element{sel: s})
	})
	return out
}
