package extract

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"github.com/donaldgifford/product-extractor/pkg/document"
)

// Heuristic image filter bounds.
const (
	minImageSide   = 100
	minAspectRatio = 0.5
	maxAspectRatio = 2.0
)

type imageCandidate struct {
	url    string
	width  int
	height int
	area   int
}

// SelectImages builds the deduplicated, priority-ordered image list for doc.
// A retailer profile that yields any image replaces the generic cascade.
func SelectImages(doc document.Document, profile SiteProfile) []string {
	return selectImages(doc, profile, discardLogger)
}

func selectImages(doc document.Document, profile SiteProfile, log *slog.Logger) []string {
	if urls, ok := attempt(log, "retailer images", func() ([]string, bool) {
		urls := profile.Images(doc)
		return urls, len(urls) > 0
	}); ok {
		return urls
	}

	base := doc.Location().Href
	set := newURLSet()

	tiers := []struct {
		step    string
		collect func() ([]string, bool)
	}{
		{"og image", func() ([]string, bool) { return metaImage(doc, "og:image") }},
		{"twitter image", func() ([]string, bool) {
			return metaImage(doc, "twitter:image", "twitter:image:src")
		}},
		{"schema images", func() ([]string, bool) { return schemaImages(doc) }},
		{"heuristic images", func() ([]string, bool) {
			var urls []string
			for _, c := range heuristicImages(doc, base) {
				urls = append(urls, c.url)
			}
			return urls, len(urls) > 0
		}},
	}

	for _, t := range tiers {
		urls, _ := attempt(log, t.step, t.collect)
		for _, u := range urls {
			set.add(u, base)
		}
	}
	return set.list()
}

func metaImage(doc document.Document, keys ...string) ([]string, bool) {
	for _, key := range keys {
		if v, ok := doc.Meta(key); ok {
			return []string{v}, true
		}
	}
	return nil, false
}

func schemaImages(doc document.Document) ([]string, bool) {
	var urls []string
	for _, el := range doc.Query(`[itemprop="image"]`) {
		if v := firstAttr(el, "src", "content", "href"); v != "" {
			urls = append(urls, v)
		}
	}
	return urls, len(urls) > 0
}

// heuristicImages returns the page images that pass the size and aspect
// ratio filters, largest area first.
func heuristicImages(doc document.Document, base string) []imageCandidate {
	var out []imageCandidate
	for _, img := range doc.ByTag("img") {
		src := imageSource(img)
		if src == "" {
			continue
		}
		abs, ok := ResolveURL(src, base)
		if !ok {
			continue
		}

		w, h := img.NaturalSize()
		if w == 0 || h == 0 {
			w, h = img.RenderedSize()
		}
		if w < minImageSide || h < minImageSide {
			continue
		}
		ratio := float64(w) / float64(h)
		if ratio < minAspectRatio || ratio > maxAspectRatio {
			continue
		}

		out = append(out, imageCandidate{url: abs, width: w, height: h, area: w * h})
	}

	slices.SortStableFunc(out, func(a, b imageCandidate) int {
		return cmp.Compare(b.area, a.area)
	})
	return out
}

// imageSource returns the first usable source of an <img>, skipping inline
// data URLs used as lazy-load placeholders.
func imageSource(img document.Element) string {
	for _, attr := range []string{"src", "data-src"} {
		v, ok := img.Attr(attr)
		v = strings.TrimSpace(v)
		if !ok || v == "" || isDataURL(v) {
			continue
		}
		return v
	}
	return ""
}

func isDataURL(v string) bool {
	return len(v) >= 5 && strings.EqualFold(v[:5], "data:")
}

func firstAttr(el document.Element, names ...string) string {
	for _, name := range names {
		if v, ok := el.Attr(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
