package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

// dedupFlags define the URL normalization used to detect duplicate images.
// The normalized form is only used as a set key; callers keep the resolved URL.
const dedupFlags = purell.FlagLowercaseScheme |
	purell.FlagLowercaseHost |
	purell.FlagUppercaseEscapes |
	purell.FlagDecodeUnnecessaryEscapes |
	purell.FlagRemoveDefaultPort |
	purell.FlagRemoveDotSegments |
	purell.FlagRemoveDuplicateSlashes |
	purell.FlagRemoveFragment

// ResolveURL converts raw into an absolute URL against baseHref. Absolute
// URLs pass through unchanged and protocol-relative URLs take the scheme of
// the base. It reports false when raw is empty or cannot be resolved.
func ResolveURL(raw, baseHref string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if ref.IsAbs() {
		return raw, true
	}

	base, err := url.Parse(baseHref)
	if err != nil || !base.IsAbs() {
		return "", false
	}

	if strings.HasPrefix(raw, "//") {
		if ref.Host == "" {
			return "", false
		}
		return base.Scheme + ":" + raw, true
	}

	return base.ResolveReference(ref).String(), true
}

func isHTTPURL(abs string) bool {
	u, err := url.Parse(abs)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Scheme, "http") || strings.EqualFold(u.Scheme, "https")
}

// normalizeURL returns the dedup key for an absolute URL.
func normalizeURL(abs string) string {
	u, err := url.Parse(abs)
	if err != nil {
		return abs
	}
	return purell.NormalizeURL(u, dedupFlags)
}

// urlSet is an insertion-ordered set of URLs keyed by normalized form.
type urlSet struct {
	seen map[string]struct{}
	urls []string
}

func newURLSet() *urlSet {
	return &urlSet{seen: make(map[string]struct{})}
}

// add resolves raw against base and appends it when it is an http(s) URL
// not already present.
func (s *urlSet) add(raw, base string) bool {
	abs, ok := ResolveURL(raw, base)
	if !ok || !isHTTPURL(abs) {
		return false
	}
	key := normalizeURL(abs)
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	s.urls = append(s.urls, abs)
	return true
}

func (s *urlSet) len() int {
	return len(s.urls)
}

// list returns the collected URLs, never nil.
func (s *urlSet) list() []string {
	if s.urls == nil {
		return []string{}
	}
	return s.urls
}
