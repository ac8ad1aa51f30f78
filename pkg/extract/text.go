package extract

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

// textPolicy strips every tag and keeps only text content.
var textPolicy = bluemonday.StrictPolicy()

// CleanText converts a raw text or markup fragment into plain text with all
// whitespace runs, including newlines and non-breaking spaces, collapsed to
// a single space.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}
	s := raw
	if strings.ContainsAny(s, "<&") {
		// bluemonday escapes the text it keeps, so unescape afterwards.
		s = html.UnescapeString(textPolicy.Sanitize(s))
	}
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
