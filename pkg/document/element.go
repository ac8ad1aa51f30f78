package document

import (
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aymerick/douceur/css"
	cssparser "github.com/aymerick/douceur/parser"
)

type element struct {
	sel *goquery.Selection
}

func (e *element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *element) Text() string {
	return e.sel.Text()
}

func (e *element) NaturalSize() (int, int) {
	w := parseLength(e.sel.AttrOr("width", ""))
	h := parseLength(e.sel.AttrOr("height", ""))
	if w == 0 || h == 0 {
		return 0, 0
	}
	return w, h
}

// RenderedSize reads pixel width and height declarations from the inline
// style. Later declarations win unless an earlier one is !important.
func (e *element) RenderedSize() (int, int) {
	style := e.sel.AttrOr("style", "")
	if strings.TrimSpace(style) == "" {
		return 0, 0
	}
	decls, err := cssparser.ParseDeclarations(style)
	if err != nil {
		return 0, 0
	}

	var w, h styleLength
	for _, d := range decls {
		switch strings.ToLower(strings.TrimSpace(d.Property)) {
		case "width":
			w.set(d)
		case "height":
			h.set(d)
		}
	}
	if w.px == 0 || h.px == 0 {
		return 0, 0
	}
	return w.px, h.px
}

type styleLength struct {
	px        int
	important bool
}

func (l *styleLength) set(d *css.Declaration) {
	important := d.Important
	value := strings.TrimSpace(d.Value)
	if i := strings.Index(strings.ToLower(value), "!important"); i >= 0 {
		important = true
		value = value[:i]
	}
	if l.important && !important {
		return
	}
	l.px = parseLength(value)
	l.important = important
}

// parseLength reads a pixel length such as "300", "300px" or "299.6".
// Anything else, including percentages, is unknown (0).
func parseLength(raw string) int {
	raw = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "px")
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 || f > math.MaxInt32 || math.IsNaN(f) {
		return 0
	}
	return int(math.Round(f))
}
