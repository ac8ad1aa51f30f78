package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	domain "github.com/donaldgifford/product-extractor/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// extractionRow is one extract result as printed by the CLI.
type extractionRow struct {
	File    string                   `json:"file"`
	Product *domain.ExtractedProduct `json:"product,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

func printExtractionTable(w io.Writer, rows []extractionRow) error {
	tw := newTabWriter(w)
	tw.writef("FILE\tTITLE\tPRICE\tCURRENCY\tIMAGES\tURL\n")
	for i := range rows {
		r := &rows[i]
		if r.Product == nil {
			tw.writef("%s\tERROR: %s\t\t\t\t\n", r.File, r.Error)
			continue
		}
		tw.writef("%s\t%s\t%s\t%s\t%d\t%s\n",
			r.File,
			truncate(r.Product.Title, 40),
			formatPrice(r.Product.Price),
			r.Product.Currency,
			len(r.Product.Images),
			r.Product.URL,
		)
	}
	return tw.finish()
}

func printProductDetail(w io.Writer, p *domain.ExtractedProduct) error {
	tw := newTabWriter(w)
	tw.writef("URL:\t%s\n", p.URL)
	tw.writef("Title:\t%s\n", p.Title)
	tw.writef("Description:\t%s\n", truncate(p.Description, 120))
	tw.writef("Price:\t%s %s\n", formatPrice(p.Price), p.Currency)
	for i, img := range p.Images {
		tw.writef("Image %d:\t%s\n", i+1, img)
	}
	return tw.finish()
}

func printProfilesTable(w io.Writer, profiles []domain.ProfileInfo) error {
	tw := newTabWriter(w)
	tw.writef("NAME\tDESCRIPTION\n")
	for _, p := range profiles {
		tw.writef("%s\t%s\n", p.Name, p.Description)
	}
	return tw.finish()
}

func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
