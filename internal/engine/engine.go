// Package engine orchestrates document intake for the extraction service:
// size checks, parsing, running the extractor, and recording metrics.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/product-extractor/internal/metrics"
	"github.com/donaldgifford/product-extractor/pkg/document"
	"github.com/donaldgifford/product-extractor/pkg/extract"
	domain "github.com/donaldgifford/product-extractor/pkg/types"
)

const (
	defaultMaxDocumentBytes = 5 << 20
	defaultConcurrency      = 4
)

// ErrDocumentTooLarge is returned when the markup exceeds the configured limit.
var ErrDocumentTooLarge = errors.New("document exceeds size limit")

// Rejection reasons recorded in metrics.
const (
	reasonTooLarge   = "too_large"
	reasonInvalidURL = "invalid_url"
	reasonParse      = "parse_error"
)

// Engine turns raw page markup into extracted products.
type Engine struct {
	extractor extract.Extractor
	log       *slog.Logger
	maxBytes  int
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithExtractor replaces the default extraction engine.
func WithExtractor(x extract.Extractor) EngineOption {
	return func(e *Engine) {
		e.extractor = x
	}
}

// WithMaxDocumentBytes sets the largest accepted document. Zero or a
// negative value keeps the default.
func WithMaxDocumentBytes(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxBytes = n
		}
	}
}

// NewEngine creates a new Engine.
func NewEngine(opts ...EngineOption) *Engine {
	eng := &Engine{
		log:      slog.Default(),
		maxBytes: defaultMaxDocumentBytes,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.extractor == nil {
		eng.extractor = extract.NewEngine(extract.WithLogger(eng.log))
	}
	return eng
}

// MaxDocumentBytes returns the configured document size limit.
func (eng *Engine) MaxDocumentBytes() int {
	return eng.maxBytes
}

// ExtractPage parses markup located at pageURL and extracts its product
// metadata. It fails only when the document cannot be accepted.
func (eng *Engine) ExtractPage(ctx context.Context, pageURL, markup string) (domain.ExtractedProduct, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExtractedProduct{}, err
	}

	if len(markup) > eng.maxBytes {
		metrics.RejectedDocumentsTotal.WithLabelValues(reasonTooLarge).Inc()
		return domain.ExtractedProduct{}, fmt.Errorf(
			"%w: %d bytes (limit %d)", ErrDocumentTooLarge, len(markup), eng.maxBytes,
		)
	}

	start := time.Now()

	doc, err := document.ParseString(markup, pageURL)
	if err != nil {
		reason := reasonParse
		if errors.Is(err, document.ErrInvalidURL) {
			reason = reasonInvalidURL
		}
		metrics.RejectedDocumentsTotal.WithLabelValues(reason).Inc()
		return domain.ExtractedProduct{}, fmt.Errorf("loading document: %w", err)
	}

	profile := extract.ProfileFor(doc.Location()).Name()
	p := eng.extractor.Extract(doc)

	metrics.ExtractionDuration.WithLabelValues(profile).Observe(time.Since(start).Seconds())
	metrics.ExtractionsTotal.WithLabelValues(profile).Inc()
	metrics.ImagesPerDocument.Observe(float64(len(p.Images)))
	if !p.HasPrice() {
		metrics.PriceMissesTotal.WithLabelValues(profile).Inc()
	}

	eng.log.Debug("page extracted",
		"url", pageURL,
		"profile", profile,
		"images", len(p.Images),
		"has_price", p.HasPrice(),
	)

	return p, nil
}

// ExtractReader is ExtractPage for markup read from r. At most one byte past
// the limit is read.
func (eng *Engine) ExtractReader(ctx context.Context, pageURL string, r io.Reader) (domain.ExtractedProduct, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(eng.maxBytes)+1))
	if err != nil {
		return domain.ExtractedProduct{}, fmt.Errorf("reading document: %w", err)
	}
	return eng.ExtractPage(ctx, pageURL, string(data))
}

// Page is one document queued for batch extraction.
type Page struct {
	Name string // file path or other label for reporting
	URL  string
	Open func() (io.ReadCloser, error)
}

// Result is the outcome of extracting one Page.
type Result struct {
	Page    Page
	Product domain.ExtractedProduct
	Err     error
}

// ExtractAll extracts pages with at most concurrency in flight. Per-page
// failures are reported in the matching Result; the returned error is only
// set when ctx ends first. Results keep the order of pages.
func (eng *Engine) ExtractAll(ctx context.Context, pages []Page, concurrency int) ([]Result, error) {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}

	results := make([]Result, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, page := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = eng.extractOne(gctx, page)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch extraction: %w", err)
	}
	return results, nil
}

func (eng *Engine) extractOne(ctx context.Context, page Page) Result {
	res := Result{Page: page}

	rc, err := page.Open()
	if err != nil {
		res.Err = fmt.Errorf("opening %s: %w", page.Name, err)
		return res
	}
	defer rc.Close()

	res.Product, res.Err = eng.ExtractReader(ctx, page.URL, rc)
	if res.Err != nil {
		eng.log.Warn("page extraction failed", "page", page.Name, "err", res.Err)
	}
	return res
}
