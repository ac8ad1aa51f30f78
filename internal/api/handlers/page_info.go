package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/product-extractor/pkg/types"
)

// bodyOverhead is the headroom allowed on top of the document limit for the
// JSON envelope and string escaping.
const bodyOverhead = 64 << 10

// PageExtractor extracts a product from raw page markup.
type PageExtractor interface {
	ExtractPage(ctx context.Context, pageURL, markup string) (domain.ExtractedProduct, error)
	MaxDocumentBytes() int
}

// PageInfoHandler handles page extraction requests.
type PageInfoHandler struct {
	extractor PageExtractor
	log       *slog.Logger
}

// NewPageInfoHandler creates a new PageInfoHandler.
func NewPageInfoHandler(extractor PageExtractor, log *slog.Logger) *PageInfoHandler {
	return &PageInfoHandler{extractor: extractor, log: log}
}

// PageInfoInput is the request body for the page-info endpoint.
type PageInfoInput struct {
	Body struct {
		URL  string `json:"url" minLength:"1" doc:"Absolute http(s) URL the page was loaded from" example:"https://shop.example/products/widget"`
		HTML string `json:"html" minLength:"1" doc:"Full page markup"`
	}
}

// PageInfoResponse is the success/error envelope returned by page-info.
type PageInfoResponse struct {
	Success bool                     `json:"success" doc:"Whether the document was accepted and extracted"`
	Data    *domain.ExtractedProduct `json:"data,omitempty" doc:"Extracted product, present on success"`
	Error   string                   `json:"error,omitempty" doc:"Why the document was rejected" example:"page URL must be an absolute http or https URL"`
}

// PageInfoOutput is the response for the page-info endpoint.
type PageInfoOutput struct {
	Body PageInfoResponse
}

// PageInfo extracts product metadata from a submitted page. A document that
// cannot be accepted is reported in the envelope, not as an HTTP error.
func (h *PageInfoHandler) PageInfo(ctx context.Context, input *PageInfoInput) (*PageInfoOutput, error) {
	p, err := h.extractor.ExtractPage(ctx, input.Body.URL, input.Body.HTML)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, huma.Error503ServiceUnavailable("request cancelled")
		}
		h.log.Info("page rejected", "url", input.Body.URL, "err", err)
		return &PageInfoOutput{Body: PageInfoResponse{Error: err.Error()}}, nil
	}

	return &PageInfoOutput{Body: PageInfoResponse{Success: true, Data: &p}}, nil
}

// RegisterPageInfoRoutes registers page-info endpoints with the Huma API.
func RegisterPageInfoRoutes(api huma.API, h *PageInfoHandler) {
	huma.Register(api, huma.Operation{
		OperationID:  "page-info",
		Method:       http.MethodPost,
		Path:         "/api/v1/page-info",
		Summary:      "Extract product metadata from a page",
		Description:  "Runs the extraction cascade over the submitted markup and returns the canonical URL, title, description, images, price and currency.",
		Tags:         []string{"extract"},
		MaxBodyBytes: int64(h.extractor.MaxDocumentBytes())*2 + bodyOverhead,
		Errors:       []int{http.StatusServiceUnavailable},
	}, h.PageInfo)
}
