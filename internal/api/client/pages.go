package client

import (
	"context"
	"fmt"

	domain "github.com/donaldgifford/product-extractor/pkg/types"
)

type pageInfoRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

type pageInfoResponse struct {
	Success bool                     `json:"success"`
	Data    *domain.ExtractedProduct `json:"data"`
	Error   string                   `json:"error"`
}

// PageInfo submits page markup for extraction.
func (c *Client) PageInfo(ctx context.Context, pageURL, html string) (*domain.ExtractedProduct, error) {
	var resp pageInfoResponse
	if err := c.post(ctx, "/api/v1/page-info", pageInfoRequest{URL: pageURL, HTML: html}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: empty response data", ErrRejected)
	}
	if resp.Data.Images == nil {
		resp.Data.Images = []string{}
	}
	return resp.Data, nil
}

// Profiles lists the site profiles the server knows.
func (c *Client) Profiles(ctx context.Context) ([]domain.ProfileInfo, error) {
	var resp struct {
		Profiles []domain.ProfileInfo `json:"profiles"`
	}
	if err := c.get(ctx, "/api/v1/profiles", &resp); err != nil {
		return nil, err
	}
	return resp.Profiles, nil
}
