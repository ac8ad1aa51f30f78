package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/product-extractor/pkg/extract"
	domain "github.com/donaldgifford/product-extractor/pkg/types"
)

// ProfilesOutput lists the site profiles known to the engine.
type ProfilesOutput struct {
	Body struct {
		Profiles []domain.ProfileInfo `json:"profiles" doc:"Site profiles, generic first"`
	}
}

// ListProfiles returns every site profile.
func ListProfiles(_ context.Context, _ *struct{}) (*ProfilesOutput, error) {
	out := &ProfilesOutput{}
	out.Body.Profiles = extract.Profiles()
	return out, nil
}

// RegisterProfileRoutes registers profile endpoints with the Huma API.
func RegisterProfileRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-profiles",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles",
		Summary:     "List site profiles",
		Tags:        []string{"profiles"},
	}, ListProfiles)
}
