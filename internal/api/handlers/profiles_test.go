package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/product-extractor/internal/api/handlers"
)

func TestListProfiles(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterProfileRoutes(api)

	resp := api.Get("/api/v1/profiles")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Profiles []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Profiles, 2)
	assert.Equal(t, "generic", body.Profiles[0].Name)
	assert.Equal(t, "amazon", body.Profiles[1].Name)
}
