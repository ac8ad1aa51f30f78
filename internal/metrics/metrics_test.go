package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, RateLimitedTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, ExtractionDuration)
	assert.NotNil(t, ExtractionsTotal)
	assert.NotNil(t, PriceMissesTotal)
	assert.NotNil(t, ImagesPerDocument)
	assert.NotNil(t, RejectedDocumentsTotal)
}
