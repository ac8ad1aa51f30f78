package main

import "errors"

// KnownMetrics is the set of metric names exported by product-extractor
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"pex_http_request_duration_seconds_bucket": true,
	"pex_http_requests_total":                  true,
	"pex_http_rate_limited_total":              true,

	// Health metrics.
	"pex_healthz_up": true,
	"pex_readyz_up":  true,

	// Extraction metrics.
	"pex_extraction_duration_seconds_bucket": true,
	"pex_extractions_total":                  true,
	"pex_price_misses_total":                 true,
	"pex_images_per_document_bucket":         true,
	"pex_rejected_documents_total":           true,

	// Recording rules.
	"pex:http_requests:rate5m":      true,
	"pex:http_errors:rate5m":        true,
	"pex:extractions:rate5m":        true,
	"pex:price_misses:rate5m":       true,
	"pex:rejected_documents:rate5m": true,
	"pex:http_rate_limited:rate5m":  true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
