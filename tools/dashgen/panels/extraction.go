package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ExtractionRate returns a timeseries panel showing documents extracted per
// second, split by site profile.
func ExtractionRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Extractions").
		Description("Documents extracted per second by site profile").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`pex:extractions:rate5m`, "{{profile}}", "A")).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ExtractionDuration returns a timeseries panel showing p50 and p95
// extraction latencies per site profile.
func ExtractionDuration() *timeseries.PanelBuilder {
	const bucket = "pex_extraction_duration_seconds_bucket"
	return timeseries.NewPanelBuilder().
		Title("Extraction Duration").
		Description("Document parse and extraction duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(quantile(0.50, bucket, "profile"), "p50 {{profile}}", "A")).
		WithTarget(PromQuery(quantile(0.95, bucket, "profile"), "p95 {{profile}}", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// PriceMissRatio returns a timeseries panel showing the share of extractions
// that found no price.
func PriceMissRatio() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Price Miss %").
		Description("Extractions without a price as percentage of all extractions").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (profile) (pex:price_misses:rate5m) / sum by (profile) (pex:extractions:rate5m) * 100`,
			"{{profile}}", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(25, 50)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ImagesPerDocument returns a timeseries panel showing the median and p95
// number of images selected per document.
func ImagesPerDocument() *timeseries.PanelBuilder {
	const bucket = "pex_images_per_document_bucket"
	return timeseries.NewPanelBuilder().
		Title("Images per Document").
		Description("Images selected per extracted document").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(quantile(0.50, bucket, ""), "p50", "A")).
		WithTarget(PromQuery(quantile(0.95, bucket, ""), "p95", "B")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RejectedDocuments returns a timeseries panel showing documents rejected
// before extraction, split by reason.
func RejectedDocuments() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Rejected Documents").
		Description("Documents rejected before extraction per second by reason").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`pex:rejected_documents:rate5m`, "{{reason}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
