package validate_test

import (
	"testing"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/product-extractor/tools/dashgen/rules"
	"github.com/donaldgifford/product-extractor/tools/dashgen/validate"
)

var known = map[string]bool{
	"pex_http_requests_total":  true,
	"pex:http_requests:rate5m": true,
}

func buildDashboard(t *testing.T, exprs ...string) dashboard.Dashboard {
	t.Helper()

	panel := timeseries.NewPanelBuilder().Title("Test")
	for _, e := range exprs {
		panel.WithTarget(prometheus.NewDataqueryBuilder().Expr(e).RefId("A"))
	}

	dash, err := dashboard.NewDashboardBuilder("test").
		WithRow(dashboard.NewRowBuilder("Row").WithPanel(panel)).
		Build()
	require.NoError(t, err)
	return dash
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exprs    []string
		wantOK   bool
		wantWarn bool
	}{
		{name: "known metric", exprs: []string{`sum(rate(pex_http_requests_total[5m]))`}, wantOK: true},
		{name: "recording rule", exprs: []string{`pex:http_requests:rate5m * 2`}, wantOK: true},
		{name: "unknown metric", exprs: []string{`rate(pex_missing_total[5m])`}, wantOK: false},
		{name: "parse error", exprs: []string{`sum(rate(pex_http_requests_total[5m])`}, wantOK: false},
		{name: "empty expression", exprs: []string{""}, wantOK: false},
		{name: "no targets", exprs: nil, wantOK: true, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := validate.Dashboard(buildDashboard(t, tt.exprs...), known)
			assert.Equal(t, tt.wantOK, res.Ok(), "errors: %v", res.Errors)
			assert.Equal(t, tt.wantWarn, len(res.Warnings) > 0, "warnings: %v", res.Warnings)
			if !tt.wantOK {
				assert.Error(t, res.Err())
			}
		})
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	cr := func(rs ...rules.Rule) rules.PrometheusRule {
		return rules.PrometheusRule{
			Metadata: rules.PrometheusRuleMetadata{Name: "test"},
			Spec:     rules.PrometheusRuleSpec{Groups: []rules.RuleGroup{{Name: "g", Rules: rs}}},
		}
	}
	alert := func(r rules.Rule) rules.Rule {
		r.Labels = map[string]string{"severity": "warning"}
		r.Annotations = map[string]string{"summary": "s"}
		return r
	}

	tests := []struct {
		name   string
		cr     rules.PrometheusRule
		wantOK bool
	}{
		{
			name:   "valid recording rule",
			cr:     cr(rules.Rule{Record: "pex:http_requests:rate5m", Expr: `sum(rate(pex_http_requests_total[5m]))`}),
			wantOK: true,
		},
		{
			name:   "unlisted recording rule",
			cr:     cr(rules.Rule{Record: "pex:other:rate5m", Expr: `sum(rate(pex_http_requests_total[5m]))`}),
			wantOK: false,
		},
		{
			name:   "valid alert",
			cr:     cr(alert(rules.Rule{Alert: "A", Expr: `pex:http_requests:rate5m > 1`, For: "5m"})),
			wantOK: true,
		},
		{
			name:   "bad for duration",
			cr:     cr(alert(rules.Rule{Alert: "A", Expr: `pex:http_requests:rate5m > 1`, For: "five minutes"})),
			wantOK: false,
		},
		{
			name:   "alert without severity",
			cr:     cr(rules.Rule{Alert: "A", Expr: `pex:http_requests:rate5m > 1`}),
			wantOK: false,
		},
		{
			name:   "neither record nor alert",
			cr:     cr(rules.Rule{Expr: `pex:http_requests:rate5m`}),
			wantOK: false,
		},
		{
			name:   "no groups",
			cr:     rules.PrometheusRule{Metadata: rules.PrometheusRuleMetadata{Name: "empty"}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := validate.Rules(tt.cr, known)
			assert.Equal(t, tt.wantOK, res.Ok(), "errors: %v", res.Errors)
		})
	}
}
