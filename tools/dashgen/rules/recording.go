package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata: PrometheusRuleMetadata{
			Name:   "pex-recording-rules",
			Labels: ruleLabels(),
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "pex-recording",
					Rules: []Rule{
						{
							Record: "pex:http_requests:rate5m",
							Expr:   `sum(rate(pex_http_requests_total[5m]))`,
						},
						{
							Record: "pex:http_errors:rate5m",
							Expr:   `sum(rate(pex_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "pex:http_rate_limited:rate5m",
							Expr:   `sum(rate(pex_http_rate_limited_total[5m]))`,
						},
						{
							Record: "pex:extractions:rate5m",
							Expr:   `sum by (profile) (rate(pex_extractions_total[5m]))`,
						},
						{
							Record: "pex:price_misses:rate5m",
							Expr:   `sum by (profile) (rate(pex_price_misses_total[5m]))`,
						},
						{
							Record: "pex:rejected_documents:rate5m",
							Expr:   `sum by (reason) (rate(pex_rejected_documents_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
