package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// product-extractor operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata: PrometheusRuleMetadata{
			Name:   "pex-alerts",
			Labels: ruleLabels(),
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "pex-alerts",
					Rules: []Rule{
						{
							Alert:  "PexDown",
							Expr:   `absent(up{job="product-extractor"})`,
							For:    "2m",
							Labels: severity("critical"),
							Annotations: map[string]string{
								"summary":     "Product extractor is down",
								"description": "The product-extractor job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert:  "PexReadinessDown",
							Expr:   `pex_readyz_up == 0`,
							For:    "2m",
							Labels: severity("critical"),
							Annotations: map[string]string{
								"summary":     "Product extractor readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert:  "PexHighErrorRate",
							Expr:   `pex:http_errors:rate5m / pex:http_requests:rate5m > 0.05`,
							For:    "5m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on product extractor",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert:  "PexPriceMissRateHigh",
							Expr:   `sum(pex:price_misses:rate5m) / sum(pex:extractions:rate5m) > 0.5`,
							For:    "15m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "Most extractions find no price",
								"description": "More than half of extracted documents had no price for 15 minutes. A retailer layout may have changed.",
							},
						},
						{
							Alert:  "PexDocumentsRejected",
							Expr:   `sum(pex:rejected_documents:rate5m) > 0.1`,
							For:    "10m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "Documents are being rejected",
								"description": "Documents are rejected before extraction at more than 0.1/s for 10 minutes.",
							},
						},
						{
							Alert:  "PexRateLimited",
							Expr:   `pex:http_rate_limited:rate5m > 1`,
							For:    "5m",
							Labels: severity("info"),
							Annotations: map[string]string{
								"summary":     "API clients are being rate limited",
								"description": "More than one request per second is rejected by the rate limiter.",
							},
						},
					},
				},
			},
		},
	}
}

func severity(level string) map[string]string {
	return map[string]string{"severity": level}
}
