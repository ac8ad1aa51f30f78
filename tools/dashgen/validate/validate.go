// Package validate checks generated dashboards and rule files: every PromQL
// expression must parse and may only reference known metrics.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/product-extractor/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation, warnings
// do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Err joins the errors into one error, or returns nil.
func (r Result) Err() error {
	if r.Ok() {
		return nil
	}
	return errors.New(strings.Join(r.Errors, "; "))
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// panelJSON is the subset of the dashboard JSON model the checks need.
// Row panels carry their children in Panels.
type panelJSON struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Targets []struct {
		Expr  string `json:"expr"`
		RefID string `json:"refId"`
	} `json:"targets"`
	Panels []panelJSON `json:"panels"`
}

// Dashboard validates every Prometheus target of dash.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.errorf("encoding dashboard: %v", err)
		return res
	}
	var decoded struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	for _, p := range decoded.Panels {
		checkPanel(&res, p, known)
	}
	return res
}

func checkPanel(res *Result, p panelJSON, known map[string]bool) {
	if p.Type == "row" {
		if len(p.Panels) == 0 {
			res.warnf("row %q has no panels", p.Title)
		}
		for _, child := range p.Panels {
			checkPanel(res, child, known)
		}
		return
	}

	if len(p.Targets) == 0 {
		res.warnf("panel %q has no targets", p.Title)
	}
	for _, t := range p.Targets {
		checkExpr(res, fmt.Sprintf("panel %q target %s", p.Title, t.RefID), t.Expr, known)
	}
}

// Rules validates every rule in a PrometheusRule CR. Recording rule names
// are treated as known metrics for the expressions that follow them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	if len(cr.Spec.Groups) == 0 {
		res.errorf("%s: no rule groups", cr.Metadata.Name)
	}

	for _, g := range cr.Spec.Groups {
		for i, r := range g.Rules {
			where := fmt.Sprintf("%s/%s rule %d", cr.Metadata.Name, g.Name, i)

			switch {
			case r.Record != "" && r.Alert != "":
				res.errorf("%s: both record and alert set", where)
			case r.Record != "":
				where = fmt.Sprintf("%s/%s record %s", cr.Metadata.Name, g.Name, r.Record)
				if !isMetricName(r.Record) {
					res.errorf("%s: invalid metric name", where)
				}
				if !known[r.Record] {
					res.errorf("%s: recording rule not listed in known metrics", where)
				}
			case r.Alert != "":
				where = fmt.Sprintf("%s/%s alert %s", cr.Metadata.Name, g.Name, r.Alert)
				if r.Labels["severity"] == "" {
					res.errorf("%s: missing severity label", where)
				}
				if r.Annotations["summary"] == "" {
					res.warnf("%s: missing summary annotation", where)
				}
			default:
				res.errorf("%s: neither record nor alert set", where)
			}

			if r.For != "" {
				if _, err := model.ParseDuration(r.For); err != nil {
					res.errorf("%s: invalid for duration %q: %v", where, r.For, err)
				}
			}
			checkExpr(&res, where, r.Expr, known)
		}
	}
	return res
}

func checkExpr(res *Result, where, expr string, known map[string]bool) {
	if strings.TrimSpace(expr) == "" {
		res.errorf("%s: empty expression", where)
		return
	}

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: %v", where, err)
		return
	}

	for _, name := range metricNames(parsed) {
		if !known[name] {
			res.errorf("%s: unknown metric %q", where, name)
		}
	}
}

// isMetricName reports whether name parses as a bare metric selector.
func isMetricName(name string) bool {
	expr, err := parser.ParseExpr(name)
	if err != nil {
		return false
	}
	vs, ok := expr.(*parser.VectorSelector)
	return ok && vs.Name == name
}

// metricNames lists the metric names selected anywhere in expr.
func metricNames(expr parser.Expr) []string {
	var names []string
	parser.Inspect(expr, func(node parser.Node, _ []parser.Node) error {
		if vs, ok := node.(*parser.VectorSelector); ok && vs.Name != "" {
			names = append(names, vs.Name)
		}
		return nil
	})
	return names
}
