// Package metrics records lint engine statistics as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yaklabco/mdstyle/pkg/lint"
)

const namespace = "mdstyle"

// Recorder is a lint.Observer that feeds Prometheus collectors. It is safe
// for concurrent passes.
type Recorder struct {
	RuleMatches  *prometheus.CounterVec
	RuleSkipped  *prometheus.CounterVec
	RuleFindings *prometheus.CounterVec
	RuleDuration *prometheus.HistogramVec

	PassesTotal  *prometheus.CounterVec
	PassDuration prometheus.Histogram
	Diagnostics  prometheus.Counter

	gatherer prometheus.Gatherer
}

var _ lint.Observer = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them with registry.
func NewRecorder(registry *prometheus.Registry) *Recorder {
	r := &Recorder{
		RuleMatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_matches_total",
				Help:      "Locator matches found per rule",
			},
			[]string{"rule"},
		),
		RuleSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_matches_skipped_total",
				Help:      "Locator matches dropped by scope filtering per rule",
			},
			[]string{"rule"},
		),
		RuleFindings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_findings_total",
				Help:      "Diagnostics produced per rule",
			},
			[]string{"rule"},
		),
		RuleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rule_duration_seconds",
				Help:      "Time spent running one rule over one document",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"rule"},
		),
		PassesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "passes_total",
				Help:      "Lint passes by outcome",
			},
			[]string{"status"},
		),
		PassDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pass_duration_seconds",
				Help:      "Time spent linting one document",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		Diagnostics: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "diagnostics_total",
				Help:      "Diagnostics reported by successful passes",
			},
		),
		gatherer: registry,
	}

	registry.MustRegister(
		r.RuleMatches,
		r.RuleSkipped,
		r.RuleFindings,
		r.RuleDuration,
		r.PassesTotal,
		r.PassDuration,
		r.Diagnostics,
	)

	return r
}

// RuleCompleted implements lint.Observer.
func (r *Recorder) RuleCompleted(stats lint.RuleStats) {
	r.RuleMatches.WithLabelValues(stats.RuleID).Add(float64(stats.Matches))
	r.RuleSkipped.WithLabelValues(stats.RuleID).Add(float64(stats.Skipped))
	r.RuleFindings.WithLabelValues(stats.RuleID).Add(float64(stats.Findings))
	r.RuleDuration.WithLabelValues(stats.RuleID).Observe(stats.Duration.Seconds())
}

// PassCompleted implements lint.Observer.
func (r *Recorder) PassCompleted(stats lint.PassStats) {
	status := "ok"
	switch {
	case stats.Err != nil:
		status = "error"
	case stats.Diagnostics > 0:
		status = "issues"
	}

	r.PassesTotal.WithLabelValues(status).Inc()
	r.PassDuration.Observe(stats.Duration.Seconds())
	if stats.Err == nil {
		r.Diagnostics.Add(float64(stats.Diagnostics))
	}
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.gatherer); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
