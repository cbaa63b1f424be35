// Package metrics exposes Prometheus counters for reconciliation activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
)

// Report results.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultFailed  = "failed"
)

// Metrics holds the adapter collectors on their own registry.
type Metrics struct {
	registry *prometheus.Registry

	componentsTotal *prometheus.CounterVec
	referencesTotal *prometheus.CounterVec
	reportsTotal    *prometheus.CounterVec
	reportDuration  prometheus.Histogram
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		componentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ardoq_adapter_components_total",
				Help: "Number of component resolutions by status.",
			},
			[]string{"status"},
		),
		referencesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ardoq_adapter_references_total",
				Help: "Number of reference reconciliations by outcome.",
			},
			[]string{"outcome"},
		),
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ardoq_adapter_reports_total",
				Help: "Number of dependency reports processed by parser and result.",
			},
			[]string{"parser", "result"},
		),
		reportDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ardoq_adapter_report_duration_seconds",
				Help:    "Time taken to mirror one dependency report.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	m.registry.MustRegister(
		m.componentsTotal,
		m.referencesTotal,
		m.reportsTotal,
		m.reportDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ComponentResolved counts one component resolution.
func (m *Metrics) ComponentResolved(status ardoq.ComponentStatus) {
	m.componentsTotal.WithLabelValues(status.String()).Inc()
}

// ReferenceReconciled counts one reference outcome, or a failure.
func (m *Metrics) ReferenceReconciled(outcome ardoq.ReferenceOutcome, err error) {
	label := outcome.String()
	if err != nil {
		label = ResultFailed
	}
	m.referencesTotal.WithLabelValues(label).Inc()
}

// ReportProcessed records a processed report.
func (m *Metrics) ReportProcessed(parser, result string, elapsed time.Duration) {
	m.reportsTotal.WithLabelValues(parser, result).Inc()
	m.reportDuration.Observe(elapsed.Seconds())
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
