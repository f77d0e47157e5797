// Package metrics registers the Prometheus collectors exposed at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "kitchenos"

	LabelMethod  = "method"
	LabelRoute   = "route"
	LabelStatus  = "status"
	LabelKind    = "kind"
	LabelFormat  = "format"
	LabelOutcome = "outcome"

	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelRoute, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelRoute},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being served",
		},
	)
)

// Domain metrics
var (
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Reports rendered, by kind, format and outcome",
		},
		[]string{LabelKind, LabelFormat, LabelOutcome},
	)

	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_render_duration_seconds",
			Help:      "Time spent rendering a report",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{LabelKind, LabelFormat},
	)

	IngredientsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingredients_imported_total",
			Help:      "Price list rows imported, by outcome (created, updated, failed)",
		},
		[]string{LabelOutcome},
	)
)

// ObserveReport records one report render.
func ObserveReport(kind, format string, started time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	ReportsGenerated.WithLabelValues(kind, format, outcome).Inc()
	ReportDuration.WithLabelValues(kind, format).Observe(time.Since(started).Seconds())
}

// ObserveImport records the rows of one price list import.
func ObserveImport(created, updated, failed int) {
	IngredientsImported.WithLabelValues("created").Add(float64(created))
	IngredientsImported.WithLabelValues("updated").Add(float64(updated))
	IngredientsImported.WithLabelValues("failed").Add(float64(failed))
}
