// Package monitoring exposes Prometheus metrics for entry resolution and the HTTP API.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Resolution metrics
	Resolutions        *prometheus.CounterVec
	ResolutionDuration prometheus.Histogram
	BatchSize          prometheus.Histogram
	BatchDropped       prometheus.Counter

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector registered on its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "entryhub_resolutions_total",
				Help: "Total number of path resolutions by outcome",
			},
			[]string{"outcome"},
		),
		ResolutionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "entryhub_resolution_duration_seconds",
				Help:    "Duration of single path resolutions",
				Buckets: []float64{.00005, .0001, .0005, .001, .005, .01, .05, .1, .5},
			},
		),
		BatchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "entryhub_batch_size",
				Help:    "Number of paths requested per batch resolution",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		BatchDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "entryhub_batch_dropped_total",
				Help: "Paths omitted from batch results because they failed to resolve",
			},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "entryhub_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "entryhub_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// ObserveResolution records one single-path resolution.
func (m *Metrics) ObserveResolution(outcome string, d time.Duration) {
	m.Resolutions.WithLabelValues(outcome).Inc()
	m.ResolutionDuration.Observe(d.Seconds())
}

// ObserveBatch records one batch resolution.
func (m *Metrics) ObserveBatch(requested, resolved int) {
	m.BatchSize.Observe(float64(requested))
	m.BatchDropped.Add(float64(requested - resolved))
}

// RecordHTTPRequest records one HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
