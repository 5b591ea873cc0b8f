// Package metrics provides Prometheus metrics for the changelog API
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors of the service
type Metrics struct {
	// HTTP request metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Pagination metrics
	PagesServedTotal *prometheus.CounterVec
	PageItems        prometheus.Histogram

	// Lifecycle metrics
	VersionsReleasedTotal prometheus.Counter
}

// New creates all collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "changelog_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "changelog_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "changelog_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),
		PagesServedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "changelog_pages_served_total",
				Help: "Total number of version pages served by travel direction",
			},
			[]string{"direction"},
		),
		PageItems: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "changelog_page_items",
				Help:    "Number of versions on a served page",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		VersionsReleasedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "changelog_versions_released_total",
				Help: "Total number of versions released",
			},
		),
	}
}

// RecordHTTPRequest records a finished HTTP request
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordPage records a served version page
func (m *Metrics) RecordPage(direction string, items int) {
	m.PagesServedTotal.WithLabelValues(direction).Inc()
	m.PageItems.Observe(float64(items))
}

// RecordRelease records a released version
func (m *Metrics) RecordRelease() {
	m.VersionsReleasedTotal.Inc()
}
