package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "converter"

// Metrics holds the Prometheus collectors for conversions and the web front end.
type Metrics struct {
	Conversions      *prometheus.CounterVec // labels: quantity, from, to
	ConversionErrors *prometheus.CounterVec // labels: quantity, reason={unknown_quantity,unknown_unit,invalid_value,out_of_range}

	HTTPRequests        *prometheus.CounterVec   // labels: route, method, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: route

	TemplatesLoaded prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()
	prometheus.MustRegister(
		m.Conversions,
		m.ConversionErrors,
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.TemplatesLoaded,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Successful conversions by quantity and unit pair.",
		}, []string{"quantity", "from", "to"}),
		ConversionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversion_errors_total",
			Help:      "Rejected conversion requests by quantity and reason.",
		}, []string{"quantity", "reason"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method, and status code.",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route"}),
		TemplatesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "templates_loaded",
			Help:      "Number of compiled page templates held by the renderer.",
		}),
	}
}
