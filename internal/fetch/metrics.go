package fetch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Metrics bundles Prometheus collectors for page fetches.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   prometheus.Counter
	RequestDuration prometheus.Histogram
	ErrorsTotal     *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "league_fetch_requests_total",
			Help: "Total HTTP requests issued.",
		},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "league_fetch_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "league_fetch_errors_total",
			Help: "Total fetch failures by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, requestDuration, errorsTotal)

	return &Metrics{
		Registry:        registry,
		RequestsTotal:   requests,
		RequestDuration: requestDuration,
		ErrorsTotal:     errorsTotal,
	}
}

// IncRequest increments the requests counter.
func (m *Metrics) IncRequest() {
	if m == nil {
		return
	}
	m.RequestsTotal.Inc()
}

// ObserveDuration records an HTTP request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

// Snapshot returns the request count and failures by type gathered so far.
func (m *Metrics) Snapshot() (requests int, errorsByType map[string]int) {
	errorsByType = make(map[string]int)
	if m == nil {
		return 0, errorsByType
	}

	families, err := m.Registry.Gather()
	if err != nil {
		return 0, errorsByType
	}
	for _, mf := range families {
		switch mf.GetName() {
		case "league_fetch_requests_total":
			for _, metric := range mf.GetMetric() {
				requests += int(metric.GetCounter().GetValue())
			}
		case "league_fetch_errors_total":
			for _, metric := range mf.GetMetric() {
				errorsByType[labelValue(metric, "error_type")] += int(metric.GetCounter().GetValue())
			}
		}
	}
	return requests, errorsByType
}

func labelValue(metric *dto.Metric, name string) string {
	for _, lp := range metric.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
