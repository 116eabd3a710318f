package infrastructure

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"weathercontract.app/pkg/errors"
)

// PrometheusMetrics implements the MetricsRecorder port on a private registry
// so each run exports only its own series.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	Outcomes        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Attempts        *prometheus.CounterVec
}

// NewPrometheusMetrics creates the run metrics on a fresh registry
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		registry: registry,
		Outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contract_scenarios_total",
				Help: "The total number of scenarios by final outcome",
			},
			[]string{"outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "contract_request_duration_seconds",
				Help:    "Duration of requests issued by case checks",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status"},
		),
		Attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contract_attempts_total",
				Help: "The total number of scenario attempts, reruns included",
			},
			[]string{"scenario"},
		),
	}
}

// RecordRequest observes one case request
func (m *PrometheusMetrics) RecordRequest(method string, statusCode int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, strconv.Itoa(statusCode)).Observe(elapsed.Seconds())
}

// RecordAttempt counts one execution of a scenario body
func (m *PrometheusMetrics) RecordAttempt(scenario string) {
	m.Attempts.WithLabelValues(scenario).Inc()
}

// RecordOutcome counts one final scenario outcome
func (m *PrometheusMetrics) RecordOutcome(outcome string) {
	m.Outcomes.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes the registry in the node_exporter textfile format
func (m *PrometheusMetrics) WriteTextfile(path string) error {
	if path == "" {
		return errors.NewValidationError("metrics textfile path cannot be empty")
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.NewResourceError("failed to write metrics textfile", err)
	}
	return nil
}
