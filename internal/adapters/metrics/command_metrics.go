package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
)

const requestSubsystem = "app"

// Request outcomes. Rejected input is kept apart from failures so a bad
// route file does not look like a broken store.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// CommandMetricsCollector tracks mediator requests by type and outcome
type CommandMetricsCollector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewCommandMetricsCollector creates the request collectors. Optimize requests
// include the solver timeout, so the buckets reach past 10s.
func NewCommandMetricsCollector() *CommandMetricsCollector {
	labels := []string{"request", "outcome"}
	return &CommandMetricsCollector{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: requestSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time spent handling decide, optimize, forecast and catalog requests",
			Buckets:   []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 15},
		}, labels),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: requestSubsystem,
			Name:      "requests_total",
			Help:      "Mediator requests handled, by request type and outcome",
		}, labels),
	}
}

// Register adds the collectors to Registry. It is a no-op when metrics are off.
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, collector := range []prometheus.Collector{c.duration, c.total} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records one handled request
func (c *CommandMetricsCollector) RecordRequest(request string, seconds float64, err error) {
	outcome := Outcome(err)
	c.duration.WithLabelValues(request, outcome).Observe(seconds)
	c.total.WithLabelValues(request, outcome).Inc()
}

// Outcome classifies a handler error
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case shared.IsValidationError(err):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
