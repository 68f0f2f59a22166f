package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/parniayzdin/Fuelio/internal/domain/decision"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
)

const (
	// Namespace for all metrics
	namespace = "fuelio"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalFuelCollector is set by SetGlobalFuelCollector() when metrics are enabled
	globalFuelCollector FuelMetricsRecorder
)

// FuelMetricsRecorder records decision and planning outcomes
type FuelMetricsRecorder interface {
	RecordDecision(result *decision.Result)
	RecordOptimization(result *strategy.OptimizationResult)
	RecordSolve(solver string, status strategy.SolutionStatus, seconds float64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalFuelCollector sets the global fuel metrics collector
func SetGlobalFuelCollector(collector FuelMetricsRecorder) {
	globalFuelCollector = collector
}

// RecordDecision records a refuel decision globally
func RecordDecision(result *decision.Result) {
	if globalFuelCollector != nil && result != nil {
		globalFuelCollector.RecordDecision(result)
	}
}

// RecordOptimization records a planning result globally
func RecordOptimization(result *strategy.OptimizationResult) {
	if globalFuelCollector != nil && result != nil {
		globalFuelCollector.RecordOptimization(result)
	}
}

// RecordSolve records a solver call globally
func RecordSolve(solver string, status strategy.SolutionStatus, seconds float64) {
	if globalFuelCollector != nil {
		globalFuelCollector.RecordSolve(solver, status, seconds)
	}
}
