package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/parniayzdin/Fuelio/internal/domain/decision"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
)

const fuelSubsystem = "fuel"

// FuelMetricsCollector handles decision, optimization and solver metrics
type FuelMetricsCollector struct {
	// Decision metrics
	decisionsTotal *prometheus.CounterVec

	// Optimization metrics
	optimizationsTotal *prometheus.CounterVec
	plannedLiters      *prometheus.CounterVec
	plannedSavings     *prometheus.CounterVec
	stopsPerPlan       *prometheus.HistogramVec

	// Solver metrics
	solveDuration *prometheus.HistogramVec
	solvesTotal   *prometheus.CounterVec
}

// NewFuelMetricsCollector creates a new fuel metrics collector
func NewFuelMetricsCollector() *FuelMetricsCollector {
	return &FuelMetricsCollector{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: fuelSubsystem,
				Name:      "decisions_total",
				Help:      "Total number of refuel decisions by verdict and matched rule",
			},
			[]string{"decision", "rule"},
		),

		optimizationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: fuelSubsystem,
				Name:      "optimizations_total",
				Help:      "Total number of fuel strategy optimizations by status and solver",
			},
			[]string{"status", "solver"},
		),

		plannedLiters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: fuelSubsystem,
				Name:      "planned_liters_total",
				Help:      "Total liters recommended across all plans",
			},
			[]string{"status"},
		),

		plannedSavings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: fuelSubsystem,
				Name:      "planned_savings_total",
				Help:      "Total savings in currency units across all plans",
			},
			[]string{"status"},
		),

		stopsPerPlan: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: fuelSubsystem,
				Name:      "stops_per_plan",
				Help:      "Distribution of fill stops per plan",
				Buckets:   []float64{0, 1, 2},
			},
			[]string{"status"},
		),

		solveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: fuelSubsystem,
				Name:      "solve_duration_seconds",
				Help:      "Solver call duration distribution",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"solver", "status"},
		),

		solvesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: fuelSubsystem,
				Name:      "solves_total",
				Help:      "Total number of solver calls by solver and status",
			},
			[]string{"solver", "status"},
		),
	}
}

// Register registers all fuel metrics with the Prometheus registry
func (c *FuelMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.decisionsTotal,
		c.optimizationsTotal,
		c.plannedLiters,
		c.plannedSavings,
		c.stopsPerPlan,
		c.solveDuration,
		c.solvesTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordDecision records a refuel decision
func (c *FuelMetricsCollector) RecordDecision(result *decision.Result) {
	c.decisionsTotal.WithLabelValues(string(result.Verdict), strconv.Itoa(result.Rule)).Inc()
}

// RecordOptimization records the outcome of a planning run
func (c *FuelMetricsCollector) RecordOptimization(result *strategy.OptimizationResult) {
	status := string(result.Status)
	c.optimizationsTotal.WithLabelValues(status, result.SolverName).Inc()
	c.plannedLiters.WithLabelValues(status).Add(result.TotalLiters())
	if result.TotalSavings > 0 {
		c.plannedSavings.WithLabelValues(status).Add(result.TotalSavings)
	}
	c.stopsPerPlan.WithLabelValues(status).Observe(float64(len(result.Stops)))
}

// RecordSolve records one solver call
func (c *FuelMetricsCollector) RecordSolve(solver string, status strategy.SolutionStatus, seconds float64) {
	c.solveDuration.WithLabelValues(solver, string(status)).Observe(seconds)
	c.solvesTotal.WithLabelValues(solver, string(status)).Inc()
}
