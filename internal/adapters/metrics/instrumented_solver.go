package metrics

import (
	"context"
	"time"

	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
)

// InstrumentedSolver records duration and status of every solve
type InstrumentedSolver struct {
	inner    strategy.Solver
	recorder FuelMetricsRecorder
}

// NewInstrumentedSolver wraps inner. A nil recorder uses the global collector.
func NewInstrumentedSolver(inner strategy.Solver, recorder FuelMetricsRecorder) *InstrumentedSolver {
	return &InstrumentedSolver{inner: inner, recorder: recorder}
}

// Name returns the wrapped solver's name
func (s *InstrumentedSolver) Name() string {
	return s.inner.Name()
}

// Solve delegates to the wrapped solver. Errors are recorded with status "error".
func (s *InstrumentedSolver) Solve(ctx context.Context, model *strategy.FuelStopModel) (*strategy.Solution, error) {
	start := time.Now()
	sol, err := s.inner.Solve(ctx, model)
	elapsed := time.Since(start).Seconds()

	status := strategy.SolutionError
	if err == nil && sol != nil {
		status = sol.Status
	}
	if s.recorder != nil {
		s.recorder.RecordSolve(s.inner.Name(), status, elapsed)
	} else {
		RecordSolve(s.inner.Name(), status, elapsed)
	}
	return sol, err
}
