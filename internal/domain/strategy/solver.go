package strategy

import (
	"context"
	"errors"
)

// ErrSolverUnavailable reports that no usable solver backend could be reached.
// Adapters wrap it with %w; the pipeline treats it as a normal fallback trigger.
var ErrSolverUnavailable = errors.New("solver unavailable")

// SolutionStatus is the termination state reported by a solver
type SolutionStatus string

const (
	SolutionOptimal    SolutionStatus = "optimal"
	SolutionFeasible   SolutionStatus = "feasible"
	SolutionInfeasible SolutionStatus = "infeasible"
	SolutionUnbounded  SolutionStatus = "unbounded"
	SolutionError      SolutionStatus = "error"
)

// Solution is a solver answer. Liters mirrors FuelStopModel.Prices.
type Solution struct {
	Status    SolutionStatus
	Liters    [][]float64
	Objective float64
}

// Accepted reports whether the solution may be used as a plan
func (s *Solution) Accepted() bool {
	return s != nil && (s.Status == SolutionOptimal || s.Status == SolutionFeasible)
}

// NewEmptySolution allocates a zero solution shaped like the model
func NewEmptySolution(m *FuelStopModel, status SolutionStatus) *Solution {
	liters := make([][]float64, m.StationCount())
	for s := range liters {
		liters[s] = make([]float64, m.HorizonDays)
	}
	return &Solution{Status: status, Liters: liters}
}

// Solver solves a fuel stop model. Implementations must honor ctx cancellation.
type Solver interface {
	Name() string
	Solve(ctx context.Context, model *FuelStopModel) (*Solution, error)
}
