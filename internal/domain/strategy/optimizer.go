package strategy

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultSolveTimeout bounds a single solver call
const DefaultSolveTimeout = 10 * time.Second

// SolveOutcome is the first step of the solve-or-fallback pipeline.
// Exactly one of Solution or FallbackReason is set.
type SolveOutcome struct {
	Solution       *Solution
	SolverName     string
	FallbackReason string
}

// UsedSolver reports whether the solver produced an accepted plan
func (o SolveOutcome) UsedSolver() bool {
	return o.Solution != nil
}

// FuelStopOptimizer runs a Solver under a deadline and decides whether its
// answer is usable. It never returns an error: every failure becomes a
// fallback reason.
type FuelStopOptimizer struct {
	solver  Solver
	timeout time.Duration
}

// NewFuelStopOptimizer creates an optimizer. A nil solver always falls back.
func NewFuelStopOptimizer(solver Solver, timeout time.Duration) *FuelStopOptimizer {
	if timeout <= 0 {
		timeout = DefaultSolveTimeout
	}
	return &FuelStopOptimizer{solver: solver, timeout: timeout}
}

// SolverName returns the configured backend name, or "none"
func (o *FuelStopOptimizer) SolverName() string {
	if o.solver == nil {
		return "none"
	}
	return o.solver.Name()
}

// Optimize attempts an exact solve of the model
func (o *FuelStopOptimizer) Optimize(ctx context.Context, model *FuelStopModel) SolveOutcome {
	outcome := SolveOutcome{SolverName: o.SolverName()}
	if o.solver == nil {
		outcome.FallbackReason = "no solver configured"
		return outcome
	}

	solveCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	sol, err := o.solve(solveCtx, model)

	switch {
	case err != nil && errors.Is(err, ErrSolverUnavailable):
		outcome.FallbackReason = fmt.Sprintf("solver unavailable: %v", err)
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || solveCtx.Err() != nil):
		outcome.FallbackReason = fmt.Sprintf("solver timed out after %s", o.timeout)
	case err != nil:
		outcome.FallbackReason = fmt.Sprintf("solver error: %v", err)
	case !sol.Accepted():
		status := SolutionError
		if sol != nil {
			status = sol.Status
		}
		outcome.FallbackReason = fmt.Sprintf("solver status %s", status)
	default:
		if checkErr := model.Check(sol); checkErr != nil {
			outcome.FallbackReason = fmt.Sprintf("solver returned an invalid plan: %v", checkErr)
			break
		}
		outcome.Solution = sol
	}
	return outcome
}

type solveResult struct {
	sol *Solution
	err error
}

// solve returns when the solver does or when ctx ends, whichever is first.
// A solver that ignores ctx is left to finish in the background.
func (o *FuelStopOptimizer) solve(ctx context.Context, model *FuelStopModel) (*Solution, error) {
	done := make(chan solveResult, 1)
	go func() {
		sol, err := o.solver.Solve(ctx, model)
		done <- solveResult{sol: sol, err: err}
	}()

	select {
	case r := <-done:
		return r.sol, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
