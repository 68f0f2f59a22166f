package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
)

const simplexTolerance = 1e-10

// EnumerationSolver solves the fuel stop model exactly in process.
//
// For a fixed set of stations the cheapest day of each station dominates its
// other days, so only the per-station best day is kept. Every set of at most
// MaxFills stations is then priced with a small linear program (gonum simplex)
// over the liters, and the cheapest feasible set wins.
type EnumerationSolver struct{}

// NewEnumerationSolver creates a new in-process solver
func NewEnumerationSolver() *EnumerationSolver {
	return &EnumerationSolver{}
}

// Name returns the backend name
func (e *EnumerationSolver) Name() string {
	return "enumerate"
}

type candidate struct {
	station int
	day     int
	price   float64
}

// Solve enumerates station sets and returns the cheapest feasible plan
func (e *EnumerationSolver) Solve(ctx context.Context, model *strategy.FuelStopModel) (*strategy.Solution, error) {
	candidates := bestDays(model)
	deficit := model.Deficit()
	limit := model.CapacityLimit()

	if limit < deficit-strategy.FeasibilityTolerance {
		return strategy.NewEmptySolution(model, strategy.SolutionInfeasible), nil
	}

	if deficit <= strategy.FeasibilityTolerance {
		return strategy.NewEmptySolution(model, strategy.SolutionOptimal), nil
	}

	bestCost := math.Inf(1)
	var bestSet []candidate
	var bestLiters []float64
	var lastErr error

	for _, set := range subsets(candidates, model.MaxFills) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("enumeration interrupted: %w", err)
		}
		cost, liters, err := solvePattern(set, model.TankLiters, deficit, limit)
		if err != nil {
			if !errors.Is(err, lp.ErrInfeasible) {
				lastErr = err
			}
			continue
		}
		if cost < bestCost-strategy.FeasibilityTolerance {
			bestCost = cost
			bestSet = set
			bestLiters = liters
		}
	}

	if bestSet == nil {
		if lastErr != nil {
			return nil, fmt.Errorf("all station sets failed, last error: %w", lastErr)
		}
		return strategy.NewEmptySolution(model, strategy.SolutionInfeasible), nil
	}

	sol := strategy.NewEmptySolution(model, strategy.SolutionOptimal)
	for i, c := range bestSet {
		sol.Liters[c.station][c.day] = bestLiters[i]
	}
	sol.Objective = model.Cost(sol)
	return sol, nil
}

// bestDays keeps the cheapest day per station; ties keep the earliest day
func bestDays(model *strategy.FuelStopModel) []candidate {
	out := make([]candidate, 0, model.StationCount())
	for s, row := range model.Prices {
		best := candidate{station: s, day: 0, price: row[0]}
		for d := 1; d < len(row); d++ {
			if row[d] < best.price {
				best = candidate{station: s, day: d, price: row[d]}
			}
		}
		out = append(out, best)
	}
	return out
}

// subsets lists every non-empty set of at most k candidates
func subsets(candidates []candidate, k int) [][]candidate {
	var out [][]candidate
	var walk func(start int, current []candidate)
	walk = func(start int, current []candidate) {
		if len(current) > 0 {
			set := make([]candidate, len(current))
			copy(set, current)
			out = append(out, set)
		}
		if len(current) == k {
			return
		}
		for i := start; i < len(candidates); i++ {
			walk(i+1, append(current, candidates[i]))
		}
	}
	walk(0, nil)
	return out
}

// solvePattern prices a fixed station set:
//
//	minimize    Σ p_i·y_i
//	subject to  0 ≤ y_i ≤ tank,  deficit ≤ Σ y_i ≤ limit
//
// in standard form over [y_1..y_n, s_1..s_n, surplus, slack]:
//
//	y_i + s_i = tank,  Σy − surplus = deficit,  Σy + slack = limit
func solvePattern(set []candidate, tank, deficit, limit float64) (float64, []float64, error) {
	n := len(set)
	if deficit > float64(n)*tank+strategy.FeasibilityTolerance {
		return 0, nil, lp.ErrInfeasible
	}

	rows, cols := n+2, 2*n+2
	c := make([]float64, cols)
	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	for i, cand := range set {
		c[i] = cand.price
		a.Set(i, i, 1)
		a.Set(i, n+i, 1)
		b[i] = tank
		a.Set(n, i, 1)
		a.Set(n+1, i, 1)
	}
	a.Set(n, 2*n, -1)
	a.Set(n+1, 2*n+1, 1)
	b[n] = deficit
	b[n+1] = limit

	_, x, err := lp.Simplex(c, a, b, simplexTolerance, nil)
	if err != nil {
		return 0, nil, err
	}

	liters := make([]float64, n)
	cost := 0.0
	for i := range liters {
		liters[i] = math.Max(0, math.Min(tank, x[i]))
		cost += c[i] * liters[i]
	}
	return cost, liters, nil
}
