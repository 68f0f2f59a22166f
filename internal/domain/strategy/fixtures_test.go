package strategy_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/domain/routing"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

// monday is 2024-01-01, a Monday
var monday = shared.FixedClock{At: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}

func sedan(t *testing.T) *vehicle.Profile {
	t.Helper()
	v, err := vehicle.NewProfile("Family Sedan", 50, 8, 0.1)
	require.NoError(t, err)
	return v
}

// equatorRoute runs 3 degrees east along the equator in six equal legs
func equatorRoute(t *testing.T) *routing.Route {
	t.Helper()
	points := make([]shared.GeoPoint, 0, 7)
	for i := 0; i <= 6; i++ {
		points = append(points, shared.GeoPoint{Lat: 0, Lng: float64(i) * 0.5})
	}
	route, err := routing.NewRoute(points)
	require.NoError(t, err)
	return route
}

// longEquatorRoute runs degrees east along the equator in half-degree legs
func longEquatorRoute(t *testing.T, degrees int) *routing.Route {
	t.Helper()
	points := make([]shared.GeoPoint, 0, 2*degrees+1)
	for i := 0; i <= 2*degrees; i++ {
		points = append(points, shared.GeoPoint{Lat: 0, Lng: float64(i) * 0.5})
	}
	route, err := routing.NewRoute(points)
	require.NoError(t, err)
	return route
}

func stationAt(id string, lng, price float64) *station.GasStation {
	return &station.GasStation{
		ID:       id,
		Name:     "Station " + id,
		Brand:    "Brand " + id,
		Location: shared.GeoPoint{Lat: 0.01, Lng: lng},
		Prices:   map[station.FuelGrade]float64{station.GradeRegular: price},
	}
}

// corridorStations sit at 27.8 km (A), 83.4 km (B) and 194.6 km (C) along the route
func corridorStations() []*station.GasStation {
	return []*station.GasStation{
		stationAt("A", 0.25, 1.60),
		stationAt("B", 0.75, 1.50),
		stationAt("C", 1.75, 1.20),
	}
}

type fakeSolver struct {
	solve func(ctx context.Context, m *strategy.FuelStopModel) (*strategy.Solution, error)
}

func (f *fakeSolver) Name() string { return "fake" }

func (f *fakeSolver) Solve(ctx context.Context, m *strategy.FuelStopModel) (*strategy.Solution, error) {
	return f.solve(ctx, m)
}

// fillSolver fills liters at station s on day d
func fillSolver(s, d int, liters float64) *fakeSolver {
	return &fakeSolver{solve: func(ctx context.Context, m *strategy.FuelStopModel) (*strategy.Solution, error) {
		sol := strategy.NewEmptySolution(m, strategy.SolutionOptimal)
		sol.Liters[s][d] = liters
		sol.Objective = m.Cost(sol)
		return sol, nil
	}}
}
