package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
)

func TestBuildModel_NoStationsIsPlanningError(t *testing.T) {
	_, err := strategy.BuildModel(nil, equatorRoute(t), sedan(t), 10, 7)

	var pe *shared.PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "model", pe.Stage)
}

func TestBuildModel_RejectsEmptyHorizon(t *testing.T) {
	_, err := strategy.BuildModel(corridorStations(), equatorRoute(t), sedan(t), 10, 0)

	assert.Error(t, err)
}

func TestBuildModel_Bounds(t *testing.T) {
	// Arrange
	route := equatorRoute(t)
	stations := corridorStations()
	for _, s := range stations {
		s.DayPrices = map[int]float64{0: s.PriceFor(station.GradeRegular)}
	}
	stations[0].DayPrices[2] = 1.40
	stations[0].CashbackPercent = 10

	// Act
	model, err := strategy.BuildModel(stations, route, sedan(t), 10, 3)

	// Assert
	require.NoError(t, err)
	need := route.TotalKm() * 8 / 100
	assert.InDelta(t, need, model.TripNeedLiters, 1e-9)
	assert.InDelta(t, need-10+5, model.Deficit(), 1e-9)
	assert.InDelta(t, 50+need-10, model.CapacityLimit(), 1e-9)
	assert.Equal(t, strategy.MaxFills, model.MaxFills)
	require.Len(t, model.Prices, 3)
	assert.InDelta(t, 1.44, model.Prices[0][0], 1e-12)
	assert.InDelta(t, 1.44, model.Prices[0][1], 1e-12, "missing day falls back to today")
	assert.InDelta(t, 1.26, model.Prices[0][2], 1e-12)
}

func TestFuelStopModel_DeficitFloorsAtZero(t *testing.T) {
	model, err := strategy.BuildModel(corridorStations(), equatorRoute(t), sedan(t), 50, 1)
	require.NoError(t, err)

	assert.Equal(t, 0.0, model.Deficit())
}

func TestFuelStopModel_Check(t *testing.T) {
	model, err := strategy.BuildModel(corridorStations(), equatorRoute(t), sedan(t), 10, 2)
	require.NoError(t, err)

	tests := []struct {
		name  string
		fill  func(sol *strategy.Solution)
		valid bool
	}{
		{"single fill covering deficit", func(sol *strategy.Solution) { sol.Liters[1][0] = 25 }, true},
		{"below deficit", func(sol *strategy.Solution) { sol.Liters[1][0] = 10 }, false},
		{"above tank", func(sol *strategy.Solution) { sol.Liters[1][0] = 51 }, false},
		{"station on two days", func(sol *strategy.Solution) { sol.Liters[1][0] = 15; sol.Liters[1][1] = 15 }, false},
		{"three fills", func(sol *strategy.Solution) {
			sol.Liters[0][0] = 10
			sol.Liters[1][0] = 10
			sol.Liters[2][0] = 10
		}, false},
		{"above capacity limit", func(sol *strategy.Solution) { sol.Liters[0][0] = 50; sol.Liters[1][0] = 50 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol := strategy.NewEmptySolution(model, strategy.SolutionOptimal)
			tt.fill(sol)

			err := model.Check(sol)

			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
