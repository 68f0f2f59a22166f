package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
)

func TestAnnotate_ShiftsRegionalHistoryToStationPrice(t *testing.T) {
	s := stationAt("A", 0, 2.00)
	history := strategy.PriceHistory{Regional: []float64{1.1, 1.2, 1.3, 1.4, 1.5, 1.6, 1.7}}

	strategy.NewPriceAnnotator(forecast.NewPriceForecaster()).
		Annotate([]*station.GasStation{s}, station.GradeRegular, history, 3)

	assert.Len(t, s.DayPrices, 3)
	assert.Equal(t, 2.00, s.DayPrices[0])
	assert.InDelta(t, 2.10, s.DayPrices[1], 1e-9)
	assert.InDelta(t, 2.20, s.DayPrices[2], 1e-9)
}

func TestAnnotate_StationHistoryWins(t *testing.T) {
	s := stationAt("A", 0, 1.50)
	history := strategy.PriceHistory{
		Regional:  []float64{1.0, 1.1},
		ByStation: map[string][]float64{"A": {1.50, 1.50, 1.50}},
	}

	strategy.NewPriceAnnotator(forecast.NewPriceForecaster()).
		Annotate([]*station.GasStation{s}, station.GradeRegular, history, 2)

	assert.InDelta(t, 1.50, s.DayPrices[1], 1e-9)
}

func TestAnnotate_NoHistoryKeepsToday(t *testing.T) {
	s := stationAt("A", 0, 1.55)

	strategy.NewPriceAnnotator(forecast.NewPriceForecaster()).
		Annotate([]*station.GasStation{s}, station.GradeDiesel, strategy.PriceHistory{}, 7)

	assert.Equal(t, map[int]float64{0: station.DefaultPrice}, s.DayPrices)
	assert.Equal(t, station.DefaultPrice, s.BasePrice(6))
}
