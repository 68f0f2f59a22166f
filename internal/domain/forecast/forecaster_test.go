package forecast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
)

func TestForecast_LinearSeriesContinuesLine(t *testing.T) {
	// Arrange
	forecaster := forecast.NewPriceForecaster()
	history := []float64{1.1, 1.2, 1.3, 1.4, 1.5, 1.6, 1.7}

	// Act
	points := forecaster.Forecast(1.7, history, 3)

	// Assert
	require.Len(t, points, 3)
	assert.Equal(t, 1, points[0].DayOffset)
	assert.InDelta(t, 1.8, points[0].PredictedPrice, 1e-3)
	assert.InDelta(t, 1.9, points[1].PredictedPrice, 1e-3)
	assert.InDelta(t, 2.0, points[2].PredictedPrice, 1e-3)
	assert.InDelta(t, 0.1, points[0].DeltaFromToday, 1e-3)
	assert.Equal(t, forecast.TrendRising, points[0].Trend)
}

func TestForecast_EmptyHistoryIsEmptyForecast(t *testing.T) {
	forecaster := forecast.NewPriceForecaster()

	points := forecaster.Forecast(1.50, nil, 7)

	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestForecast_FlatSeriesIsFlat(t *testing.T) {
	forecaster := forecast.NewPriceForecaster()
	history := []float64{1.45, 1.45, 1.45, 1.45}

	points := forecaster.Forecast(1.45, history, 7)

	require.Len(t, points, 7)
	for _, p := range points {
		assert.InDelta(t, 1.45, p.PredictedPrice, 1e-9)
		assert.Equal(t, forecast.TrendFlat, p.Trend)
	}
}

func TestForecast_SingleSampleIsFlatLine(t *testing.T) {
	forecaster := forecast.NewPriceForecaster()

	points := forecaster.Forecast(1.60, []float64{1.50}, 2)

	require.Len(t, points, 2)
	assert.InDelta(t, 1.50, points[1].PredictedPrice, 1e-9)
	assert.Equal(t, forecast.TrendFalling, points[1].Trend)
}

func TestForecast_PricesAreFlooredAboveZero(t *testing.T) {
	// Arrange - steep decline would extrapolate below zero
	forecaster := forecast.NewPriceForecaster()
	history := []float64{1.0, 0.7, 0.4, 0.1}

	// Act
	points := forecaster.Forecast(0.1, history, 5)

	// Assert
	require.Len(t, points, 5)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.PredictedPrice, forecast.MinPredictedPrice)
	}
	assert.Equal(t, forecast.MinPredictedPrice, points[4].PredictedPrice)
}

func TestForecast_UsesOnlyMostRecentWeek(t *testing.T) {
	forecaster := forecast.NewPriceForecaster()
	// Old outliers followed by a perfectly flat week
	history := []float64{9, 9, 9, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5}

	points := forecaster.Forecast(1.5, history, 1)

	require.Len(t, points, 1)
	assert.InDelta(t, 1.5, points[0].PredictedPrice, 1e-9)
}

func TestChronological_ReversesWithoutMutating(t *testing.T) {
	newestFirst := []float64{1.7, 1.6, 1.5}

	oldestFirst := forecast.Chronological(newestFirst)

	assert.Equal(t, []float64{1.5, 1.6, 1.7}, oldestFirst)
	assert.Equal(t, []float64{1.7, 1.6, 1.5}, newestFirst)
}

func TestNextDay(t *testing.T) {
	forecaster := forecast.NewPriceForecaster()

	_, ok := forecaster.NextDay(1.5, nil)
	point, okWithHistory := forecaster.NextDay(1.4, []float64{1.2, 1.3, 1.4})

	assert.False(t, ok)
	assert.True(t, okWithHistory)
	assert.InDelta(t, 1.5, point.PredictedPrice, 1e-3)
}
