package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/application/pricing/queries"
	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
	"github.com/parniayzdin/Fuelio/test/helpers"
)

var lastDay = time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

func forecastFor(t *testing.T, h *queries.ForecastPricesHandler, q *queries.ForecastPricesQuery) *queries.ForecastPricesResponse {
	t.Helper()
	resp, err := h.Handle(context.Background(), q)
	require.NoError(t, err)
	return resp.(*queries.ForecastPricesResponse)
}

func TestForecastPrices_ExtendsTheRegionalTrend(t *testing.T) {
	// Arrange
	prices := helpers.NewMockPriceHistoryRepository()
	prices.AddSeries("ontario", lastDay, 1.40, 1.45, 1.50)
	handler := queries.NewForecastPricesHandler(prices, nil, "default")

	// Act
	resp := forecastFor(t, handler, &queries.ForecastPricesQuery{Region: "ontario", Days: 3})

	// Assert
	require.Len(t, resp.Points, 3)
	assert.InDelta(t, 1.50, *resp.TodayPrice, 1e-9)
	assert.InDelta(t, 1.55, resp.Points[0].PredictedPrice, 1e-9)
	assert.InDelta(t, 1.65, resp.Points[2].PredictedPrice, 1e-9)
	assert.Equal(t, forecast.TrendRising, resp.Points[0].Trend)
	assert.Equal(t, 1, resp.Points[0].DayOffset)
}

func TestForecastPrices_DefaultRegionAndDays(t *testing.T) {
	prices := helpers.NewMockPriceHistoryRepository()
	prices.AddSeries("default", lastDay, 1.50, 1.50)
	handler := queries.NewForecastPricesHandler(prices, nil, "default")

	resp := forecastFor(t, handler, &queries.ForecastPricesQuery{})

	assert.Equal(t, "default", resp.Region)
	assert.Len(t, resp.Points, forecast.DefaultDays)
	assert.Equal(t, forecast.TrendFlat, resp.Points[0].Trend)
}

func TestForecastPrices_NoHistory(t *testing.T) {
	handler := queries.NewForecastPricesHandler(helpers.NewMockPriceHistoryRepository(), nil, "default")

	resp := forecastFor(t, handler, &queries.ForecastPricesQuery{Region: "nowhere"})

	assert.Empty(t, resp.Points)
	assert.Nil(t, resp.TodayPrice)
}

func TestForecastPrices_TodayPriceSetsTheBaseline(t *testing.T) {
	prices := helpers.NewMockPriceHistoryRepository()
	prices.AddSeries("ontario", lastDay, 1.40, 1.45, 1.50)
	handler := queries.NewForecastPricesHandler(prices, nil, "")

	resp := forecastFor(t, handler, &queries.ForecastPricesQuery{Region: "ontario", Days: 1, TodayPrice: ptr(1.60)})

	require.Len(t, resp.Points, 1)
	assert.Equal(t, forecast.TrendFalling, resp.Points[0].Trend)
	assert.InDelta(t, -0.05, resp.Points[0].DeltaFromToday, 1e-9)
}

func ptr(v float64) *float64 { return &v }
