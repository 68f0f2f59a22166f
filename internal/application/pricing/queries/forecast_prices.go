package queries

import (
	"context"
	"fmt"

	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	"github.com/parniayzdin/Fuelio/internal/application/validation"
	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
)

// ForecastPricesQuery predicts the regional price for the coming days
type ForecastPricesQuery struct {
	Region string `json:"region"`
	Days   int    `json:"days" validate:"gte=0,lte=30"`
	// TodayPrice overrides the newest recorded price as the trend baseline
	TodayPrice *float64 `json:"today_price" validate:"omitempty,gt=0"`
}

// ForecastPricesResponse carries the forecast. Points is empty when the
// region has no recorded history.
type ForecastPricesResponse struct {
	Region     string
	TodayPrice *float64
	History    []forecast.DailyPrice
	Points     []forecast.Point
}

// ForecastPricesHandler handles the ForecastPrices query
type ForecastPricesHandler struct {
	prices        forecast.PriceHistoryRepository
	forecaster    *forecast.PriceForecaster
	defaultRegion string
}

// NewForecastPricesHandler creates a new ForecastPricesHandler
func NewForecastPricesHandler(prices forecast.PriceHistoryRepository, forecaster *forecast.PriceForecaster, defaultRegion string) *ForecastPricesHandler {
	if forecaster == nil {
		forecaster = forecast.NewPriceForecaster()
	}
	return &ForecastPricesHandler{prices: prices, forecaster: forecaster, defaultRegion: defaultRegion}
}

// Handle executes the ForecastPrices query
func (h *ForecastPricesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ForecastPricesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ForecastPricesQuery")
	}
	if err := validation.Struct(query); err != nil {
		return nil, err
	}

	region := query.Region
	if region == "" {
		region = h.defaultRegion
	}
	days := query.Days
	if days == 0 {
		days = forecast.DefaultDays
	}

	recent, err := h.prices.RecentPrices(ctx, region, forecast.MaxHistoryDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}

	resp := &ForecastPricesResponse{Region: region, History: recent, Points: []forecast.Point{}}
	if len(recent) == 0 {
		resp.TodayPrice = query.TodayPrice
		return resp, nil
	}

	today := recent[0].Price
	if query.TodayPrice != nil {
		today = *query.TodayPrice
	}
	resp.TodayPrice = &today
	resp.Points = h.forecaster.Forecast(today, forecast.Chronological(forecast.Prices(recent)), days)
	return resp, nil
}
