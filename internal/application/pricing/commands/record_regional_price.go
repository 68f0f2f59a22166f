package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/parniayzdin/Fuelio/internal/application/logging"
	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	"github.com/parniayzdin/Fuelio/internal/application/validation"
	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
)

// RecordRegionalPriceCommand stores the average price of a region for one day
type RecordRegionalPriceCommand struct {
	Region string  `json:"region" validate:"required"`
	Price  float64 `json:"price" validate:"gt=0"`
	// Day defaults to today; only the calendar date is kept
	Day *time.Time `json:"day"`
}

// RecordRegionalPriceResponse echoes the stored observation
type RecordRegionalPriceResponse struct {
	Price forecast.DailyPrice
}

// RecordRegionalPriceHandler handles the RecordRegionalPrice command
type RecordRegionalPriceHandler struct {
	prices forecast.PriceHistoryRepository
	clock  shared.Clock
}

// NewRecordRegionalPriceHandler creates a new RecordRegionalPriceHandler
func NewRecordRegionalPriceHandler(prices forecast.PriceHistoryRepository, clock shared.Clock) *RecordRegionalPriceHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RecordRegionalPriceHandler{prices: prices, clock: clock}
}

// Handle executes the RecordRegionalPrice command
func (h *RecordRegionalPriceHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecordRegionalPriceCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordRegionalPriceCommand")
	}
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	day := h.clock.Now()
	if cmd.Day != nil {
		day = *cmd.Day
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	price := forecast.DailyPrice{Region: cmd.Region, Day: day, Price: cmd.Price}
	if err := h.prices.Record(ctx, price); err != nil {
		return nil, fmt.Errorf("failed to record price: %w", err)
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "regional price recorded", map[string]interface{}{
		"region": price.Region,
		"day":    price.Day.Format("2006-01-02"),
		"price":  price.Price,
	})

	return &RecordRegionalPriceResponse{Price: price}, nil
}
