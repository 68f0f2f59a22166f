package commands

import (
	"context"
	"fmt"

	"github.com/parniayzdin/Fuelio/internal/adapters/metrics"
	"github.com/parniayzdin/Fuelio/internal/application/logging"
	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	"github.com/parniayzdin/Fuelio/internal/application/validation"
	"github.com/parniayzdin/Fuelio/internal/domain/decision"
	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

// DecideRefuelCommand asks whether the driver should refuel now.
// Either VehicleID or Vehicle must be set. Without an anchor the tank is
// assumed half full.
type DecideRefuelCommand struct {
	VehicleID     int              `json:"vehicle_id" validate:"required_without=Vehicle"`
	Vehicle       *vehicle.Profile `json:"vehicle"`
	AnchorType    string           `json:"anchor_type" validate:"omitempty,oneof=percent last_full_fillup distance"`
	FuelPercent   *float64         `json:"fuel_percent" validate:"omitempty,gte=0,lte=100"`
	KmSinceFill   *float64         `json:"km_since_fill" validate:"omitempty,gte=0"`
	PlannedTripKm *float64         `json:"planned_trip_km" validate:"omitempty,gte=0"`
	// Region selects the recorded price history; empty uses the default region
	Region string `json:"region"`
	// TodayPrice overrides the latest recorded regional price
	TodayPrice *float64 `json:"today_price" validate:"omitempty,gt=0"`
}

// DecideRefuelResponse carries the decision and its explanation
type DecideRefuelResponse struct {
	Result *decision.Result
}

// DecideRefuelHandler handles the DecideRefuel command
type DecideRefuelHandler struct {
	vehicles      vehicle.Repository
	prices        forecast.PriceHistoryRepository
	engine        *decision.Engine
	forecaster    *forecast.PriceForecaster
	defaultRegion string
	historyDays   int
}

// NewDecideRefuelHandler creates a new DecideRefuelHandler.
// A nil prices repository disables the price-trend rule unless the command
// carries its own prices.
func NewDecideRefuelHandler(
	vehicles vehicle.Repository,
	prices forecast.PriceHistoryRepository,
	forecaster *forecast.PriceForecaster,
	defaultRegion string,
	historyDays int,
) *DecideRefuelHandler {
	if forecaster == nil {
		forecaster = forecast.NewPriceForecaster()
	}
	if historyDays <= 0 {
		historyDays = forecast.MaxHistoryDays
	}
	return &DecideRefuelHandler{
		vehicles:      vehicles,
		prices:        prices,
		engine:        decision.NewEngine(),
		forecaster:    forecaster,
		defaultRegion: defaultRegion,
		historyDays:   historyDays,
	}
}

// Handle executes the DecideRefuel command
func (h *DecideRefuelHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DecideRefuelCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DecideRefuelCommand")
	}
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}
	logger := logging.LoggerFromContext(ctx)

	v, err := resolveVehicle(ctx, h.vehicles, cmd.VehicleID, cmd.Vehicle)
	if err != nil {
		return nil, err
	}

	anchor, err := buildAnchor(cmd)
	if err != nil {
		return nil, err
	}

	in := decision.Input{
		Vehicle:       v,
		Anchor:        anchor,
		PlannedTripKm: cmd.PlannedTripKm,
	}

	today, predicted, err := h.priceOutlook(ctx, cmd)
	if err != nil {
		return nil, err
	}
	in.TodayPrice, in.PredictedPrice = today, predicted

	result := h.engine.Decide(in)
	metrics.RecordDecision(result)

	logger.Log(logging.LevelInfo, "refuel decision", map[string]interface{}{
		"vehicle":  v.Name,
		"decision": string(result.Verdict),
		"severity": string(result.Severity),
		"rule":     result.Rule,
		"range_km": result.RangeKm,
	})

	return &DecideRefuelResponse{Result: result}, nil
}

// priceOutlook returns today's price and tomorrow's forecast when available
func (h *DecideRefuelHandler) priceOutlook(ctx context.Context, cmd *DecideRefuelCommand) (*float64, *float64, error) {
	var history []float64
	if h.prices != nil {
		region := cmd.Region
		if region == "" {
			region = h.defaultRegion
		}
		recent, err := h.prices.RecentPrices(ctx, region, h.historyDays)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load price history: %w", err)
		}
		history = forecast.Chronological(forecast.Prices(recent))
	}

	today := cmd.TodayPrice
	if today == nil && len(history) > 0 {
		latest := history[len(history)-1]
		today = &latest
	}
	if today == nil {
		return nil, nil, nil
	}

	point, ok := h.forecaster.NextDay(*today, history)
	if !ok {
		return today, nil, nil
	}
	predicted := point.PredictedPrice
	return today, &predicted, nil
}

func buildAnchor(cmd *DecideRefuelCommand) (vehicle.FuelAnchor, error) {
	if cmd.AnchorType == "" {
		switch {
		case cmd.FuelPercent != nil:
			return vehicle.PercentAnchor(*cmd.FuelPercent), nil
		case cmd.KmSinceFill != nil:
			return vehicle.DistanceAnchor(*cmd.KmSinceFill), nil
		}
		return vehicle.FuelAnchor{}, nil
	}

	anchorType, ok := vehicle.ParseAnchorType(cmd.AnchorType)
	if !ok {
		return vehicle.FuelAnchor{}, shared.NewValidationError("anchor_type", fmt.Sprintf("unknown anchor type %q", cmd.AnchorType))
	}
	return vehicle.FuelAnchor{Type: anchorType, Percent: cmd.FuelPercent, KmSinceFill: cmd.KmSinceFill}, nil
}

func resolveVehicle(ctx context.Context, repo vehicle.Repository, id int, inline *vehicle.Profile) (*vehicle.Profile, error) {
	if inline != nil {
		return vehicle.NewProfile(inline.Name, inline.TankLiters, inline.EfficiencyLPer100Km, inline.ReserveFraction)
	}
	if repo == nil {
		return nil, shared.NewValidationError("vehicle", "no vehicle given and no vehicle store configured")
	}
	v, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}
	return v, nil
}
