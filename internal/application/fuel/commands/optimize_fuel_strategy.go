package commands

import (
	"context"
	"fmt"

	"github.com/parniayzdin/Fuelio/internal/adapters/metrics"
	"github.com/parniayzdin/Fuelio/internal/application/logging"
	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	"github.com/parniayzdin/Fuelio/internal/application/validation"
	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
	"github.com/parniayzdin/Fuelio/internal/domain/routing"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

// OptimizeFuelStrategyCommand plans the cheapest fill-ups for a route.
// Stations and Cards are loaded from their stores when not supplied inline.
type OptimizeFuelStrategyCommand struct {
	VehicleID          int                   `json:"vehicle_id" validate:"required_without=Vehicle"`
	Vehicle            *vehicle.Profile      `json:"vehicle"`
	Route              []shared.GeoPoint     `json:"route" validate:"min=2"`
	CurrentFuelPercent float64               `json:"current_fuel_percent" validate:"gte=0,lte=100"`
	SearchRadiusKm     float64               `json:"search_radius_km" validate:"gte=0"`
	HorizonDays        int                   `json:"forecast_days" validate:"gte=0,lte=30"`
	Grade              string                `json:"fuel_grade" validate:"omitempty,oneof=regular premium diesel"`
	Region             string                `json:"region"`
	Stations           []*station.GasStation `json:"stations"`
	Cards              []station.CardBenefit `json:"cards"`
}

// OptimizeFuelStrategyResponse carries the optimization result
type OptimizeFuelStrategyResponse struct {
	Result *strategy.OptimizationResult
}

// OptimizeFuelStrategyHandler handles the OptimizeFuelStrategy command
type OptimizeFuelStrategyHandler struct {
	vehicles       vehicle.Repository
	stations       station.Repository
	cards          station.CardRepository
	prices         forecast.PriceHistoryRepository
	planner        *strategy.Planner
	defaultRadius  float64
	defaultHorizon int
	defaultGrade   station.FuelGrade
	defaultRegion  string
	historyDays    int
}

// OptimizeDefaults are applied to fields the command leaves at zero
type OptimizeDefaults struct {
	SearchRadiusKm float64
	HorizonDays    int
	Grade          station.FuelGrade
	Region         string
	HistoryDays    int
}

// NewOptimizeFuelStrategyHandler creates a new OptimizeFuelStrategyHandler.
// Any of the repositories may be nil; the command must then carry that input.
func NewOptimizeFuelStrategyHandler(
	vehicles vehicle.Repository,
	stations station.Repository,
	cards station.CardRepository,
	prices forecast.PriceHistoryRepository,
	planner *strategy.Planner,
	defaults OptimizeDefaults,
) *OptimizeFuelStrategyHandler {
	if planner == nil {
		planner = strategy.NewPlanner(nil, nil, nil)
	}
	if defaults.HistoryDays <= 0 {
		defaults.HistoryDays = forecast.MaxHistoryDays
	}

	return &OptimizeFuelStrategyHandler{
		vehicles:       vehicles,
		stations:       stations,
		cards:          cards,
		prices:         prices,
		planner:        planner,
		defaultRadius:  defaults.SearchRadiusKm,
		defaultHorizon: defaults.HorizonDays,
		defaultGrade:   defaults.Grade,
		defaultRegion:  defaults.Region,
		historyDays:    defaults.HistoryDays,
	}
}

// Handle executes the OptimizeFuelStrategy command
func (h *OptimizeFuelStrategyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*OptimizeFuelStrategyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *OptimizeFuelStrategyCommand")
	}
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}
	logger := logging.LoggerFromContext(ctx)

	v, err := resolveVehicle(ctx, h.vehicles, cmd.VehicleID, cmd.Vehicle)
	if err != nil {
		return nil, err
	}

	route, err := routing.NewRoute(cmd.Route)
	if err != nil {
		return nil, err
	}

	radius := cmd.SearchRadiusKm
	if radius == 0 {
		radius = h.defaultRadius
	}
	if radius == 0 {
		radius = routing.DefaultSearchRadiusKm
	}
	horizon := cmd.HorizonDays
	if horizon == 0 {
		horizon = h.defaultHorizon
	}
	grade := h.defaultGrade
	if cmd.Grade != "" {
		if grade, err = station.ParseFuelGrade(cmd.Grade); err != nil {
			return nil, err
		}
	}

	stations, err := h.loadStations(ctx, cmd, route, radius)
	if err != nil {
		return nil, err
	}
	cards, err := h.loadCards(ctx, cmd)
	if err != nil {
		return nil, err
	}
	history, err := h.loadHistory(ctx, cmd.Region)
	if err != nil {
		return nil, err
	}

	result, err := h.planner.Plan(ctx, strategy.PlanRequest{
		Vehicle:            v,
		Route:              route,
		Stations:           stations,
		Cards:              cards,
		CurrentFuelPercent: cmd.CurrentFuelPercent,
		SearchRadiusKm:     radius,
		HorizonDays:        horizon,
		Grade:              grade,
		History:            history,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordOptimization(result)

	if result.FallbackReason != "" {
		logger.Log(logging.LevelWarn, "solver unavailable, used greedy fallback", map[string]interface{}{
			"plan_id": result.PlanID,
			"reason":  result.FallbackReason,
		})
	}
	logger.Log(logging.LevelInfo, "fuel strategy planned", map[string]interface{}{
		"plan_id":           result.PlanID,
		"status":            string(result.Status),
		"solver":            result.SolverName,
		"stops":             len(result.Stops),
		"stations_analyzed": result.StationsAnalyzed,
		"total_cost":        result.TotalCost,
		"total_savings":     result.TotalSavings,
	})

	return &OptimizeFuelStrategyResponse{Result: result}, nil
}

func (h *OptimizeFuelStrategyHandler) loadStations(ctx context.Context, cmd *OptimizeFuelStrategyCommand, route *routing.Route, radius float64) ([]*station.GasStation, error) {
	if len(cmd.Stations) > 0 || h.stations == nil {
		return cmd.Stations, nil
	}
	stations, err := h.stations.FindWithin(ctx, route.Bounds(radius))
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}
	return stations, nil
}

func (h *OptimizeFuelStrategyHandler) loadCards(ctx context.Context, cmd *OptimizeFuelStrategyCommand) ([]station.CardBenefit, error) {
	if len(cmd.Cards) > 0 || h.cards == nil {
		return cmd.Cards, nil
	}
	cards, err := h.cards.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	return cards, nil
}

func (h *OptimizeFuelStrategyHandler) loadHistory(ctx context.Context, region string) (strategy.PriceHistory, error) {
	if h.prices == nil {
		return strategy.PriceHistory{}, nil
	}
	if region == "" {
		region = h.defaultRegion
	}
	recent, err := h.prices.RecentPrices(ctx, region, h.historyDays)
	if err != nil {
		return strategy.PriceHistory{}, fmt.Errorf("failed to load price history: %w", err)
	}
	return strategy.PriceHistory{Regional: forecast.Chronological(forecast.Prices(recent))}, nil
}
