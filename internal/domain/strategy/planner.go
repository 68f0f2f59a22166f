package strategy

import (
	"context"
	"fmt"

	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
	"github.com/parniayzdin/Fuelio/internal/domain/routing"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
	"github.com/parniayzdin/Fuelio/pkg/utils"
)

// PlanRequest carries every input of a planning run
type PlanRequest struct {
	Vehicle            *vehicle.Profile
	Route              *routing.Route
	Stations           []*station.GasStation
	Cards              []station.CardBenefit
	CurrentFuelPercent float64
	SearchRadiusKm     float64
	HorizonDays        int
	Grade              station.FuelGrade
	History            PriceHistory
}

func (r *PlanRequest) validate() error {
	if r.Vehicle == nil {
		return shared.NewValidationError("vehicle", "vehicle profile is required")
	}
	if r.Route == nil {
		return shared.NewValidationError("route", "route is required")
	}
	if r.CurrentFuelPercent < 0 || r.CurrentFuelPercent > 100 {
		return shared.NewValidationError("current_fuel_percent", fmt.Sprintf("must be within [0, 100], got %v", r.CurrentFuelPercent))
	}
	if r.SearchRadiusKm < 0 {
		return shared.NewValidationError("search_radius_km", "cannot be negative")
	}
	return nil
}

// Planner runs the full pipeline: match stations, apply cards, annotate
// prices, solve or fall back, then project fuel along the route.
type Planner struct {
	matcher   *routing.RouteStationMatcher
	resolver  *station.CardBenefitResolver
	annotator *PriceAnnotator
	optimizer *FuelStopOptimizer
	greedy    *GreedyFallbackPlanner
	projector *FuelProjectionSimulator
	clock     shared.Clock
}

// NewPlanner wires the pipeline stages. A nil clock uses the system clock.
func NewPlanner(optimizer *FuelStopOptimizer, forecaster *forecast.PriceForecaster, clock shared.Clock) *Planner {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if optimizer == nil {
		optimizer = NewFuelStopOptimizer(nil, 0)
	}
	if forecaster == nil {
		forecaster = forecast.NewPriceForecaster()
	}
	return &Planner{
		matcher:   routing.NewRouteStationMatcher(),
		resolver:  station.NewCardBenefitResolver(),
		annotator: NewPriceAnnotator(forecaster),
		optimizer: optimizer,
		greedy:    NewGreedyFallbackPlanner(),
		projector: NewFuelProjectionSimulator(),
		clock:     clock,
	}
}

// Plan returns a tagged result for any valid request. The only errors are
// validation errors on the request itself.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*OptimizationResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	radius := req.SearchRadiusKm
	if radius == 0 {
		radius = routing.DefaultSearchRadiusKm
	}
	horizon := req.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}
	grade := req.Grade
	if grade == "" {
		grade = station.GradeRegular
	}

	v := req.Vehicle
	initial := utils.Clamp(v.LitersFromPercent(req.CurrentFuelPercent), 0, v.TankLiters)
	tripKm := req.Route.TotalKm()

	result := &OptimizationResult{
		PlanID:         utils.GeneratePlanID("optimize", v.Name),
		Stops:          []FillPlanEntry{},
		TripDistanceKm: utils.Round(tripKm, 1),
	}

	matched := p.matcher.Match(req.Route, req.Stations, radius)
	result.StationsAnalyzed = len(matched)
	if len(matched) == 0 {
		result.Status = StatusNoStations
		result.Reasoning = []string{"No gas stations found within search radius of route"}
		result.Projection = p.projector.Project(tripKm, v, initial, nil)
		return result, nil
	}

	p.resolver.Apply(matched, req.Cards)
	p.annotator.Annotate(matched, grade, req.History, horizon)

	model, err := BuildModel(matched, req.Route, v, initial, horizon)
	if err != nil {
		result.Status = StatusError
		result.Reasoning = []string{fmt.Sprintf("Optimization failed: %v", err)}
		return result, nil
	}

	outcome := p.optimizer.Optimize(ctx, model)
	var plan *StopPlan
	if outcome.UsedSolver() {
		plan = ExtractSolution(model, outcome.Solution, p.clock)
		result.SolverName = outcome.SolverName
	} else {
		plan = p.greedy.Plan(model)
		result.SolverName = "greedy"
		result.FallbackReason = outcome.FallbackReason
	}

	if len(plan.Stops) > 0 {
		result.Stops = plan.Stops
	}
	result.Status = plan.Status
	result.Reasoning = plan.Reasoning
	result.TotalCost = plan.TotalCost
	result.TotalSavings = plan.TotalSavings
	result.Projection = p.projector.Project(tripKm, v, initial, result.Stops)
	return result, nil
}
