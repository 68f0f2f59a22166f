package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/parniayzdin/Fuelio/internal/domain/routing"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

type planningContext struct {
	vehicle  *vehicle.Profile
	route    *routing.Route
	stations []*station.GasStation
	cards    []station.CardBenefit
	result   *strategy.OptimizationResult
}

func (pc *planningContext) reset() {
	pc.vehicle = nil
	pc.route = nil
	pc.stations = nil
	pc.cards = nil
	pc.result = nil
}

func (pc *planningContext) theVehicle(tank, efficiency, reserve float64) error {
	profile, err := vehicle.NewProfile("planning vehicle", tank, efficiency, reserve)
	if err != nil {
		return err
	}
	pc.vehicle = profile
	return nil
}

func (pc *planningContext) anEquatorRoute(fromLng, toLng float64) error {
	const legs = 6
	points := make([]shared.GeoPoint, 0, legs+1)
	for i := 0; i <= legs; i++ {
		points = append(points, shared.GeoPoint{Lat: 0, Lng: fromLng + (toLng-fromLng)*float64(i)/legs})
	}
	route, err := routing.NewRoute(points)
	if err != nil {
		return err
	}
	pc.route = route
	return nil
}

func (pc *planningContext) stationsAlongTheRoute(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		id := row.Cells[0].Value
		lng, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return fmt.Errorf("station %s: invalid lng: %w", id, err)
		}
		price, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return fmt.Errorf("station %s: invalid price: %w", id, err)
		}
		pc.stations = append(pc.stations, &station.GasStation{
			ID:       id,
			Name:     "Station " + id,
			Brand:    "Brand " + id,
			Location: shared.GeoPoint{Lat: 0.01, Lng: lng},
			Prices:   map[station.FuelGrade]float64{station.GradeRegular: price},
		})
	}
	return nil
}

func (pc *planningContext) aCard(provider string, cashback float64, partner string) error {
	pc.cards = append(pc.cards, station.CardBenefit{
		Provider:           provider,
		GasCashbackPercent: cashback,
		PartnerStations:    []string{partner},
	})
	return nil
}

func (pc *planningContext) iPlanFuelStops(fuelPercent float64) error {
	if pc.vehicle == nil || pc.route == nil {
		return fmt.Errorf("vehicle and route must be configured")
	}
	clock := shared.FixedClock{At: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}
	result, err := strategy.NewPlanner(nil, nil, clock).Plan(context.Background(), strategy.PlanRequest{
		Vehicle:            pc.vehicle,
		Route:              pc.route,
		Stations:           pc.stations,
		Cards:              pc.cards,
		CurrentFuelPercent: fuelPercent,
	})
	if err != nil {
		return err
	}
	pc.result = result
	return nil
}

func (pc *planningContext) thePlanStatusShouldBe(expected string) error {
	if string(pc.result.Status) != expected {
		return fmt.Errorf("expected status %s but got %s (%s)", expected, pc.result.Status, strings.Join(pc.result.Reasoning, "; "))
	}
	return nil
}

func (pc *planningContext) thePlanShouldStopOnlyAt(id string) error {
	if len(pc.result.Stops) != 1 {
		return fmt.Errorf("expected one stop but got %d", len(pc.result.Stops))
	}
	if got := pc.result.Stops[0].Station.ID; got != id {
		return fmt.Errorf("expected a stop at %s but got %s", id, got)
	}
	return nil
}

func (pc *planningContext) thePlanShouldHaveNoStops() error {
	if len(pc.result.Stops) != 0 {
		return fmt.Errorf("expected no stops but got %d", len(pc.result.Stops))
	}
	return nil
}

func (pc *planningContext) stationsShouldHaveBeenAnalyzed(expected int) error {
	if pc.result.StationsAnalyzed != expected {
		return fmt.Errorf("expected %d stations analyzed but got %d", expected, pc.result.StationsAnalyzed)
	}
	return nil
}

func (pc *planningContext) theReasoningShouldMention(fragment string) error {
	for _, line := range pc.result.Reasoning {
		if strings.Contains(line, fragment) {
			return nil
		}
	}
	return fmt.Errorf("reasoning %q does not mention %q", pc.result.Reasoning, fragment)
}

// InitializePlanningScenario registers the fuel stop planning steps
func InitializePlanningScenario(ctx *godog.ScenarioContext) {
	pc := &planningContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	ctx.Step(`^the vehicle holds ([0-9.]+) liters, burns ([0-9.]+) L/100km and keeps a ([0-9.]+) reserve$`, pc.theVehicle)
	ctx.Step(`^a route running east along the equator from ([0-9.]+) to ([0-9.]+) degrees$`, pc.anEquatorRoute)
	ctx.Step(`^stations along the route:$`, pc.stationsAlongTheRoute)
	ctx.Step(`^a "([^"]*)" card with ([0-9.]+) percent cashback at "([^"]*)"$`, pc.aCard)
	ctx.Step(`^I plan fuel stops starting at ([0-9.]+) percent$`, pc.iPlanFuelStops)
	ctx.Step(`^the plan status should be "([^"]*)"$`, pc.thePlanStatusShouldBe)
	ctx.Step(`^the plan should stop only at "([^"]*)"$`, pc.thePlanShouldStopOnlyAt)
	ctx.Step(`^the plan should have no stops$`, pc.thePlanShouldHaveNoStops)
	ctx.Step(`^(\d+) stations should have been analyzed$`, pc.stationsShouldHaveBeenAnalyzed)
	ctx.Step(`^the reasoning should mention "([^"]*)"$`, pc.theReasoningShouldMention)
}
