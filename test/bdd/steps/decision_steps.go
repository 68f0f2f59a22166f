package steps

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"

	"github.com/parniayzdin/Fuelio/internal/domain/decision"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

type decisionContext struct {
	vehicle        *vehicle.Profile
	anchor         vehicle.FuelAnchor
	plannedTripKm  *float64
	todayPrice     *float64
	predictedPrice *float64
	result         *decision.Result
}

func (dc *decisionContext) reset() {
	dc.vehicle = nil
	dc.anchor = vehicle.FuelAnchor{}
	dc.plannedTripKm = nil
	dc.todayPrice = nil
	dc.predictedPrice = nil
	dc.result = nil
}

func (dc *decisionContext) aVehicleWith(tank, efficiency, reserve float64) error {
	profile, err := vehicle.NewProfile("test vehicle", tank, efficiency, reserve)
	if err != nil {
		return err
	}
	dc.vehicle = profile
	return nil
}

func (dc *decisionContext) theFuelGaugeReads(percent float64) error {
	dc.anchor = vehicle.PercentAnchor(percent)
	return nil
}

func (dc *decisionContext) theVehicleHasDrivenSinceLastFill(km float64) error {
	dc.anchor = vehicle.DistanceAnchor(km)
	return nil
}

func (dc *decisionContext) aPlannedTripOf(km float64) error {
	dc.plannedTripKm = &km
	return nil
}

func (dc *decisionContext) pricesAre(today, predicted float64) error {
	dc.todayPrice = &today
	dc.predictedPrice = &predicted
	return nil
}

func (dc *decisionContext) iEvaluateTheRefuelDecision() error {
	if dc.vehicle == nil {
		return fmt.Errorf("no vehicle configured")
	}
	dc.result = decision.NewEngine().Decide(decision.Input{
		Vehicle:        dc.vehicle,
		Anchor:         dc.anchor,
		PlannedTripKm:  dc.plannedTripKm,
		TodayPrice:     dc.todayPrice,
		PredictedPrice: dc.predictedPrice,
	})
	return nil
}

func (dc *decisionContext) theDecisionShouldBe(verdict, severity string) error {
	if string(dc.result.Verdict) != verdict {
		return fmt.Errorf("expected decision %s but got %s (rule %d)", verdict, dc.result.Verdict, dc.result.Rule)
	}
	if string(dc.result.Severity) != severity {
		return fmt.Errorf("expected severity %s but got %s", severity, dc.result.Severity)
	}
	return nil
}

func (dc *decisionContext) theConfidenceShouldBe(expected float64) error {
	if math.Abs(dc.result.Confidence-expected) > 1e-9 {
		return fmt.Errorf("expected confidence %.2f but got %.2f", expected, dc.result.Confidence)
	}
	return nil
}

func (dc *decisionContext) theRemainingFuelShouldBe(expected float64) error {
	if math.Abs(dc.result.LitersRemaining-expected) > 0.05 {
		return fmt.Errorf("expected %.1f liters remaining but got %.1f", expected, dc.result.LitersRemaining)
	}
	return nil
}

func (dc *decisionContext) theUsableRangeShouldBe(expected float64) error {
	if math.Abs(dc.result.RangeKm-expected) > 0.5 {
		return fmt.Errorf("expected range %.0f km but got %.0f km", expected, dc.result.RangeKm)
	}
	return nil
}

func (dc *decisionContext) thePriceTrendShouldBe(expected string) error {
	if dc.result.PriceTrend == nil {
		return fmt.Errorf("expected trend %s but no trend was computed", expected)
	}
	if string(*dc.result.PriceTrend) != expected {
		return fmt.Errorf("expected trend %s but got %s", expected, *dc.result.PriceTrend)
	}
	return nil
}

func (dc *decisionContext) theExplanationShouldMention(fragment string) error {
	if !strings.Contains(dc.result.Explanation, fragment) {
		return fmt.Errorf("explanation %q does not mention %q", dc.result.Explanation, fragment)
	}
	return nil
}

// InitializeDecisionScenario registers the refuel decision steps
func InitializeDecisionScenario(ctx *godog.ScenarioContext) {
	dc := &decisionContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		dc.reset()
		return ctx, nil
	})

	ctx.Step(`^a vehicle with a ([0-9.]+) liter tank, ([0-9.]+) L/100km efficiency and ([0-9.]+) reserve fraction$`, dc.aVehicleWith)
	ctx.Step(`^the fuel gauge reads ([0-9.]+) percent$`, dc.theFuelGaugeReads)
	ctx.Step(`^the vehicle has driven ([0-9.]+) km since the last full tank$`, dc.theVehicleHasDrivenSinceLastFill)
	ctx.Step(`^a planned trip of ([0-9.]+) km$`, dc.aPlannedTripOf)
	ctx.Step(`^today's price is ([0-9.]+) and tomorrow's predicted price is ([0-9.]+)$`, dc.pricesAre)
	ctx.Step(`^I evaluate the refuel decision$`, dc.iEvaluateTheRefuelDecision)
	ctx.Step(`^the decision should be "([^"]*)" with "([^"]*)" severity$`, dc.theDecisionShouldBe)
	ctx.Step(`^the confidence should be ([0-9.]+)$`, dc.theConfidenceShouldBe)
	ctx.Step(`^the remaining fuel should be ([0-9.]+) liters$`, dc.theRemainingFuelShouldBe)
	ctx.Step(`^the usable range should be ([0-9.]+) km$`, dc.theUsableRangeShouldBe)
	ctx.Step(`^the price trend should be "([^"]*)"$`, dc.thePriceTrendShouldBe)
	ctx.Step(`^the explanation should mention "([^"]*)"$`, dc.theExplanationShouldMention)
}
