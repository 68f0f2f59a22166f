package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cucumber/godog"

	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	pricingCmd "github.com/parniayzdin/Fuelio/internal/application/pricing/commands"
	pricingQuery "github.com/parniayzdin/Fuelio/internal/application/pricing/queries"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/test/helpers"
)

type pricingContext struct {
	mediator mediator.Mediator
	repos    *helpers.TestRepositories
	forecast *pricingQuery.ForecastPricesResponse
	err      error
}

func (pc *pricingContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	pc.repos = helpers.NewRepositories(helpers.SharedTestDB)
	clock := shared.FixedClock{At: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}

	med := mediator.NewMediator()
	if err := mediator.RegisterHandler[*pricingCmd.RecordRegionalPriceCommand](med,
		pricingCmd.NewRecordRegionalPriceHandler(pc.repos.PriceHistory, clock)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*pricingQuery.ForecastPricesQuery](med,
		pricingQuery.NewForecastPricesHandler(pc.repos.PriceHistory, nil, "default")); err != nil {
		return err
	}
	pc.mediator = med
	pc.forecast = nil
	pc.err = nil
	return nil
}

func (pc *pricingContext) pricesWereRecorded(region string, table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		day, err := time.Parse(time.DateOnly, row.Cells[0].Value)
		if err != nil {
			return err
		}
		price, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return err
		}
		if _, err := pc.mediator.Send(context.Background(), &pricingCmd.RecordRegionalPriceCommand{
			Region: region,
			Price:  price,
			Day:    &day,
		}); err != nil {
			return fmt.Errorf("failed to record %s: %w", row.Cells[0].Value, err)
		}
	}
	return nil
}

func (pc *pricingContext) iRecordAPrice(price float64, region string) error {
	_, pc.err = pc.mediator.Send(context.Background(), &pricingCmd.RecordRegionalPriceCommand{
		Region: region,
		Price:  price,
	})
	return nil
}

func (pc *pricingContext) iForecast(days int, region string) error {
	resp, err := pc.mediator.Send(context.Background(), &pricingQuery.ForecastPricesQuery{
		Region: region,
		Days:   days,
	})
	if err != nil {
		return err
	}
	pc.forecast = resp.(*pricingQuery.ForecastPricesResponse)
	return nil
}

func (pc *pricingContext) todaysPriceShouldBe(expected float64) error {
	if pc.forecast.TodayPrice == nil {
		return fmt.Errorf("expected today's price %.3f but none was found", expected)
	}
	if math.Abs(*pc.forecast.TodayPrice-expected) > 1e-6 {
		return fmt.Errorf("expected today's price %.3f but got %.3f", expected, *pc.forecast.TodayPrice)
	}
	return nil
}

func (pc *pricingContext) dayShouldBePredicted(day int, price float64, trend string) error {
	if day < 1 || day > len(pc.forecast.Points) {
		return fmt.Errorf("forecast has %d days, no day %d", len(pc.forecast.Points), day)
	}
	point := pc.forecast.Points[day-1]
	if math.Abs(point.PredictedPrice-price) > 1e-6 {
		return fmt.Errorf("day %d: expected %.3f but got %.3f", day, price, point.PredictedPrice)
	}
	if string(point.Trend) != trend {
		return fmt.Errorf("day %d: expected trend %s but got %s", day, trend, point.Trend)
	}
	return nil
}

func (pc *pricingContext) pricesShouldBeStored(count int, region string) error {
	recent, err := pc.repos.PriceHistory.RecentPrices(context.Background(), region, 30)
	if err != nil {
		return err
	}
	if len(recent) != count {
		return fmt.Errorf("expected %d stored prices but found %d", count, len(recent))
	}
	return nil
}

func (pc *pricingContext) theForecastShouldBeEmpty() error {
	if len(pc.forecast.Points) != 0 {
		return fmt.Errorf("expected an empty forecast but got %d days", len(pc.forecast.Points))
	}
	if pc.forecast.TodayPrice != nil {
		return fmt.Errorf("expected no price for today but got %.3f", *pc.forecast.TodayPrice)
	}
	return nil
}

func (pc *pricingContext) theRequestShouldFailValidationOn(field string) error {
	if pc.err == nil {
		return fmt.Errorf("expected a validation error on %s but the request succeeded", field)
	}
	var verr *shared.ValidationError
	if !errors.As(pc.err, &verr) {
		return fmt.Errorf("expected a validation error but got %v", pc.err)
	}
	if verr.Field != field {
		return fmt.Errorf("expected the error on %s but got %s", field, verr.Field)
	}
	return nil
}

// InitializePricingScenario registers the regional price steps.
// helpers.InitializeSharedTestDB must have run first.
func InitializePricingScenario(ctx *godog.ScenarioContext) {
	pc := &pricingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, pc.reset()
	})

	ctx.Step(`^the average price in "([^"]*)" was recorded as:$`, pc.pricesWereRecorded)
	ctx.Step(`^I record a price of ([0-9.]+) for "([^"]*)"$`, pc.iRecordAPrice)
	ctx.Step(`^I forecast (\d+) days of prices for "([^"]*)"$`, pc.iForecast)
	ctx.Step(`^today's price should be ([0-9.]+)$`, pc.todaysPriceShouldBe)
	ctx.Step(`^day (\d+) should be predicted at ([0-9.]+) and "([^"]*)"$`, pc.dayShouldBePredicted)
	ctx.Step(`^(\d+) prices should be stored for "([^"]*)"$`, pc.pricesShouldBeStored)
	ctx.Step(`^the forecast should be empty$`, pc.theForecastShouldBeEmpty)
	ctx.Step(`^the request should fail validation on "([^"]*)"$`, pc.theRequestShouldFailValidationOn)
}
