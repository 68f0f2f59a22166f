package strategy

import (
	"fmt"
	"sort"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
	"github.com/parniayzdin/Fuelio/pkg/utils"
)

// MinFillLiters ignores solver noise below this amount
const MinFillLiters = 0.1

// ExtractSolution turns an accepted solver solution into an ordered plan
func ExtractSolution(model *FuelStopModel, sol *Solution, clock shared.Clock) *StopPlan {
	plan := &StopPlan{Status: StatusOptimal}

	for s, row := range sol.Liters {
		st := model.Stations[s]
		for d, liters := range row {
			if liters <= MinFillLiters {
				continue
			}
			effective := st.EffectivePrice(d)
			base := st.BasePrice(d)
			cardSavings := liters * base * st.CashbackPercent / 100.0
			timingSavings := 0.0
			if today := st.EffectivePrice(0); today > effective {
				timingSavings = (today - effective) * liters
			}

			plan.Stops = append(plan.Stops, FillPlanEntry{
				Station:           st,
				DayOffset:         d,
				Liters:            liters,
				EffectivePrice:    utils.Round(effective, 3),
				BasePrice:         utils.Round(base, 3),
				Card:              st.BestCard,
				KmAtStop:          st.KmAlongRoute,
				SavingsFromCard:   utils.Round(cardSavings, 2),
				SavingsFromTiming: utils.Round(timingSavings, 2),
			})
			plan.TotalCost += liters * effective
			plan.TotalSavings += cardSavings + timingSavings
		}
	}

	sort.SliceStable(plan.Stops, func(i, j int) bool {
		return plan.Stops[i].KmAtStop < plan.Stops[j].KmAtStop
	})

	for _, stop := range plan.Stops {
		plan.Reasoning = append(plan.Reasoning, describeStop(stop, clock)...)
	}
	if len(plan.Stops) == 0 {
		plan.Reasoning = append(plan.Reasoning, "No fill-up needed - you have enough fuel for the trip!")
	}

	plan.TotalCost = utils.Round(plan.TotalCost, 2)
	plan.TotalSavings = utils.Round(plan.TotalSavings, 2)
	applyFuelLevels(plan.Stops, model.Vehicle, model.InitialLiters)
	return plan
}

func describeStop(stop FillPlanEntry, clock shared.Clock) []string {
	var lines []string
	if stop.DayOffset == 0 {
		lines = append(lines, fmt.Sprintf("Fill %.1fL at %s today at $%.3f/L",
			stop.Liters, stop.Station.Name, stop.EffectivePrice))
	} else {
		lines = append(lines, fmt.Sprintf("Wait until %s to fill %.1fL at %s - price drops to $%.3f/L",
			shared.DayName(clock, stop.DayOffset), stop.Liters, stop.Station.Name, stop.EffectivePrice))
	}
	if stop.Card != "" {
		lines = append(lines, fmt.Sprintf("  → Use %s for %g%% cashback (saves $%.2f)",
			stop.Card, stop.Station.CashbackPercent, stop.SavingsFromCard))
	}
	return lines
}

// applyFuelLevels replays the ordered stops to fill in fuel before and after each one
func applyFuelLevels(stops []FillPlanEntry, v *vehicle.Profile, initialLiters float64) {
	fuel := v.Fuel(initialLiters)
	prevKm := 0.0
	for i := range stops {
		fuel = fuel.Consume(v.LitersForDistance(stops[i].KmAtStop - prevKm))
		stops[i].FuelBeforeLiters = fuel.Current
		fuel = fuel.Add(stops[i].Liters)
		stops[i].FuelAfterLiters = fuel.Current
		prevKm = stops[i].KmAtStop
	}
}
