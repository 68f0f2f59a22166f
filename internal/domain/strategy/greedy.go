package strategy

import (
	"fmt"

	"github.com/parniayzdin/Fuelio/internal/domain/station"
	"github.com/parniayzdin/Fuelio/pkg/utils"
)

// GreedyBufferLiters is added on top of the fuel needed to finish the trip
const GreedyBufferLiters = 5.0

// GreedyFallbackPlanner recommends a single stop at the cheapest station
// reachable on the current fuel. Its plans are never labeled optimal.
type GreedyFallbackPlanner struct{}

// NewGreedyFallbackPlanner creates a new fallback planner
func NewGreedyFallbackPlanner() *GreedyFallbackPlanner {
	return &GreedyFallbackPlanner{}
}

// Plan builds a heuristic plan from the same model the solver received
func (g *GreedyFallbackPlanner) Plan(model *FuelStopModel) *StopPlan {
	v := model.Vehicle
	initial := model.InitialLiters

	if initial >= model.TripNeedLiters {
		return &StopPlan{
			Status:    StatusHeuristic,
			Reasoning: []string{"No stops needed - you have enough fuel to reach your destination!"},
		}
	}

	reachKm := v.DistanceForLiters(initial)
	best := cheapestReachable(model.Stations, reachKm)
	if best == nil {
		return &StopPlan{
			Status:    StatusInfeasible,
			Reasoning: []string{"No reachable stations found with current fuel."},
		}
	}

	remainderLiters := v.LitersForDistance(model.TripKm - best.KmAlongRoute)
	arrival := initial - v.LitersForDistance(best.KmAlongRoute)
	liters := remainderLiters + GreedyBufferLiters - arrival
	if space := model.TankLiters - arrival; liters > space {
		liters = space
	}

	price := best.EffectivePrice(0)
	base := best.BasePrice(0)
	savings := liters * base * best.CashbackPercent / 100.0

	stop := FillPlanEntry{
		Station:          best,
		DayOffset:        0,
		Liters:           liters,
		EffectivePrice:   utils.Round(price, 3),
		BasePrice:        utils.Round(base, 3),
		Card:             best.BestCard,
		KmAtStop:         best.KmAlongRoute,
		FuelBeforeLiters: arrival,
		FuelAfterLiters:  arrival + liters,
		SavingsFromCard:  utils.Round(savings, 2),
	}

	// a full tank here still runs dry before the destination
	if arrival+liters < remainderLiters {
		return &StopPlan{
			Stops:  []FillPlanEntry{stop},
			Status: StatusInfeasible,
			Reasoning: []string{
				fmt.Sprintf("Fill %.1fL at %s ($%.3f/L) to leave with a full tank.", liters, best.Name, price),
				fmt.Sprintf("A full tank at %s still leaves the trip %.1fL short.", best.Name, remainderLiters-arrival-liters),
				"No single reachable stop can cover this route.",
			},
			TotalCost:    utils.Round(liters*price, 2),
			TotalSavings: utils.Round(savings, 2),
		}
	}

	reasoning := []string{
		"Heuristic recommendation (optimizer unavailable):",
		fmt.Sprintf("Fill %.1fL at %s ($%.3f/L)", liters, best.Name, price),
		"It's the cheapest reachable station along your route.",
	}
	if best.HasCard() {
		reasoning = append(reasoning, fmt.Sprintf("  → Use %s for %g%% cashback (saves $%.2f)",
			best.BestCard, best.CashbackPercent, savings))
	}

	return &StopPlan{
		Stops:        []FillPlanEntry{stop},
		Reasoning:    reasoning,
		Status:       StatusHeuristic,
		TotalCost:    utils.Round(liters*price, 2),
		TotalSavings: utils.Round(savings, 2),
	}
}

// cheapestReachable picks the lowest effective price today among stations
// within reach. Ties keep the earlier station along the route.
func cheapestReachable(stations []*station.GasStation, reachKm float64) *station.GasStation {
	var best *station.GasStation
	for _, s := range stations {
		if s.KmAlongRoute > reachKm {
			continue
		}
		if best == nil || s.EffectivePrice(0) < best.EffectivePrice(0) {
			best = s
		}
	}
	return best
}
