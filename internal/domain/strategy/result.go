package strategy

import "github.com/parniayzdin/Fuelio/internal/domain/station"

// ResultStatus tags how an optimization result was produced
type ResultStatus string

const (
	// StatusOptimal means an exact solver produced the plan
	StatusOptimal ResultStatus = "optimal"
	// StatusHeuristic means the greedy fallback produced the plan
	StatusHeuristic ResultStatus = "heuristic"
	// StatusInfeasible means no plan could keep the vehicle fueled
	StatusInfeasible ResultStatus = "infeasible"
	// StatusNoStations means no station lies within the search corridor
	StatusNoStations ResultStatus = "no-stations"
	// StatusError means the model could not be formulated
	StatusError ResultStatus = "error"
)

// FillPlanEntry is one recommended fill-up.
// Liters and fuel levels are unrounded; prices and savings are display-rounded.
type FillPlanEntry struct {
	Station           *station.GasStation `json:"station"`
	DayOffset         int                 `json:"day_offset"`
	Liters            float64             `json:"liters"`
	EffectivePrice    float64             `json:"effective_price"`
	BasePrice         float64             `json:"base_price"`
	Card              string              `json:"card,omitempty"`
	KmAtStop          float64             `json:"km_at_stop"`
	FuelBeforeLiters  float64             `json:"fuel_before_liters"`
	FuelAfterLiters   float64             `json:"fuel_after_liters"`
	SavingsFromCard   float64             `json:"savings_from_card"`
	SavingsFromTiming float64             `json:"savings_from_timing"`
}

// ProjectionPoint is one sample of the simulated fuel curve
type ProjectionPoint struct {
	Km          float64 `json:"km"`
	FuelPercent float64 `json:"fuel_pct"`
	Action      string  `json:"action,omitempty"`
}

// OptimizationResult is the outcome of a planning run. It is always
// returned for valid input; degraded outcomes are expressed through Status.
type OptimizationResult struct {
	PlanID           string            `json:"plan_id"`
	Stops            []FillPlanEntry   `json:"stops"`
	TotalCost        float64           `json:"total_cost"`
	TotalSavings     float64           `json:"total_savings"`
	Reasoning        []string          `json:"reasoning"`
	Projection       []ProjectionPoint `json:"fuel_projection"`
	Status           ResultStatus      `json:"solver_status"`
	SolverName       string            `json:"solver_name,omitempty"`
	FallbackReason   string            `json:"fallback_reason,omitempty"`
	StationsAnalyzed int               `json:"stations_analyzed"`
	TripDistanceKm   float64           `json:"trip_distance_km"`
}

// TotalLiters sums the liters across all stops
func (r *OptimizationResult) TotalLiters() float64 {
	total := 0.0
	for _, s := range r.Stops {
		total += s.Liters
	}
	return total
}

// StopPlan is the intermediate plan produced by either the solver path or the fallback
type StopPlan struct {
	Stops        []FillPlanEntry
	Reasoning    []string
	Status       ResultStatus
	TotalCost    float64
	TotalSavings float64
}
