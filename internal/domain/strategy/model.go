package strategy

import (
	"fmt"
	"math"

	"github.com/parniayzdin/Fuelio/internal/domain/routing"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

const (
	// DefaultHorizonDays is the number of days (0 = today) a plan may span
	DefaultHorizonDays = 7
	// MaxFills caps the number of fill events in a plan
	MaxFills = 2
	// FeasibilityTolerance absorbs floating point noise when checking solutions
	FeasibilityTolerance = 1e-6
)

// FuelStopModel is the mixed-integer program choosing where, when and how
// much to fill. Variables are a binary x[s][d] and liters[s][d] in [0, tank]:
//
//	minimize    Σ Prices[s][d] · liters[s][d]
//	subject to  Σ liters ≥ Deficit()                  (sufficiency)
//	            Σ liters ≤ CapacityLimit()            (no wasted fuel)
//	            liters[s][d] ≤ tank · x[s][d]         (link)
//	            Σ_d x[s][d] ≤ 1  for every s          (one day per station)
//	            Σ x ≤ MaxFills
//
// Solvers only read the numeric fields, so a model rebuilt from the wire
// without Stations or Vehicle is still solvable.
type FuelStopModel struct {
	Stations       []*station.GasStation
	Vehicle        *vehicle.Profile
	HorizonDays    int
	TankLiters     float64
	InitialLiters  float64
	ReserveLiters  float64
	TripKm         float64
	TripNeedLiters float64
	MaxFills       int
	// Prices[s][d] is the effective (post-cashback) price at station s on day d
	Prices [][]float64
}

// BuildModel formulates the model from annotated stations. Missing day prices
// fall back to the station's price today.
func BuildModel(stations []*station.GasStation, route *routing.Route, v *vehicle.Profile, initialLiters float64, horizonDays int) (*FuelStopModel, error) {
	if len(stations) == 0 {
		return nil, shared.NewPlanningError("model", "no gas stations along the route")
	}
	if horizonDays < 1 {
		return nil, shared.NewPlanningError("model", fmt.Sprintf("horizon must be at least one day, got %d", horizonDays))
	}
	if initialLiters < 0 || initialLiters > v.TankLiters {
		return nil, shared.NewPlanningError("model", fmt.Sprintf("initial fuel %.2fL outside tank of %.2fL", initialLiters, v.TankLiters))
	}

	prices := make([][]float64, len(stations))
	for s, st := range stations {
		prices[s] = make([]float64, horizonDays)
		for d := 0; d < horizonDays; d++ {
			p := st.EffectivePrice(d)
			if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
				return nil, shared.NewPlanningError("model", fmt.Sprintf("invalid price %v at %s on day %d", p, st.ID, d))
			}
			prices[s][d] = p
		}
	}

	tripKm := route.TotalKm()
	return &FuelStopModel{
		Stations:       stations,
		Vehicle:        v,
		HorizonDays:    horizonDays,
		TankLiters:     v.TankLiters,
		InitialLiters:  initialLiters,
		ReserveLiters:  v.ReserveLiters(),
		TripKm:         tripKm,
		TripNeedLiters: v.LitersForDistance(tripKm),
		MaxFills:       MaxFills,
		Prices:         prices,
	}, nil
}

// StationCount is the number of station rows in the model
func (m *FuelStopModel) StationCount() int {
	return len(m.Prices)
}

// Deficit is the minimum total purchase: max(0, need − initial + reserve)
func (m *FuelStopModel) Deficit() float64 {
	return math.Max(0, m.TripNeedLiters-m.InitialLiters+m.ReserveLiters)
}

// CapacityLimit is the maximum total purchase: tank + need − initial
func (m *FuelStopModel) CapacityLimit() float64 {
	return m.TankLiters + m.TripNeedLiters - m.InitialLiters
}

// Cost prices a solution under the model objective
func (m *FuelStopModel) Cost(sol *Solution) float64 {
	total := 0.0
	for s := range sol.Liters {
		for d, l := range sol.Liters[s] {
			total += m.Prices[s][d] * l
		}
	}
	return total
}

// Check verifies that a solution satisfies every model constraint.
// A fill event is any variable carrying more than FeasibilityTolerance liters.
func (m *FuelStopModel) Check(sol *Solution) error {
	if len(sol.Liters) != m.StationCount() {
		return fmt.Errorf("solution has %d station rows, model has %d", len(sol.Liters), m.StationCount())
	}

	total := 0.0
	fills := 0
	for s, row := range sol.Liters {
		if len(row) != m.HorizonDays {
			return fmt.Errorf("station %d has %d day columns, model has %d", s, len(row), m.HorizonDays)
		}
		days := 0
		for d, l := range row {
			if l < -FeasibilityTolerance || l > m.TankLiters+FeasibilityTolerance {
				return fmt.Errorf("liters[%d][%d]=%.4f outside [0, %.2f]", s, d, l, m.TankLiters)
			}
			if l > FeasibilityTolerance {
				days++
			}
			total += l
		}
		if days > 1 {
			return fmt.Errorf("station %d is used on %d days", s, days)
		}
		fills += days
	}

	if total < m.Deficit()-FeasibilityTolerance {
		return fmt.Errorf("purchase %.4fL below deficit %.4fL", total, m.Deficit())
	}
	if total > m.CapacityLimit()+FeasibilityTolerance {
		return fmt.Errorf("purchase %.4fL above capacity limit %.4fL", total, m.CapacityLimit())
	}
	if fills > m.MaxFills {
		return fmt.Errorf("%d fill events exceed the limit of %d", fills, m.MaxFills)
	}
	return nil
}
