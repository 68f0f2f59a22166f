package strategy

import (
	"fmt"
	"strings"

	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
	"github.com/parniayzdin/Fuelio/pkg/utils"
)

const (
	// SampleStepKm is the projection sampling interval
	SampleStepKm = 10.0
	// StopToleranceKm is how close a sample must be to a stop to apply it
	StopToleranceKm = 5.0
)

// FuelProjectionSimulator replays a plan along the trip distance
type FuelProjectionSimulator struct{}

// NewFuelProjectionSimulator creates a new simulator
func NewFuelProjectionSimulator() *FuelProjectionSimulator {
	return &FuelProjectionSimulator{}
}

// Project samples the trip every SampleStepKm plus the final km. Each stop is
// applied once, at the first sample within StopToleranceKm of it. Reported
// fuel stays within [0, 100] percent.
func (p *FuelProjectionSimulator) Project(tripKm float64, v *vehicle.Profile, initialLiters float64, stops []FillPlanEntry) []ProjectionPoint {
	samples := sampleKms(tripKm)
	points := make([]ProjectionPoint, 0, len(samples))
	applied := make([]bool, len(stops))

	fuel := v.Fuel(initialLiters)
	prevKm := 0.0
	for _, km := range samples {
		fuel = fuel.Consume(v.LitersForDistance(km - prevKm))

		var actions []string
		for i, stop := range stops {
			if applied[i] || absDiff(km, stop.KmAtStop) > StopToleranceKm {
				continue
			}
			fuel = fuel.Add(stop.Liters)
			applied[i] = true
			actions = append(actions, fmt.Sprintf("FILL %.0fL at %s", stop.Liters, stopName(stop)))
		}

		points = append(points, ProjectionPoint{
			Km:          km,
			FuelPercent: utils.Round(utils.Clamp(fuel.Percentage(), 0, 100), 1),
			Action:      strings.Join(actions, "; "),
		})
		prevKm = km
	}
	return points
}

func sampleKms(tripKm float64) []float64 {
	var samples []float64
	for km := 0.0; km < tripKm; km += SampleStepKm {
		samples = append(samples, km)
	}
	return append(samples, tripKm)
}

func stopName(stop FillPlanEntry) string {
	if stop.Station == nil {
		return "station"
	}
	return stop.Station.Name
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
