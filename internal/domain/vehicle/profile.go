package vehicle

import (
	"fmt"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
)

// Profile describes the fuel characteristics of a single vehicle.
//
// Invariants: TankLiters > 0, EfficiencyLPer100Km > 0 and
// 0 <= ReserveFraction < 1, so ReserveLiters never exceeds TankLiters.
type Profile struct {
	ID                  int
	Name                string
	TankLiters          float64
	EfficiencyLPer100Km float64
	ReserveFraction     float64
}

// NewProfile creates a vehicle profile with validation
func NewProfile(name string, tankLiters, efficiency, reserveFraction float64) (*Profile, error) {
	if tankLiters <= 0 {
		return nil, shared.NewValidationError("tank_size_liters", fmt.Sprintf("must be positive, got %v", tankLiters))
	}
	if efficiency <= 0 {
		return nil, shared.NewValidationError("efficiency_l_per_100km", fmt.Sprintf("must be positive, got %v", efficiency))
	}
	if reserveFraction < 0 || reserveFraction >= 1 {
		return nil, shared.NewValidationError("reserve_fraction", fmt.Sprintf("must be within [0, 1), got %v", reserveFraction))
	}

	return &Profile{
		Name:                name,
		TankLiters:          tankLiters,
		EfficiencyLPer100Km: efficiency,
		ReserveFraction:     reserveFraction,
	}, nil
}

// ReserveLiters is the safety buffer that is never counted as usable
func (p *Profile) ReserveLiters() float64 {
	return p.TankLiters * p.ReserveFraction
}

// LitersForDistance returns the fuel burned over km
func (p *Profile) LitersForDistance(km float64) float64 {
	return km * p.EfficiencyLPer100Km / 100.0
}

// DistanceForLiters returns how far the given liters carry the vehicle
func (p *Profile) DistanceForLiters(liters float64) float64 {
	return liters / (p.EfficiencyLPer100Km / 100.0)
}

// LitersFromPercent converts a tank percentage into liters
func (p *Profile) LitersFromPercent(percent float64) float64 {
	return p.TankLiters * percent / 100.0
}

// RemainingLiters estimates the fuel in the tank from an anchor.
// An unusable anchor defaults to half a tank.
func (p *Profile) RemainingLiters(anchor FuelAnchor) float64 {
	switch anchor.Type {
	case AnchorPercent:
		if anchor.Percent != nil {
			return p.LitersFromPercent(*anchor.Percent)
		}
	case AnchorDistanceSinceFill:
		if anchor.KmSinceFill != nil {
			remaining := p.TankLiters - p.LitersForDistance(*anchor.KmSinceFill)
			if remaining < 0 {
				return 0
			}
			return remaining
		}
	}
	return p.TankLiters * DefaultFillFraction
}

// UsableRangeKm is the distance drivable on fuel above the reserve.
// Monotonically non-decreasing in litersRemaining.
func (p *Profile) UsableRangeKm(litersRemaining float64) float64 {
	usable := litersRemaining - p.ReserveLiters()
	if usable < 0 {
		usable = 0
	}
	return p.DistanceForLiters(usable)
}

// Fuel returns the tank state for the given liters, clamped into [0, capacity]
func (p *Profile) Fuel(liters float64) *shared.Fuel {
	if liters < 0 {
		liters = 0
	}
	if liters > p.TankLiters {
		liters = p.TankLiters
	}
	return &shared.Fuel{Current: liters, Capacity: p.TankLiters}
}
