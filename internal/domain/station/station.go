package station

import (
	"fmt"
	"strings"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
)

// DefaultPrice is assumed when a station has no price for the requested grade
const DefaultPrice = 1.50

// FuelGrade identifies a pump product
type FuelGrade string

const (
	GradeRegular FuelGrade = "regular"
	GradePremium FuelGrade = "premium"
	GradeDiesel  FuelGrade = "diesel"
)

// ParseFuelGrade maps user input onto a known grade
func ParseFuelGrade(s string) (FuelGrade, error) {
	switch FuelGrade(strings.ToLower(strings.TrimSpace(s))) {
	case GradeRegular, "":
		return GradeRegular, nil
	case GradePremium:
		return GradePremium, nil
	case GradeDiesel:
		return GradeDiesel, nil
	}
	return "", shared.NewValidationError("fuel_grade", fmt.Sprintf("unknown grade %q", s))
}

// GasStation is a station candidate. KmAlongRoute, DistanceFromRouteKm,
// CashbackPercent, BestCard and DayPrices are filled in by the planning
// pipeline; they are zero for stations read from storage.
type GasStation struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Brand    string                `json:"brand"`
	Address  string                `json:"address"`
	Location shared.GeoPoint       `json:"location"`
	Prices   map[FuelGrade]float64 `json:"prices"`

	KmAlongRoute        float64         `json:"km_along_route"`
	DistanceFromRouteKm float64         `json:"distance_from_route_km"`
	CashbackPercent     float64         `json:"cashback_percent"`
	BestCard            string          `json:"best_card,omitempty"`
	DayPrices           map[int]float64 `json:"day_prices,omitempty"`
}

// NewGasStation creates a station with validation
func NewGasStation(id, name, brand, address string, location shared.GeoPoint, prices map[FuelGrade]float64) (*GasStation, error) {
	if id == "" {
		return nil, shared.NewValidationError("id", "station id cannot be empty")
	}
	for grade, price := range prices {
		if price <= 0 {
			return nil, shared.NewValidationError("prices", fmt.Sprintf("%s price must be positive, got %v", grade, price))
		}
	}
	if prices == nil {
		prices = make(map[FuelGrade]float64)
	}
	if name == "" {
		name = "Gas Station"
	}
	if brand == "" {
		brand = "Unknown"
	}

	return &GasStation{
		ID:       id,
		Name:     name,
		Brand:    brand,
		Address:  address,
		Location: location,
		Prices:   prices,
	}, nil
}

// PriceFor returns the listed price for a grade, or DefaultPrice when unlisted
func (s *GasStation) PriceFor(grade FuelGrade) float64 {
	if price, ok := s.Prices[grade]; ok && price > 0 {
		return price
	}
	return DefaultPrice
}

// BasePrice returns the pre-cashback price on a day offset.
// Days without a price fall back to today, then DefaultPrice.
func (s *GasStation) BasePrice(day int) float64 {
	if price, ok := s.DayPrices[day]; ok {
		return price
	}
	if price, ok := s.DayPrices[0]; ok {
		return price
	}
	return DefaultPrice
}

// EffectivePrice is the base price after the applied card cashback
func (s *GasStation) EffectivePrice(day int) float64 {
	return s.BasePrice(day) * (1 - s.CashbackPercent/100.0)
}

// HasCard reports whether a cashback card was applied
func (s *GasStation) HasCard() bool {
	return s.BestCard != ""
}

// Clone returns a deep copy so pipeline annotations never leak into the caller's slice
func (s *GasStation) Clone() *GasStation {
	c := *s
	c.Prices = make(map[FuelGrade]float64, len(s.Prices))
	for k, v := range s.Prices {
		c.Prices[k] = v
	}
	if s.DayPrices != nil {
		c.DayPrices = make(map[int]float64, len(s.DayPrices))
		for k, v := range s.DayPrices {
			c.DayPrices[k] = v
		}
	}
	return &c
}

func (s *GasStation) String() string {
	return fmt.Sprintf("GasStation[%s, %s, km=%.1f]", s.ID, s.Name, s.KmAlongRoute)
}
