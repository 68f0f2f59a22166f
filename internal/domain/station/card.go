package station

import "strings"

// CardBenefit is a payment card with fuel cashback.
// An empty PartnerStations list means the cashback applies at every station.
type CardBenefit struct {
	Provider           string   `json:"provider"`
	GasCashbackPercent float64  `json:"gas_cashback_percent"`
	PartnerStations    []string `json:"partner_stations,omitempty"`
}

// AppliesTo reports whether the card earns cashback at the station
func (c CardBenefit) AppliesTo(s *GasStation) bool {
	if len(c.PartnerStations) == 0 {
		return true
	}
	brand := strings.ToLower(s.Brand)
	name := strings.ToLower(s.Name)
	for _, partner := range c.PartnerStations {
		p := strings.ToLower(strings.TrimSpace(partner))
		if p == "" {
			continue
		}
		if strings.Contains(brand, p) || strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// BestCard picks the card with the highest cashback that applies to the station.
// Ties keep the first card seen. Cards with no cashback never win.
func BestCard(s *GasStation, cards []CardBenefit) (CardBenefit, bool) {
	var best CardBenefit
	found := false
	for _, card := range cards {
		if !card.AppliesTo(s) {
			continue
		}
		if card.GasCashbackPercent > best.GasCashbackPercent {
			best = card
			found = true
		}
	}
	return best, found
}

// CardBenefitResolver annotates stations with their best card
type CardBenefitResolver struct{}

// NewCardBenefitResolver creates a new resolver
func NewCardBenefitResolver() *CardBenefitResolver {
	return &CardBenefitResolver{}
}

// Apply sets CashbackPercent and BestCard on every station
func (r *CardBenefitResolver) Apply(stations []*GasStation, cards []CardBenefit) {
	for _, s := range stations {
		best, ok := BestCard(s, cards)
		if !ok {
			s.CashbackPercent = 0
			s.BestCard = ""
			continue
		}
		s.CashbackPercent = best.GasCashbackPercent
		s.BestCard = best.Provider
	}
}
