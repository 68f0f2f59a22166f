package decision

import (
	"fmt"
	"math"
	"strings"

	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
)

// Explain renders a short templated explanation for a decision result
func Explain(r *Result, reserveLiters float64) string {
	var parts []string

	switch r.Verdict {
	case VerdictFill:
		parts = explainFill(r, reserveLiters)
	default:
		parts = append(parts, fmt.Sprintf("You have approximately %.0f km of range remaining.", r.RangeKm))
		switch {
		case trendIs(r, forecast.TrendFalling) && r.PriceDelta != nil:
			parts = append(parts, fmt.Sprintf(
				"Prices are expected to drop by %.1f¢/L, so waiting could save you money.",
				math.Abs(*r.PriceDelta)*100))
		case trendIs(r, forecast.TrendFlat):
			parts = append(parts, "Prices are stable, so there's no urgency to fill up.")
		default:
			parts = append(parts, "No immediate action needed.")
		}
	}

	return strings.Join(parts, " ")
}

func explainFill(r *Result, reserveLiters float64) []string {
	switch r.Rule {
	case 1:
		if r.RangeKm <= CriticalRangeKm {
			return []string{
				fmt.Sprintf("Your estimated range is only %.0f km, which is critically low.", r.RangeKm),
				"Fill up now to avoid running out of fuel.",
			}
		}
		return []string{
			fmt.Sprintf("You only have %.1fL remaining, which is at or below your %.1fL reserve.", r.LitersRemaining, reserveLiters),
			"Fill up now to avoid running out of fuel.",
		}
	case 2:
		return []string{
			fmt.Sprintf("Your planned trip of %.0f km exceeds your current range of %.0f km.", *r.PlannedTripKm, r.RangeKm),
			"Fill up now to avoid running out of fuel.",
		}
	case 3:
		return []string{
			fmt.Sprintf("Your planned trip of %.0f km will use most of your remaining range (%.0f km).", *r.PlannedTripKm, r.RangeKm),
			"Consider filling up before your trip.",
		}
	case 4:
		lead := "Gas prices are trending upward."
		if r.PriceDelta != nil {
			lead = fmt.Sprintf("Gas prices are expected to rise by %.1f¢/L.", math.Abs(*r.PriceDelta)*100)
		}
		return []string{
			lead,
			fmt.Sprintf("With %.0f km of range, filling up now could save you money.", r.RangeKm),
		}
	}
	return []string{"Consider filling up soon based on your current fuel level."}
}

func trendIs(r *Result, t forecast.Trend) bool {
	return r.PriceTrend != nil && *r.PriceTrend == t
}
