package decision

import (
	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
	"github.com/parniayzdin/Fuelio/pkg/utils"
)

// Verdict is the immediate action recommended to the driver
type Verdict string

const (
	VerdictFill     Verdict = "FILL"
	VerdictNoAction Verdict = "NO_ACTION"
)

// Severity grades how urgent a verdict is
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rule thresholds
const (
	CriticalRangeKm      = 30.0
	TripMarginFraction   = 0.7
	RisingPriceRangeKm   = 120.0
	confidenceCritical   = 0.95
	confidenceTripMargin = 0.80
	confidenceRising     = 0.75
	confidenceNoAction   = 0.70
)

// Input carries everything the engine needs for one evaluation.
// PlannedTripKm, TodayPrice and PredictedPrice are optional.
type Input struct {
	Vehicle        *vehicle.Profile
	Anchor         vehicle.FuelAnchor
	PlannedTripKm  *float64
	TodayPrice     *float64
	PredictedPrice *float64
}

// Result is the engine verdict plus the figures it was derived from.
// Numeric fields are rounded for display.
type Result struct {
	Verdict         Verdict         `json:"decision"`
	Severity        Severity        `json:"severity"`
	Confidence      float64         `json:"confidence"`
	LitersRemaining float64         `json:"liters_remaining"`
	RangeKm         float64         `json:"range_km"`
	ReserveFraction float64         `json:"reserve_fraction"`
	PlannedTripKm   *float64        `json:"planned_trip_km,omitempty"`
	TodayPrice      *float64        `json:"today_price,omitempty"`
	PredictedPrice  *float64        `json:"predicted_price,omitempty"`
	PriceDelta      *float64        `json:"price_delta,omitempty"`
	PriceTrend      *forecast.Trend `json:"price_trend,omitempty"`
	Rule            int             `json:"rule"`
	Explanation     string          `json:"explanation"`
}

// Engine applies the deterministic refuel rules. It is stateless.
type Engine struct{}

// NewEngine creates a new decision engine
func NewEngine() *Engine {
	return &Engine{}
}

// Decide evaluates the rules in fixed priority order; the first match wins.
//
//  1. range <= 30 km or remaining <= reserve          -> FILL high
//  2. planned trip exceeds range                      -> FILL high
//  3. planned trip exceeds 70% of range               -> FILL medium
//  4. prices rising and range < 120 km                -> FILL medium
//  5. otherwise                                       -> NO_ACTION low
//
// Rules compare unrounded values. Missing optional inputs skip their rule.
func (e *Engine) Decide(in Input) *Result {
	v := in.Vehicle
	reserveLiters := v.ReserveLiters()
	litersRemaining := v.RemainingLiters(in.Anchor)
	rangeKm := v.UsableRangeKm(litersRemaining)
	priceDelta, priceTrend := forecast.ClassifyOptional(in.TodayPrice, in.PredictedPrice)

	result := &Result{
		ReserveFraction: v.ReserveFraction,
		PlannedTripKm:   in.PlannedTripKm,
		TodayPrice:      in.TodayPrice,
		PredictedPrice:  in.PredictedPrice,
		PriceTrend:      priceTrend,
	}

	switch {
	case rangeKm <= CriticalRangeKm || litersRemaining <= reserveLiters:
		result.apply(1, VerdictFill, SeverityHigh, confidenceCritical)
	case in.PlannedTripKm != nil && *in.PlannedTripKm > rangeKm:
		result.apply(2, VerdictFill, SeverityHigh, confidenceCritical)
	case in.PlannedTripKm != nil && *in.PlannedTripKm > TripMarginFraction*rangeKm:
		result.apply(3, VerdictFill, SeverityMedium, confidenceTripMargin)
	case priceTrend != nil && *priceTrend == forecast.TrendRising && rangeKm < RisingPriceRangeKm:
		result.apply(4, VerdictFill, SeverityMedium, confidenceRising)
	default:
		result.apply(5, VerdictNoAction, SeverityLow, confidenceNoAction)
	}

	result.LitersRemaining = utils.Round(litersRemaining, 1)
	result.RangeKm = utils.Round(rangeKm, 0)
	if priceDelta != nil {
		rounded := utils.Round(*priceDelta, 3)
		result.PriceDelta = &rounded
	}

	result.Explanation = Explain(result, reserveLiters)
	return result
}

func (r *Result) apply(rule int, verdict Verdict, severity Severity, confidence float64) {
	r.Rule = rule
	r.Verdict = verdict
	r.Severity = severity
	r.Confidence = confidence
}
