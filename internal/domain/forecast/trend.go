package forecast

// Trend labels the direction of a price move relative to today
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFlat    Trend = "flat"
	TrendFalling Trend = "falling"
)

// TrendThreshold is the price delta (per liter) at which a move stops being flat.
// Both bounds are inclusive: +0.02 is rising and -0.02 is falling.
const TrendThreshold = 0.02

// trendEpsilon absorbs float error in price subtraction: 1.13-1.11 is
// 0.019999999999999796.
const trendEpsilon = 1e-9

// ClassifyTrend compares a predicted price against today's price.
// Every trend label in the system must come from this function.
func ClassifyTrend(todayPrice, predictedPrice float64) (delta float64, trend Trend) {
	delta = predictedPrice - todayPrice
	switch {
	case delta >= TrendThreshold-trendEpsilon:
		return delta, TrendRising
	case delta <= -TrendThreshold+trendEpsilon:
		return delta, TrendFalling
	default:
		return delta, TrendFlat
	}
}

// ClassifyOptional is ClassifyTrend for inputs that may be missing.
// It returns nil values when either price is absent.
func ClassifyOptional(todayPrice, predictedPrice *float64) (*float64, *Trend) {
	if todayPrice == nil || predictedPrice == nil {
		return nil, nil
	}
	delta, trend := ClassifyTrend(*todayPrice, *predictedPrice)
	return &delta, &trend
}
