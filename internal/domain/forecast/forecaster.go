package forecast

import (
	"gonum.org/v1/gonum/stat"

	"github.com/parniayzdin/Fuelio/pkg/utils"
)

const (
	// MinPredictedPrice floors extrapolated prices so they stay physical
	MinPredictedPrice = 0.01
	// MaxHistoryDays is the longest history window the forecaster fits on
	MaxHistoryDays = 7
	// DefaultDays is the default forecast horizon
	DefaultDays = 7
)

// Point is a single day of a price forecast
type Point struct {
	DayOffset      int     `json:"day_offset"`
	PredictedPrice float64 `json:"predicted_price"`
	DeltaFromToday float64 `json:"delta_from_today"`
	Trend          Trend   `json:"trend"`
}

// PriceForecaster extrapolates a short-term price trajectory with an
// ordinary least squares line fitted against day index.
type PriceForecaster struct{}

// NewPriceForecaster creates a new forecaster instance
func NewPriceForecaster() *PriceForecaster {
	return &PriceForecaster{}
}

// Forecast predicts the next days prices.
//
// history must be ordered oldest to newest. Only the last MaxHistoryDays values
// are used. An empty history yields an empty forecast.
func (f *PriceForecaster) Forecast(todayPrice float64, history []float64, days int) []Point {
	if len(history) == 0 || days <= 0 {
		return []Point{}
	}
	if len(history) > MaxHistoryDays {
		history = history[len(history)-MaxHistoryDays:]
	}

	intercept, slope := fitLine(history)
	n := len(history)

	points := make([]Point, 0, days)
	for i := 0; i < days; i++ {
		predicted := intercept + slope*float64(n+i)
		if predicted < MinPredictedPrice {
			predicted = MinPredictedPrice
		}
		delta, trend := ClassifyTrend(todayPrice, predicted)
		points = append(points, Point{
			DayOffset:      i + 1,
			PredictedPrice: utils.Round(predicted, 3),
			DeltaFromToday: utils.Round(delta, 3),
			Trend:          trend,
		})
	}
	return points
}

// NextDay returns the first forecast point, if any
func (f *PriceForecaster) NextDay(todayPrice float64, history []float64) (Point, bool) {
	points := f.Forecast(todayPrice, history, 1)
	if len(points) == 0 {
		return Point{}, false
	}
	return points[0], true
}

// fitLine returns the OLS intercept and slope of ys against 0..n-1.
// A single sample is a flat line through that sample.
func fitLine(ys []float64) (intercept, slope float64) {
	if len(ys) == 1 {
		return ys[0], 0
	}
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	return stat.LinearRegression(xs, ys, nil, false)
}

// Chronological reverses a newest-first series into the oldest-first
// order expected by Forecast. The input is not modified.
func Chronological(newestFirst []float64) []float64 {
	out := make([]float64, len(newestFirst))
	for i, v := range newestFirst {
		out[len(newestFirst)-1-i] = v
	}
	return out
}
