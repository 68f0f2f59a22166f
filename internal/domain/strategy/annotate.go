package strategy

import (
	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
)

// PriceHistory is the price evidence available to a planning run.
// All series are ordered oldest to newest.
type PriceHistory struct {
	Regional  []float64
	ByStation map[string][]float64
}

// PriceAnnotator fills in per-day base prices on matched stations
type PriceAnnotator struct {
	forecaster *forecast.PriceForecaster
}

// NewPriceAnnotator creates an annotator around a forecaster
func NewPriceAnnotator(forecaster *forecast.PriceForecaster) *PriceAnnotator {
	return &PriceAnnotator{forecaster: forecaster}
}

// Annotate sets DayPrices[0..horizonDays-1] on each station.
//
// Day 0 is the station's listed price for the grade. Later days come from the
// station's own history when present, otherwise from the regional history
// shifted so its latest value lines up with the station's price. Without any
// history only day 0 is set, and later days resolve to today's price.
func (a *PriceAnnotator) Annotate(stations []*station.GasStation, grade station.FuelGrade, history PriceHistory, horizonDays int) {
	for _, s := range stations {
		today := s.PriceFor(grade)
		s.DayPrices = map[int]float64{0: today}

		series := a.seriesFor(s, today, history)
		for _, point := range a.forecaster.Forecast(today, series, horizonDays-1) {
			s.DayPrices[point.DayOffset] = point.PredictedPrice
		}
	}
}

func (a *PriceAnnotator) seriesFor(s *station.GasStation, today float64, history PriceHistory) []float64 {
	if own := history.ByStation[s.ID]; len(own) > 0 {
		return own
	}
	if len(history.Regional) == 0 {
		return nil
	}

	offset := today - history.Regional[len(history.Regional)-1]
	shifted := make([]float64, len(history.Regional))
	for i, p := range history.Regional {
		shifted[i] = p + offset
	}
	return shifted
}
