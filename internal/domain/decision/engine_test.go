package decision_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/domain/decision"
	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

func ptr(v float64) *float64 { return &v }

func sedan(t *testing.T) *vehicle.Profile {
	t.Helper()
	profile, err := vehicle.NewProfile("sedan", 50, 8, 0.1)
	require.NoError(t, err)
	return profile
}

func TestDecide_BelowReserveIsHighFill(t *testing.T) {
	// Arrange
	engine := decision.NewEngine()

	// Act
	result := engine.Decide(decision.Input{
		Vehicle: sedan(t),
		Anchor:  vehicle.PercentAnchor(5),
	})

	// Assert
	assert.Equal(t, decision.VerdictFill, result.Verdict)
	assert.Equal(t, decision.SeverityHigh, result.Severity)
	assert.Equal(t, 0.95, result.Confidence)
	assert.Equal(t, 2.5, result.LitersRemaining)
	assert.Equal(t, 0.0, result.RangeKm)
	assert.Equal(t, 1, result.Rule)
}

func TestDecide_TripExceedsRangeIsHighFill(t *testing.T) {
	engine := decision.NewEngine()

	result := engine.Decide(decision.Input{
		Vehicle:       sedan(t),
		Anchor:        vehicle.PercentAnchor(50),
		PlannedTripKm: ptr(500),
	})

	assert.Equal(t, decision.VerdictFill, result.Verdict)
	assert.Equal(t, decision.SeverityHigh, result.Severity)
	assert.Equal(t, 25.0, result.LitersRemaining)
	assert.Equal(t, 250.0, result.RangeKm)
	assert.Equal(t, 2, result.Rule)
	assert.Contains(t, result.Explanation, "exceeds your current range of 250 km")
}

func TestDecide_TripNearRangeIsMediumFill(t *testing.T) {
	engine := decision.NewEngine()

	result := engine.Decide(decision.Input{
		Vehicle:       sedan(t),
		Anchor:        vehicle.PercentAnchor(50),
		PlannedTripKm: ptr(200),
	})

	assert.Equal(t, decision.VerdictFill, result.Verdict)
	assert.Equal(t, decision.SeverityMedium, result.Severity)
	assert.Equal(t, 0.80, result.Confidence)
	assert.Equal(t, 3, result.Rule)
}

func TestDecide_RisingPricesWithLowRangeIsMediumFill(t *testing.T) {
	// Arrange - 13L remaining leaves 8L above the 5L reserve: 100 km
	engine := decision.NewEngine()

	// Act
	result := engine.Decide(decision.Input{
		Vehicle:        sedan(t),
		Anchor:         vehicle.PercentAnchor(26),
		TodayPrice:     ptr(1.40),
		PredictedPrice: ptr(1.50),
	})

	// Assert
	assert.Equal(t, decision.VerdictFill, result.Verdict)
	assert.Equal(t, decision.SeverityMedium, result.Severity)
	assert.Equal(t, 0.75, result.Confidence)
	assert.Equal(t, 100.0, result.RangeKm)
	require.NotNil(t, result.PriceTrend)
	assert.Equal(t, forecast.TrendRising, *result.PriceTrend)
	require.NotNil(t, result.PriceDelta)
	assert.Equal(t, 0.1, *result.PriceDelta)
	assert.Contains(t, result.Explanation, "rise by 10.0¢/L")
}

func TestDecide_RisingPricesWithPlentyOfRangeIsNoAction(t *testing.T) {
	engine := decision.NewEngine()

	result := engine.Decide(decision.Input{
		Vehicle:        sedan(t),
		Anchor:         vehicle.PercentAnchor(80),
		TodayPrice:     ptr(1.40),
		PredictedPrice: ptr(1.50),
	})

	assert.Equal(t, decision.VerdictNoAction, result.Verdict)
	assert.Equal(t, decision.SeverityLow, result.Severity)
	assert.Equal(t, 0.70, result.Confidence)
}

func TestDecide_TwoCentRiseCountsAsRising(t *testing.T) {
	// Arrange - 1.13-1.11 is slightly under 0.02 in float64
	engine := decision.NewEngine()

	// Act
	result := engine.Decide(decision.Input{
		Vehicle:        sedan(t),
		Anchor:         vehicle.PercentAnchor(25),
		TodayPrice:     ptr(1.11),
		PredictedPrice: ptr(1.13),
	})

	// Assert
	require.NotNil(t, result.PriceTrend)
	assert.Equal(t, forecast.TrendRising, *result.PriceTrend)
	assert.Equal(t, decision.VerdictFill, result.Verdict)
	assert.Equal(t, decision.SeverityMedium, result.Severity)
	assert.Equal(t, 4, result.Rule)
}

func TestDecide_MissingOptionalInputsSkipRules(t *testing.T) {
	engine := decision.NewEngine()

	result := engine.Decide(decision.Input{
		Vehicle: sedan(t),
		Anchor:  vehicle.PercentAnchor(30),
	})

	assert.Equal(t, decision.VerdictNoAction, result.Verdict)
	assert.Nil(t, result.PriceTrend)
	assert.Nil(t, result.PriceDelta)
	assert.Nil(t, result.PlannedTripKm)
	assert.Equal(t, "You have approximately 125 km of range remaining. No immediate action needed.", result.Explanation)
}

func TestDecide_CriticalRuleDominates(t *testing.T) {
	engine := decision.NewEngine()

	result := engine.Decide(decision.Input{
		Vehicle:        sedan(t),
		Anchor:         vehicle.PercentAnchor(5),
		PlannedTripKm:  ptr(1000),
		TodayPrice:     ptr(1.40),
		PredictedPrice: ptr(1.60),
	})

	assert.Equal(t, 1, result.Rule)
	assert.Equal(t, decision.SeverityHigh, result.Severity)
}

func TestDecide_DistanceAnchor(t *testing.T) {
	engine := decision.NewEngine()

	farResult := engine.Decide(decision.Input{Vehicle: sedan(t), Anchor: vehicle.DistanceAnchor(700)})
	nearResult := engine.Decide(decision.Input{Vehicle: sedan(t), Anchor: vehicle.DistanceAnchor(262.5)})

	assert.Equal(t, 0.0, farResult.LitersRemaining)
	assert.Equal(t, decision.VerdictFill, farResult.Verdict)
	assert.Equal(t, 29.0, nearResult.LitersRemaining)
	assert.Equal(t, 300.0, nearResult.RangeKm)
	assert.Equal(t, decision.VerdictNoAction, nearResult.Verdict)
}

func TestDecide_RoundingDoesNotAffectRules(t *testing.T) {
	// Arrange - raw range is 30.4 km which displays as 30 but is above the critical limit
	engine := decision.NewEngine()
	profile, err := vehicle.NewProfile("compact", 100, 10, 0)
	require.NoError(t, err)

	// Act
	result := engine.Decide(decision.Input{
		Vehicle: profile,
		Anchor:  vehicle.PercentAnchor(3.04),
	})

	// Assert
	assert.Equal(t, 30.0, result.RangeKm)
	assert.Equal(t, decision.VerdictNoAction, result.Verdict)
	assert.Equal(t, 5, result.Rule)
}

func TestDecide_ExactlyOneRuleFires(t *testing.T) {
	engine := decision.NewEngine()
	percents := []float64{0, 5, 10, 20, 35, 50, 75, 100}
	trips := []*float64{nil, ptr(0), ptr(50), ptr(200), ptr(400), ptr(900)}
	prices := [][2]*float64{{nil, nil}, {ptr(1.40), ptr(1.50)}, {ptr(1.50), ptr(1.40)}, {ptr(1.45), ptr(1.46)}}

	for _, pct := range percents {
		for _, trip := range trips {
			for _, price := range prices {
				result := engine.Decide(decision.Input{
					Vehicle:        sedan(t),
					Anchor:         vehicle.PercentAnchor(pct),
					PlannedTripKm:  trip,
					TodayPrice:     price[0],
					PredictedPrice: price[1],
				})

				require.GreaterOrEqual(t, result.Rule, 1)
				require.LessOrEqual(t, result.Rule, 5)
				if result.Rule == 5 {
					assert.Equal(t, decision.VerdictNoAction, result.Verdict)
				} else {
					assert.Equal(t, decision.VerdictFill, result.Verdict)
				}
				if pct <= 10 {
					assert.Equal(t, 1, result.Rule, "critical fuel must dominate at %v%%", pct)
				}
			}
		}
	}
}
