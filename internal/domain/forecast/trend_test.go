package forecast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
)

func TestClassifyTrend_Thresholds(t *testing.T) {
	tests := []struct {
		name      string
		today     float64
		predicted float64
		want      forecast.Trend
	}{
		{"exactly plus threshold is rising", 1.00, 1.02, forecast.TrendRising},
		{"exactly minus threshold is falling", 1.00, 0.98, forecast.TrendFalling},
		{"two cent rise from 1.11 is rising", 1.11, 1.13, forecast.TrendRising},
		{"two cent rise from 1.36 is rising", 1.36, 1.38, forecast.TrendRising},
		{"two cent drop to 1.11 is falling", 1.13, 1.11, forecast.TrendFalling},
		{"just below plus threshold is flat", 1.00, 1.0199, forecast.TrendFlat},
		{"just above minus threshold is flat", 1.00, 0.9801, forecast.TrendFlat},
		{"unchanged is flat", 1.45, 1.45, forecast.TrendFlat},
		{"large rise", 1.40, 1.50, forecast.TrendRising},
		{"large drop", 1.50, 1.30, forecast.TrendFalling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := forecast.ClassifyTrend(tt.today, tt.predicted)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyTrend_ExactThresholdIsInclusive(t *testing.T) {
	delta, rising := forecast.ClassifyTrend(0, forecast.TrendThreshold)
	_, falling := forecast.ClassifyTrend(0, -forecast.TrendThreshold)

	assert.Equal(t, forecast.TrendThreshold, delta)
	assert.Equal(t, forecast.TrendRising, rising)
	assert.Equal(t, forecast.TrendFalling, falling)
}

func TestClassifyOptional_MissingInput(t *testing.T) {
	today := 1.40

	delta, trend := forecast.ClassifyOptional(&today, nil)

	assert.Nil(t, delta)
	assert.Nil(t, trend)
}

func TestClassifyOptional_BothPresent(t *testing.T) {
	today, predicted := 1.40, 1.50

	delta, trend := forecast.ClassifyOptional(&today, &predicted)

	if assert.NotNil(t, delta) && assert.NotNil(t, trend) {
		assert.InDelta(t, 0.10, *delta, 1e-9)
		assert.Equal(t, forecast.TrendRising, *trend)
	}
}

func TestClassifyTrend_EveryTwoCentMoveCrossesThreshold(t *testing.T) {
	for cents := 100; cents < 300; cents++ {
		today := float64(cents) / 100
		up := float64(cents+2) / 100
		down := float64(cents-2) / 100

		_, rising := forecast.ClassifyTrend(today, up)
		_, falling := forecast.ClassifyTrend(today, down)

		assert.Equal(t, forecast.TrendRising, rising, "%.2f -> %.2f", today, up)
		assert.Equal(t, forecast.TrendFalling, falling, "%.2f -> %.2f", today, down)
	}
}
