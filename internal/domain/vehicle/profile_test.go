package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
)

func newSedan(t *testing.T) *Profile {
	t.Helper()
	p, err := NewProfile("sedan", 50, 8, 0.1)
	require.NoError(t, err)
	return p
}

func TestNewProfile_Validation(t *testing.T) {
	tests := []struct {
		name       string
		tank       float64
		efficiency float64
		reserve    float64
		field      string
	}{
		{"zero tank", 0, 8, 0.1, "tank_size_liters"},
		{"negative efficiency", 50, -1, 0.1, "efficiency_l_per_100km"},
		{"reserve of a full tank", 50, 8, 1, "reserve_fraction"},
		{"negative reserve", 50, 8, -0.1, "reserve_fraction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProfile("bad", tt.tank, tt.efficiency, tt.reserve)

			var ve *shared.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestRemainingLiters_Anchors(t *testing.T) {
	p := newSedan(t)

	assert.Equal(t, 25.0, p.RemainingLiters(PercentAnchor(50)))
	assert.Equal(t, 42.0, p.RemainingLiters(DistanceAnchor(100)))
	assert.Equal(t, 0.0, p.RemainingLiters(DistanceAnchor(1000)))
	assert.Equal(t, 25.0, p.RemainingLiters(FuelAnchor{Type: AnchorPercent}))
	assert.Equal(t, 25.0, p.RemainingLiters(FuelAnchor{}))
}

func TestUsableRangeKm_ExcludesReserve(t *testing.T) {
	p := newSedan(t)

	assert.InDelta(t, 250.0, p.UsableRangeKm(25), 1e-9)
	assert.Equal(t, 0.0, p.UsableRangeKm(5))
	assert.Equal(t, 0.0, p.UsableRangeKm(2))
}

func TestUsableRangeKm_IsMonotonic(t *testing.T) {
	p := newSedan(t)

	previous := -1.0
	for liters := 0.0; liters <= p.TankLiters; liters += 0.5 {
		current := p.UsableRangeKm(liters)
		assert.GreaterOrEqual(t, current, previous)
		previous = current
	}
}

func TestFuel_ClampsToTank(t *testing.T) {
	p := newSedan(t)

	assert.Equal(t, 50.0, p.Fuel(80).Current)
	assert.Equal(t, 0.0, p.Fuel(-3).Current)
	assert.Equal(t, 5.0, p.ReserveLiters())
}

func TestParseAnchorType(t *testing.T) {
	anchor, ok := ParseAnchorType("distance")
	assert.True(t, ok)
	assert.Equal(t, AnchorDistanceSinceFill, anchor)

	_, ok = ParseAnchorType("vibes")
	assert.False(t, ok)
}
