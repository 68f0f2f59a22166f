package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFuel_Validation(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		capacity float64
		field    string
	}{
		{"zero capacity", 0, 0, "capacity"},
		{"negative current", -1, 50, "current"},
		{"overfull", 51, 50, "current"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFuel(tt.current, tt.capacity)

			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestFuel_ConsumeFloorsAtEmpty(t *testing.T) {
	fuel, err := NewFuel(10, 50)
	require.NoError(t, err)

	after := fuel.Consume(25)

	assert.Equal(t, 0.0, after.Current)
	assert.Equal(t, 10.0, fuel.Current, "original value must not change")
}

func TestFuel_AddCapsAtCapacity(t *testing.T) {
	fuel, err := NewFuel(40, 50)
	require.NoError(t, err)

	after := fuel.Add(25)

	assert.Equal(t, 50.0, after.Current)
	assert.Equal(t, 100.0, after.Percentage())
	assert.Equal(t, 10.0, fuel.Space())
}

func TestFuel_Covers(t *testing.T) {
	fuel := &Fuel{Current: 12, Capacity: 50}

	assert.True(t, fuel.Covers(12))
	assert.False(t, fuel.Covers(12.1))
	assert.Equal(t, "Fuel(12.0L/50.0L)", fuel.String())
}
