package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/application/validation"
	"github.com/parniayzdin/Fuelio/internal/domain/shared"
)

type sample struct {
	Percent float64 `json:"current_fuel_percent" validate:"gte=0,lte=100"`
	Grade   string  `json:"fuel_grade" validate:"omitempty,oneof=regular premium diesel"`
	Points  []int   `json:"route" validate:"min=2"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     sample
		wantField string
	}{
		{name: "valid", input: sample{Percent: 50, Points: []int{1, 2}}},
		{name: "percent above range", input: sample{Percent: 120, Points: []int{1, 2}}, wantField: "current_fuel_percent"},
		{name: "unknown grade", input: sample{Grade: "jet", Points: []int{1, 2}}, wantField: "fuel_grade"},
		{name: "short route", input: sample{Points: []int{1}}, wantField: "route"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(tt.input)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *shared.ValidationError
			require.True(t, errors.As(err, &ve), "expected a ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}
