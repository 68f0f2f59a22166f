package shared

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading vehicle: %w", NewValidationError("tank_size_liters", "must be positive"))

	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(NewPlanningError("model", "no stations")))
	assert.Equal(t, "model: no stations", NewPlanningError("model", "no stations").Error())
}
