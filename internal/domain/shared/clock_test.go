package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayName_OffsetsFromClock(t *testing.T) {
	// 2024-01-01 was a Monday
	clock := FixedClock{At: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}

	assert.Equal(t, "Monday", DayName(clock, 0))
	assert.Equal(t, "Wednesday", DayName(clock, 2))
	assert.Equal(t, "Monday", DayName(clock, 7))
}
