package shared

import "time"

// Clock abstracts the current time so day-offset reasoning can be tested
type Clock interface {
	Now() time.Time
}

// RealClock reports the system time in UTC
type RealClock struct{}

// Now returns the current system time in UTC
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return RealClock{}
}

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}

// DayName returns the weekday name of today + offset days
func DayName(clock Clock, offset int) string {
	return clock.Now().AddDate(0, 0, offset).Weekday().String()
}
