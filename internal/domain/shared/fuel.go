package shared

import "fmt"

// Fuel represents an immutable tank state in liters
type Fuel struct {
	Current  float64
	Capacity float64
}

// NewFuel creates a new fuel value object with validation
func NewFuel(current, capacity float64) (*Fuel, error) {
	if capacity <= 0 {
		return nil, NewValidationError("capacity", "must be positive")
	}
	if current < 0 {
		return nil, NewValidationError("current", "cannot be negative")
	}
	if current > capacity {
		return nil, NewValidationError("current", "cannot exceed capacity")
	}

	return &Fuel{
		Current:  current,
		Capacity: capacity,
	}, nil
}

// Percentage returns fuel as percentage of capacity (0-100)
func (f *Fuel) Percentage() float64 {
	if f.Capacity == 0 {
		return 0.0
	}
	return f.Current / f.Capacity * 100.0
}

// Consume returns new Fuel with liters burned, floored at an empty tank
func (f *Fuel) Consume(liters float64) *Fuel {
	newCurrent := f.Current - liters
	if newCurrent < 0 {
		newCurrent = 0
	}
	return &Fuel{Current: newCurrent, Capacity: f.Capacity}
}

// Add returns new Fuel with liters added, capped at capacity
func (f *Fuel) Add(liters float64) *Fuel {
	newCurrent := f.Current + liters
	if newCurrent > f.Capacity {
		newCurrent = f.Capacity
	}
	return &Fuel{Current: newCurrent, Capacity: f.Capacity}
}

// Space returns how many liters fit before the tank is full
func (f *Fuel) Space() float64 {
	return f.Capacity - f.Current
}

// Covers checks whether the tank holds at least the required liters
func (f *Fuel) Covers(required float64) bool {
	return f.Current >= required
}

func (f *Fuel) String() string {
	return fmt.Sprintf("Fuel(%.1fL/%.1fL)", f.Current, f.Capacity)
}
