package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

// MockVehicleRepository is a test double for vehicle.Repository
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[int]*vehicle.Profile
	nextID   int
}

// NewMockVehicleRepository creates an empty mock vehicle repository
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[int]*vehicle.Profile),
		nextID:   1,
	}
}

// AddVehicle stores a profile and returns its assigned ID
func (m *MockVehicleRepository) AddVehicle(p *vehicle.Profile) int {
	_ = m.Save(context.Background(), p)
	return p.ID
}

// FindByID retrieves a vehicle by ID
func (m *MockVehicleRepository) FindByID(ctx context.Context, id int) (*vehicle.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("vehicle not found: %d", id)
	}
	clone := *p
	return &clone, nil
}

// Save inserts or replaces a vehicle
func (m *MockVehicleRepository) Save(ctx context.Context, p *vehicle.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
	}
	clone := *p
	m.vehicles[p.ID] = &clone
	return nil
}

// List returns every vehicle ordered by ID
func (m *MockVehicleRepository) List(ctx context.Context) ([]*vehicle.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*vehicle.Profile, 0, len(m.vehicles))
	for _, p := range m.vehicles {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
