package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
)

// MockStationRepository is a test double for station.Repository
type MockStationRepository struct {
	mu       sync.RWMutex
	stations map[string]*station.GasStation
	// Boxes records every bounding box passed to FindWithin
	Boxes []shared.BoundingBox
	err   error
}

// NewMockStationRepository creates a mock holding the given stations
func NewMockStationRepository(stations ...*station.GasStation) *MockStationRepository {
	m := &MockStationRepository{stations: make(map[string]*station.GasStation)}
	for _, s := range stations {
		m.stations[s.ID] = s.Clone()
	}
	return m
}

// SetError makes every lookup fail with err
func (m *MockStationRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// FindByID retrieves a station by ID
func (m *MockStationRepository) FindByID(ctx context.Context, id string) (*station.GasStation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.stations[id]
	if !ok {
		return nil, fmt.Errorf("station not found: %s", id)
	}
	return s.Clone(), nil
}

// FindWithin returns the stations inside box, ordered by ID
func (m *MockStationRepository) FindWithin(ctx context.Context, box shared.BoundingBox) ([]*station.GasStation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Boxes = append(m.Boxes, box)
	if m.err != nil {
		return nil, m.err
	}
	return m.filter(box.Contains), nil
}

// FindNear returns stations within 50 km of center, ordered by ID
func (m *MockStationRepository) FindNear(ctx context.Context, center shared.GeoPoint) ([]*station.GasStation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	return m.filter(func(p shared.GeoPoint) bool { return center.DistanceTo(p) <= 50 }), nil
}

// Save inserts or replaces a station
func (m *MockStationRepository) Save(ctx context.Context, s *station.GasStation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.stations[s.ID] = s.Clone()
	return nil
}

func (m *MockStationRepository) filter(keep func(shared.GeoPoint) bool) []*station.GasStation {
	out := make([]*station.GasStation, 0, len(m.stations))
	for _, s := range m.stations {
		if keep(s.Location) {
			out = append(out, s.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
