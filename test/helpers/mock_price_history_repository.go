package helpers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
)

// MockPriceHistoryRepository is a test double for forecast.PriceHistoryRepository
type MockPriceHistoryRepository struct {
	mu     sync.RWMutex
	prices map[string]map[time.Time]float64
	err    error
}

// NewMockPriceHistoryRepository creates an empty mock price history
func NewMockPriceHistoryRepository() *MockPriceHistoryRepository {
	return &MockPriceHistoryRepository{prices: make(map[string]map[time.Time]float64)}
}

// AddSeries records oldest-to-newest prices on consecutive days ending at last
func (m *MockPriceHistoryRepository) AddSeries(region string, last time.Time, prices ...float64) {
	for i, p := range prices {
		day := last.AddDate(0, 0, i-len(prices)+1)
		_ = m.Record(context.Background(), forecast.DailyPrice{Region: region, Day: day, Price: p})
	}
}

// SetError makes every call fail with err
func (m *MockPriceHistoryRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// RecentPrices returns up to limit prices for region, newest first
func (m *MockPriceHistoryRepository) RecentPrices(ctx context.Context, region string, limit int) ([]forecast.DailyPrice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	out := make([]forecast.DailyPrice, 0, len(m.prices[region]))
	for day, price := range m.prices[region] {
		out = append(out, forecast.DailyPrice{Region: region, Day: day, Price: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.After(out[j].Day) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Record inserts or replaces the price for region and day
func (m *MockPriceHistoryRepository) Record(ctx context.Context, price forecast.DailyPrice) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	day := time.Date(price.Day.Year(), price.Day.Month(), price.Day.Day(), 0, 0, 0, 0, time.UTC)
	if m.prices[price.Region] == nil {
		m.prices[price.Region] = make(map[time.Time]float64)
	}
	m.prices[price.Region][day] = price.Price
	return nil
}
