package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/parniayzdin/Fuelio/internal/domain/station"
)

// MockCardRepository is a test double for station.CardRepository and
// station.ProviderSource
type MockCardRepository struct {
	mu    sync.RWMutex
	cards map[string]station.CardBenefit
	err   error
	// ProviderCalls counts calls to Providers
	ProviderCalls int
}

// NewMockCardRepository creates a mock holding the given cards
func NewMockCardRepository(cards ...station.CardBenefit) *MockCardRepository {
	m := &MockCardRepository{cards: make(map[string]station.CardBenefit)}
	for _, c := range cards {
		m.cards[c.Provider] = c
	}
	return m
}

// SetError makes every call fail with err
func (m *MockCardRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// FindAll returns every card ordered by provider
func (m *MockCardRepository) FindAll(ctx context.Context) ([]station.CardBenefit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	out := make([]station.CardBenefit, 0, len(m.cards))
	for _, c := range m.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out, nil
}

// Save inserts or replaces a card by provider
func (m *MockCardRepository) Save(ctx context.Context, card station.CardBenefit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.cards[card.Provider] = card
	return nil
}

// Providers lists the stored providers
func (m *MockCardRepository) Providers(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.ProviderCalls++
	m.mu.Unlock()

	cards, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Provider
	}
	return out, nil
}
