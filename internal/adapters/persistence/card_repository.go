package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/parniayzdin/Fuelio/internal/domain/station"
)

// GormCardRepository implements station.CardRepository and station.ProviderSource
type GormCardRepository struct {
	db *gorm.DB
}

// NewGormCardRepository creates a new GORM credit card repository
func NewGormCardRepository(db *gorm.DB) *GormCardRepository {
	return &GormCardRepository{db: db}
}

// FindAll returns every stored card ordered by provider
func (r *GormCardRepository) FindAll(ctx context.Context) ([]station.CardBenefit, error) {
	var models []CreditCardModel
	if err := r.db.WithContext(ctx).Order("provider").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}

	cards := make([]station.CardBenefit, 0, len(models))
	for _, m := range models {
		var partners []string
		if m.PartnerStations != "" {
			if err := json.Unmarshal([]byte(m.PartnerStations), &partners); err != nil {
				return nil, fmt.Errorf("failed to unmarshal partner stations of %s: %w", m.Provider, err)
			}
		}
		cards = append(cards, station.CardBenefit{
			Provider:           m.Provider,
			GasCashbackPercent: m.GasCashbackPercent,
			PartnerStations:    partners,
		})
	}
	return cards, nil
}

// Save inserts a card or replaces the card with the same provider
func (r *GormCardRepository) Save(ctx context.Context, card station.CardBenefit) error {
	partners, err := json.Marshal(card.PartnerStations)
	if err != nil {
		return fmt.Errorf("failed to marshal partner stations: %w", err)
	}

	model := &CreditCardModel{
		Provider:           card.Provider,
		GasCashbackPercent: card.GasCashbackPercent,
		PartnerStations:    string(partners),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"gas_cashback_percent", "partner_stations"}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save credit card: %w", result.Error)
	}
	return nil
}

// Providers lists the distinct providers of stored cards
func (r *GormCardRepository) Providers(ctx context.Context) ([]string, error) {
	var providers []string
	result := r.db.WithContext(ctx).Model(&CreditCardModel{}).Distinct("provider").Order("provider").Pluck("provider", &providers)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list card providers: %w", result.Error)
	}
	return providers, nil
}
