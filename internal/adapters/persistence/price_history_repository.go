package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/parniayzdin/Fuelio/internal/domain/forecast"
)

// GormPriceHistoryRepository implements forecast.PriceHistoryRepository using GORM
type GormPriceHistoryRepository struct {
	db *gorm.DB
}

// NewGormPriceHistoryRepository creates a new GORM regional price repository
func NewGormPriceHistoryRepository(db *gorm.DB) *GormPriceHistoryRepository {
	return &GormPriceHistoryRepository{db: db}
}

// RecentPrices returns up to limit prices for the region, newest first
func (r *GormPriceHistoryRepository) RecentPrices(ctx context.Context, region string, limit int) ([]forecast.DailyPrice, error) {
	var models []RegionalPriceModel
	query := r.db.WithContext(ctx).Where("region = ?", region).Order("day DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to get regional prices: %w", err)
	}

	prices := make([]forecast.DailyPrice, 0, len(models))
	for _, m := range models {
		prices = append(prices, forecast.DailyPrice{
			Region: m.Region,
			Day:    m.Day.UTC(),
			Price:  m.AvgPrice,
		})
	}
	return prices, nil
}

// Record inserts or replaces the price for the region and calendar day
func (r *GormPriceHistoryRepository) Record(ctx context.Context, price forecast.DailyPrice) error {
	model := &RegionalPriceModel{
		Region:   price.Region,
		Day:      truncateToDay(price.Day),
		AvgPrice: price.Price,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "region"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"avg_price"}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to record regional price: %w", result.Error)
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
