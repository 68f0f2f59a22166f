package forecast

import (
	"context"
	"time"
)

// DailyPrice is one recorded regional average price
type DailyPrice struct {
	Region string
	Day    time.Time
	Price  float64
}

// PriceHistoryRepository stores regional daily average prices
type PriceHistoryRepository interface {
	// RecentPrices returns up to limit prices for the region, newest first
	RecentPrices(ctx context.Context, region string, limit int) ([]DailyPrice, error)
	// Record inserts or replaces the price for region and day
	Record(ctx context.Context, price DailyPrice) error
}

// Prices extracts the price values from a series, preserving order
func Prices(series []DailyPrice) []float64 {
	out := make([]float64, len(series))
	for i, p := range series {
		out[i] = p.Price
	}
	return out
}
