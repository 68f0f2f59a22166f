package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/parniayzdin/Fuelio/internal/adapters/persistence"
)

// TestRepositories holds real GORM repositories over one test database
type TestRepositories struct {
	DB           *gorm.DB
	Vehicles     *persistence.GormVehicleRepository
	Stations     *persistence.GormStationRepository
	Cards        *persistence.GormCardRepository
	PriceHistory *persistence.GormPriceHistoryRepository
}

// NewTestRepositories creates every repository on a fresh in-memory database
func NewTestRepositories(t *testing.T) *TestRepositories {
	return NewRepositories(NewTestDB(t))
}

// NewRepositories creates every repository on db
func NewRepositories(db *gorm.DB) *TestRepositories {
	return &TestRepositories{
		DB:           db,
		Vehicles:     persistence.NewGormVehicleRepository(db),
		Stations:     persistence.NewGormStationRepository(db),
		Cards:        persistence.NewGormCardRepository(db),
		PriceHistory: persistence.NewGormPriceHistoryRepository(db),
	}
}
