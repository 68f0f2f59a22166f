package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/parniayzdin/Fuelio/internal/infrastructure/database"
)

// SharedTestDB backs the BDD scenarios that go through real repositories
var SharedTestDB *gorm.DB

// InitializeSharedTestDB opens the database shared by every BDD scenario.
// Call it once from TestMain.
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables empties every table between scenarios
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}
	for _, table := range []string{"regional_prices", "credit_cards", "gas_stations", "vehicles"} {
		if err := SharedTestDB.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// CloseSharedTestDB closes the shared database. Call it from TestMain.
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	return database.Close(SharedTestDB)
}
