package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/parniayzdin/Fuelio/internal/domain/vehicle"
)

// GormVehicleRepository implements vehicle.Repository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GORM vehicle repository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID retrieves a vehicle profile by ID
func (r *GormVehicleRepository) FindByID(ctx context.Context, id int) (*vehicle.Profile, error) {
	var model VehicleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("vehicle not found: %d", id)
		}
		return nil, fmt.Errorf("failed to find vehicle: %w", result.Error)
	}

	profile, err := vehicle.NewProfile(model.Name, model.TankLiters, model.EfficiencyLPer100Km, model.ReserveFraction)
	if err != nil {
		return nil, fmt.Errorf("stored vehicle %d is invalid: %w", id, err)
	}
	profile.ID = model.ID
	return profile, nil
}

// Save inserts the profile when its ID is zero, otherwise updates it
func (r *GormVehicleRepository) Save(ctx context.Context, profile *vehicle.Profile) error {
	model := &VehicleModel{
		ID:                  profile.ID,
		Name:                profile.Name,
		TankLiters:          profile.TankLiters,
		EfficiencyLPer100Km: profile.EfficiencyLPer100Km,
		ReserveFraction:     profile.ReserveFraction,
	}

	if profile.ID == 0 {
		model.CreatedAt = time.Now().UTC()
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return fmt.Errorf("failed to create vehicle: %w", err)
		}
		profile.ID = model.ID
		return nil
	}

	result := r.db.WithContext(ctx).Model(&VehicleModel{}).Where("id = ?", profile.ID).Updates(map[string]interface{}{
		"name":                   model.Name,
		"tank_size_liters":       model.TankLiters,
		"efficiency_l_per_100km": model.EfficiencyLPer100Km,
		"reserve_fraction":       model.ReserveFraction,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("vehicle not found: %d", profile.ID)
	}
	return nil
}

// List returns every stored vehicle ordered by ID
func (r *GormVehicleRepository) List(ctx context.Context) ([]*vehicle.Profile, error) {
	var models []VehicleModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	profiles := make([]*vehicle.Profile, 0, len(models))
	for _, m := range models {
		p, err := vehicle.NewProfile(m.Name, m.TankLiters, m.EfficiencyLPer100Km, m.ReserveFraction)
		if err != nil {
			return nil, fmt.Errorf("stored vehicle %d is invalid: %w", m.ID, err)
		}
		p.ID = m.ID
		profiles = append(profiles, p)
	}
	return profiles, nil
}
