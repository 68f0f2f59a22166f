package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mmcloughlin/geohash"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
)

const (
	// stored hash precision, about 150 m cells
	geohashPrecision = 7
	// FindNear searches the 4-character cell around the center and its
	// eight neighbours, roughly 60 x 60 km at mid latitudes
	nearPrecision = 4
)

// GormStationRepository implements station.Repository using GORM
type GormStationRepository struct {
	db *gorm.DB
}

// NewGormStationRepository creates a new GORM gas station repository
func NewGormStationRepository(db *gorm.DB) *GormStationRepository {
	return &GormStationRepository{db: db}
}

// FindByID retrieves a station by ID
func (r *GormStationRepository) FindByID(ctx context.Context, id string) (*station.GasStation, error) {
	var model GasStationModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("gas station not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find gas station: %w", result.Error)
	}
	return r.modelToStation(&model)
}

// FindWithin returns stations inside the bounding box
func (r *GormStationRepository) FindWithin(ctx context.Context, box shared.BoundingBox) ([]*station.GasStation, error) {
	var models []GasStationModel
	result := r.db.WithContext(ctx).
		Where("lat BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("lng BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find gas stations within box: %w", result.Error)
	}
	return r.modelsToStations(models)
}

// FindNear returns stations in the geohash cell around center and its neighbours
func (r *GormStationRepository) FindNear(ctx context.Context, center shared.GeoPoint) ([]*station.GasStation, error) {
	cell := geohash.EncodeWithPrecision(center.Lat, center.Lng, nearPrecision)
	cells := append([]string{cell}, geohash.Neighbors(cell)...)

	query := r.db.WithContext(ctx).Where("geohash LIKE ?", cells[0]+"%")
	for _, c := range cells[1:] {
		query = query.Or("geohash LIKE ?", c+"%")
	}

	var models []GasStationModel
	if err := query.Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find gas stations near %s: %w", center, err)
	}
	return r.modelsToStations(models)
}

// Save inserts or replaces a station
func (r *GormStationRepository) Save(ctx context.Context, s *station.GasStation) error {
	prices, err := json.Marshal(s.Prices)
	if err != nil {
		return fmt.Errorf("failed to marshal prices: %w", err)
	}

	model := &GasStationModel{
		ID:        s.ID,
		Name:      s.Name,
		Brand:     s.Brand,
		Address:   s.Address,
		Lat:       s.Location.Lat,
		Lng:       s.Location.Lng,
		Geohash:   geohash.EncodeWithPrecision(s.Location.Lat, s.Location.Lng, geohashPrecision),
		Prices:    string(prices),
		UpdatedAt: time.Now().UTC(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save gas station: %w", result.Error)
	}
	return nil
}

func (r *GormStationRepository) modelsToStations(models []GasStationModel) ([]*station.GasStation, error) {
	stations := make([]*station.GasStation, 0, len(models))
	for i := range models {
		s, err := r.modelToStation(&models[i])
		if err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, nil
}

func (r *GormStationRepository) modelToStation(model *GasStationModel) (*station.GasStation, error) {
	prices := map[station.FuelGrade]float64{}
	if model.Prices != "" {
		if err := json.Unmarshal([]byte(model.Prices), &prices); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prices of %s: %w", model.ID, err)
		}
	}

	return &station.GasStation{
		ID:       model.ID,
		Name:     model.Name,
		Brand:    model.Brand,
		Address:  model.Address,
		Location: shared.GeoPoint{Lat: model.Lat, Lng: model.Lng},
		Prices:   prices,
	}, nil
}
