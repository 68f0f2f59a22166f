package persistence

import (
	"time"
)

// VehicleModel represents the vehicles table
type VehicleModel struct {
	ID                  int       `gorm:"column:id;primaryKey;autoIncrement"`
	Name                string    `gorm:"column:name;not null"`
	TankLiters          float64   `gorm:"column:tank_size_liters;not null"`
	EfficiencyLPer100Km float64   `gorm:"column:efficiency_l_per_100km;not null"`
	ReserveFraction     float64   `gorm:"column:reserve_fraction;not null;default:0.1"`
	CreatedAt           time.Time `gorm:"column:created_at;not null"`
}

func (VehicleModel) TableName() string {
	return "vehicles"
}

// GasStationModel represents the gas_stations table
type GasStationModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Brand     string    `gorm:"column:brand"`
	Address   string    `gorm:"column:address"`
	Lat       float64   `gorm:"column:lat;not null;index:idx_gas_stations_lat_lng"`
	Lng       float64   `gorm:"column:lng;not null;index:idx_gas_stations_lat_lng"`
	Geohash   string    `gorm:"column:geohash;size:12;not null;index"`
	Prices    string    `gorm:"column:prices;type:text"` // JSON object grade -> price
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (GasStationModel) TableName() string {
	return "gas_stations"
}

// CreditCardModel represents the credit_cards table
type CreditCardModel struct {
	ID                 int     `gorm:"column:id;primaryKey;autoIncrement"`
	Provider           string  `gorm:"column:provider;uniqueIndex;not null"`
	GasCashbackPercent float64 `gorm:"column:gas_cashback_percent;not null;default:0"`
	PartnerStations    string  `gorm:"column:partner_stations;type:text"` // JSON array as text
}

func (CreditCardModel) TableName() string {
	return "credit_cards"
}

// RegionalPriceModel represents the regional_prices table
type RegionalPriceModel struct {
	ID       int       `gorm:"column:id;primaryKey;autoIncrement"`
	Region   string    `gorm:"column:region;not null;uniqueIndex:idx_regional_prices_region_day"`
	Day      time.Time `gorm:"column:day;not null;uniqueIndex:idx_regional_prices_region_day"`
	AvgPrice float64   `gorm:"column:avg_price;not null"`
}

func (RegionalPriceModel) TableName() string {
	return "regional_prices"
}
