package config

// StrategyConfig holds planning defaults applied when a request leaves them unset
type StrategyConfig struct {
	SearchRadiusKm float64 `mapstructure:"search_radius_km" validate:"gt=0"`
	ForecastDays   int     `mapstructure:"forecast_days" validate:"min=1,max=30"`
	FuelGrade      string  `mapstructure:"fuel_grade" validate:"required,oneof=regular premium diesel"`

	// Region whose recorded average prices feed the forecast
	Region string `mapstructure:"region" validate:"required"`

	// Number of recorded days loaded for forecasting
	HistoryDays int `mapstructure:"history_days" validate:"min=2"`
}
