package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestSetDefaults_FillsEverySection(t *testing.T) {
	// Arrange
	cfg := &config.Config{}

	// Act
	config.SetDefaults(cfg)

	// Assert
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "fuelio.db", cfg.Database.Path)
	assert.Equal(t, config.SolverEnumerate, cfg.Solver.Backend)
	assert.Equal(t, 10*time.Second, cfg.Solver.Timeout)
	assert.Equal(t, "cbc", cfg.Solver.CBCPath)
	assert.Equal(t, 20.0, cfg.Strategy.SearchRadiusKm)
	assert.Equal(t, 7, cfg.Strategy.ForecastDays)
	assert.Equal(t, "regular", cfg.Strategy.FuelGrade)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.NoError(t, config.ValidateConfig(cfg))
}

func TestSetDefaults_GRPCBackendGetsAddress(t *testing.T) {
	cfg := &config.Config{Solver: config.SolverConfig{Backend: config.SolverGRPC}}

	config.SetDefaults(cfg)

	assert.Equal(t, "localhost:50061", cfg.Solver.Address)
}

func TestLoadConfig_ReadsFileAndEnvironment(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
solver:
  backend: cbc
  timeout: 3s
strategy:
  search_radius_km: 12.5
  region: ontario
`)
	t.Setenv("FUELIO_STRATEGY_FORECAST_DAYS", "5")
	t.Setenv("FUELIO_LOGGING_LEVEL", "debug")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, config.SolverCBC, cfg.Solver.Backend)
	assert.Equal(t, 3*time.Second, cfg.Solver.Timeout)
	assert.Equal(t, 12.5, cfg.Strategy.SearchRadiusKm)
	assert.Equal(t, "ontario", cfg.Strategy.Region)
	assert.Equal(t, 5, cfg.Strategy.ForecastDays)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown backend", body: "solver:\n  backend: magic\n"},
		{name: "unknown grade", body: "strategy:\n  fuel_grade: kerosene\n"},
		{name: "negative radius", body: "strategy:\n  search_radius_km: -1\n"},
		{name: "file output without path", body: "logging:\n  output: file\n"},
		{name: "breaker cooldown below solve timeout", body: "solver:\n  backend: grpc\n  timeout: 20s\n  breaker:\n    cooldown: 5s\n"},
		{name: "relative metrics path", body: "metrics:\n  enabled: true\n  path: metrics\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.body))

			assert.Error(t, err)
		})
	}
}

func TestUserConfigHandler_PersistsPreferences(t *testing.T) {
	// Arrange
	h, err := config.NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)

	// Act
	require.NoError(t, h.SetDefaultVehicle(7))
	require.NoError(t, h.SetDefaultRegion("quebec"))
	loaded, err := h.Load()

	// Assert
	require.NoError(t, err)
	require.NotNil(t, loaded.DefaultVehicleID)
	assert.Equal(t, 7, *loaded.DefaultVehicleID)
	assert.Equal(t, "quebec", loaded.DefaultRegion)

	require.NoError(t, h.Clear())
	cleared, err := h.Load()
	require.NoError(t, err)
	assert.Nil(t, cleared.DefaultVehicleID)
}

func TestValidateConfig_NamesFailingKey(t *testing.T) {
	// Arrange
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Strategy.FuelGrade = "kerosene"

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategy.fuel_grade: failed oneof")
}
