package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "fuelio.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "fuelio"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "fuelio"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Solver defaults
	if cfg.Solver.Backend == "" {
		cfg.Solver.Backend = SolverEnumerate
	}
	if cfg.Solver.Timeout == 0 {
		cfg.Solver.Timeout = 10 * time.Second
	}
	if cfg.Solver.CBCPath == "" {
		cfg.Solver.CBCPath = "cbc"
	}
	if cfg.Solver.Address == "" && cfg.Solver.Backend == SolverGRPC {
		cfg.Solver.Address = "localhost:50061"
	}
	if cfg.Solver.RateLimit == 0 {
		cfg.Solver.RateLimit = 5
	}
	if cfg.Solver.Burst == 0 {
		cfg.Solver.Burst = 10
	}
	if cfg.Solver.Breaker.MaxFailures == 0 {
		cfg.Solver.Breaker.MaxFailures = 3
	}
	if cfg.Solver.Breaker.Cooldown == 0 {
		cfg.Solver.Breaker.Cooldown = 30 * time.Second
	}

	// Strategy defaults
	if cfg.Strategy.SearchRadiusKm == 0 {
		cfg.Strategy.SearchRadiusKm = 20
	}
	if cfg.Strategy.ForecastDays == 0 {
		cfg.Strategy.ForecastDays = 7
	}
	if cfg.Strategy.FuelGrade == "" {
		cfg.Strategy.FuelGrade = "regular"
	}
	if cfg.Strategy.Region == "" {
		cfg.Strategy.Region = "default"
	}
	if cfg.Strategy.HistoryDays == 0 {
		cfg.Strategy.HistoryDays = 30
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
