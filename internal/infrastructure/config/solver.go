package config

import "time"

// Solver backends
const (
	SolverEnumerate = "enumerate"
	SolverCBC       = "cbc"
	SolverGRPC      = "grpc"
	SolverNone      = "none"
)

// SolverConfig selects and tunes the exact fuel stop solver
type SolverConfig struct {
	// Backend: enumerate (in-process), cbc (external binary), grpc (solver-service), none
	Backend string `mapstructure:"backend" validate:"required,oneof=enumerate cbc grpc none"`

	// Hard limit for a single solve; expiry falls back to the greedy planner
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// CBC binary name or path
	CBCPath string `mapstructure:"cbc_path"`

	// Solver service address (host:port), required for the grpc backend
	Address string `mapstructure:"address" validate:"required_if=Backend grpc"`

	// Remote calls per second and burst
	RateLimit float64 `mapstructure:"rate_limit" validate:"gt=0"`
	Burst     int     `mapstructure:"burst" validate:"min=1"`

	Breaker BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig configures the circuit breaker around the remote solver
type BreakerConfig struct {
	MaxFailures int           `mapstructure:"max_failures" validate:"min=1"`
	Cooldown    time.Duration `mapstructure:"cooldown" validate:"required"`
}
