package config

import "fmt"

// LoggingConfig configures the zap backend behind the context logger
type LoggingConfig struct {
	// debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// json for machines, text for a console
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// stdout, stderr or file. The CLI writes results to stdout, so logs default to stderr.
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	IncludeCaller bool `mapstructure:"include_caller"`
}

// MetricsConfig controls the Prometheus collectors and the solver-service
// scrape endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path    string `mapstructure:"path"`
}

// Address is the host:port the scrape endpoint listens on
func (m MetricsConfig) Address() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}
