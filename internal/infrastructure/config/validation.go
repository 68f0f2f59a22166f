package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks a Config against its validate tags plus the rules that
// span sections.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their config key
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("mapstructure"); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return &Validator{validate: v}
}

// Validate runs tag validation, then the cross-section rules
func (v *Validator) Validate(cfg *Config) error {
	if err := v.validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	var problems []string
	if cfg.Solver.Backend == SolverGRPC && cfg.Solver.Breaker.Cooldown < cfg.Solver.Timeout {
		problems = append(problems, fmt.Sprintf(
			"solver.breaker.cooldown: %s is shorter than solver.timeout %s",
			cfg.Solver.Breaker.Cooldown, cfg.Solver.Timeout))
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		problems = append(problems, fmt.Sprintf("metrics.path: %q must start with '/'", cfg.Metrics.Path))
	}
	if len(problems) > 0 {
		return fmt.Errorf("validation failed:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

// formatValidationError lists every failing key, e.g. "solver.backend"
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		// Namespace is "Config.solver.backend"
		key := e.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		messages = append(messages, fmt.Sprintf("%s: failed %s (value: '%v')", key, e.Tag(), e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
