package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

// ValidationError reports an input that violates a domain invariant.
// These are the caller's responsibility and are surfaced immediately.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err (or anything it wraps) is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Planning errors

// PlanningError is raised when a fuel plan cannot be formulated at all,
// as opposed to degraded outcomes which are returned as typed results.
type PlanningError struct {
	*DomainError
	Stage string
}

func NewPlanningError(stage, message string) *PlanningError {
	return &PlanningError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s: %s", stage, message)},
		Stage:       stage,
	}
}
