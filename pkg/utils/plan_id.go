package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePlanID creates a short, human-readable identifier for a planning run.
// Format: {operation}-{subject}-{8charHexUUID}
//
// Example:
//   - Input: operation="optimize", subject="Family Sedan"
//   - Output: "optimize-family-sedan-a3f8e2b1"
//
// An empty subject is omitted.
func GeneratePlanID(operation, subject string) string {
	parts := []string{operation}
	if slug := slugify(subject); slug != "" {
		parts = append(parts, slug)
	}
	parts = append(parts, generateShortUUID())
	return strings.Join(parts, "-")
}

func slugify(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(fields, "-")
}

// generateShortUUID returns the first 8 hex characters of a random UUID
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
