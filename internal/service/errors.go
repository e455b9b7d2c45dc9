// Package service holds the per-kind business logic: validation, persistence
// and list cache invalidation.
package service

import (
	"errors"
	"fmt"
	"strings"

	"videogames-be/internal/repository"
	"videogames-be/internal/validation"
)

// Sentinel errors mapped to HTTP status codes by the controllers.
var (
	// ErrNotFound indicates no record has the requested id (404).
	ErrNotFound = errors.New("resource not found")
	// ErrConflict indicates the record is still referenced by another one (409).
	ErrConflict = errors.New("resource is still referenced")
	// ErrInvalidCredentials is returned by login for an unknown email or a wrong password (401).
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries every violated constraint of a payload (400).
type ValidationError struct {
	Violations []validation.Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Rule)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func newValidationError(violations ...validation.Violation) error {
	return &ValidationError{Violations: violations}
}

// storageError translates repository errors into service errors.
func storageError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrForeignKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
