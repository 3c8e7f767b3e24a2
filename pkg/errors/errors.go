package errors

import (
	"errors"
	"fmt"
)

// Common application errors

var (
	// ErrNotFound indicates a requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a missing or invalid admin token
	ErrUnauthorized = errors.New("unauthorized")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource, id string) error {
	return fmt.Errorf("%s %q %w", resource, id, ErrNotFound)
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
