package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a recipe or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the requester does not own the recipe.
	ErrForbidden = errors.New("forbidden")
	// ErrStorageUnavailable is returned when an image could not be stored.
	ErrStorageUnavailable = errors.New("image storage unavailable")
	// ErrConflict is returned when a unique value is already taken.
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials is returned for an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError names the field that made a request invalid.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
