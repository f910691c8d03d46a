package common

import (
	"fmt"

	domainerrors "github.com/incognito1025/fauna-go/internal/domain/errors/domain"
)

// ServiceError represents a service-level error with context
type ServiceError struct {
	Operation string
	Cause     error
}

// Error implements the error interface
func (e ServiceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error
func (e ServiceError) Unwrap() error {
	return e.Cause
}

// WrapServiceError wraps an error with service operation context
func WrapServiceError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return ServiceError{
		Operation: operation,
		Cause:     err,
	}
}

// Common error operations for consistent messaging
const (
	OpLoadCollection   = "load collection"
	OpSaveCollection   = "save collection"
	OpLoadPointTable   = "load point table"
	OpInitStore        = "initialize storage"
	OpCreateAnimal     = "create animal"
	OpUpdateAnimal     = "update animal"
	OpDestroyAnimal    = "destroy animal"
	OpShowAnimal       = "show animal"
	OpGenerateAnimalID = "generate animal ID"
)

// ValidationError represents a validation error with field details
type ValidationError struct {
	Field   string
	Message string
	Value   string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error on field '%s': %s (value: %s)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets callers match any validation failure with domainerrors.ErrInvalidInput.
func (e ValidationError) Unwrap() error {
	return domainerrors.ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) ValidationError {
	return ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewValidationErrorWithValue creates a new ValidationError with a value
func NewValidationErrorWithValue(field, message, value string) ValidationError {
	return ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}
