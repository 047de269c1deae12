package errors

import (
	"errors"
	"fmt"
)

// Base error types
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyInput      = errors.New("empty input")
	ErrInvalidRegistry = errors.New("invalid registry")
	ErrNotFound        = errors.New("not found")
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRegistry   ErrorType = "registry"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeInternal   ErrorType = "internal"
)

// ImportError is a structured error for import analysis operations
type ImportError struct {
	Type   ErrorType
	Op     string // Operation that failed (e.g., "analyze_headers", "load_registry")
	Header string // Raw header involved, if applicable
	Err    error  // Underlying error
}

func (e *ImportError) Error() string {
	if e.Header != "" {
		return fmt.Sprintf("%s failed on column %q: %v", e.Op, e.Header, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is interface
func (e *ImportError) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check base error types against the category first
	switch target {
	case ErrInvalidRegistry:
		if e.Type == ErrorTypeRegistry {
			return true
		}
	}

	// Check wrapped error
	return errors.Is(e.Err, target)
}

// NewImportError creates a new ImportError
func NewImportError(errorType ErrorType, op string, err error) *ImportError {
	return &ImportError{
		Type: errorType,
		Op:   op,
		Err:  err,
	}
}

// WithHeader adds the offending raw header to the error
func (e *ImportError) WithHeader(header string) *ImportError {
	e.Header = header
	return e
}

// Helper functions

// WrapValidationError wraps an input validation error with context
func WrapValidationError(op string, err error) error {
	return NewImportError(ErrorTypeValidation, op, err)
}

// WrapRegistryError wraps a registry configuration error with context
func WrapRegistryError(op string, err error) error {
	return NewImportError(ErrorTypeRegistry, op, err)
}

// WrapStorageError wraps a corpus storage error with context
func WrapStorageError(op string, err error) error {
	return NewImportError(ErrorTypeStorage, op, err)
}

// IsValidationError checks if an error is an input validation error
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var impErr *ImportError
	if errors.As(err, &impErr) {
		return impErr.Type == ErrorTypeValidation
	}

	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrEmptyInput)
}
