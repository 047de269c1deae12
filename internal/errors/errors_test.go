package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestImportError_Error(t *testing.T) {
	err := NewImportError(ErrorTypeValidation, "analyze_headers", errors.New("boom"))
	if got := err.Error(); got != `analyze_headers failed: boom` {
		t.Errorf("Error() = %q", got)
	}

	err = err.WithHeader("Agent Name")
	if got := err.Error(); got != `analyze_headers failed on column "Agent Name": boom` {
		t.Errorf("Error() with header = %q", got)
	}
}

func TestImportError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewImportError(ErrorTypeStorage, "add_sample", inner)
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}

func TestImportError_IsRegistryCategory(t *testing.T) {
	err := WrapRegistryError("load_registry", errors.New("duplicate key"))
	if !errors.Is(err, ErrInvalidRegistry) {
		t.Error("registry-typed errors should match ErrInvalidRegistry")
	}
}

func TestImportError_IsWrappedSentinel(t *testing.T) {
	err := WrapValidationError("analyze_headers", fmt.Errorf("no headers: %w", ErrEmptyInput))
	if !errors.Is(err, ErrEmptyInput) {
		t.Error("expected wrapped ErrEmptyInput to be found")
	}
	if errors.Is(err, ErrInvalidRegistry) {
		t.Error("validation error must not match ErrInvalidRegistry")
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(WrapValidationError("op", errors.New("bad"))) {
		t.Error("typed validation error not detected")
	}
	if !IsValidationError(fmt.Errorf("wrap: %w", ErrInvalidInput)) {
		t.Error("wrapped sentinel not detected")
	}
	if IsValidationError(WrapStorageError("op", errors.New("disk"))) {
		t.Error("storage error misclassified as validation")
	}
	if IsValidationError(nil) {
		t.Error("nil is not a validation error")
	}
}
