package application

import "testing"

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	var err *ValidationError
	if err.Error() != "" {
		t.Fatalf("expected empty string for nil error, got %q", err.Error())
	}

	empty := &ValidationError{}
	if got := empty.Error(); got != "validation failed" {
		t.Fatalf("expected generic message for empty error, got %q", got)
	}

	withFields := NewValidationError("background", "background is required")
	if got := withFields.Error(); got != "validation failed" {
		t.Fatalf("expected consistent message for populated error, got %q", got)
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	t.Parallel()

	if (&ValidationError{}).HasErrors() {
		t.Fatalf("expected HasErrors to report false for empty error")
	}

	vErr := NewValidationError("prefer", "bad")
	if !vErr.HasErrors() {
		t.Fatalf("expected HasErrors to report true when fields are present")
	}
	if got := vErr.FieldErrors["prefer"]; got != "bad" {
		t.Fatalf("expected field message to be recorded, got %q", got)
	}
}
