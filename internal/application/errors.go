package application

import "errors"

var (
	// ErrNotFound is returned when the requested event does not exist and the
	// store does not upsert.
	ErrNotFound = errors.New("application: not found")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// NewValidationError returns a ValidationError holding a single field issue.
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.add(field, message)
	return v
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
