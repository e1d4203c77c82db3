package domain

import (
	"errors"
	"sort"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. start date in the past, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// FieldErrors holds the messages reported for each invalid input field,
// keyed by the JSON field name.
type FieldErrors map[string][]string

// Add appends msg to the list for field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Fields returns the names of all fields with errors, sorted.
func (f FieldErrors) Fields() []string {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ValidationError is a user-facing validation failure. Message is safe to show
// to API clients; Fields optionally points at the offending inputs.
// errors.Is(err, ErrValidation) is true for every *ValidationError.
type ValidationError struct {
	Message string
	Fields  FieldErrors
}

// NewValidationError builds a ValidationError for a single field.
// Pass field == "" for errors that are not tied to one input.
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{Message: message}
	if field != "" {
		v.Fields = FieldErrors{field: {message}}
	}
	return v
}

func (e *ValidationError) Error() string { return e.Message }

// Is makes errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
