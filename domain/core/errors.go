package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Validation errors
	ErrMissingColumn = errors.New("required column missing from table")
	ErrEmptyTable    = errors.New("table has no data rows")
)

// NewRunNotFoundError reports a missing archived run by its ID.
func NewRunNotFoundError(id RunID) error {
	return fmt.Errorf("%w %s", ErrRunNotFound, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// NewMissingColumnError reports the offending column by name so callers can
// surface it in the structured error response.
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %q", ErrMissingColumn, column)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsMissingColumnError(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

func IsEmptyTableError(err error) bool {
	return errors.Is(err, ErrEmptyTable)
}
