package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidValue = errors.New("invalid value")
)

// ErrNotFound is the root of every entity lookup failure.
var ErrNotFound = errors.New("not found")

// Sentinel errors for entity lookups. All of them match ErrNotFound.
var (
	ErrDepartmentNotFound = fmt.Errorf("department %w", ErrNotFound)
	ErrEmployeeNotFound   = fmt.Errorf("employee %w", ErrNotFound)
	ErrVendorNotFound     = fmt.Errorf("vendor %w", ErrNotFound)
	ErrExpenseNotFound    = fmt.Errorf("expense %w", ErrNotFound)
	ErrPayrollNotFound    = fmt.Errorf("payroll %w", ErrNotFound)
)

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")

// ErrInvalidReference indicates a foreign key violation (maps to HTTP 422).
var ErrInvalidReference = errors.New("invalid reference")

// ErrArchiveConflict is returned when a concurrent archive run touched the same
// payrolls. Nothing was moved; the run can be retried.
var ErrArchiveConflict = errors.New("archive conflict with concurrent transaction")

// ErrStoreUnavailable indicates the database could not be reached.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrUnknownArchiveSource is returned when an archive entry carries a
// source table with no registered payload kind.
var ErrUnknownArchiveSource = errors.New("unknown archive source table")

// ErrFieldRequired returns an error for a missing required field.
func ErrFieldRequired(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%w: %s exceeds maximum length of %d", ErrInvalidValue, field, maxLen)
}
