// Package errors defines the error taxonomy used across gdchart.
//
// AppError carries a coarse ErrorType (parsing, validation, storage, ...) and
// wraps the underlying cause. RowError pinpoints a coercion failure in the
// input file by data row and column. Sentinel errors are matched with Is.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel errors for the load pipeline.
var (
	ErrInvalidDate   = stderrors.New("invalid date")
	ErrInvalidNumber = stderrors.New("invalid number")
	ErrInvalidFlag   = stderrors.New("invalid home/away flag")
	ErrMissingColumn = stderrors.New("missing required column")
	ErrUnsortedInput = stderrors.New("records not in ascending date order")
	ErrNoRecords     = stderrors.New("no match records")
	ErrNoInput       = stderrors.New("no input file")
)

// RowError reports a field that could not be coerced in a specific data row.
type RowError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q, value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// NewRowError wraps cause with the row and column it was found at.
func NewRowError(row int, column, value string, cause error) *RowError {
	return &RowError{Row: row, Column: column, Value: value, Err: cause}
}

// Is, As and Join re-export the standard library helpers so callers only
// need to import this package.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

func Join(errs ...error) error { return stderrors.Join(errs...) }

// New mirrors the standard library constructor.
func New(text string) error { return stderrors.New(text) }
