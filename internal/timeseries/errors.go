package timeseries

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema is returned when a dataset lacks the metadata columns or
	// has no date columns after them.
	ErrSchema = errors.New("unexpected dataset schema")

	// ErrDateHeader is returned when a series column header is not a date.
	ErrDateHeader = errors.New("invalid date header")

	// ErrCountryNotFound is returned when no row matches a country name.
	ErrCountryNotFound = errors.New("country not found")

	// ErrAmbiguousCountry is returned when several rows match a country name
	// and the selection policy refuses to combine them.
	ErrAmbiguousCountry = errors.New("country matches several rows")

	// ErrUnknownPolicy is returned for an unrecognised ambiguity policy.
	ErrUnknownPolicy = errors.New("unknown ambiguity policy")
)

// DateHeaderError reports the series column whose header failed to parse.
type DateHeaderError struct {
	Column int
	Header string
	Err    error
}

func (e *DateHeaderError) Error() string {
	return fmt.Sprintf("column %d: header %q is not a date: %v", e.Column, e.Header, e.Err)
}

func (e *DateHeaderError) Unwrap() []error {
	return []error{ErrDateHeader, e.Err}
}
