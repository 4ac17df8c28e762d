package model

import "errors"

var (
	// ErrInvalidEmployee is returned when a record violates the Employee invariants
	// (non-positive id or salary).
	ErrInvalidEmployee = errors.New("invalid employee")

	// ErrMalformedRecord is returned when an input line cannot be split into
	// the expected employee columns or a column is not numeric.
	ErrMalformedRecord = errors.New("malformed record")
)
