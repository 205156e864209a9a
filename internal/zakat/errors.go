package zakat

import "errors"

var (
	// ErrUnknownCategory means the category has no registry entry. It is a
	// configuration gap, not a transient condition: surface it to the
	// caller, never substitute a default rule.
	ErrUnknownCategory = errors.New("UnknownCategory")

	// ErrInvalidDateRange means the haul start date is after the
	// evaluation date.
	ErrInvalidDateRange = errors.New("InvalidDateRange")
)
