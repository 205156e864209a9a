package zakat

import (
	"math"
	"time"
)

// HaulWindow is the derived holding-period state at a single evaluation
// instant. It is never persisted as mutable state: callers store the
// start date and recompute the window against the current clock.
type HaulWindow struct {
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	RemainingDays int       `json:"remaining_days"`
	IsComplete    bool      `json:"is_complete"`
}

// EvaluateHaul computes the holding-period window for a start date and
// a required haul length in calendar days, as of the given instant.
// Fails with ErrInvalidDateRange when the start date is in the future.
func EvaluateHaul(start time.Time, haulDays int, asOf time.Time) (HaulWindow, error) {
	if start.After(asOf) {
		return HaulWindow{}, ErrInvalidDateRange
	}

	end := start.AddDate(0, 0, haulDays)

	remaining := 0
	if asOf.Before(end) {
		// A partial day still counts as a full remaining day.
		remaining = int(math.Ceil(end.Sub(asOf).Hours() / 24))
	}

	return HaulWindow{
		StartDate:     start,
		EndDate:       end,
		RemainingDays: remaining,
		IsComplete:    !asOf.Before(end),
	}, nil
}
