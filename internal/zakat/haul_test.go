package zakat

import (
	"testing"
	"time"
)

func TestHaulWindowDerivation(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC) // 181 days in

	window, err := EvaluateHaul(start, DefaultHaulDays, asOf)
	if err != nil {
		t.Fatalf("EvaluateHaul: %v", err)
	}

	wantEnd := start.AddDate(0, 0, DefaultHaulDays)
	if !window.EndDate.Equal(wantEnd) {
		t.Fatalf("expected end %s, got %s", wantEnd, window.EndDate)
	}
	if window.IsComplete {
		t.Fatal("expected haul incomplete")
	}
	if window.RemainingDays != 174 {
		t.Fatalf("expected 174 remaining days, got %d", window.RemainingDays)
	}
}

func TestHaulCompleteOnEndDate(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, DefaultHaulDays)

	window, err := EvaluateHaul(start, DefaultHaulDays, end)
	if err != nil {
		t.Fatalf("EvaluateHaul: %v", err)
	}
	if !window.IsComplete {
		t.Fatal("haul must be complete exactly on the end date")
	}
	if window.RemainingDays != 0 {
		t.Fatalf("expected 0 remaining days, got %d", window.RemainingDays)
	}
}

func TestHaulPartialDayCountsAsRemaining(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := start.AddDate(0, 0, DefaultHaulDays).Add(-time.Hour)

	window, err := EvaluateHaul(start, DefaultHaulDays, asOf)
	if err != nil {
		t.Fatalf("EvaluateHaul: %v", err)
	}
	if window.IsComplete {
		t.Fatal("expected haul incomplete one hour before the end date")
	}
	if window.RemainingDays != 1 {
		t.Fatalf("expected 1 remaining day, got %d", window.RemainingDays)
	}
}

func TestHaulFutureStartFails(t *testing.T) {
	asOf := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	start := asOf.AddDate(0, 0, 1)

	if _, err := EvaluateHaul(start, DefaultHaulDays, asOf); err != ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}
