package service

import (
	"errors"
	"testing"
	"time"

	"ezakat/internal/model"
	"ezakat/internal/zakat"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestCalculationRecordRoundTrip(t *testing.T) {
	owner := uuid.New()
	evaluatedAt := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	start := evaluatedAt.AddDate(0, 0, -400)
	window, err := zakat.EvaluateHaul(start, zakat.DefaultHaulDays, evaluatedAt)
	if err != nil {
		t.Fatalf("EvaluateHaul: %v", err)
	}

	result := zakat.Result{
		Category:        zakat.CategoryBusiness,
		GrossAmount:     dec(t, "92000"),
		TotalDeductions: dec(t, "5000"),
		NetAmount:       dec(t, "87000"),
		NisabThreshold:  dec(t, "14624"),
		RateApplied:     dec(t, "0.025"),
		Status:          zakat.StatusWajib,
		ZakatDue:        dec(t, "2175.00"),
		Haul:            &window,
	}
	inputs := zakat.Inputs{
		Capital:     dec(t, "80000"),
		NetProfit:   dec(t, "12000"),
		Liabilities: dec(t, "5000"),
	}

	record, err := toCalculationRecord(result, inputs, owner, evaluatedAt)
	if err != nil {
		t.Fatalf("toCalculationRecord: %v", err)
	}

	if record.UserID != owner {
		t.Fatalf("expected owner %s, got %s", owner, record.UserID)
	}
	if record.Category != "business" {
		t.Fatalf("expected category business, got %s", record.Category)
	}
	if record.HaulStartDate == nil || !record.HaulStartDate.Equal(start) {
		t.Fatalf("expected haul start %s, got %v", start, record.HaulStartDate)
	}

	restored, err := calculationResultFromRecord(record)
	if err != nil {
		t.Fatalf("calculationResultFromRecord: %v", err)
	}

	if restored.Category != result.Category ||
		restored.Status != result.Status ||
		!restored.NetAmount.Equal(result.NetAmount) ||
		!restored.ZakatDue.Equal(result.ZakatDue) {
		t.Fatalf("restored result diverged: %+v vs %+v", restored, result)
	}
	if restored.Haul == nil || !restored.Haul.IsComplete {
		t.Fatalf("expected restored haul complete, got %+v", restored.Haul)
	}

	restoredInputs, err := decodeRecordInputs(record)
	if err != nil {
		t.Fatalf("decodeRecordInputs: %v", err)
	}
	if !restoredInputs.Capital.Equal(inputs.Capital) || !restoredInputs.Liabilities.Equal(inputs.Liabilities) {
		t.Fatalf("restored inputs diverged: %+v", restoredInputs)
	}
}

func TestMalformedRecordIsMappingErrorNotCalculationError(t *testing.T) {
	record := model.ZakatCalculation{
		Category: "crypto", // Never a valid stored category
		Status:   model.StatusWajib,
	}

	_, err := calculationResultFromRecord(record)
	if !errors.Is(err, ErrRecordMapping) {
		t.Fatalf("expected ErrRecordMapping, got %v", err)
	}
	if errors.Is(err, zakat.ErrUnknownCategory) {
		t.Fatal("mapping failure must not surface as a calculation error")
	}
}

func TestRecordWithBogusStatusFailsMapping(t *testing.T) {
	record := model.ZakatCalculation{
		Category: "savings",
		Status:   "maybe",
	}

	if _, err := calculationResultFromRecord(record); !errors.Is(err, ErrRecordMapping) {
		t.Fatalf("expected ErrRecordMapping, got %v", err)
	}
}

func TestRecordInputsBadJSONFailsMapping(t *testing.T) {
	record := model.ZakatCalculation{
		Category: "savings",
		Status:   model.StatusTidakWajib,
		Inputs:   "{not json",
	}

	if _, err := decodeRecordInputs(record); !errors.Is(err, ErrRecordMapping) {
		t.Fatalf("expected ErrRecordMapping, got %v", err)
	}
}
