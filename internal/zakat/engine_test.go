package zakat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testRegistry() *StaticRegistry {
	rules := make([]NisabRule, 0, len(Categories()))
	for _, c := range Categories() {
		rules = append(rules, NisabRule{
			Category:  c,
			Threshold: decimal.NewFromInt(14624),
			Rate:      decimal.RequireFromString("0.025"),
			HaulDays:  DefaultHaulDays,
		})
	}
	return NewStaticRegistry(rules)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestIncomeAboveNisabIsWajib(t *testing.T) {
	engine := NewEngine(testRegistry())

	res, err := engine.Evaluate(context.Background(), Request{
		Category: CategoryIncome,
		Inputs: Inputs{
			GrossIncome: dec("50000"),
			EPF:         dec("5000"),
		},
		AsOf: time.Now(),
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if !res.NetAmount.Equal(dec("45000")) {
		t.Fatalf("expected net 45000, got %s", res.NetAmount)
	}
	if res.Status != StatusWajib {
		t.Fatalf("expected wajib, got %s", res.Status)
	}
	if !res.ZakatDue.Equal(dec("1125.00")) {
		t.Fatalf("expected zakat due 1125.00, got %s", res.ZakatDue)
	}
}

func TestBusinessLiabilitiesClampNetToZero(t *testing.T) {
	engine := NewEngine(testRegistry())

	res, err := engine.Evaluate(context.Background(), Request{
		Category: CategoryBusiness,
		Inputs: Inputs{
			Capital:     dec("10000"),
			NetProfit:   dec("2000"),
			Liabilities: dec("15000"),
		},
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if !res.NetAmount.IsZero() {
		t.Fatalf("expected net clamped to 0, got %s", res.NetAmount)
	}
	if res.Status != StatusTidakWajib {
		t.Fatalf("expected tidak_wajib, got %s", res.Status)
	}
	if !res.ZakatDue.IsZero() {
		t.Fatalf("expected zakat due 0, got %s", res.ZakatDue)
	}
}

func TestGoldSilverValuation(t *testing.T) {
	engine := NewEngine(testRegistry())

	res, err := engine.Evaluate(context.Background(), Request{
		Category: CategoryGoldSilver,
		Inputs: Inputs{
			GoldWeightGrams:  dec("50"),
			GoldPricePerGram: dec("300"),
		},
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if !res.NetAmount.Equal(dec("15000")) {
		t.Fatalf("expected net 15000, got %s", res.NetAmount)
	}
	if res.Status != StatusWajib {
		t.Fatalf("expected wajib, got %s", res.Status)
	}
	if !res.ZakatDue.Equal(dec("375.00")) {
		t.Fatalf("expected zakat due 375.00, got %s", res.ZakatDue)
	}
}

func TestSavingsBelowNisabIsTidakWajib(t *testing.T) {
	engine := NewEngine(testRegistry())

	res, err := engine.Evaluate(context.Background(), Request{
		Category: CategorySavings,
		Inputs:   Inputs{SavingsBalance: dec("3500")},
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if res.Status != StatusTidakWajib {
		t.Fatalf("expected tidak_wajib, got %s", res.Status)
	}
	if !res.ZakatDue.IsZero() {
		t.Fatalf("expected zakat due 0, got %s", res.ZakatDue)
	}
}

func TestNetExactlyAtThresholdIsWajib(t *testing.T) {
	engine := NewEngine(testRegistry())

	res, err := engine.Evaluate(context.Background(), Request{
		Category: CategorySavings,
		Inputs:   Inputs{SavingsBalance: dec("14624")},
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if res.Status != StatusWajib {
		t.Fatalf("net == threshold must be wajib, got %s", res.Status)
	}
	if !res.ZakatDue.Equal(dec("365.60")) {
		t.Fatalf("expected zakat due 365.60, got %s", res.ZakatDue)
	}
}

func TestIncompleteHaulGatesWajib(t *testing.T) {
	engine := NewEngine(testRegistry())
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := asOf.AddDate(0, 0, -100)

	res, err := engine.Evaluate(context.Background(), Request{
		Category:      CategoryIncome,
		Inputs:        Inputs{GrossIncome: dec("20000")},
		HaulStartDate: &start,
		AsOf:          asOf,
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if res.Status != StatusTidakWajib {
		t.Fatalf("incomplete haul must gate wajib, got %s", res.Status)
	}
	if !res.ZakatDue.IsZero() {
		t.Fatalf("expected zakat due 0 under incomplete haul, got %s", res.ZakatDue)
	}
	if res.Haul == nil {
		t.Fatal("expected haul window in result")
	}
	if res.Haul.IsComplete {
		t.Fatal("expected haul incomplete after 100 of 355 days")
	}
	if res.Haul.RemainingDays != 255 {
		t.Fatalf("expected 255 remaining days, got %d", res.Haul.RemainingDays)
	}
}

func TestCompletedHaulAllowsWajib(t *testing.T) {
	engine := NewEngine(testRegistry())
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := asOf.AddDate(0, 0, -400)

	res, err := engine.Evaluate(context.Background(), Request{
		Category:      CategorySavings,
		Inputs:        Inputs{SavingsBalance: dec("20000")},
		HaulStartDate: &start,
		AsOf:          asOf,
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if res.Status != StatusWajib {
		t.Fatalf("expected wajib with completed haul, got %s", res.Status)
	}
	if !res.ZakatDue.Equal(dec("500.00")) {
		t.Fatalf("expected zakat due 500.00, got %s", res.ZakatDue)
	}
}

func TestUnknownCategoryFailsWithoutPartialResult(t *testing.T) {
	engine := NewEngine(testRegistry())

	_, err := engine.Evaluate(context.Background(), Request{
		Category: Category("crypto"),
		Inputs:   Inputs{SavingsBalance: dec("99999")},
	})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestFutureHaulStartIsInvalidDateRange(t *testing.T) {
	engine := NewEngine(testRegistry())
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := asOf.AddDate(0, 0, 10)

	_, err := engine.Evaluate(context.Background(), Request{
		Category:      CategorySavings,
		Inputs:        Inputs{SavingsBalance: dec("20000")},
		HaulStartDate: &start,
		AsOf:          asOf,
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestFutureStartRejectedWithoutHaulRequirement(t *testing.T) {
	registry := NewStaticRegistry([]NisabRule{{
		Category:  CategorySavings,
		Threshold: decimal.NewFromInt(1000),
		Rate:      decimal.RequireFromString("0.025"),
		HaulDays:  0,
	}})
	engine := NewEngine(registry)

	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := asOf.AddDate(0, 0, 10)

	_, err := engine.Evaluate(context.Background(), Request{
		Category:      CategorySavings,
		Inputs:        Inputs{SavingsBalance: dec("20000")},
		HaulStartDate: &start,
		AsOf:          asOf,
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	// A past start date against the same rule is trivially complete.
	past := asOf.AddDate(0, 0, -10)
	res, err := engine.Evaluate(context.Background(), Request{
		Category:      CategorySavings,
		Inputs:        Inputs{SavingsBalance: dec("20000")},
		HaulStartDate: &past,
		AsOf:          asOf,
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Status != StatusWajib {
		t.Fatalf("expected wajib, got %s", res.Status)
	}
	if res.Haul == nil || !res.Haul.IsComplete {
		t.Fatal("expected a complete haul window")
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	engine := NewEngine(testRegistry())
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := asOf.AddDate(0, 0, -360)

	req := Request{
		Category: CategoryShares,
		Inputs: Inputs{
			ShareValue:        dec("17500.55"),
			DividendsReceived: dec("123.45"),
		},
		HaulStartDate: &start,
		AsOf:          asOf,
	}

	first, err := engine.Evaluate(context.Background(), req)
	if err != nil {
		t.Fatalf("first evaluate: %v", err)
	}
	second, err := engine.Evaluate(context.Background(), req)
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}

	if first.Status != second.Status ||
		!first.NetAmount.Equal(second.NetAmount) ||
		!first.ZakatDue.Equal(second.ZakatDue) ||
		first.Haul.RemainingDays != second.Haul.RemainingDays {
		t.Fatalf("evaluations diverged: %+v vs %+v", first, second)
	}
}

func TestZakatDueRoundsHalfUp(t *testing.T) {
	registry := NewStaticRegistry([]NisabRule{{
		Category:  CategorySavings,
		Threshold: decimal.NewFromInt(1000),
		Rate:      dec("0.025"),
	}})
	engine := NewEngine(registry)

	// 14700.10 * 0.025 = 367.5025 -> 367.50; 14700.30 * 0.025 = 367.5075 -> 367.51
	cases := []struct {
		balance string
		due     string
	}{
		{"14700.10", "367.50"},
		{"14700.30", "367.51"},
		{"14700.20", "367.51"}, // exact half rounds up, not to even
	}

	for _, tc := range cases {
		res, err := engine.Evaluate(context.Background(), Request{
			Category: CategorySavings,
			Inputs:   Inputs{SavingsBalance: dec(tc.balance)},
		})
		if err != nil {
			t.Fatalf("evaluate %s: %v", tc.balance, err)
		}
		if !res.ZakatDue.Equal(dec(tc.due)) {
			t.Fatalf("balance %s: expected zakat due %s, got %s", tc.balance, tc.due, res.ZakatDue)
		}
	}
}
