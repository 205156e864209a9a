package zakat

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNetAssetsFormulas(t *testing.T) {
	cases := []struct {
		name       string
		category   Category
		inputs     Inputs
		gross      string
		deductions string
	}{
		{
			name:     "income deducts epf socso and zakat paid",
			category: CategoryIncome,
			inputs: Inputs{
				GrossIncome:      dec("60000"),
				EPF:              dec("6600"),
				SOCSO:            dec("250"),
				ZakatAlreadyPaid: dec("150"),
			},
			gross:      "60000",
			deductions: "7000",
		},
		{
			name:     "business adds capital and profit minus liabilities",
			category: CategoryBusiness,
			inputs: Inputs{
				Capital:     dec("80000"),
				NetProfit:   dec("12000"),
				Liabilities: dec("5000"),
			},
			gross:      "92000",
			deductions: "5000",
		},
		{
			name:     "gold silver values both metals",
			category: CategoryGoldSilver,
			inputs: Inputs{
				GoldWeightGrams:    dec("100"),
				GoldPricePerGram:   dec("310.50"),
				SilverWeightGrams:  dec("500"),
				SilverPricePerGram: dec("3.80"),
			},
			gross:      "32950",
			deductions: "0",
		},
		{
			name:     "savings passes balance through",
			category: CategorySavings,
			inputs:   Inputs{SavingsBalance: dec("12345.67")},
			gross:    "12345.67",
			deductions: "0",
		},
		{
			name:     "shares adds dividends",
			category: CategoryShares,
			inputs: Inputs{
				ShareValue:        dec("25000"),
				DividendsReceived: dec("750"),
			},
			gross:      "25750",
			deductions: "0",
		},
		{
			name:     "takaful adds premiums to policy value",
			category: CategoryTakaful,
			inputs: Inputs{
				PolicyValue:  dec("18000"),
				PremiumsPaid: dec("2400"),
			},
			gross:      "20400",
			deductions: "0",
		},
		{
			name:       "missing inputs default to zero",
			category:   CategoryIncome,
			inputs:     Inputs{GrossIncome: dec("30000")},
			gross:      "30000",
			deductions: "0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gross, deductions, err := netAssets(tc.category, tc.inputs)
			if err != nil {
				t.Fatalf("netAssets: %v", err)
			}
			if !gross.Equal(dec(tc.gross)) {
				t.Fatalf("expected gross %s, got %s", tc.gross, gross)
			}
			if !deductions.Equal(dec(tc.deductions)) {
				t.Fatalf("expected deductions %s, got %s", tc.deductions, deductions)
			}
		})
	}
}

func TestNetAssetsRejectsUnknownCategory(t *testing.T) {
	if _, _, err := netAssets(Category("crypto"), Inputs{}); err != ErrUnknownCategory {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestClampNetNeverNegative(t *testing.T) {
	net := clampNet(dec("1000"), dec("2500"))
	if !net.Equal(decimal.Zero) {
		t.Fatalf("expected 0, got %s", net)
	}

	net = clampNet(dec("2500"), dec("1000"))
	if !net.Equal(dec("1500")) {
		t.Fatalf("expected 1500, got %s", net)
	}
}

func TestNegativeRawInputsAreAcceptedAsEntered(t *testing.T) {
	// Validation is the caller's concern; a negative liability simply
	// raises the net amount.
	gross, deductions, err := netAssets(CategoryBusiness, Inputs{
		Capital:     dec("10000"),
		Liabilities: dec("-500"),
	})
	if err != nil {
		t.Fatalf("netAssets: %v", err)
	}
	if !clampNet(gross, deductions).Equal(dec("10500")) {
		t.Fatalf("expected net 10500, got %s", clampNet(gross, deductions))
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		parsed, err := ParseCategory(string(c))
		if err != nil {
			t.Fatalf("ParseCategory(%s): %v", c, err)
		}
		if parsed != c {
			t.Fatalf("expected %s, got %s", c, parsed)
		}
	}

	if _, err := ParseCategory("paddy"); err != ErrUnknownCategory {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}
