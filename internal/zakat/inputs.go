package zakat

import "github.com/shopspring/decimal"

// Inputs carries the raw figures for a calculation. Only the fields of
// the selected category are read; everything else is ignored. A field
// the caller leaves unset is a zero decimal, which is exactly the
// missing-input-defaults-to-zero rule, so no pointer juggling is needed.
// Negative raw values are accepted as entered; only the aggregated net
// amount is clamped.
type Inputs struct {
	// income
	GrossIncome      decimal.Decimal `json:"gross_income"`
	EPF              decimal.Decimal `json:"epf"`
	SOCSO            decimal.Decimal `json:"socso"`
	ZakatAlreadyPaid decimal.Decimal `json:"zakat_already_paid"`

	// business
	Capital     decimal.Decimal `json:"capital"`
	NetProfit   decimal.Decimal `json:"net_profit"`
	Liabilities decimal.Decimal `json:"liabilities"`

	// gold_silver
	GoldWeightGrams    decimal.Decimal `json:"gold_weight_g"`
	GoldPricePerGram   decimal.Decimal `json:"gold_price_per_g"`
	SilverWeightGrams  decimal.Decimal `json:"silver_weight_g"`
	SilverPricePerGram decimal.Decimal `json:"silver_price_per_g"`

	// savings
	SavingsBalance decimal.Decimal `json:"savings_balance"`

	// shares
	ShareValue        decimal.Decimal `json:"share_value"`
	DividendsReceived decimal.Decimal `json:"dividends_received"`

	// takaful
	PolicyValue  decimal.Decimal `json:"policy_value"`
	PremiumsPaid decimal.Decimal `json:"premiums_paid"`
}
