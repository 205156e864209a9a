package zakat

import "github.com/shopspring/decimal"

// netAssets aggregates the category inputs into gross assets and total
// deductions. The dispatch is exhaustive over the Category enum; an
// unparsed category never reaches here.
func netAssets(category Category, in Inputs) (gross, deductions decimal.Decimal, err error) {
	switch category {
	case CategoryIncome:
		gross = in.GrossIncome
		deductions = in.EPF.Add(in.SOCSO).Add(in.ZakatAlreadyPaid)
	case CategoryBusiness:
		gross = in.Capital.Add(in.NetProfit)
		deductions = in.Liabilities
	case CategoryGoldSilver:
		gross = in.GoldWeightGrams.Mul(in.GoldPricePerGram).
			Add(in.SilverWeightGrams.Mul(in.SilverPricePerGram))
	case CategorySavings:
		gross = in.SavingsBalance
	case CategoryShares:
		gross = in.ShareValue.Add(in.DividendsReceived)
	case CategoryTakaful:
		gross = in.PolicyValue.Add(in.PremiumsPaid)
	default:
		return decimal.Zero, decimal.Zero, ErrUnknownCategory
	}
	return gross, deductions, nil
}

// clampNet applies the single clamp of the whole pipeline: deductions
// can never drive the zakatable base below zero.
func clampNet(gross, deductions decimal.Decimal) decimal.Decimal {
	net := gross.Sub(deductions)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}
