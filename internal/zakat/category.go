package zakat

// Category identifies a zakat asset class. The set is closed: every
// category must have a calculator and a resolvable nisab rule.
type Category string

const (
	CategoryIncome     Category = "income"
	CategoryBusiness   Category = "business"
	CategoryGoldSilver Category = "gold_silver"
	CategorySavings    Category = "savings"
	CategoryShares     Category = "shares"
	CategoryTakaful    Category = "takaful"
)

// Categories lists every supported category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryIncome,
		CategoryBusiness,
		CategoryGoldSilver,
		CategorySavings,
		CategoryShares,
		CategoryTakaful,
	}
}

// ParseCategory validates a raw category string (e.g. from a request body
// or a stored record). Unrecognized values fail with ErrUnknownCategory.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryIncome, CategoryBusiness, CategoryGoldSilver,
		CategorySavings, CategoryShares, CategoryTakaful:
		return c, nil
	}
	return "", ErrUnknownCategory
}

func (c Category) String() string {
	return string(c)
}
