package zakat

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// DefaultHaulDays is the Islamic lunar year in calendar days.
const DefaultHaulDays = 355

// NisabRule is the per-category configuration the engine evaluates
// against: the minimum threshold, the zakat rate as a fraction, and the
// required holding period in days (0 = no haul requirement).
type NisabRule struct {
	Category  Category        `json:"category"`
	Threshold decimal.Decimal `json:"threshold"`
	Rate      decimal.Decimal `json:"rate"`
	HaulDays  int             `json:"haul_days"`
}

// RuleSource resolves the currently active NisabRule for a category.
// The engine re-fetches on every evaluation and never caches a rule
// across calls, so administrative rate changes take effect immediately.
// Lookup must fail with (or wrap) ErrUnknownCategory when no rule exists.
type RuleSource interface {
	Lookup(ctx context.Context, category Category) (NisabRule, error)
}

// StaticRegistry is an in-memory RuleSource. Updates replace the whole
// rule set behind a copy-on-write pointer, so concurrent evaluations
// never observe a torn read.
type StaticRegistry struct {
	mu    sync.RWMutex
	rules map[Category]NisabRule
}

// NewStaticRegistry builds a registry from the given rules.
func NewStaticRegistry(rules []NisabRule) *StaticRegistry {
	r := &StaticRegistry{}
	r.Replace(rules)
	return r
}

func (r *StaticRegistry) Lookup(_ context.Context, category Category) (NisabRule, error) {
	r.mu.RLock()
	rules := r.rules
	r.mu.RUnlock()

	rule, ok := rules[category]
	if !ok {
		return NisabRule{}, ErrUnknownCategory
	}
	return rule, nil
}

// Replace swaps in a full new rule set. In-flight lookups keep reading
// the previous map.
func (r *StaticRegistry) Replace(rules []NisabRule) {
	next := make(map[Category]NisabRule, len(rules))
	for _, rule := range rules {
		next[rule.Category] = rule
	}
	r.mu.Lock()
	r.rules = next
	r.mu.Unlock()
}

// DefaultRules returns the Majlis-published defaults used to seed a fresh
// installation: RM 14,624 nisab (85g gold equivalent) at 2.5% and a one
// lunar year haul for every category.
func DefaultRules() []NisabRule {
	threshold := decimal.NewFromInt(14624)
	rate := decimal.RequireFromString("0.025")

	rules := make([]NisabRule, 0, len(Categories()))
	for _, c := range Categories() {
		rules = append(rules, NisabRule{
			Category:  c,
			Threshold: threshold,
			Rate:      rate,
			HaulDays:  DefaultHaulDays,
		})
	}
	return rules
}
