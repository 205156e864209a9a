// Package zakat is the calculation core of the eZakat platform: category
// calculators, the haul (holding period) tracker, and the decision engine
// that compares a net zakatable base against the active nisab rule.
//
// The package is pure. An evaluation has no side effects and touches
// nothing but its inputs and one RuleSource lookup, so identical inputs
// at an identical registry state always produce an identical result and
// evaluations can run concurrently without coordination.
package zakat

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Calculation outcomes.
const (
	StatusWajib      = "wajib"       // obligatory: at/above nisab with haul satisfied
	StatusTidakWajib = "tidak_wajib" // not obligatory
)

// Request is one evaluation ask: a category, its raw inputs, and an
// optional haul start date. AsOf defaults to the current clock; fixing it
// makes evaluations reproducible.
type Request struct {
	Category      Category
	Inputs        Inputs
	HaulStartDate *time.Time
	AsOf          time.Time
}

// Result is the immutable outcome of one evaluation. ZakatDue is rounded
// half-up to 2 decimal places exactly once; every other amount is carried
// unrounded.
type Result struct {
	Category        Category        `json:"category"`
	GrossAmount     decimal.Decimal `json:"gross_amount"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	NisabThreshold  decimal.Decimal `json:"nisab_threshold"`
	RateApplied     decimal.Decimal `json:"rate_applied"`
	Status          string          `json:"status"`
	ZakatDue        decimal.Decimal `json:"zakat_due"`
	Haul            *HaulWindow     `json:"haul,omitempty"`
}

// Wajib reports whether the evaluation found zakat obligatory.
func (r Result) Wajib() bool {
	return r.Status == StatusWajib
}

// Engine is the decision core. It holds no state besides the rule source
// and is safe for concurrent use.
type Engine struct {
	rules RuleSource
}

// NewEngine builds an engine over the given rule source.
func NewEngine(rules RuleSource) *Engine {
	return &Engine{rules: rules}
}

// Evaluate runs one calculation:
//
//  1. resolve the active NisabRule for the category,
//  2. aggregate the category inputs into a net zakatable base,
//  3. evaluate the haul window when a start date is given,
//  4. decide wajib / tidak_wajib,
//  5. compute the amount due.
//
// ErrUnknownCategory and ErrInvalidDateRange propagate to the caller
// distinctly; the engine never papers over either with a zero result.
func (e *Engine) Evaluate(ctx context.Context, req Request) (Result, error) {
	rule, err := e.rules.Lookup(ctx, req.Category)
	if err != nil {
		return Result{}, fmt.Errorf("lookup nisab rule for %q: %w", req.Category, err)
	}

	gross, deductions, err := netAssets(req.Category, req.Inputs)
	if err != nil {
		return Result{}, err
	}
	net := clampNet(gross, deductions)

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	haulSatisfied := true
	var haul *HaulWindow
	if req.HaulStartDate != nil {
		// The start date is validated even when the rule carries no haul
		// requirement; a zero-length haul is trivially complete.
		window, err := EvaluateHaul(*req.HaulStartDate, rule.HaulDays, asOf)
		if err != nil {
			return Result{}, err
		}
		haul = &window
		haulSatisfied = window.IsComplete
	}

	result := Result{
		Category:        req.Category,
		GrossAmount:     gross,
		TotalDeductions: deductions,
		NetAmount:       net,
		NisabThreshold:  rule.Threshold,
		RateApplied:     rule.Rate,
		Status:          StatusTidakWajib,
		ZakatDue:        decimal.Zero,
		Haul:            haul,
	}

	if net.GreaterThanOrEqual(rule.Threshold) && haulSatisfied {
		result.Status = StatusWajib
		// Round half-up, once, at the final figure. decimal.Round
		// rounds half away from zero, which for non-negative money is
		// exactly round-half-up; RoundBank would be wrong here.
		result.ZakatDue = net.Mul(rule.Rate).Round(2)
	}

	return result, nil
}
