package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ezakat/internal/model"
	"ezakat/internal/repository"
	"ezakat/internal/zakat"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateNisabRuleRequest struct {
	Category      string `json:"category" binding:"required,oneof=income business gold_silver savings shares takaful"`
	Threshold     string `json:"threshold" binding:"required"`      // Decimal string, e.g. "14624.00"
	Rate          string `json:"rate" binding:"required"`           // Decimal string, e.g. "0.025"
	HaulDays      *int   `json:"haul_days"`                         // Defaults to 355 when omitted
	EffectiveFrom string `json:"effective_from" binding:"required"` // YYYY-MM-DD
	EffectiveTo   string `json:"effective_to"`                      // YYYY-MM-DD, nullable
	Description   string `json:"description"`
}

type UpdateNisabRuleRequest struct {
	Category      string `json:"category" binding:"required,oneof=income business gold_silver savings shares takaful"`
	Threshold     string `json:"threshold" binding:"required"`
	Rate          string `json:"rate" binding:"required"`
	HaulDays      *int   `json:"haul_days"`
	EffectiveFrom string `json:"effective_from" binding:"required"`
	EffectiveTo   string `json:"effective_to"`
	Description   string `json:"description"`
}

type NisabRuleResponse struct {
	ID            string  `json:"id"`
	Category      string  `json:"category"`
	Threshold     string  `json:"threshold"`
	Rate          string  `json:"rate"`
	HaulDays      int     `json:"haul_days"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to"`
	Description   string  `json:"description"`
	CreatedAt     string  `json:"created_at"`
}

// --- Interface ---

type NisabService interface {
	zakat.RuleSource

	GetNisabRules(ctx context.Context, page, limit int) ([]NisabRuleResponse, int64, error)
	CreateNisabRule(ctx context.Context, req CreateNisabRuleRequest, userID string) (NisabRuleResponse, error)
	UpdateNisabRule(ctx context.Context, id string, req UpdateNisabRuleRequest, userID string) (NisabRuleResponse, error)
	DeleteNisabRule(ctx context.Context, id string, userID string) error
	EnsureDefaults(ctx context.Context) error
}

type nisabService struct {
	repo repository.NisabRuleRepository
	db   *gorm.DB
}

func NewNisabService(repo repository.NisabRuleRepository, db *gorm.DB) NisabService {
	return &nisabService{repo: repo, db: db}
}

// --- RuleSource ---

// Lookup resolves the currently effective rule for a category. Called by
// the engine on every evaluation, so rate changes apply immediately. A
// category without an effective rule is a configuration gap and maps to
// zakat.ErrUnknownCategory.
func (s *nisabService) Lookup(ctx context.Context, category zakat.Category) (zakat.NisabRule, error) {
	row, err := s.repo.FindActiveByCategory(ctx, string(category), time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zakat.NisabRule{}, fmt.Errorf("no effective nisab rule for %q: %w", category, zakat.ErrUnknownCategory)
		}
		return zakat.NisabRule{}, fmt.Errorf("failed to query nisab rule: %w", err)
	}

	return zakat.NisabRule{
		Category:  category,
		Threshold: row.Threshold,
		Rate:      row.Rate,
		HaulDays:  row.HaulDays,
	}, nil
}

// EnsureDefaults seeds the registry on first boot so every category has
// exactly one resolvable rule before the engine runs.
func (s *nisabService) EnsureDefaults(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count nisab rules: %w", err)
	}
	if count > 0 {
		return nil
	}

	effectiveFrom := time.Now().Truncate(24 * time.Hour)
	for _, rule := range zakat.DefaultRules() {
		row := model.NisabRule{
			Category:      string(rule.Category),
			Threshold:     rule.Threshold,
			Rate:          rule.Rate,
			HaulDays:      rule.HaulDays,
			EffectiveFrom: effectiveFrom,
			Description:   "Seeded default",
		}
		if err := s.repo.Create(ctx, &row); err != nil {
			return fmt.Errorf("failed to seed nisab rule for %s: %w", rule.Category, err)
		}
	}
	return nil
}

// --- Admin CRUD ---

func (s *nisabService) GetNisabRules(ctx context.Context, page, limit int) ([]NisabRuleResponse, int64, error) {
	rules, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch nisab rules: %w", err)
	}

	res := make([]NisabRuleResponse, 0, len(rules))
	for _, r := range rules {
		res = append(res, toNisabRuleResponse(r))
	}

	return res, total, nil
}

func (s *nisabService) CreateNisabRule(ctx context.Context, req CreateNisabRuleRequest, userID string) (NisabRuleResponse, error) {
	threshold, rate, effectiveFrom, effectiveTo, err := parseNisabRuleFields(req.Threshold, req.Rate, req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		return NisabRuleResponse{}, err
	}

	haulDays := zakat.DefaultHaulDays
	if req.HaulDays != nil {
		if *req.HaulDays < 0 {
			return NisabRuleResponse{}, errors.New("haul_days must not be negative")
		}
		haulDays = *req.HaulDays
	}

	// Exactly one active rule per category at any time
	if err := s.checkOverlap(ctx, req.Category, effectiveFrom, effectiveTo, nil); err != nil {
		return NisabRuleResponse{}, err
	}

	rule := model.NisabRule{
		Category:      req.Category,
		Threshold:     threshold,
		Rate:          rate,
		HaulDays:      haulDays,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
		Description:   req.Description,
	}

	if err := s.repo.Create(ctx, &rule); err != nil {
		return NisabRuleResponse{}, fmt.Errorf("failed to create nisab rule: %w", err)
	}

	writeAuditLog(ctx, s.db, userID, model.ActionCreateNisabRule, rule.ID.String(), req.Category+" "+threshold.StringFixed(2), req)

	return toNisabRuleResponse(rule), nil
}

func (s *nisabService) UpdateNisabRule(ctx context.Context, id string, req UpdateNisabRuleRequest, userID string) (NisabRuleResponse, error) {
	ruleID, err := uuid.Parse(id)
	if err != nil {
		return NisabRuleResponse{}, fmt.Errorf("invalid nisab rule id: %w", err)
	}

	rule, err := s.repo.FindByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NisabRuleResponse{}, errors.New("nisab rule not found")
		}
		return NisabRuleResponse{}, fmt.Errorf("failed to fetch nisab rule: %w", err)
	}

	threshold, rate, effectiveFrom, effectiveTo, err := parseNisabRuleFields(req.Threshold, req.Rate, req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		return NisabRuleResponse{}, err
	}

	// Validate overlap (exclude self)
	if err := s.checkOverlap(ctx, req.Category, effectiveFrom, effectiveTo, &ruleID); err != nil {
		return NisabRuleResponse{}, err
	}

	rule.Category = req.Category
	rule.Threshold = threshold
	rule.Rate = rate
	if req.HaulDays != nil {
		if *req.HaulDays < 0 {
			return NisabRuleResponse{}, errors.New("haul_days must not be negative")
		}
		rule.HaulDays = *req.HaulDays
	}
	rule.EffectiveFrom = effectiveFrom
	rule.EffectiveTo = effectiveTo
	rule.Description = req.Description

	if err := s.repo.Update(ctx, rule); err != nil {
		return NisabRuleResponse{}, fmt.Errorf("failed to update nisab rule: %w", err)
	}

	writeAuditLog(ctx, s.db, userID, model.ActionUpdateNisabRule, rule.ID.String(), req.Category+" "+threshold.StringFixed(2), req)

	return toNisabRuleResponse(*rule), nil
}

func (s *nisabService) DeleteNisabRule(ctx context.Context, id string, userID string) error {
	ruleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid nisab rule id: %w", err)
	}

	rule, err := s.repo.FindByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("nisab rule not found")
		}
		return fmt.Errorf("failed to fetch nisab rule: %w", err)
	}

	if err := s.repo.Delete(ctx, ruleID); err != nil {
		return fmt.Errorf("failed to delete nisab rule: %w", err)
	}

	writeAuditLog(ctx, s.db, userID, model.ActionDeleteNisabRule, rule.ID.String(), rule.Category+" "+rule.Threshold.StringFixed(2), map[string]string{"deleted_id": id})

	return nil
}

// --- Helpers ---

func parseNisabRuleFields(thresholdStr, rateStr, fromStr, toStr string) (decimal.Decimal, decimal.Decimal, time.Time, *time.Time, error) {
	threshold, err := decimal.NewFromString(thresholdStr)
	if err != nil {
		return decimal.Zero, decimal.Zero, time.Time{}, nil, fmt.Errorf("invalid threshold value: %w", err)
	}
	if threshold.IsNegative() {
		return decimal.Zero, decimal.Zero, time.Time{}, nil, errors.New("threshold must not be negative")
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return decimal.Zero, decimal.Zero, time.Time{}, nil, fmt.Errorf("invalid rate value: %w", err)
	}
	if !rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, decimal.Zero, time.Time{}, nil, errors.New("rate must be a fraction in (0, 1]")
	}

	effectiveFrom, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return decimal.Zero, decimal.Zero, time.Time{}, nil, fmt.Errorf("invalid effective_from date format (expected YYYY-MM-DD): %w", err)
	}

	var effectiveTo *time.Time
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return decimal.Zero, decimal.Zero, time.Time{}, nil, fmt.Errorf("invalid effective_to date format (expected YYYY-MM-DD): %w", err)
		}
		effectiveTo = &t
	}

	return threshold, rate, effectiveFrom, effectiveTo, nil
}

func (s *nisabService) checkOverlap(ctx context.Context, category string, from time.Time, to *time.Time, excludeID *uuid.UUID) error {
	count, err := s.repo.FindOverlapping(ctx, category, from, to, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check overlap: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("a nisab rule for '%s' already exists with overlapping effective dates", category)
	}
	return nil
}

func toNisabRuleResponse(r model.NisabRule) NisabRuleResponse {
	resp := NisabRuleResponse{
		ID:            r.ID.String(),
		Category:      r.Category,
		Threshold:     r.Threshold.StringFixed(2),
		Rate:          r.Rate.StringFixed(4),
		HaulDays:      r.HaulDays,
		EffectiveFrom: r.EffectiveFrom.Format("2006-01-02"),
		Description:   r.Description,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.EffectiveTo != nil {
		s := r.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &s
	}
	return resp
}
