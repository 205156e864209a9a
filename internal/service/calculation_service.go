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
	"gorm.io/gorm"
)

// --- DTOs ---

type CalculateRequest struct {
	Category      string       `json:"category" binding:"required"`
	Inputs        zakat.Inputs `json:"inputs"`
	HaulStartDate string       `json:"haul_start_date"` // YYYY-MM-DD, optional
}

type HaulResponse struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	RemainingDays int    `json:"remaining_days"`
	IsComplete    bool   `json:"is_complete"`
}

type CalculationResponse struct {
	ID              string        `json:"id,omitempty"` // Set when persisted
	Category        string        `json:"category"`
	GrossAmount     string        `json:"gross_amount"`
	TotalDeductions string        `json:"total_deductions"`
	NetAmount       string        `json:"net_amount"`
	NisabThreshold  string        `json:"nisab_threshold"`
	RateApplied     string        `json:"rate_applied"`
	Status          string        `json:"status"`
	ZakatDue        string        `json:"zakat_due"`
	Haul            *HaulResponse `json:"haul,omitempty"`
	EvaluatedAt     string        `json:"evaluated_at,omitempty"`
}

// --- Interface ---

type CalculationService interface {
	// Calculate runs a stateless evaluation and returns the result
	// without persisting anything.
	Calculate(ctx context.Context, req CalculateRequest) (CalculationResponse, error)

	// StoreCalculation evaluates and persists the result for the owner,
	// emitting a zakat-due notification when the outcome is wajib.
	StoreCalculation(ctx context.Context, req CalculateRequest, ownerID string) (CalculationResponse, error)

	// GetCalculation fetches one stored assessment. Payers can only read
	// their own; staff roles read any.
	GetCalculation(ctx context.Context, id, requesterID, requesterRole string) (CalculationResponse, error)
	ListByUser(ctx context.Context, userID string, page, limit int) ([]CalculationResponse, int64, error)
	List(ctx context.Context, page, limit int, category, status string) ([]CalculationResponse, int64, error)
}

type calculationService struct {
	engine        *zakat.Engine
	repo          repository.CalculationRepository
	notifications NotificationService
	db            *gorm.DB
}

func NewCalculationService(engine *zakat.Engine, repo repository.CalculationRepository, notifications NotificationService, db *gorm.DB) CalculationService {
	return &calculationService{
		engine:        engine,
		repo:          repo,
		notifications: notifications,
		db:            db,
	}
}

// --- Implementation ---

func (s *calculationService) Calculate(ctx context.Context, req CalculateRequest) (CalculationResponse, error) {
	result, _, err := s.evaluate(ctx, req, time.Now())
	if err != nil {
		return CalculationResponse{}, err
	}
	return toCalculationResponse(result), nil
}

func (s *calculationService) StoreCalculation(ctx context.Context, req CalculateRequest, ownerID string) (CalculationResponse, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return CalculationResponse{}, fmt.Errorf("invalid owner id: %w", err)
	}

	evaluatedAt := time.Now()
	result, inputs, err := s.evaluate(ctx, req, evaluatedAt)
	if err != nil {
		return CalculationResponse{}, err
	}

	record, err := toCalculationRecord(result, inputs, owner, evaluatedAt)
	if err != nil {
		return CalculationResponse{}, err
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		return CalculationResponse{}, fmt.Errorf("failed to store calculation: %w", err)
	}

	if result.Wajib() {
		s.notifications.NotifyZakatDue(ctx, owner, record.ID.String(), string(result.Category), result.ZakatDue)
	}

	writeAuditLog(ctx, s.db, ownerID, model.ActionStoreCalculation, record.ID.String(),
		record.Category+" "+record.Status, req)

	resp := toCalculationResponse(result)
	resp.ID = record.ID.String()
	resp.EvaluatedAt = evaluatedAt.Format(time.RFC3339)
	return resp, nil
}

func (s *calculationService) GetCalculation(ctx context.Context, id, requesterID, requesterRole string) (CalculationResponse, error) {
	calcID, err := uuid.Parse(id)
	if err != nil {
		return CalculationResponse{}, fmt.Errorf("invalid calculation id: %w", err)
	}

	record, err := s.repo.FindByID(ctx, calcID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalculationResponse{}, errors.New("calculation not found")
		}
		return CalculationResponse{}, fmt.Errorf("failed to fetch calculation: %w", err)
	}

	// Answer as if the row does not exist so IDs cannot be enumerated.
	if requesterRole == model.RolePayer && record.UserID.String() != requesterID {
		return CalculationResponse{}, errors.New("calculation not found")
	}

	return recordToResponse(*record)
}

func (s *calculationService) ListByUser(ctx context.Context, userID string, page, limit int) ([]CalculationResponse, int64, error) {
	owner, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user id: %w", err)
	}

	records, total, err := s.repo.ListByUser(ctx, owner, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch calculations: %w", err)
	}

	return recordsToResponses(records, total)
}

func (s *calculationService) List(ctx context.Context, page, limit int, category, status string) ([]CalculationResponse, int64, error) {
	records, total, err := s.repo.List(ctx, page, limit, category, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch calculations: %w", err)
	}

	return recordsToResponses(records, total)
}

// --- Helpers ---

func (s *calculationService) evaluate(ctx context.Context, req CalculateRequest, asOf time.Time) (zakat.Result, zakat.Inputs, error) {
	category, err := zakat.ParseCategory(req.Category)
	if err != nil {
		return zakat.Result{}, zakat.Inputs{}, err
	}

	engineReq := zakat.Request{
		Category: category,
		Inputs:   req.Inputs,
		AsOf:     asOf,
	}

	if req.HaulStartDate != "" {
		start, err := time.Parse("2006-01-02", req.HaulStartDate)
		if err != nil {
			return zakat.Result{}, zakat.Inputs{}, fmt.Errorf("invalid haul_start_date format (expected YYYY-MM-DD): %w", err)
		}
		engineReq.HaulStartDate = &start
	}

	result, err := s.engine.Evaluate(ctx, engineReq)
	if err != nil {
		return zakat.Result{}, zakat.Inputs{}, err
	}

	return result, req.Inputs, nil
}

func recordsToResponses(records []model.ZakatCalculation, total int64) ([]CalculationResponse, int64, error) {
	res := make([]CalculationResponse, 0, len(records))
	for _, record := range records {
		resp, err := recordToResponse(record)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, resp)
	}
	return res, total, nil
}

func recordToResponse(record model.ZakatCalculation) (CalculationResponse, error) {
	result, err := calculationResultFromRecord(record)
	if err != nil {
		return CalculationResponse{}, err
	}

	resp := toCalculationResponse(result)
	resp.ID = record.ID.String()
	resp.EvaluatedAt = record.EvaluatedAt.Format(time.RFC3339)
	return resp, nil
}

func toCalculationResponse(result zakat.Result) CalculationResponse {
	resp := CalculationResponse{
		Category:        string(result.Category),
		GrossAmount:     result.GrossAmount.StringFixed(2),
		TotalDeductions: result.TotalDeductions.StringFixed(2),
		NetAmount:       result.NetAmount.StringFixed(2),
		NisabThreshold:  result.NisabThreshold.StringFixed(2),
		RateApplied:     result.RateApplied.StringFixed(4),
		Status:          result.Status,
		ZakatDue:        result.ZakatDue.StringFixed(2),
	}

	if result.Haul != nil {
		resp.Haul = &HaulResponse{
			StartDate:     result.Haul.StartDate.Format("2006-01-02"),
			EndDate:       result.Haul.EndDate.Format("2006-01-02"),
			RemainingDays: result.Haul.RemainingDays,
			IsComplete:    result.Haul.IsComplete,
		}
	}

	return resp
}
