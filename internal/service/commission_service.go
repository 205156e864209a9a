package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ezakat/internal/model"
	"ezakat/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CommissionResponse struct {
	ID        string  `json:"id"`
	AmilID    string  `json:"amil_id"`
	AmilName  string  `json:"amil_name,omitempty"`
	PaymentID string  `json:"payment_id"`
	Rate      string  `json:"rate"`
	Amount    string  `json:"amount"`
	Status    string  `json:"status"`
	SettledAt *string `json:"settled_at"`
	CreatedAt string  `json:"created_at"`
}

// --- Interface ---

type CommissionService interface {
	ListByAmil(ctx context.Context, amilID string, page, limit int) ([]CommissionResponse, int64, error)
	List(ctx context.Context, page, limit int, status string) ([]CommissionResponse, int64, error)
	SettleCommission(ctx context.Context, id string, adminID string) (CommissionResponse, error)
}

type commissionService struct {
	repo repository.CommissionRepository
	db   *gorm.DB
}

func NewCommissionService(repo repository.CommissionRepository, db *gorm.DB) CommissionService {
	return &commissionService{repo: repo, db: db}
}

// --- Implementation ---

func (s *commissionService) ListByAmil(ctx context.Context, amilID string, page, limit int) ([]CommissionResponse, int64, error) {
	amil, err := uuid.Parse(amilID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid amil id: %w", err)
	}

	commissions, total, err := s.repo.ListByAmil(ctx, amil, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch commissions: %w", err)
	}

	return toCommissionResponses(commissions), total, nil
}

func (s *commissionService) List(ctx context.Context, page, limit int, status string) ([]CommissionResponse, int64, error) {
	commissions, total, err := s.repo.List(ctx, page, limit, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch commissions: %w", err)
	}

	return toCommissionResponses(commissions), total, nil
}

// SettleCommission marks a pending commission as paid out to the amil.
func (s *commissionService) SettleCommission(ctx context.Context, id string, adminID string) (CommissionResponse, error) {
	commissionID, err := uuid.Parse(id)
	if err != nil {
		return CommissionResponse{}, fmt.Errorf("invalid commission id: %w", err)
	}

	commission, err := s.repo.FindByID(ctx, commissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CommissionResponse{}, errors.New("commission not found")
		}
		return CommissionResponse{}, fmt.Errorf("failed to fetch commission: %w", err)
	}

	if commission.Status != model.CommissionPending {
		return CommissionResponse{}, fmt.Errorf("commission is already %s", commission.Status)
	}

	now := time.Now()
	commission.Status = model.CommissionSettled
	commission.SettledAt = &now
	if admin, err := uuid.Parse(adminID); err == nil {
		commission.SettledBy = &admin
	}

	if err := s.repo.Update(ctx, commission); err != nil {
		return CommissionResponse{}, fmt.Errorf("failed to settle commission: %w", err)
	}

	writeAuditLog(ctx, s.db, adminID, model.ActionSettleCommission, commission.ID.String(),
		commission.Amount.StringFixed(2), map[string]string{"commission_id": id})

	return toCommissionResponse(*commission), nil
}

// --- Helpers ---

func toCommissionResponses(commissions []model.AmilCommission) []CommissionResponse {
	res := make([]CommissionResponse, 0, len(commissions))
	for _, c := range commissions {
		res = append(res, toCommissionResponse(c))
	}
	return res
}

func toCommissionResponse(c model.AmilCommission) CommissionResponse {
	resp := CommissionResponse{
		ID:        c.ID.String(),
		AmilID:    c.AmilID.String(),
		PaymentID: c.PaymentID.String(),
		Rate:      c.Rate.StringFixed(4),
		Amount:    c.Amount.StringFixed(2),
		Status:    c.Status,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
	if c.Amil != nil {
		resp.AmilName = c.Amil.Username
	}
	if c.SettledAt != nil {
		settled := c.SettledAt.Format(time.RFC3339)
		resp.SettledAt = &settled
	}
	return resp
}
