package service

import (
	"context"
	"testing"
	"time"

	"ezakat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubCalculationRepo struct {
	record model.ZakatCalculation
}

func (r *stubCalculationRepo) Create(_ context.Context, _ *model.ZakatCalculation) error {
	return nil
}

func (r *stubCalculationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ZakatCalculation, error) {
	if id != r.record.ID {
		return nil, gorm.ErrRecordNotFound
	}
	rec := r.record
	return &rec, nil
}

func (r *stubCalculationRepo) ListByUser(_ context.Context, _ uuid.UUID, _, _ int) ([]model.ZakatCalculation, int64, error) {
	return nil, 0, nil
}

func (r *stubCalculationRepo) List(_ context.Context, _, _ int, _, _ string) ([]model.ZakatCalculation, int64, error) {
	return nil, 0, nil
}

func TestGetCalculationScopedToOwningPayer(t *testing.T) {
	owner := uuid.New()
	record := model.ZakatCalculation{
		ID:          uuid.New(),
		UserID:      owner,
		Category:    "savings",
		Inputs:      "{}",
		Status:      model.StatusWajib,
		EvaluatedAt: time.Now(),
	}
	svc := NewCalculationService(nil, &stubCalculationRepo{record: record}, nil, nil)

	_, err := svc.GetCalculation(context.Background(), record.ID.String(), uuid.New().String(), model.RolePayer)
	if err == nil || err.Error() != "calculation not found" {
		t.Fatalf("expected not-found for another payer, got %v", err)
	}

	if _, err := svc.GetCalculation(context.Background(), record.ID.String(), owner.String(), model.RolePayer); err != nil {
		t.Fatalf("owner read: %v", err)
	}

	if _, err := svc.GetCalculation(context.Background(), record.ID.String(), uuid.New().String(), model.RoleAdmin); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}
