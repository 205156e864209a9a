package service

import (
	"context"
	"testing"

	"ezakat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubPaymentRepo struct {
	payment model.Payment
}

func (r *stubPaymentRepo) Create(_ context.Context, _ *model.Payment) error { return nil }
func (r *stubPaymentRepo) Update(_ context.Context, _ *model.Payment) error { return nil }

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	if id != r.payment.ID {
		return nil, gorm.ErrRecordNotFound
	}
	p := r.payment
	return &p, nil
}

func (r *stubPaymentRepo) FindByCalculationID(_ context.Context, _ uuid.UUID) (*model.Payment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPaymentRepo) ListByPayer(_ context.Context, _ uuid.UUID, _, _ int) ([]model.Payment, int64, error) {
	return nil, 0, nil
}

func (r *stubPaymentRepo) ListByAmil(_ context.Context, _ uuid.UUID, _, _ int) ([]model.Payment, int64, error) {
	return nil, 0, nil
}

func (r *stubPaymentRepo) List(_ context.Context, _, _ int, _, _ string) ([]model.Payment, int64, error) {
	return nil, 0, nil
}

func TestGetPaymentScopedToOwningPayer(t *testing.T) {
	payer := uuid.New()
	payment := model.Payment{
		ID:            uuid.New(),
		CalculationID: uuid.New(),
		PayerID:       payer,
		Channel:       model.ChannelFPX,
		Status:        model.PaymentPending,
	}
	svc := NewPaymentService(&stubPaymentRepo{payment: payment}, nil, nil, nil, nil, nil, nil, nil, nil)

	_, err := svc.GetPayment(context.Background(), payment.ID.String(), uuid.New().String(), model.RolePayer)
	if err == nil || err.Error() != "payment not found" {
		t.Fatalf("expected not-found for another payer, got %v", err)
	}

	if _, err := svc.GetPayment(context.Background(), payment.ID.String(), payer.String(), model.RolePayer); err != nil {
		t.Fatalf("owner read: %v", err)
	}

	// Staff roles read across payers: amils need this for counter work.
	if _, err := svc.GetPayment(context.Background(), payment.ID.String(), uuid.New().String(), model.RoleAmil); err != nil {
		t.Fatalf("amil read: %v", err)
	}
}
