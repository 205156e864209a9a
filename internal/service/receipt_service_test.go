package service

import (
	"context"
	"testing"
	"time"

	"ezakat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubReceiptRepo struct {
	receipt model.Receipt
}

func (r *stubReceiptRepo) Create(_ context.Context, _ *model.Receipt) error { return nil }

func (r *stubReceiptRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receipt, error) {
	if id != r.receipt.ID {
		return nil, gorm.ErrRecordNotFound
	}
	rec := r.receipt
	return &rec, nil
}

func (r *stubReceiptRepo) FindByReceiptNo(_ context.Context, receiptNo string) (*model.Receipt, error) {
	if receiptNo != r.receipt.ReceiptNo {
		return nil, gorm.ErrRecordNotFound
	}
	rec := r.receipt
	return &rec, nil
}

func (r *stubReceiptRepo) ListByPayer(_ context.Context, _ uuid.UUID, _, _ int) ([]model.Receipt, int64, error) {
	return nil, 0, nil
}

func (r *stubReceiptRepo) CountByPrefix(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func TestGetReceiptScopedToOwningPayer(t *testing.T) {
	payer := uuid.New()
	receipt := model.Receipt{
		ID:        uuid.New(),
		ReceiptNo: "RCP-20260829-00001",
		PaymentID: uuid.New(),
		PayerID:   payer,
		Category:  "income",
		IssuedAt:  time.Now(),
	}
	svc := NewReceiptService(&stubReceiptRepo{receipt: receipt})

	_, err := svc.GetReceipt(context.Background(), receipt.ID.String(), uuid.New().String(), model.RolePayer)
	if err == nil || err.Error() != "receipt not found" {
		t.Fatalf("expected not-found for another payer, got %v", err)
	}

	if _, err := svc.GetReceipt(context.Background(), receipt.ID.String(), payer.String(), model.RolePayer); err != nil {
		t.Fatalf("owner read: %v", err)
	}

	if _, err := svc.GetReceipt(context.Background(), receipt.ID.String(), uuid.New().String(), model.RoleAdmin); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}
