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

type ReceiptResponse struct {
	ID        string `json:"id"`
	ReceiptNo string `json:"receipt_no"`
	PaymentID string `json:"payment_id"`
	PayerID   string `json:"payer_id"`
	PayerName string `json:"payer_name,omitempty"`
	Amount    string `json:"amount"`
	Category  string `json:"category"`
	IssuedAt  string `json:"issued_at"`
}

// --- Interface ---

type ReceiptService interface {
	// IssueForPayment creates the official receipt for a completed
	// payment. Called inside the payment-completion transaction.
	IssueForPayment(ctx context.Context, payment *model.Payment, category string) (*model.Receipt, error)

	// GetReceipt fetches one receipt. Payers can only read their own;
	// staff roles read any.
	GetReceipt(ctx context.Context, id, requesterID, requesterRole string) (ReceiptResponse, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (ReceiptResponse, error)
	ListByPayer(ctx context.Context, payerID string, page, limit int) ([]ReceiptResponse, int64, error)
}

type receiptService struct {
	repo repository.ReceiptRepository
}

func NewReceiptService(repo repository.ReceiptRepository) ReceiptService {
	return &receiptService{repo: repo}
}

// --- Implementation ---

func (s *receiptService) IssueForPayment(ctx context.Context, payment *model.Payment, category string) (*model.Receipt, error) {
	receiptNo, err := s.generateReceiptNo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt number: %w", err)
	}

	receipt := model.Receipt{
		ReceiptNo: receiptNo,
		PaymentID: payment.ID,
		PayerID:   payment.PayerID,
		Amount:    payment.Amount,
		Category:  category,
		IssuedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, &receipt); err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	return &receipt, nil
}

func (s *receiptService) GetReceipt(ctx context.Context, id, requesterID, requesterRole string) (ReceiptResponse, error) {
	receiptID, err := uuid.Parse(id)
	if err != nil {
		return ReceiptResponse{}, fmt.Errorf("invalid receipt id: %w", err)
	}

	receipt, err := s.repo.FindByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReceiptResponse{}, errors.New("receipt not found")
		}
		return ReceiptResponse{}, fmt.Errorf("failed to fetch receipt: %w", err)
	}

	// Answer as if the row does not exist so IDs cannot be enumerated.
	if requesterRole == model.RolePayer && receipt.PayerID.String() != requesterID {
		return ReceiptResponse{}, errors.New("receipt not found")
	}

	return toReceiptResponse(*receipt), nil
}

func (s *receiptService) GetByReceiptNo(ctx context.Context, receiptNo string) (ReceiptResponse, error) {
	receipt, err := s.repo.FindByReceiptNo(ctx, receiptNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReceiptResponse{}, errors.New("receipt not found")
		}
		return ReceiptResponse{}, fmt.Errorf("failed to fetch receipt: %w", err)
	}

	return toReceiptResponse(*receipt), nil
}

func (s *receiptService) ListByPayer(ctx context.Context, payerID string, page, limit int) ([]ReceiptResponse, int64, error) {
	payer, err := uuid.Parse(payerID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid payer id: %w", err)
	}

	receipts, total, err := s.repo.ListByPayer(ctx, payer, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch receipts: %w", err)
	}

	res := make([]ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		res = append(res, toReceiptResponse(r))
	}

	return res, total, nil
}

// --- Helpers ---

func (s *receiptService) generateReceiptNo(ctx context.Context) (string, error) {
	today := time.Now().Format("20060102")
	prefix := "RCP-" + today + "-"

	count, err := s.repo.CountByPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}

func toReceiptResponse(r model.Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ID:        r.ID.String(),
		ReceiptNo: r.ReceiptNo,
		PaymentID: r.PaymentID.String(),
		PayerID:   r.PayerID.String(),
		Amount:    r.Amount.StringFixed(2),
		Category:  r.Category,
		IssuedAt:  r.IssuedAt.Format(time.RFC3339),
	}
	if r.Payer != nil {
		resp.PayerName = r.Payer.Username
	}
	return resp
}
