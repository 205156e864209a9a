package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ezakat/internal/model"
	"ezakat/internal/repository"
	"ezakat/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultAmilCommissionRate is the amil's share of a counter collection:
// one eighth, the amil asnaf portion.
var DefaultAmilCommissionRate = decimal.RequireFromString("0.125")

// --- DTOs ---

type CreatePaymentRequest struct {
	CalculationID string `json:"calculation_id" binding:"required"`
	Channel       string `json:"channel" binding:"required,oneof=fpx jompay ewallet card"`
}

type CounterPaymentRequest struct {
	CalculationID string `json:"calculation_id" binding:"required"`
	GatewayRef    string `json:"gateway_ref"` // Manual receipt book reference, optional
}

type CompletePaymentRequest struct {
	GatewayRef string `json:"gateway_ref" binding:"required"`
}

type FailPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type PaymentResponse struct {
	ID            string  `json:"id"`
	CalculationID string  `json:"calculation_id"`
	PayerID       string  `json:"payer_id"`
	AmilID        *string `json:"amil_id,omitempty"`
	BranchID      *string `json:"branch_id,omitempty"`
	Amount        string  `json:"amount"`
	Channel       string  `json:"channel"`
	Status        string  `json:"status"`
	GatewayRef    string  `json:"gateway_ref,omitempty"`
	FailureReason string  `json:"failure_reason,omitempty"`
	ReceiptNo     string  `json:"receipt_no,omitempty"`
	PaidAt        *string `json:"paid_at"`
	CreatedAt     string  `json:"created_at"`
}

// --- Interface ---

type PaymentService interface {
	// CreatePayment opens a pending gateway payment for the payer's own
	// wajib calculation. The amount always comes from the stored
	// assessment, never from the request.
	CreatePayment(ctx context.Context, req CreatePaymentRequest, payerID string) (PaymentResponse, error)

	// RecordCounterPayment records an in-person collection by an amil on
	// behalf of a payer's calculation. Completed immediately: the money
	// changed hands at the counter.
	RecordCounterPayment(ctx context.Context, req CounterPaymentRequest, amilID string) (PaymentResponse, error)

	// CompletePayment finalizes a pending gateway payment: marks it
	// paid, issues the receipt and notifies the payer, atomically.
	CompletePayment(ctx context.Context, id string, req CompletePaymentRequest, actorID string) (PaymentResponse, error)

	// FailPayment marks a pending payment failed with the gateway's
	// reason. The calculation stays payable by a new attempt.
	FailPayment(ctx context.Context, id string, req FailPaymentRequest, actorID string) (PaymentResponse, error)

	// GetPayment fetches one payment. Payers can only read their own;
	// staff roles read any.
	GetPayment(ctx context.Context, id, requesterID, requesterRole string) (PaymentResponse, error)
	ListByPayer(ctx context.Context, payerID string, page, limit int) ([]PaymentResponse, int64, error)
	ListByAmil(ctx context.Context, amilID string, page, limit int) ([]PaymentResponse, int64, error)
	List(ctx context.Context, page, limit int, status, channel string) ([]PaymentResponse, int64, error)
}

type paymentService struct {
	payments    repository.PaymentRepository
	calcs       repository.CalculationRepository
	users       repository.UserRepository
	commissions repository.CommissionRepository
	receipts    ReceiptService
	notify      NotificationService
	txManager   repository.TransactionManager
	hub         *websocket.Hub
	db          *gorm.DB
}

func NewPaymentService(
	payments repository.PaymentRepository,
	calcs repository.CalculationRepository,
	users repository.UserRepository,
	commissions repository.CommissionRepository,
	receipts ReceiptService,
	notify NotificationService,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
	db *gorm.DB,
) PaymentService {
	return &paymentService{
		payments:    payments,
		calcs:       calcs,
		users:       users,
		commissions: commissions,
		receipts:    receipts,
		notify:      notify,
		txManager:   txManager,
		hub:         hub,
		db:          db,
	}
}

// --- Implementation ---

func (s *paymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest, payerID string) (PaymentResponse, error) {
	payer, err := uuid.Parse(payerID)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("invalid payer id: %w", err)
	}

	calc, err := s.payableCalculation(ctx, req.CalculationID)
	if err != nil {
		return PaymentResponse{}, err
	}
	if calc.UserID != payer {
		return PaymentResponse{}, errors.New("calculation belongs to another payer")
	}

	payment := model.Payment{
		CalculationID: calc.ID,
		PayerID:       payer,
		Amount:        calc.ZakatDue,
		Channel:       req.Channel,
		Status:        model.PaymentPending,
	}

	if err := s.payments.Create(ctx, &payment); err != nil {
		return PaymentResponse{}, fmt.Errorf("failed to create payment: %w", err)
	}

	writeAuditLog(ctx, s.db, payerID, model.ActionCreatePayment, payment.ID.String(),
		req.Channel+" "+payment.Amount.StringFixed(2), req)

	return toPaymentResponse(payment, ""), nil
}

func (s *paymentService) RecordCounterPayment(ctx context.Context, req CounterPaymentRequest, amilID string) (PaymentResponse, error) {
	amil, err := s.users.GetByID(ctx, amilID)
	if err != nil {
		return PaymentResponse{}, errors.New("amil not found")
	}
	if amil.Role != model.RoleAmil {
		return PaymentResponse{}, errors.New("counter payments can only be recorded by an amil")
	}

	calc, err := s.payableCalculation(ctx, req.CalculationID)
	if err != nil {
		return PaymentResponse{}, err
	}

	now := time.Now()
	payment := model.Payment{
		CalculationID: calc.ID,
		PayerID:       calc.UserID,
		AmilID:        &amil.ID,
		BranchID:      amil.BranchID,
		Amount:        calc.ZakatDue,
		Channel:       model.ChannelCounter,
		Status:        model.PaymentCompleted,
		GatewayRef:    req.GatewayRef,
		PaidAt:        &now,
	}

	var receipt *model.Receipt
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.payments.Create(txCtx, &payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		receipt, err = s.receipts.IssueForPayment(txCtx, &payment, calc.Category)
		if err != nil {
			return err
		}

		return s.createCommission(txCtx, &payment)
	})
	if err != nil {
		return PaymentResponse{}, err
	}

	s.afterCompletion(ctx, &payment, receipt, calc.Category)
	writeAuditLog(ctx, s.db, amilID, model.ActionCompletePayment, payment.ID.String(),
		"counter "+payment.Amount.StringFixed(2), req)

	return toPaymentResponse(payment, receipt.ReceiptNo), nil
}

func (s *paymentService) CompletePayment(ctx context.Context, id string, req CompletePaymentRequest, actorID string) (PaymentResponse, error) {
	payment, err := s.pendingPayment(ctx, id)
	if err != nil {
		return PaymentResponse{}, err
	}

	calc, err := s.calcs.FindByID(ctx, payment.CalculationID)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("failed to fetch calculation: %w", err)
	}

	now := time.Now()
	payment.Status = model.PaymentCompleted
	payment.GatewayRef = req.GatewayRef
	payment.PaidAt = &now

	var receipt *model.Receipt
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.payments.Update(txCtx, payment); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		receipt, err = s.receipts.IssueForPayment(txCtx, payment, calc.Category)
		return err
	})
	if err != nil {
		return PaymentResponse{}, err
	}

	s.afterCompletion(ctx, payment, receipt, calc.Category)
	writeAuditLog(ctx, s.db, actorID, model.ActionCompletePayment, payment.ID.String(),
		payment.Channel+" "+payment.Amount.StringFixed(2), req)

	return toPaymentResponse(*payment, receipt.ReceiptNo), nil
}

func (s *paymentService) FailPayment(ctx context.Context, id string, req FailPaymentRequest, actorID string) (PaymentResponse, error) {
	payment, err := s.pendingPayment(ctx, id)
	if err != nil {
		return PaymentResponse{}, err
	}

	payment.Status = model.PaymentFailed
	payment.FailureReason = req.Reason

	if err := s.payments.Update(ctx, payment); err != nil {
		return PaymentResponse{}, fmt.Errorf("failed to update payment: %w", err)
	}

	writeAuditLog(ctx, s.db, actorID, model.ActionFailPayment, payment.ID.String(),
		payment.Channel+" "+payment.Amount.StringFixed(2), req)

	return toPaymentResponse(*payment, ""), nil
}

func (s *paymentService) GetPayment(ctx context.Context, id, requesterID, requesterRole string) (PaymentResponse, error) {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("invalid payment id: %w", err)
	}

	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, errors.New("payment not found")
		}
		return PaymentResponse{}, fmt.Errorf("failed to fetch payment: %w", err)
	}

	// Answer as if the row does not exist so IDs cannot be enumerated.
	if requesterRole == model.RolePayer && payment.PayerID.String() != requesterID {
		return PaymentResponse{}, errors.New("payment not found")
	}

	return toPaymentResponse(*payment, ""), nil
}

func (s *paymentService) ListByPayer(ctx context.Context, payerID string, page, limit int) ([]PaymentResponse, int64, error) {
	payer, err := uuid.Parse(payerID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid payer id: %w", err)
	}
	payments, total, err := s.payments.ListByPayer(ctx, payer, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch payments: %w", err)
	}
	return toPaymentResponses(payments), total, nil
}

func (s *paymentService) ListByAmil(ctx context.Context, amilID string, page, limit int) ([]PaymentResponse, int64, error) {
	amil, err := uuid.Parse(amilID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid amil id: %w", err)
	}
	payments, total, err := s.payments.ListByAmil(ctx, amil, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch payments: %w", err)
	}
	return toPaymentResponses(payments), total, nil
}

func (s *paymentService) List(ctx context.Context, page, limit int, status, channel string) ([]PaymentResponse, int64, error) {
	payments, total, err := s.payments.List(ctx, page, limit, status, channel)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch payments: %w", err)
	}
	return toPaymentResponses(payments), total, nil
}

// --- Helpers ---

// payableCalculation loads a calculation and checks it is wajib and not
// already paid or mid-payment.
func (s *paymentService) payableCalculation(ctx context.Context, id string) (*model.ZakatCalculation, error) {
	calcID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid calculation id: %w", err)
	}

	calc, err := s.calcs.FindByID(ctx, calcID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("calculation not found")
		}
		return nil, fmt.Errorf("failed to fetch calculation: %w", err)
	}

	if calc.Status != model.StatusWajib {
		return nil, errors.New("calculation is not wajib, nothing to pay")
	}

	if _, err := s.payments.FindByCalculationID(ctx, calc.ID); err == nil {
		return nil, errors.New("calculation already has a pending or completed payment")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing payments: %w", err)
	}

	return calc, nil
}

func (s *paymentService) pendingPayment(ctx context.Context, id string) (*model.Payment, error) {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid payment id: %w", err)
	}

	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment not found")
		}
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}

	if payment.Status != model.PaymentPending {
		return nil, fmt.Errorf("payment is already %s", payment.Status)
	}

	return payment, nil
}

func (s *paymentService) createCommission(ctx context.Context, payment *model.Payment) error {
	commission := model.AmilCommission{
		AmilID:    *payment.AmilID,
		PaymentID: payment.ID,
		BranchID:  payment.BranchID,
		Rate:      DefaultAmilCommissionRate,
		Amount:    payment.Amount.Mul(DefaultAmilCommissionRate).Round(2),
		Status:    model.CommissionPending,
	}
	if err := s.commissions.Create(ctx, &commission); err != nil {
		return fmt.Errorf("failed to create amil commission: %w", err)
	}
	return nil
}

// afterCompletion runs the non-transactional tail of a completed
// payment: notifications and the live dashboard broadcast.
func (s *paymentService) afterCompletion(ctx context.Context, payment *model.Payment, receipt *model.Receipt, category string) {
	s.notify.NotifyPaymentCompleted(ctx, payment.PayerID, payment.ID.String(), payment.Amount)
	if receipt != nil {
		s.notify.NotifyReceiptIssued(ctx, payment.PayerID, receipt.ID.String(), receipt.ReceiptNo)
	}

	event, _ := json.Marshal(map[string]interface{}{
		"type":     "payment_completed",
		"payment":  payment.ID.String(),
		"category": category,
		"channel":  payment.Channel,
		"amount":   payment.Amount.StringFixed(2),
	})
	s.hub.Broadcast <- event
}

func toPaymentResponses(payments []model.Payment) []PaymentResponse {
	res := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		res = append(res, toPaymentResponse(p, ""))
	}
	return res
}

func toPaymentResponse(p model.Payment, receiptNo string) PaymentResponse {
	resp := PaymentResponse{
		ID:            p.ID.String(),
		CalculationID: p.CalculationID.String(),
		PayerID:       p.PayerID.String(),
		Amount:        p.Amount.StringFixed(2),
		Channel:       p.Channel,
		Status:        p.Status,
		GatewayRef:    p.GatewayRef,
		FailureReason: p.FailureReason,
		ReceiptNo:     receiptNo,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
	if p.AmilID != nil {
		id := p.AmilID.String()
		resp.AmilID = &id
	}
	if p.BranchID != nil {
		id := p.BranchID.String()
		resp.BranchID = &id
	}
	if p.PaidAt != nil {
		paid := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paid
	}
	return resp
}
