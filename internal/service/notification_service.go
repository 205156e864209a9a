package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"ezakat/internal/model"
	"ezakat/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type NotificationResponse struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Channel   string  `json:"channel"`
	Subject   string  `json:"subject"`
	Body      string  `json:"body"`
	EntityID  string  `json:"entity_id"`
	SentAt    *string `json:"sent_at"`
	CreatedAt string  `json:"created_at"`
}

// --- Interface ---

// NotificationService records outbound notices as rows; an external
// dispatcher delivers them. Emitters are best-effort: a failed insert is
// logged and never fails the calling operation.
type NotificationService interface {
	NotifyZakatDue(ctx context.Context, userID uuid.UUID, calculationID, category string, zakatDue decimal.Decimal)
	NotifyPaymentCompleted(ctx context.Context, userID uuid.UUID, paymentID string, amount decimal.Decimal)
	NotifyReceiptIssued(ctx context.Context, userID uuid.UUID, receiptID, receiptNo string)
	ListByUser(ctx context.Context, userID string, page, limit int) ([]NotificationResponse, int64, error)

	// RunDispatcher drains unsent rows on an interval, blocking until
	// ctx is cancelled. Run it in its own goroutine.
	RunDispatcher(ctx context.Context, interval time.Duration)
}

type notificationService struct {
	repo           repository.NotificationRepository
	defaultChannel string
}

// NewNotificationService creates a NotificationService writing rows for
// the given default channel (whatsapp, email or sms).
func NewNotificationService(repo repository.NotificationRepository, defaultChannel string) NotificationService {
	switch defaultChannel {
	case model.NotifyViaWhatsApp, model.NotifyViaEmail, model.NotifyViaSMS:
	default:
		defaultChannel = model.NotifyViaWhatsApp
	}
	return &notificationService{repo: repo, defaultChannel: defaultChannel}
}

// --- Implementation ---

func (s *notificationService) NotifyZakatDue(ctx context.Context, userID uuid.UUID, calculationID, category string, zakatDue decimal.Decimal) {
	s.emit(ctx, model.Notification{
		UserID:   userID,
		Kind:     model.NotifyZakatDue,
		Channel:  s.defaultChannel,
		Subject:  "Zakat wajib dibayar",
		Body:     fmt.Sprintf("Pengiraan zakat %s anda wajib: RM %s perlu dibayar.", category, zakatDue.StringFixed(2)),
		EntityID: calculationID,
	})
}

func (s *notificationService) NotifyPaymentCompleted(ctx context.Context, userID uuid.UUID, paymentID string, amount decimal.Decimal) {
	s.emit(ctx, model.Notification{
		UserID:   userID,
		Kind:     model.NotifyPaymentCompleted,
		Channel:  s.defaultChannel,
		Subject:  "Pembayaran zakat diterima",
		Body:     fmt.Sprintf("Pembayaran zakat RM %s anda telah diterima.", amount.StringFixed(2)),
		EntityID: paymentID,
	})
}

func (s *notificationService) NotifyReceiptIssued(ctx context.Context, userID uuid.UUID, receiptID, receiptNo string) {
	s.emit(ctx, model.Notification{
		UserID:   userID,
		Kind:     model.NotifyReceiptIssued,
		Channel:  s.defaultChannel,
		Subject:  "Resit zakat dikeluarkan",
		Body:     fmt.Sprintf("Resit rasmi %s telah dikeluarkan untuk pembayaran anda.", receiptNo),
		EntityID: receiptID,
	})
}

func (s *notificationService) ListByUser(ctx context.Context, userID string, page, limit int) ([]NotificationResponse, int64, error) {
	owner, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user id: %w", err)
	}

	rows, total, err := s.repo.ListByUser(ctx, owner, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	res := make([]NotificationResponse, 0, len(rows))
	for _, n := range rows {
		resp := NotificationResponse{
			ID:        n.ID.String(),
			Kind:      n.Kind,
			Channel:   n.Channel,
			Subject:   n.Subject,
			Body:      n.Body,
			EntityID:  n.EntityID,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
		if n.SentAt != nil {
			sent := n.SentAt.Format(time.RFC3339)
			resp.SentAt = &sent
		}
		res = append(res, resp)
	}

	return res, total, nil
}

func (s *notificationService) emit(ctx context.Context, n model.Notification) {
	if err := s.repo.Create(ctx, &n); err != nil {
		log.Printf("notification write failed (%s for user %s): %v", n.Kind, n.UserID, err)
	}
}

func (s *notificationService) RunDispatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dispatchPending(ctx)
		}
	}
}

// dispatchPending hands unsent rows to the channel gateway and marks
// them sent. TODO: replace the log line with the WhatsApp Business API
// client once credentials are provisioned.
func (s *notificationService) dispatchPending(ctx context.Context) {
	rows, err := s.repo.ListUnsent(ctx, 100)
	if err != nil {
		log.Printf("notification dispatch query failed: %v", err)
		return
	}

	for _, n := range rows {
		log.Printf("dispatching %s notification %s via %s: %s", n.Kind, n.ID, n.Channel, n.Subject)
		if err := s.repo.MarkSent(ctx, n.ID, time.Now()); err != nil {
			log.Printf("failed to mark notification %s sent: %v", n.ID, err)
		}
	}
}
