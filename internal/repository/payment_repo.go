package repository

import (
	"context"

	"ezakat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	Update(ctx context.Context, payment *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	FindByCalculationID(ctx context.Context, calculationID uuid.UUID) (*model.Payment, error)
	ListByPayer(ctx context.Context, payerID uuid.UUID, page, limit int) ([]model.Payment, int64, error)
	ListByAmil(ctx context.Context, amilID uuid.UUID, page, limit int) ([]model.Payment, int64, error)
	List(ctx context.Context, page, limit int, status, channel string) ([]model.Payment, int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	return GetDB(ctx, r.db).Save(payment).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := GetDB(ctx, r.db).Preload("Calculation").Preload("Payer").Preload("Amil").Preload("Branch").
		First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByCalculationID returns the latest non-failed payment for a
// calculation, used to block double payment of the same assessment.
func (r *paymentRepository) FindByCalculationID(ctx context.Context, calculationID uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := GetDB(ctx, r.db).
		Where("calculation_id = ? AND status != ?", calculationID, model.PaymentFailed).
		Order("created_at desc").
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListByPayer(ctx context.Context, payerID uuid.UUID, page, limit int) ([]model.Payment, int64, error) {
	return r.list(ctx, page, limit, "payer_id = ?", payerID)
}

func (r *paymentRepository) ListByAmil(ctx context.Context, amilID uuid.UUID, page, limit int) ([]model.Payment, int64, error) {
	return r.list(ctx, page, limit, "amil_id = ?", amilID)
}

func (r *paymentRepository) List(ctx context.Context, page, limit int, status, channel string) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Payment{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if channel != "" {
		db = db.Where("channel = ?", channel)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Payer").Preload("Branch").Order("created_at desc").
		Offset(offset).Limit(limit).Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *paymentRepository) list(ctx context.Context, page, limit int, cond string, arg interface{}) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Payment{}).Where(cond, arg)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Calculation").Order("created_at desc").
		Offset(offset).Limit(limit).Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}
