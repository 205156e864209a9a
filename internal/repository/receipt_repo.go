package repository

import (
	"context"

	"ezakat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *model.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	FindByReceiptNo(ctx context.Context, receiptNo string) (*model.Receipt, error)
	ListByPayer(ctx context.Context, payerID uuid.UUID, page, limit int) ([]model.Receipt, int64, error)
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
}

type receiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *model.Receipt) error {
	return GetDB(ctx, r.db).Create(receipt).Error
}

func (r *receiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var receipt model.Receipt
	if err := GetDB(ctx, r.db).Preload("Payment").Preload("Payer").First(&receipt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) FindByReceiptNo(ctx context.Context, receiptNo string) (*model.Receipt, error) {
	var receipt model.Receipt
	if err := GetDB(ctx, r.db).Preload("Payment").Preload("Payer").
		First(&receipt, "receipt_no = ?", receiptNo).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) ListByPayer(ctx context.Context, payerID uuid.UUID, page, limit int) ([]model.Receipt, int64, error) {
	var receipts []model.Receipt
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Receipt{}).Where("payer_id = ?", payerID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("issued_at desc").Offset(offset).Limit(limit).Find(&receipts).Error; err != nil {
		return nil, 0, err
	}

	return receipts, total, nil
}

// CountByPrefix counts receipts whose number starts with the given daily
// prefix, feeding the sequential numbering.
func (r *receiptRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Receipt{}).Where("receipt_no LIKE ?", prefix+"%").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
