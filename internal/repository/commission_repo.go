package repository

import (
	"context"

	"ezakat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommissionRepository interface {
	Create(ctx context.Context, commission *model.AmilCommission) error
	Update(ctx context.Context, commission *model.AmilCommission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AmilCommission, error)
	ListByAmil(ctx context.Context, amilID uuid.UUID, page, limit int) ([]model.AmilCommission, int64, error)
	List(ctx context.Context, page, limit int, status string) ([]model.AmilCommission, int64, error)
}

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(ctx context.Context, commission *model.AmilCommission) error {
	return GetDB(ctx, r.db).Create(commission).Error
}

func (r *commissionRepository) Update(ctx context.Context, commission *model.AmilCommission) error {
	return GetDB(ctx, r.db).Save(commission).Error
}

func (r *commissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AmilCommission, error) {
	var commission model.AmilCommission
	if err := GetDB(ctx, r.db).Preload("Amil").Preload("Payment").First(&commission, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &commission, nil
}

func (r *commissionRepository) ListByAmil(ctx context.Context, amilID uuid.UUID, page, limit int) ([]model.AmilCommission, int64, error) {
	var commissions []model.AmilCommission
	var total int64

	db := GetDB(ctx, r.db).Model(&model.AmilCommission{}).Where("amil_id = ?", amilID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Payment").Order("created_at desc").Offset(offset).Limit(limit).Find(&commissions).Error; err != nil {
		return nil, 0, err
	}

	return commissions, total, nil
}

func (r *commissionRepository) List(ctx context.Context, page, limit int, status string) ([]model.AmilCommission, int64, error) {
	var commissions []model.AmilCommission
	var total int64

	db := GetDB(ctx, r.db).Model(&model.AmilCommission{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Amil").Preload("Payment").Order("created_at desc").
		Offset(offset).Limit(limit).Find(&commissions).Error; err != nil {
		return nil, 0, err
	}

	return commissions, total, nil
}
