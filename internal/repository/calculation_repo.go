package repository

import (
	"context"

	"ezakat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalculationRepository interface {
	Create(ctx context.Context, calc *model.ZakatCalculation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ZakatCalculation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.ZakatCalculation, int64, error)
	List(ctx context.Context, page, limit int, category, status string) ([]model.ZakatCalculation, int64, error)
}

type calculationRepository struct {
	db *gorm.DB
}

func NewCalculationRepository(db *gorm.DB) CalculationRepository {
	return &calculationRepository{db: db}
}

func (r *calculationRepository) Create(ctx context.Context, calc *model.ZakatCalculation) error {
	return GetDB(ctx, r.db).Create(calc).Error
}

func (r *calculationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ZakatCalculation, error) {
	var calc model.ZakatCalculation
	if err := GetDB(ctx, r.db).Preload("User").First(&calc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &calc, nil
}

func (r *calculationRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.ZakatCalculation, int64, error) {
	var calcs []model.ZakatCalculation
	var total int64

	db := GetDB(ctx, r.db).Model(&model.ZakatCalculation{}).Where("user_id = ?", userID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&calcs).Error; err != nil {
		return nil, 0, err
	}

	return calcs, total, nil
}

// List returns paginated calculations for admin review, optionally
// filtered by category and status
func (r *calculationRepository) List(ctx context.Context, page, limit int, category, status string) ([]model.ZakatCalculation, int64, error) {
	var calcs []model.ZakatCalculation
	var total int64

	db := GetDB(ctx, r.db).Model(&model.ZakatCalculation{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&calcs).Error; err != nil {
		return nil, 0, err
	}

	return calcs, total, nil
}
