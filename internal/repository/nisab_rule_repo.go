package repository

import (
	"context"
	"time"

	"ezakat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NisabRuleRepository interface {
	Create(ctx context.Context, rule *model.NisabRule) error
	Update(ctx context.Context, rule *model.NisabRule) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.NisabRule, error)
	List(ctx context.Context, page, limit int) ([]model.NisabRule, int64, error)
	FindActiveByCategory(ctx context.Context, category string, targetDate time.Time) (*model.NisabRule, error)
	FindOverlapping(ctx context.Context, category string, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type nisabRuleRepository struct {
	db *gorm.DB
}

func NewNisabRuleRepository(db *gorm.DB) NisabRuleRepository {
	return &nisabRuleRepository{db: db}
}

func (r *nisabRuleRepository) Create(ctx context.Context, rule *model.NisabRule) error {
	return GetDB(ctx, r.db).Create(rule).Error
}

func (r *nisabRuleRepository) Update(ctx context.Context, rule *model.NisabRule) error {
	return GetDB(ctx, r.db).Save(rule).Error
}

func (r *nisabRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.NisabRule{}).Error
}

func (r *nisabRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.NisabRule, error) {
	var rule model.NisabRule
	if err := GetDB(ctx, r.db).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *nisabRuleRepository) List(ctx context.Context, page, limit int) ([]model.NisabRule, int64, error) {
	var rules []model.NisabRule
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.NisabRule{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("category, effective_from desc").Offset(offset).Limit(limit).Find(&rules).Error; err != nil {
		return nil, 0, err
	}

	return rules, total, nil
}

// FindActiveByCategory resolves the rule whose validity window covers the
// target date. The engine calls this on every evaluation.
func (r *nisabRuleRepository) FindActiveByCategory(ctx context.Context, category string, targetDate time.Time) (*model.NisabRule, error) {
	var rule model.NisabRule
	if err := GetDB(ctx, r.db).
		Where("category = ? AND effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)", category, targetDate, targetDate).
		Order("effective_from DESC").
		First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *nisabRuleRepository) FindOverlapping(ctx context.Context, category string, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.NisabRule{}).Where("category = ?", category)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	if to != nil {
		// New rule has end date: overlap if existing.from <= new.to AND (existing.to IS NULL OR existing.to >= new.from)
		query = query.Where("effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)", *to, from)
	} else {
		// New rule has no end date: overlap if (existing.to IS NULL OR existing.to >= new.from)
		query = query.Where("(effective_to IS NULL OR effective_to >= ?)", from)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *nisabRuleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.NisabRule{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
