package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NisabRule stores per-category nisab thresholds and zakat rates with
// temporal validity. The calculation engine resolves the rule whose
// window covers the evaluation date; exactly one rule per category may
// be active at a time (overlap is rejected on write).
type NisabRule struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Category      string          `gorm:"type:varchar(20);not null;index" json:"category"`     // income, business, gold_silver, savings, shares, takaful
	Threshold     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"threshold"`        // Minimum zakatable amount in RM
	Rate          decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"rate"`             // e.g. 0.025 = 2.5%
	HaulDays      int             `gorm:"not null;default:355" json:"haul_days"`               // Islamic lunar year
	EffectiveFrom time.Time       `gorm:"type:date;not null;index" json:"effective_from"`      // Start date
	EffectiveTo   *time.Time      `gorm:"type:date;index" json:"effective_to"`                 // End date, nullable = currently active
	Description   string          `gorm:"type:text" json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
