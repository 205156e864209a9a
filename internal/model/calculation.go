package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Calculation status constants
const (
	StatusWajib      = "wajib"
	StatusTidakWajib = "tidak_wajib"
)

// ZakatCalculation is a stored engine result. Raw inputs are kept as the
// submitted JSON so an assessment can be audited and replayed; the
// computed amounts are snapshots of the evaluation and are never
// recomputed from a stored row.
type ZakatCalculation struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category        string          `gorm:"type:varchar(20);not null;index" json:"category"`
	Inputs          string          `gorm:"type:jsonb;not null" json:"inputs"` // Raw inputs as submitted
	GrossAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"gross_amount"`
	TotalDeductions decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_deductions"`
	NetAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"net_amount"`
	NisabThreshold  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"nisab_threshold"`
	RateApplied     decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"rate_applied"`
	Status          string          `gorm:"type:varchar(20);not null;index" json:"status"` // wajib, tidak_wajib
	ZakatDue        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"zakat_due"`
	HaulStartDate   *time.Time      `gorm:"type:date" json:"haul_start_date"`
	HaulEndDate     *time.Time      `gorm:"type:date" json:"haul_end_date"`
	EvaluatedAt     time.Time       `gorm:"not null" json:"evaluated_at"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
