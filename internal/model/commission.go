package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Commission status constants
const (
	CommissionPending = "PENDING"
	CommissionSettled = "SETTLED"
)

// AmilCommission is the amil's share of a counter collection, earned when
// the payment completes. The rate is snapshotted on the row so later rate
// changes never restate history.
type AmilCommission struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AmilID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"amil_id"`
	Amil      *User           `gorm:"foreignKey:AmilID" json:"amil,omitempty"`
	PaymentID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"payment_id"`
	Payment   *Payment        `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
	BranchID  *uuid.UUID      `gorm:"type:uuid;index" json:"branch_id"`
	Rate      decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"rate"`   // Fraction of the collected amount
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"` // collected * rate, rounded to cents
	Status    string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	SettledAt *time.Time      `json:"settled_at"`
	SettledBy *uuid.UUID      `gorm:"type:uuid" json:"settled_by"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
