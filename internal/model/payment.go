package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment channel constants
const (
	ChannelFPX     = "fpx"
	ChannelJomPAY  = "jompay"
	ChannelEWallet = "ewallet"
	ChannelCard    = "card"
	ChannelCounter = "counter" // collected in person by an amil
)

// Payment status constants
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

// Payment is a zakat payment against a wajib calculation. The gateway
// hand-off is external; only the channel and the gateway's reference are
// recorded. Counter payments carry the collecting amil and branch.
type Payment struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CalculationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"calculation_id"`
	Calculation   *ZakatCalculation `gorm:"foreignKey:CalculationID" json:"calculation,omitempty"`
	PayerID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"payer_id"`
	Payer         *User             `gorm:"foreignKey:PayerID" json:"payer,omitempty"`
	AmilID        *uuid.UUID        `gorm:"type:uuid;index" json:"amil_id"` // Set for counter collections
	Amil          *User             `gorm:"foreignKey:AmilID" json:"amil,omitempty"`
	BranchID      *uuid.UUID        `gorm:"type:uuid;index" json:"branch_id"`
	Branch        *Branch           `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Amount        decimal.Decimal   `gorm:"type:decimal(18,2);not null" json:"amount"`
	Channel       string            `gorm:"type:varchar(20);not null;index" json:"channel"` // fpx, jompay, ewallet, card, counter
	Status        string            `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	GatewayRef    string            `gorm:"type:varchar(100)" json:"gateway_ref"` // External gateway transaction reference
	FailureReason string            `gorm:"type:text" json:"failure_reason,omitempty"`
	PaidAt        *time.Time        `json:"paid_at"`
	CreatedAt     time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
