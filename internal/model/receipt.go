package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt is the official proof of payment, issued exactly once per
// completed payment with a sequential daily number.
type Receipt struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReceiptNo string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"receipt_no"` // RCP-YYYYMMDD-NNNNN
	PaymentID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"payment_id"`
	Payment   *Payment        `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
	PayerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"payer_id"`
	Payer     *User           `gorm:"foreignKey:PayerID" json:"payer,omitempty"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Category  string          `gorm:"type:varchar(20);not null" json:"category"`
	IssuedAt  time.Time       `gorm:"not null" json:"issued_at"`
	CreatedAt time.Time       `json:"created_at"`
}
