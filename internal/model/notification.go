package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification kind constants
const (
	NotifyZakatDue         = "ZAKAT_DUE"
	NotifyPaymentCompleted = "PAYMENT_COMPLETED"
	NotifyReceiptIssued    = "RECEIPT_ISSUED"
)

// Notification channel constants
const (
	NotifyViaWhatsApp = "whatsapp"
	NotifyViaEmail    = "email"
	NotifyViaSMS      = "sms"
)

// Notification is an emitted event row. Actual dispatch (WhatsApp, email,
// SMS) is handled by an external worker reading unsent rows; the backend
// only records what should be sent.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Kind      string     `gorm:"type:varchar(30);not null;index" json:"kind"`
	Channel   string     `gorm:"type:varchar(20);not null" json:"channel"` // whatsapp, email, sms
	Subject   string     `gorm:"type:varchar(255);not null" json:"subject"`
	Body      string     `gorm:"type:text" json:"body"`
	EntityID  string     `gorm:"type:varchar(50);index" json:"entity_id"` // Related calculation/payment/receipt id
	SentAt    *time.Time `gorm:"index" json:"sent_at"`                    // Null until the dispatcher picks it up
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}
