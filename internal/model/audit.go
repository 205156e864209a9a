package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateNisabRule = "CREATE_NISAB_RULE"
	ActionUpdateNisabRule = "UPDATE_NISAB_RULE"
	ActionDeleteNisabRule = "DELETE_NISAB_RULE"

	ActionStoreCalculation = "STORE_CALCULATION"

	ActionCreatePayment    = "CREATE_PAYMENT"
	ActionCompletePayment  = "COMPLETE_PAYMENT"
	ActionFailPayment      = "FAIL_PAYMENT"
	ActionIssueReceipt     = "ISSUE_RECEIPT"
	ActionSettleCommission = "SETTLE_COMMISSION"

	ActionCreateBranch = "CREATE_BRANCH"
	ActionUpdateBranch = "UPDATE_BRANCH"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated job
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/receipt no)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
