package models

import (
	"time"
)

// Withdrawal status values
const (
	WithdrawalStatusRequested = "requested"
	WithdrawalStatusNotice    = "notice"
	WithdrawalStatusApproved  = "approved"
	WithdrawalStatusRejected  = "rejected"
)

// NoticePeriodDays is the mandatory waiting period between a withdrawal
// request and its payout due date.
const NoticePeriodDays = 90

// Withdrawal represents a record in withdrawals table.
// At most one non-rejected withdrawal may exist per investment.
type Withdrawal struct {
	ID               string     `gorm:"primarykey;size:16" json:"id"` // WTH-1001
	InvestmentID     string     `gorm:"size:16;not null;index" json:"investment_id"`
	UserID           string     `gorm:"size:16;not null;index" json:"user_id"`
	Status           string     `gorm:"size:20;not null;default:'requested';index" json:"status"`
	RequestedAt      time.Time  `gorm:"not null" json:"requested_at"`
	NoticeStartAt    *time.Time `json:"notice_start_at"`
	PayoutDueBy      *time.Time `json:"payout_due_by"`
	FinalAmount      float64    `gorm:"default:0" json:"final_amount"`
	FinalEarnings    float64    `gorm:"default:0" json:"final_earnings"`
	AdminTerminated  bool       `gorm:"default:false" json:"admin_terminated"`
	LockupOverridden bool       `gorm:"default:false" json:"lockup_overridden"`
	AdminUserID      string     `gorm:"size:16" json:"admin_user_id"`
	FailureReason    *string    `gorm:"size:255" json:"failure_reason"`
	RetryCount       int        `gorm:"default:0" json:"retry_count"`
	ApprovedAt       *time.Time `json:"approved_at"`
	RejectedAt       *time.Time `json:"rejected_at"`
	PaidAt           *time.Time `json:"paid_at"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
