package models

import (
	"time"
)

// Investment status values
const (
	InvestmentStatusDraft            = "draft"
	InvestmentStatusSubmitted        = "submitted"
	InvestmentStatusActive           = "active"
	InvestmentStatusWithdrawalNotice = "withdrawal_notice"
	InvestmentStatusWithdrawn        = "withdrawn"
	InvestmentStatusRejected         = "rejected"
)

// Payment frequency values
const (
	PaymentFrequencyMonthly     = "monthly"
	PaymentFrequencyCompounding = "compounding"
)

// Lockup period values
const (
	LockupPeriod1Year = "1-year"
	LockupPeriod3Year = "3-year"
	LockupPeriod5Year = "5-year"
)

// Investment represents a record in investments table
type Investment struct {
	ID                      string     `gorm:"primarykey;size:16" json:"id"` // INV-10042
	UserID                  string     `gorm:"size:16;not null;index" json:"user_id"`
	Amount                  float64    `gorm:"not null" json:"amount"`
	PaymentFrequency        string     `gorm:"size:20;not null;default:'monthly'" json:"payment_frequency"` // 'monthly' or 'compounding'
	LockupPeriod            string     `gorm:"size:10;not null;default:'1-year'" json:"lockup_period"`
	AnnualRate              float64    `gorm:"not null" json:"annual_rate"`
	Status                  string     `gorm:"size:20;not null;default:'draft';index" json:"status"`
	ConfirmedAt             *time.Time `json:"confirmed_at"`
	LockupEndDate           *time.Time `json:"lockup_end_date"`
	WithdrawalNoticeStartAt *time.Time `json:"withdrawal_notice_start_at"`
	WithdrawnAt             *time.Time `json:"withdrawn_at"`
	TotalEarnings           float64    `gorm:"default:0" json:"total_earnings"`
	FinalValue              float64    `gorm:"default:0" json:"final_value"`
	CreatedAt               time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt               time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Investment) TableName() string {
	return "investments"
}

// LockupYears returns the lockup duration in years.
func (i *Investment) LockupYears() int {
	switch i.LockupPeriod {
	case LockupPeriod3Year:
		return 3
	case LockupPeriod5Year:
		return 5
	default:
		return 1
	}
}

// DefaultAnnualRate returns the product rate for the lockup period.
// 1-year products pay 8% APY, longer lockups pay 10%.
func DefaultAnnualRate(lockupPeriod string) float64 {
	switch lockupPeriod {
	case LockupPeriod3Year, LockupPeriod5Year:
		return 0.10
	default:
		return 0.08
	}
}
