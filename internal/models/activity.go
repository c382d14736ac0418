package models

import (
	"time"
)

// Activity types written by the withdrawal and termination flows
const (
	ActivityWithdrawalRequested  = "withdrawal_requested"
	ActivityWithdrawalCompleted  = "withdrawal_completed"
	ActivityWithdrawalRejected   = "withdrawal_rejected"
	ActivityInvestmentConfirmed  = "investment_confirmed"
	ActivityInvestmentTerminated = "investment_terminated"
	ActivityLedgerSynchronized   = "ledger_synchronized"
)

// Activity represents a record in activity table. Append-only event rows
// consumed by the admin activity stream.
type Activity struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       string    `gorm:"size:16;index" json:"user_id"`
	InvestmentID string    `gorm:"size:16;index" json:"investment_id"`
	Type         string    `gorm:"size:40;not null" json:"type"`
	Date         time.Time `gorm:"not null;index" json:"date"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Activity) TableName() string {
	return "activity"
}
