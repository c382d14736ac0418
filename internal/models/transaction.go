package models

import (
	"time"
)

// Transaction type values
const (
	TransactionTypeInvestment   = "investment"
	TransactionTypeDistribution = "distribution"
	TransactionTypeContribution = "contribution"
	TransactionTypeRedemption   = "redemption"
)

// Transaction status values
const (
	TransactionStatusPending  = "pending"
	TransactionStatusApproved = "approved"
	TransactionStatusReceived = "received"
	TransactionStatusRejected = "rejected"
)

// Income type values for tax reporting
const (
	IncomeTypeInterest      = "interest"
	IncomeTypePrincipal     = "principal"
	IncomeTypeCapitalReturn = "capital_return"
)

// Transaction represents a record in transactions table.
// Accrual-generated rows carry a period index; the unique index on
// (investment_id, period_index, type) is what makes concurrent ledger
// synchronization passes converge instead of duplicating rows.
type Transaction struct {
	ID                  string     `gorm:"primarykey;size:16" json:"id"` // TXN-1000007
	InvestmentID        string     `gorm:"size:16;not null;index;uniqueIndex:uq_tx_period,priority:1" json:"investment_id"`
	UserID              string     `gorm:"size:16;not null;index" json:"user_id"`
	Type                string     `gorm:"size:20;not null;uniqueIndex:uq_tx_period,priority:3" json:"type"`
	Amount              float64    `gorm:"not null" json:"amount"`
	Date                time.Time  `gorm:"not null;index" json:"date"`
	Status              string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PeriodIndex         *int       `gorm:"uniqueIndex:uq_tx_period,priority:2" json:"period_index"`
	TaxYear             int        `gorm:"not null;index" json:"tax_year"`
	TaxableIncome       float64    `gorm:"default:0" json:"taxable_income"`
	IncomeType          string     `gorm:"size:20" json:"income_type"`
	ConstructiveReceipt bool       `gorm:"default:false" json:"constructive_receipt"`
	ActualReceipt       bool       `gorm:"default:false" json:"actual_receipt"`
	DistributionTxID    *string    `gorm:"size:16" json:"distribution_tx_id"`
	FailureReason       *string    `gorm:"size:255" json:"failure_reason"`
	RetryCount          int        `gorm:"default:0" json:"retry_count"`
	LastRetryAt         *time.Time `json:"last_retry_at"`
	CompletedAt         *time.Time `json:"completed_at"`
	ManuallyCompleted   bool       `gorm:"default:false" json:"manually_completed"`
	CreatedAt           time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
