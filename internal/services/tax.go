package services

import (
	"sort"
	"time"

	"fundcontrol/internal/models"
)

// taxLockedFields are the tax-relevant transaction fields frozen once the
// transaction's tax year closes.
var taxLockedFields = map[string]bool{
	"amount":         true,
	"status":         true,
	"date":           true,
	"taxable_income": true,
}

// ApplyTaxMetadata stamps tax-year metadata onto a freshly created
// transaction. Receipt flags for compounding distribution/contribution pairs
// are set by the synchronizer after pairing.
func ApplyTaxMetadata(tx *models.Transaction) {
	tx.TaxYear = tx.Date.UTC().Year()

	switch tx.Type {
	case models.TransactionTypeDistribution, models.TransactionTypeContribution:
		tx.IncomeType = models.IncomeTypeInterest
		tx.TaxableIncome = tx.Amount
	case models.TransactionTypeRedemption:
		tx.IncomeType = models.IncomeTypeCapitalReturn
		tx.TaxableIncome = 0
	default:
		tx.IncomeType = models.IncomeTypePrincipal
		tx.TaxableIncome = 0
	}
}

// TaxYearLocked reports whether taxYear has closed for reporting as of now.
// Year Y transactions stay mutable through Jan 31 23:59:59 UTC of Y+1.
func TaxYearLocked(taxYear int, now time.Time) bool {
	deadline := time.Date(taxYear+1, time.February, 1, 0, 0, 0, 0, time.UTC)
	return !now.UTC().Before(deadline)
}

// ValidateTaxMutation rejects changes to tax-relevant fields on transactions
// whose tax year has closed. Non-tax metadata is always allowed.
func ValidateTaxMutation(tx *models.Transaction, changes map[string]interface{}, now time.Time) error {
	if !TaxYearLocked(tx.TaxYear, now) {
		return nil
	}

	var locked []string
	for field := range taxLockedFields {
		if _, ok := changes[field]; ok {
			locked = append(locked, field)
		}
	}
	if len(locked) == 0 {
		return nil
	}
	sort.Strings(locked)
	return &TaxLockedError{TaxYear: tx.TaxYear, LockedFields: locked}
}
