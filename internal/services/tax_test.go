package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundcontrol/internal/models"
)

func TestApplyTaxMetadata(t *testing.T) {
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Distribution Is Taxable Interest", func(t *testing.T) {
		tx := models.Transaction{Type: models.TransactionTypeDistribution, Amount: 10.00, Date: date}
		ApplyTaxMetadata(&tx)
		assert.Equal(t, 2024, tx.TaxYear)
		assert.Equal(t, models.IncomeTypeInterest, tx.IncomeType)
		assert.Equal(t, 10.00, tx.TaxableIncome)
	})

	t.Run("Redemption Is Untaxed Capital Return", func(t *testing.T) {
		tx := models.Transaction{Type: models.TransactionTypeRedemption, Amount: 1020.00, Date: date}
		ApplyTaxMetadata(&tx)
		assert.Equal(t, models.IncomeTypeCapitalReturn, tx.IncomeType)
		assert.Equal(t, 0.00, tx.TaxableIncome)
	})

	t.Run("Principal Is Untaxed", func(t *testing.T) {
		tx := models.Transaction{Type: models.TransactionTypeInvestment, Amount: 1000.00, Date: date}
		ApplyTaxMetadata(&tx)
		assert.Equal(t, models.IncomeTypePrincipal, tx.IncomeType)
		assert.Equal(t, 0.00, tx.TaxableIncome)
	})

	t.Run("Tax Year From UTC Date", func(t *testing.T) {
		// Dec 31 23:00 in UTC-5 is already January 1 UTC.
		loc := time.FixedZone("EST", -5*3600)
		tx := models.Transaction{
			Type: models.TransactionTypeDistribution,
			Date: time.Date(2024, 12, 31, 23, 0, 0, 0, loc),
		}
		ApplyTaxMetadata(&tx)
		assert.Equal(t, 2025, tx.TaxYear)
	})
}

func TestTaxYearLocked(t *testing.T) {
	assert.False(t, TaxYearLocked(2024, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, TaxYearLocked(2024, time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)))
	assert.True(t, TaxYearLocked(2024, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, TaxYearLocked(2024, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestValidateTaxMutation(t *testing.T) {
	tx := &models.Transaction{
		ID:      "TXN-1000001",
		Type:    models.TransactionTypeDistribution,
		Amount:  10.00,
		TaxYear: 2024,
	}

	open := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	closed := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Open Year Allows Everything", func(t *testing.T) {
		changes := map[string]interface{}{"amount": 12.00, "status": models.TransactionStatusReceived}
		assert.NoError(t, ValidateTaxMutation(tx, changes, open))
	})

	t.Run("Closed Year Rejects Tax Fields", func(t *testing.T) {
		changes := map[string]interface{}{"status": models.TransactionStatusReceived, "amount": 12.00}
		err := ValidateTaxMutation(tx, changes, closed)
		require.Error(t, err)

		var taxErr *TaxLockedError
		require.ErrorAs(t, err, &taxErr)
		assert.Equal(t, 2024, taxErr.TaxYear)
		assert.Equal(t, []string{"amount", "status"}, taxErr.LockedFields)
	})

	t.Run("Closed Year Allows Non Tax Metadata", func(t *testing.T) {
		changes := map[string]interface{}{"failure_reason": "gateway timeout", "retry_count": 2}
		assert.NoError(t, ValidateTaxMutation(tx, changes, closed))
	})
}
