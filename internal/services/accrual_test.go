package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundcontrol/internal/models"
)

func activeInvestment(amount float64, frequency string, annualRate float64, confirmed time.Time) *models.Investment {
	return &models.Investment{
		ID:               "INV-10001",
		UserID:           "USR-1001",
		Amount:           amount,
		PaymentFrequency: frequency,
		LockupPeriod:     models.LockupPeriod1Year,
		AnnualRate:       annualRate,
		Status:           models.InvestmentStatusActive,
		ConfirmedAt:      &confirmed,
	}
}

func TestSchedule(t *testing.T) {
	confirmed := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("Simple Interest", func(t *testing.T) {
		// 12% APY, 1% per period on a fixed principal.
		inv := activeInvestment(1000, models.PaymentFrequencyMonthly, 0.12, confirmed)
		asOf := confirmed.AddDate(0, 3, 0)

		events := Schedule(inv, asOf)
		require.Len(t, events, 3)

		for i, ev := range events {
			assert.Equal(t, i+1, ev.PeriodIndex)
			assert.Equal(t, confirmed.AddDate(0, i+1, 0), ev.PeriodDate)
			assert.Equal(t, 10.00, ev.GrossAmount)
			assert.Equal(t, 1000.00, ev.CumulativePrincipalAfter)
		}
	})

	t.Run("Compounding Interest", func(t *testing.T) {
		inv := activeInvestment(1000, models.PaymentFrequencyCompounding, 0.12, confirmed)
		asOf := confirmed.AddDate(0, 2, 0)

		events := Schedule(inv, asOf)
		require.Len(t, events, 2)

		assert.Equal(t, 10.00, events[0].GrossAmount)
		assert.Equal(t, 1010.00, events[0].CumulativePrincipalAfter)
		// Second period earns on the grown balance, rounded to cents.
		assert.Equal(t, 10.10, events[1].GrossAmount)
		assert.Equal(t, 1020.10, events[1].CumulativePrincipalAfter)
	})

	t.Run("Boundary Is Inclusive", func(t *testing.T) {
		inv := activeInvestment(1000, models.PaymentFrequencyMonthly, 0.12, confirmed)

		events := Schedule(inv, confirmed.AddDate(0, 1, 0))
		assert.Len(t, events, 1)

		events = Schedule(inv, confirmed.AddDate(0, 1, 0).Add(-time.Second))
		assert.Empty(t, events)
	})

	t.Run("Deterministic", func(t *testing.T) {
		inv := activeInvestment(123450, models.PaymentFrequencyCompounding, 0.10, confirmed)
		asOf := confirmed.AddDate(3, 0, 0)

		first := Schedule(inv, asOf)
		second := Schedule(inv, asOf)
		assert.Equal(t, first, second)
		require.Len(t, first, 36)

		// Earnings never decrease period over period.
		for i := 1; i < len(first); i++ {
			assert.GreaterOrEqual(t, first[i].GrossAmount, first[i-1].GrossAmount)
		}
	})

	t.Run("Non Accruing Statuses", func(t *testing.T) {
		asOf := confirmed.AddDate(0, 6, 0)

		for _, status := range []string{
			models.InvestmentStatusDraft,
			models.InvestmentStatusSubmitted,
			models.InvestmentStatusRejected,
		} {
			inv := activeInvestment(1000, models.PaymentFrequencyMonthly, 0.12, confirmed)
			inv.Status = status
			assert.Empty(t, Schedule(inv, asOf), "status %s should not accrue", status)
		}

		inv := activeInvestment(1000, models.PaymentFrequencyMonthly, 0.12, confirmed)
		inv.ConfirmedAt = nil
		assert.Empty(t, Schedule(inv, asOf))
	})

	t.Run("Notice Period Keeps Accruing", func(t *testing.T) {
		inv := activeInvestment(1000, models.PaymentFrequencyMonthly, 0.12, confirmed)
		inv.Status = models.InvestmentStatusWithdrawalNotice

		events := Schedule(inv, confirmed.AddDate(0, 2, 0))
		assert.Len(t, events, 2)
	})

	t.Run("Default Rate Fallback", func(t *testing.T) {
		inv := activeInvestment(1000, models.PaymentFrequencyMonthly, 0, confirmed)
		inv.LockupPeriod = models.LockupPeriod3Year

		events := Schedule(inv, confirmed.AddDate(0, 1, 0))
		require.Len(t, events, 1)
		// 10% APY / 12, rounded to cents.
		assert.Equal(t, 8.33, events[0].GrossAmount)
	})
}

func TestFinalPayout(t *testing.T) {
	confirmed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Exact Period Boundary", func(t *testing.T) {
		inv := activeInvestment(1000, models.PaymentFrequencyMonthly, 0.12, confirmed)

		result := FinalPayout(inv, confirmed.AddDate(0, 2, 0))
		assert.Equal(t, 1000.00, result.PrincipalAmount)
		assert.Equal(t, 20.00, result.TotalEarnings)
		assert.Equal(t, 1020.00, result.FinalValue)
		assert.Equal(t, 2.0, result.PeriodsElapsed)
	})

	t.Run("Partial Period Prorated", func(t *testing.T) {
		inv := activeInvestment(1000, models.PaymentFrequencyMonthly, 0.12, confirmed)

		// 15 of January's 31 days elapsed: 10.00 * 15/31 = 4.84.
		result := FinalPayout(inv, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 4.84, result.TotalEarnings)
		assert.Equal(t, 1004.84, result.FinalValue)
		assert.InDelta(t, 15.0/31.0, result.PeriodsElapsed, 1e-9)
	})

	t.Run("Compounding Partial Uses Grown Balance", func(t *testing.T) {
		inv := activeInvestment(1000, models.PaymentFrequencyCompounding, 0.12, confirmed)

		// One full period (10.00), then half of February on a 1010.00 balance:
		// 1010 * 0.01 * 14.5/29 = 5.05 (2024 is a leap year).
		asOf := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
		result := FinalPayout(inv, asOf)
		assert.Equal(t, 15.05, result.TotalEarnings)
		assert.Equal(t, 1015.05, result.FinalValue)
	})

	t.Run("Final Value Never Decreases Over Time", func(t *testing.T) {
		for _, frequency := range []string{models.PaymentFrequencyMonthly, models.PaymentFrequencyCompounding} {
			inv := activeInvestment(2500, frequency, 0.12, confirmed)

			prev := 0.0
			// Sample every 6 hours across three period boundaries.
			for h := 0; h <= 24*100; h += 6 {
				asOf := confirmed.Add(time.Duration(h) * time.Hour)
				result := FinalPayout(inv, asOf)
				assert.GreaterOrEqual(t, result.FinalValue, prev,
					"%s payout decreased at %s", frequency, asOf)
				prev = result.FinalValue
			}
		}
	})

	t.Run("Unconfirmed Returns Principal Only", func(t *testing.T) {
		inv := activeInvestment(1000, models.PaymentFrequencyMonthly, 0.12, confirmed)
		inv.ConfirmedAt = nil

		result := FinalPayout(inv, confirmed.AddDate(1, 0, 0))
		assert.Equal(t, 1000.00, result.PrincipalAmount)
		assert.Equal(t, 0.00, result.TotalEarnings)
		assert.Equal(t, 1000.00, result.FinalValue)
	})
}
