package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fundcontrol/internal/models"
)

// AccrualEvent is one elapsed interest period of an investment.
type AccrualEvent struct {
	PeriodIndex              int       `json:"period_index"`
	PeriodDate               time.Time `json:"period_date"`
	GrossAmount              float64   `json:"gross_amount"`
	CumulativePrincipalAfter float64   `json:"cumulative_principal_after"`
}

// FinalPayoutResult is the payout owed when an investment is closed out.
type FinalPayoutResult struct {
	PrincipalAmount float64 `json:"principal_amount"`
	TotalEarnings   float64 `json:"total_earnings"`
	FinalValue      float64 `json:"final_value"`
	PeriodsElapsed  float64 `json:"periods_elapsed"`
}

var twelve = decimal.NewFromInt(12)

// monthlyRate returns the per-period interest rate of an investment.
// Falls back to the product default when the row predates the annual_rate column.
func monthlyRate(inv *models.Investment) decimal.Decimal {
	rate := inv.AnnualRate
	if rate == 0 {
		rate = models.DefaultAnnualRate(inv.LockupPeriod)
	}
	return decimal.NewFromFloat(rate).Div(twelve)
}

// accrues reports whether an investment earns interest at all.
func accrues(inv *models.Investment) bool {
	if inv == nil || inv.ConfirmedAt == nil {
		return false
	}
	switch inv.Status {
	case models.InvestmentStatusActive,
		models.InvestmentStatusWithdrawalNotice,
		models.InvestmentStatusWithdrawn:
		return true
	}
	return false
}

// Schedule derives the ordered accrual events of an investment up to asOf.
// One event per fully elapsed period; period boundaries are calendar months
// from the confirmation date. Amounts are rounded to cents after every step
// so repeated calls with identical inputs are byte-identical.
func Schedule(inv *models.Investment, asOf time.Time) []AccrualEvent {
	if !accrues(inv) {
		return nil
	}

	confirmed := inv.ConfirmedAt.UTC()
	rate := monthlyRate(inv)
	principal := decimal.NewFromFloat(inv.Amount)
	balance := principal

	var events []AccrualEvent
	for i := 1; ; i++ {
		periodDate := confirmed.AddDate(0, i, 0)
		if periodDate.After(asOf) {
			break
		}

		var gross decimal.Decimal
		if inv.PaymentFrequency == models.PaymentFrequencyCompounding {
			gross = balance.Mul(rate).Round(2)
			balance = balance.Add(gross)
		} else {
			gross = principal.Mul(rate).Round(2)
		}

		events = append(events, AccrualEvent{
			PeriodIndex:              i,
			PeriodDate:               periodDate,
			GrossAmount:              gross.InexactFloat64(),
			CumulativePrincipalAfter: balance.InexactFloat64(),
		})
	}
	return events
}

// FinalPayout computes principal plus all accrued earnings through asOf,
// prorating the partial final period linearly by its elapsed fraction.
func FinalPayout(inv *models.Investment, asOf time.Time) FinalPayoutResult {
	principal := decimal.NewFromFloat(inv.Amount)
	if !accrues(inv) {
		p := principal.Round(2).InexactFloat64()
		return FinalPayoutResult{PrincipalAmount: p, FinalValue: p}
	}

	confirmed := inv.ConfirmedAt.UTC()
	rate := monthlyRate(inv)
	events := Schedule(inv, asOf)

	earnings := decimal.Zero
	balance := principal
	for _, ev := range events {
		earnings = earnings.Add(decimal.NewFromFloat(ev.GrossAmount))
		balance = decimal.NewFromFloat(ev.CumulativePrincipalAfter)
	}

	// Partial current period, linear by elapsed fraction.
	periods := float64(len(events))
	start := confirmed.AddDate(0, len(events), 0)
	end := confirmed.AddDate(0, len(events)+1, 0)
	if asOf.After(start) {
		fraction := float64(asOf.Sub(start)) / float64(end.Sub(start))
		base := principal
		if inv.PaymentFrequency == models.PaymentFrequencyCompounding {
			base = balance
		}
		partial := base.Mul(rate).Mul(decimal.NewFromFloat(fraction)).Round(2)
		earnings = earnings.Add(partial)
		periods += fraction
	}

	total := earnings.Round(2)
	return FinalPayoutResult{
		PrincipalAmount: principal.Round(2).InexactFloat64(),
		TotalEarnings:   total.InexactFloat64(),
		FinalValue:      principal.Add(total).Round(2).InexactFloat64(),
		PeriodsElapsed:  periods,
	}
}
