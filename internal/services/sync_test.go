package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundcontrol/internal/models"
)

func TestMissingEvents(t *testing.T) {
	confirmed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []AccrualEvent{
		{PeriodIndex: 1, PeriodDate: confirmed.AddDate(0, 1, 0), GrossAmount: 10.00},
		{PeriodIndex: 2, PeriodDate: confirmed.AddDate(0, 2, 0), GrossAmount: 10.00},
		{PeriodIndex: 3, PeriodDate: confirmed.AddDate(0, 3, 0), GrossAmount: 10.00},
	}

	t.Run("Empty Ledger Needs Everything", func(t *testing.T) {
		missing := missingEvents(events, map[periodKey]string{}, models.TransactionTypeDistribution)
		assert.Len(t, missing, 3)
	})

	t.Run("Existing Rows Are Skipped", func(t *testing.T) {
		existing := map[periodKey]string{
			{2, models.TransactionTypeDistribution}: "TXN-1000002",
		}
		missing := missingEvents(events, existing, models.TransactionTypeDistribution)
		require.Len(t, missing, 2)
		assert.Equal(t, 1, missing[0].PeriodIndex)
		assert.Equal(t, 3, missing[1].PeriodIndex)
	})

	t.Run("Key Is Per Type", func(t *testing.T) {
		// A distribution row does not satisfy the contribution side.
		existing := map[periodKey]string{
			{1, models.TransactionTypeDistribution}: "TXN-1000001",
		}
		missing := missingEvents(events, existing, models.TransactionTypeContribution)
		assert.Len(t, missing, 3)
	})

	t.Run("Diff Is Idempotent", func(t *testing.T) {
		existing := map[periodKey]string{
			{1, models.TransactionTypeDistribution}: "TXN-1000001",
			{3, models.TransactionTypeDistribution}: "TXN-1000003",
		}
		first := missingEvents(events, existing, models.TransactionTypeDistribution)
		second := missingEvents(events, existing, models.TransactionTypeDistribution)
		assert.Equal(t, first, second)
		require.Len(t, first, 1)
		assert.Equal(t, 2, first[0].PeriodIndex)
	})

	t.Run("Fully Materialized Ledger Is A No Op", func(t *testing.T) {
		existing := map[periodKey]string{
			{1, models.TransactionTypeDistribution}: "TXN-1000001",
			{2, models.TransactionTypeDistribution}: "TXN-1000002",
			{3, models.TransactionTypeDistribution}: "TXN-1000003",
		}
		assert.Empty(t, missingEvents(events, existing, models.TransactionTypeDistribution))
	})
}
