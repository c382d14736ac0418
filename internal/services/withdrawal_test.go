package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundcontrol/internal/models"
)

func TestCheckLockup(t *testing.T) {
	lockupEnd := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := &models.Investment{ID: "INV-10001", LockupEndDate: &lockupEnd}

	t.Run("Before Lockup End", func(t *testing.T) {
		now := lockupEnd.AddDate(0, 0, -30)
		err := checkLockup(inv, now, false)
		require.Error(t, err)

		var lockupErr *LockupViolationError
		require.ErrorAs(t, err, &lockupErr)
		assert.Equal(t, 30, lockupErr.DaysRemaining)
		assert.Equal(t, lockupEnd, lockupErr.LockupEndDate)
	})

	t.Run("Partial Day Rounds Up", func(t *testing.T) {
		now := lockupEnd.Add(-36 * time.Hour)
		err := checkLockup(inv, now, false)
		require.Error(t, err)

		var lockupErr *LockupViolationError
		require.ErrorAs(t, err, &lockupErr)
		assert.Equal(t, 2, lockupErr.DaysRemaining)
	})

	t.Run("Override Allowed", func(t *testing.T) {
		now := lockupEnd.AddDate(0, 0, -30)
		assert.NoError(t, checkLockup(inv, now, true))
	})

	t.Run("At Or After Lockup End", func(t *testing.T) {
		assert.NoError(t, checkLockup(inv, lockupEnd, false))
		assert.NoError(t, checkLockup(inv, lockupEnd.AddDate(0, 1, 0), false))
	})

	t.Run("No Lockup Date Set", func(t *testing.T) {
		bare := &models.Investment{ID: "INV-10002"}
		assert.NoError(t, checkLockup(bare, time.Now(), false))
	})
}
