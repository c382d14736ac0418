package services

import (
	"fmt"
	"math"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fundcontrol/internal/models"
)

// WithdrawalService drives the investment withdrawal lifecycle: user-initiated
// notice-period withdrawals, admin termination, and the manual pending-payout
// queue for monthly distributions.
type WithdrawalService struct {
	db      *gorm.DB
	clock   *Clock
	ids     *IDAllocator
	gateway PaymentGateway
}

func NewWithdrawalService(db *gorm.DB, gateway PaymentGateway) *WithdrawalService {
	return &WithdrawalService{
		db:      db,
		clock:   NewClock(db),
		ids:     NewIDAllocator(db),
		gateway: gateway,
	}
}

// TerminationResult is returned from Terminate and from completing a
// notice-period withdrawal.
type TerminationResult struct {
	Withdrawal *models.Withdrawal `json:"withdrawal"`
	Payout     FinalPayoutResult  `json:"payout"`
}

// checkLockup returns a LockupViolationError when now is before the lockup
// end date and no override was supplied.
func checkLockup(inv *models.Investment, now time.Time, override bool) error {
	if inv.LockupEndDate == nil || !now.Before(*inv.LockupEndDate) {
		return nil
	}
	if override {
		logger.Warnf("withdrawal: lockup overridden for investment %s (ends %s)",
			inv.ID, inv.LockupEndDate.UTC().Format(time.RFC3339))
		return nil
	}
	remaining := int(math.Ceil(inv.LockupEndDate.Sub(now).Hours() / 24))
	return &LockupViolationError{LockupEndDate: *inv.LockupEndDate, DaysRemaining: remaining}
}

// Request starts a user-initiated withdrawal: the investment enters its
// 90-day notice period and a single non-rejected withdrawal row is created.
func (w *WithdrawalService) Request(investmentID, userID string, overrideLockup bool) (*models.Withdrawal, error) {
	var inv models.Investment
	err := w.db.First(&inv, "id = ? AND user_id = ?", investmentID, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvestmentNotFound
		}
		return nil, err
	}

	if inv.Status != models.InvestmentStatusActive {
		return nil, &InvalidStatusError{
			Entity:   "investment",
			Current:  inv.Status,
			Expected: []string{models.InvestmentStatusActive},
		}
	}

	now := w.clock.Now()
	if err := checkLockup(&inv, now, overrideLockup); err != nil {
		return nil, err
	}

	// At most one non-rejected withdrawal per investment, checked before insert.
	var count int64
	err = w.db.Model(&models.Withdrawal{}).
		Where("investment_id = ? AND status <> ?", inv.ID, models.WithdrawalStatusRejected).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateWithdrawal
	}

	id, err := w.ids.Next(IDTypeWithdrawal)
	if err != nil {
		return nil, err
	}

	payoutDueBy := now.AddDate(0, 0, models.NoticePeriodDays)
	withdrawal := models.Withdrawal{
		ID:               id,
		InvestmentID:     inv.ID,
		UserID:           inv.UserID,
		Status:           models.WithdrawalStatusNotice,
		RequestedAt:      now,
		NoticeStartAt:    &now,
		PayoutDueBy:      &payoutDueBy,
		LockupOverridden: overrideLockup,
	}

	err = w.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&withdrawal).Error; err != nil {
			return err
		}
		err := tx.Model(&inv).Updates(map[string]interface{}{
			"status":                     models.InvestmentStatusWithdrawalNotice,
			"withdrawal_notice_start_at": now,
		}).Error
		if err != nil {
			return err
		}
		return tx.Create(&models.Activity{
			UserID:       inv.UserID,
			InvestmentID: inv.ID,
			Type:         models.ActivityWithdrawalRequested,
			Date:         now,
			Description:  fmt.Sprintf("Withdrawal %s requested for investment %s", id, inv.ID),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

// Terminate closes out an investment immediately, bypassing the notice
// period. Requires overrideLockup when the lockup has not yet elapsed.
func (w *WithdrawalService) Terminate(investmentID, adminUserID string, overrideLockup bool) (*TerminationResult, error) {
	var inv models.Investment
	err := w.db.First(&inv, "id = ?", investmentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvestmentNotFound
		}
		return nil, err
	}

	if inv.Status != models.InvestmentStatusActive && inv.Status != models.InvestmentStatusWithdrawalNotice {
		return nil, &InvalidStatusError{
			Entity:  "investment",
			Current: inv.Status,
			Expected: []string{
				models.InvestmentStatusActive,
				models.InvestmentStatusWithdrawalNotice,
			},
		}
	}

	now := w.clock.Now()
	if err := checkLockup(&inv, now, overrideLockup); err != nil {
		return nil, err
	}

	return w.finalize(&inv, adminUserID, now, true, overrideLockup)
}

// finalize computes the final payout, upserts the withdrawal to approved,
// books the redemption transaction and marks the investment withdrawn.
func (w *WithdrawalService) finalize(inv *models.Investment, adminUserID string, now time.Time, adminTerminated, overrideLockup bool) (*TerminationResult, error) {
	payout := FinalPayout(inv, now)

	var withdrawal models.Withdrawal
	err := w.db.Where("investment_id = ? AND status <> ?", inv.ID, models.WithdrawalStatusRejected).
		First(&withdrawal).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err == gorm.ErrRecordNotFound {
		id, idErr := w.ids.Next(IDTypeWithdrawal)
		if idErr != nil {
			return nil, idErr
		}
		withdrawal = models.Withdrawal{
			ID:           id,
			InvestmentID: inv.ID,
			UserID:       inv.UserID,
			RequestedAt:  now,
		}
	}

	withdrawal.Status = models.WithdrawalStatusApproved
	withdrawal.FinalAmount = payout.FinalValue
	withdrawal.FinalEarnings = payout.TotalEarnings
	withdrawal.AdminTerminated = adminTerminated
	withdrawal.LockupOverridden = withdrawal.LockupOverridden || overrideLockup
	withdrawal.AdminUserID = adminUserID
	withdrawal.ApprovedAt = &now
	withdrawal.PaidAt = &now

	txnID, err := w.ids.Next(IDTypeTransaction)
	if err != nil {
		return nil, err
	}
	redemption := models.Transaction{
		ID:            txnID,
		InvestmentID:  inv.ID,
		UserID:        inv.UserID,
		Type:          models.TransactionTypeRedemption,
		Amount:        payout.FinalValue,
		Date:          now,
		Status:        models.TransactionStatusReceived,
		ActualReceipt: true,
	}
	ApplyTaxMetadata(&redemption)

	err = w.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&withdrawal).Error; err != nil {
			return err
		}
		if err := tx.Create(&redemption).Error; err != nil {
			return err
		}
		err := tx.Model(inv).Updates(map[string]interface{}{
			"status":         models.InvestmentStatusWithdrawn,
			"withdrawn_at":   now,
			"final_value":    payout.FinalValue,
			"total_earnings": payout.TotalEarnings,
		}).Error
		if err != nil {
			return err
		}

		description := fmt.Sprintf("Investment %s terminated (admin %s)", inv.ID, adminUserID)
		if !adminTerminated {
			description = fmt.Sprintf("Withdrawal %s completed for investment %s", withdrawal.ID, inv.ID)
		}
		return tx.Create(&models.Activity{
			UserID:       inv.UserID,
			InvestmentID: inv.ID,
			Type:         models.ActivityWithdrawalCompleted,
			Date:         now,
			Description:  description,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &TerminationResult{Withdrawal: &withdrawal, Payout: payout}, nil
}

// Complete approves a notice-period withdrawal and pays it out.
func (w *WithdrawalService) Complete(withdrawalID, adminUserID string) (*TerminationResult, error) {
	var withdrawal models.Withdrawal
	err := w.db.First(&withdrawal, "id = ?", withdrawalID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}
	if withdrawal.Status == models.WithdrawalStatusRejected {
		return nil, &InvalidStatusError{
			Entity:   "withdrawal",
			Current:  withdrawal.Status,
			Expected: []string{models.WithdrawalStatusRequested, models.WithdrawalStatusNotice},
		}
	}

	var inv models.Investment
	if err := w.db.First(&inv, "id = ?", withdrawal.InvestmentID).Error; err != nil {
		return nil, err
	}
	if inv.Status == models.InvestmentStatusWithdrawn {
		return w.alreadyFinal(&withdrawal)
	}

	return w.finalize(&inv, adminUserID, w.clock.Now(), false, false)
}

func (w *WithdrawalService) alreadyFinal(withdrawal *models.Withdrawal) (*TerminationResult, error) {
	return &TerminationResult{
		Withdrawal: withdrawal,
		Payout: FinalPayoutResult{
			PrincipalAmount: withdrawal.FinalAmount - withdrawal.FinalEarnings,
			TotalEarnings:   withdrawal.FinalEarnings,
			FinalValue:      withdrawal.FinalAmount,
		},
	}, nil
}

// Reject refuses a pending withdrawal and returns the investment to active.
func (w *WithdrawalService) Reject(withdrawalID, reason string) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := w.db.First(&withdrawal, "id = ?", withdrawalID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}
	if withdrawal.Status == models.WithdrawalStatusApproved {
		return nil, &InvalidStatusError{
			Entity:   "withdrawal",
			Current:  withdrawal.Status,
			Expected: []string{models.WithdrawalStatusRequested, models.WithdrawalStatusNotice},
		}
	}

	now := w.clock.Now()
	err = w.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":      models.WithdrawalStatusRejected,
			"rejected_at": now,
		}
		if reason != "" {
			updates["failure_reason"] = reason
		}
		if err := tx.Model(&withdrawal).Updates(updates).Error; err != nil {
			return err
		}
		err := tx.Model(&models.Investment{}).
			Where("id = ? AND status = ?", withdrawal.InvestmentID, models.InvestmentStatusWithdrawalNotice).
			Updates(map[string]interface{}{
				"status":                     models.InvestmentStatusActive,
				"withdrawal_notice_start_at": nil,
			}).Error
		if err != nil {
			return err
		}
		return tx.Create(&models.Activity{
			UserID:       withdrawal.UserID,
			InvestmentID: withdrawal.InvestmentID,
			Type:         models.ActivityWithdrawalRejected,
			Date:         now,
			Description:  fmt.Sprintf("Withdrawal %s rejected", withdrawal.ID),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

// Payout queue actions
const (
	PayoutActionRetry    = "retry"
	PayoutActionComplete = "complete"
	PayoutActionFail     = "fail"
)

// ManagePayout handles the manual pending-payout queue for monthly
// distributions: retry through the payment gateway, force-complete, or
// mark failed. Compounded distributions never enter this queue.
func (w *WithdrawalService) ManagePayout(transactionID, action, failureReason string) (*models.Transaction, error) {
	var txn models.Transaction
	err := w.db.First(&txn, "id = ?", transactionID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if txn.Type != models.TransactionTypeDistribution {
		return nil, &ValidationError{Reason: fmt.Sprintf("only distribution transactions can be managed (got %s)", txn.Type)}
	}

	var inv models.Investment
	if err := w.db.First(&inv, "id = ?", txn.InvestmentID).Error; err != nil {
		return nil, err
	}
	if inv.PaymentFrequency == models.PaymentFrequencyCompounding {
		return nil, &ValidationError{Reason: "compounding distributions are reinvested automatically and cannot be managed"}
	}

	now := w.clock.Now()
	updates := map[string]interface{}{}

	switch action {
	case PayoutActionRetry:
		updates["retry_count"] = txn.RetryCount + 1
		updates["last_retry_at"] = now
		if err := w.gateway.Transfer(txn.Amount, txn.ID); err != nil {
			reason := failureReason
			if reason == "" {
				reason = err.Error()
			}
			updates["status"] = models.TransactionStatusRejected
			updates["failure_reason"] = reason
		} else {
			updates["status"] = models.TransactionStatusReceived
			updates["completed_at"] = now
			updates["failure_reason"] = nil
		}
	case PayoutActionComplete:
		updates["status"] = models.TransactionStatusReceived
		updates["completed_at"] = now
		updates["manually_completed"] = true
		updates["failure_reason"] = nil
	case PayoutActionFail:
		reason := failureReason
		if reason == "" {
			reason = "manually marked as failed by admin"
		}
		updates["status"] = models.TransactionStatusRejected
		updates["failure_reason"] = reason
	default:
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid payout action: %s (must be retry, complete or fail)", action)}
	}

	if err := ValidateTaxMutation(&txn, updates, now); err != nil {
		return nil, err
	}
	if err := w.db.Model(&txn).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}
