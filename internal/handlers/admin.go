package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fundcontrol/internal/models"
	"fundcontrol/internal/services"
	dbconfig "fundcontrol/pkg/config"
)

// GetTimeMachine returns the current application time status
func GetTimeMachine(c *gin.Context) {
	clock := newClock()
	settings, err := clock.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	real := time.Now().UTC()
	c.JSON(http.StatusOK, gin.H{
		"app_time":                   clock.Now().Format(time.RFC3339),
		"real_time":                  real.Format(time.RFC3339),
		"is_overridden":              settings.TimeOffsetMs != nil,
		"auto_approve_distributions": settings.AutoApproveDistributions,
	})
}

// SetTimeMachineRequest represents the request payload for the time machine.
// Either a timestamp to set application time to, or the auto-approve toggle.
type SetTimeMachineRequest struct {
	Timestamp                *string `json:"timestamp"`
	AutoApproveDistributions *bool   `json:"auto_approve_distributions"`
	AdminUserID              string  `json:"admin_user_id" binding:"required"`
}

// SetTimeMachine sets the application time offset or toggles auto-approve.
// Either change re-synchronizes the ledger out of band: the settings write
// commits before the sync task is published.
func SetTimeMachine(c *gin.Context) {
	var req SetTimeMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clock := newClock()

	if req.AutoApproveDistributions != nil {
		settings, err := clock.SetAutoApprove(*req.AutoApproveDistributions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		services.TriggerSync(newSynchronizer(), services.SyncTask{
			Reason:      "auto_approve_toggled",
			TriggeredBy: req.AdminUserID,
		})

		c.JSON(http.StatusOK, gin.H{
			"auto_approve_distributions": settings.AutoApproveDistributions,
			"app_time":                   clock.Now().Format(time.RFC3339),
		})
		return
	}

	if req.Timestamp == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "must provide either timestamp or auto_approve_distributions"})
		return
	}

	desired, err := time.Parse(time.RFC3339, *req.Timestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timestamp must be RFC 3339 UTC"})
		return
	}

	settings, err := clock.Set(desired, req.AdminUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	services.TriggerSync(newSynchronizer(), services.SyncTask{
		Reason:      "clock_set",
		TriggeredBy: req.AdminUserID,
	})

	c.JSON(http.StatusOK, gin.H{
		"app_time":                   clock.Now().Format(time.RFC3339),
		"is_overridden":              true,
		"time_offset_ms":             settings.TimeOffsetMs,
		"auto_approve_distributions": settings.AutoApproveDistributions,
	})
}

// ResetTimeMachine clears the time offset and re-synchronizes the ledger
func ResetTimeMachine(c *gin.Context) {
	clock := newClock()
	actor := c.Query("admin_user_id")

	if _, err := clock.Reset(actor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	services.TriggerSync(newSynchronizer(), services.SyncTask{
		Reason:      "clock_reset",
		TriggeredBy: actor,
	})

	c.JSON(http.StatusOK, gin.H{
		"app_time":      clock.Now().Format(time.RFC3339),
		"is_overridden": false,
	})
}

// SynchronizeRequest represents the request payload for a manual sync trigger
type SynchronizeRequest struct {
	InvestmentID string `json:"investment_id"`
	AdminUserID  string `json:"admin_user_id" binding:"required"`
}

// Synchronize manually triggers a ledger synchronization pass. The pass runs
// out of band; this endpoint returns as soon as the task is enqueued.
func Synchronize(c *gin.Context) {
	var req SynchronizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	services.TriggerSync(newSynchronizer(), services.SyncTask{
		Reason:       "manual",
		InvestmentID: req.InvestmentID,
		TriggeredBy:  req.AdminUserID,
	})

	c.JSON(http.StatusAccepted, gin.H{"message": "Synchronization scheduled"})
}

// TerminateInvestmentRequest represents the request payload for admin termination
type TerminateInvestmentRequest struct {
	InvestmentID   string `json:"investment_id" binding:"required"`
	AdminUserID    string `json:"admin_user_id" binding:"required"`
	OverrideLockup bool   `json:"override_lockup"`
}

// TerminateInvestment immediately closes out an investment, bypassing the
// notice period, and re-synchronizes the ledger out of band.
func TerminateInvestment(c *gin.Context) {
	var req TerminateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := newWithdrawalService().Terminate(req.InvestmentID, req.AdminUserID, req.OverrideLockup)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.TriggerSync(newSynchronizer(), services.SyncTask{
		Reason:       "investment_terminated",
		InvestmentID: req.InvestmentID,
		TriggeredBy:  req.AdminUserID,
	})

	c.JSON(http.StatusOK, gin.H{
		"withdrawal":   result.Withdrawal,
		"final_payout": result.Payout,
	})
}

// ManageWithdrawalRequest represents the request payload for completing or
// rejecting a notice-period withdrawal
type ManageWithdrawalRequest struct {
	Action       string `json:"action" binding:"required,oneof=complete reject"`
	WithdrawalID string `json:"withdrawal_id" binding:"required"`
	AdminUserID  string `json:"admin_user_id" binding:"required"`
	Reason       string `json:"reason"`
}

// ManageWithdrawal completes (pays out) or rejects a pending withdrawal
func ManageWithdrawal(c *gin.Context) {
	var req ManageWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := newWithdrawalService()
	switch req.Action {
	case "complete":
		result, err := svc.Complete(req.WithdrawalID, req.AdminUserID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"withdrawal": result.Withdrawal, "final_payout": result.Payout})
	case "reject":
		withdrawal, err := svc.Reject(req.WithdrawalID, req.Reason)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"withdrawal": withdrawal})
	}
}

// ListPendingPayouts returns monthly distributions awaiting manual approval,
// ordered oldest first. Compounding distributions never appear here.
func ListPendingPayouts(c *gin.Context) {
	now := newClock().Now()

	var payouts []models.Transaction
	err := dbconfig.DB.
		Joins("JOIN investments ON investments.id = transactions.investment_id").
		Where("transactions.type = ?", models.TransactionTypeDistribution).
		Where("transactions.status IN ?", []string{models.TransactionStatusPending, models.TransactionStatusApproved}).
		Where("transactions.date <= ?", now).
		Where("investments.payment_frequency = ?", models.PaymentFrequencyMonthly).
		Order("transactions.date asc").
		Find(&payouts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pending_payouts": payouts,
		"count":           len(payouts),
	})
}

// ManagePayoutRequest represents the request payload for the pending-payout queue
type ManagePayoutRequest struct {
	Action        string `json:"action" binding:"required,oneof=retry complete fail"`
	TransactionID string `json:"transaction_id" binding:"required"`
	FailureReason string `json:"failure_reason"`
}

// ManagePayout retries, force-completes or fails a pending distribution payout
func ManagePayout(c *gin.Context) {
	var req ManagePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := newWithdrawalService().ManagePayout(req.TransactionID, req.Action, req.FailureReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}
