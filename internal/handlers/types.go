package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fundcontrol/internal/services"
	dbconfig "fundcontrol/pkg/config"
)

// Gateway is the payment rail used by the pending-payout retry flow.
// The mock simulates an 80% transfer success rate; a real integration
// would replace this at startup.
var Gateway services.PaymentGateway = services.NewMockGateway(0.8, time.Now().UnixNano())

func newSynchronizer() *services.Synchronizer {
	return services.NewSynchronizer(dbconfig.DB)
}

func newClock() *services.Clock {
	return services.NewClock(dbconfig.DB)
}

func newWithdrawalService() *services.WithdrawalService {
	return services.NewWithdrawalService(dbconfig.DB, Gateway)
}

func newIDAllocator() *services.IDAllocator {
	return services.NewIDAllocator(dbconfig.DB)
}

// respondServiceError maps domain errors onto HTTP responses. Every rejected
// mutation carries a machine-checkable reason.
func respondServiceError(c *gin.Context, err error) {
	var lockup *services.LockupViolationError
	if errors.As(err, &lockup) {
		c.JSON(http.StatusConflict, gin.H{
			"error":           lockup.Error(),
			"code":            "lockup_violation",
			"days_remaining":  lockup.DaysRemaining,
			"lockup_end_date": lockup.LockupEndDate.UTC().Format(time.RFC3339),
		})
		return
	}

	var taxLocked *services.TaxLockedError
	if errors.As(err, &taxLocked) {
		c.JSON(http.StatusConflict, gin.H{
			"error":         taxLocked.Error(),
			"code":          "tax_year_locked",
			"tax_year":      taxLocked.TaxYear,
			"locked_fields": taxLocked.LockedFields,
		})
		return
	}

	var validation *services.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "code": "validation"})
		return
	}

	var invalidStatus *services.InvalidStatusError
	if errors.As(err, &invalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidStatus.Error(), "code": "invalid_status"})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvestmentNotFound),
		errors.Is(err, services.ErrWithdrawalNotFound),
		errors.Is(err, services.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, services.ErrDuplicateWithdrawal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "duplicate_withdrawal"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
