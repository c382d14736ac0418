package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fundcontrol/internal/models"
	"fundcontrol/internal/services"
	dbconfig "fundcontrol/pkg/config"
)

// CreateInvestmentRequest represents the request payload for creating an investment
type CreateInvestmentRequest struct {
	UserID           string  `json:"user_id" binding:"required"`
	Amount           float64 `json:"amount" binding:"required,gte=1000,lte=10000000"`
	LockupPeriod     string  `json:"lockup_period" binding:"required,oneof=1-year 3-year 5-year"`
	PaymentFrequency string  `json:"payment_frequency" binding:"required,oneof=monthly compounding"`
}

// CreateInvestment creates a new draft investment
func CreateInvestment(c *gin.Context) {
	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Subscriptions come in $10 increments.
	if math.Mod(req.Amount, 10) != 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be in $10 increments"})
		return
	}

	var user models.User
	if err := dbconfig.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	id, err := newIDAllocator().Next(services.IDTypeInvestment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	inv := models.Investment{
		ID:               id,
		UserID:           req.UserID,
		Amount:           req.Amount,
		LockupPeriod:     req.LockupPeriod,
		PaymentFrequency: req.PaymentFrequency,
		AnnualRate:       models.DefaultAnnualRate(req.LockupPeriod),
		Status:           models.InvestmentStatusDraft,
	}

	if err := dbconfig.DB.Create(&inv).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// ListInvestmentsByUser returns paginated investments for a user
func ListInvestmentsByUser(c *gin.Context) {
	p := parsePagination(c, "id", "status", "created_at", "confirmed_at")

	query := dbconfig.DB.Model(&models.Investment{}).Where("user_id = ?", c.Param("id"))
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var investments []models.Investment
	if err := query.Order(p.Order()).Offset(p.Offset()).Limit(p.PageSize).Find(&investments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, paginated(investments, p, total))
}

// GetInvestment returns a specific investment by ID
func GetInvestment(c *gin.Context) {
	var inv models.Investment
	if err := dbconfig.DB.First(&inv, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// SubmitInvestment moves a draft investment to submitted
func SubmitInvestment(c *gin.Context) {
	var inv models.Investment
	if err := dbconfig.DB.First(&inv, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	if inv.Status != models.InvestmentStatusDraft {
		respondServiceError(c, &services.InvalidStatusError{
			Entity:   "investment",
			Current:  inv.Status,
			Expected: []string{models.InvestmentStatusDraft},
		})
		return
	}

	if err := dbconfig.DB.Model(&inv).Update("status", models.InvestmentStatusSubmitted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// ConfirmInvestmentRequest represents the request payload for confirming an investment
type ConfirmInvestmentRequest struct {
	AdminUserID string `json:"admin_user_id" binding:"required"`
}

// ConfirmInvestment activates a submitted investment: stamps the confirmation
// date and lockup end date, books the principal transaction and triggers a
// ledger synchronization pass.
func ConfirmInvestment(c *gin.Context) {
	var req ConfirmInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var inv models.Investment
	if err := dbconfig.DB.First(&inv, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	if inv.Status != models.InvestmentStatusSubmitted {
		respondServiceError(c, &services.InvalidStatusError{
			Entity:   "investment",
			Current:  inv.Status,
			Expected: []string{models.InvestmentStatusSubmitted},
		})
		return
	}

	now := newClock().Now()
	lockupEnd := now.AddDate(inv.LockupYears(), 0, 0)

	txnID, err := newIDAllocator().Next(services.IDTypeTransaction)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	principal := models.Transaction{
		ID:            txnID,
		InvestmentID:  inv.ID,
		UserID:        inv.UserID,
		Type:          models.TransactionTypeInvestment,
		Amount:        inv.Amount,
		Date:          now,
		Status:        models.TransactionStatusReceived,
		ActualReceipt: true,
	}
	services.ApplyTaxMetadata(&principal)

	err = dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&inv).Updates(map[string]interface{}{
			"status":          models.InvestmentStatusActive,
			"confirmed_at":    now,
			"lockup_end_date": lockupEnd,
		}).Error
		if err != nil {
			return err
		}
		if err := tx.Create(&principal).Error; err != nil {
			return err
		}
		return tx.Create(&models.Activity{
			UserID:       inv.UserID,
			InvestmentID: inv.ID,
			Type:         models.ActivityInvestmentConfirmed,
			Date:         now,
			Description:  "Investment " + inv.ID + " confirmed by admin " + req.AdminUserID,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	services.TriggerSync(newSynchronizer(), services.SyncTask{
		Reason:       "investment_confirmed",
		InvestmentID: inv.ID,
		TriggeredBy:  req.AdminUserID,
	})

	c.JSON(http.StatusOK, inv)
}

// GetInvestmentSchedule returns the derived accrual schedule and final payout
// projection for an investment, optionally at a supplied as_of time.
func GetInvestmentSchedule(c *gin.Context) {
	var inv models.Investment
	if err := dbconfig.DB.First(&inv, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	asOf := newClock().Now()
	if q := c.Query("as_of"); q != "" {
		parsed, err := time.Parse(time.RFC3339, q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be RFC 3339 UTC"})
			return
		}
		asOf = parsed.UTC()
	}

	c.JSON(http.StatusOK, gin.H{
		"investment_id": inv.ID,
		"as_of":         asOf.Format(time.RFC3339),
		"schedule":      services.Schedule(&inv, asOf),
		"final_payout":  services.FinalPayout(&inv, asOf),
	})
}
