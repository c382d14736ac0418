package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fundcontrol/internal/models"
	"fundcontrol/internal/services"
	dbconfig "fundcontrol/pkg/config"
)

// ListTransactionsByUser returns paginated transactions for a user with
// optional type/status/investment filters
func ListTransactionsByUser(c *gin.Context) {
	p := parsePagination(c, "date", "id", "status", "tax_year")

	query := dbconfig.DB.Model(&models.Transaction{}).Where("user_id = ?", c.Param("id"))
	if txType := c.Query("type"); txType != "" {
		query = query.Where("type = ?", txType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if investmentID := c.Query("investment_id"); investmentID != "" {
		query = query.Where("investment_id = ?", investmentID)
	}
	if taxYear := c.Query("tax_year"); taxYear != "" {
		query = query.Where("tax_year = ?", taxYear)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var transactions []models.Transaction
	if err := query.Order(p.Order()).Offset(p.Offset()).Limit(p.PageSize).Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, paginated(transactions, p, total))
}

// GetTransaction returns a specific transaction by ID
func GetTransaction(c *gin.Context) {
	var txn models.Transaction
	if err := dbconfig.DB.First(&txn, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, txn)
}

// UpdateTransactionRequest represents the request payload for mutating a
// transaction. Tax-relevant fields are refused once the tax year closes.
type UpdateTransactionRequest struct {
	Amount        *float64 `json:"amount"`
	Status        *string  `json:"status" binding:"omitempty,oneof=pending approved received rejected"`
	Date          *string  `json:"date"`
	FailureReason *string  `json:"failure_reason"`
}

// UpdateTransaction applies a guarded mutation to a transaction
func UpdateTransaction(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var txn models.Transaction
	if err := dbconfig.DB.First(&txn, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
		updates["taxable_income"] = txn.TaxableIncome
		if txn.Type == models.TransactionTypeDistribution || txn.Type == models.TransactionTypeContribution {
			updates["taxable_income"] = *req.Amount
		}
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Date != nil {
		parsed, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC 3339 UTC"})
			return
		}
		updates["date"] = parsed.UTC()
	}
	if req.FailureReason != nil {
		updates["failure_reason"] = *req.FailureReason
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	if err := services.ValidateTaxMutation(&txn, updates, newClock().Now()); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := dbconfig.DB.Model(&txn).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, txn)
}
