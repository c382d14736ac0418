package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fundcontrol/internal/models"
	dbconfig "fundcontrol/pkg/config"
)

// CreateWithdrawalRequest represents the request payload for a user-initiated withdrawal
type CreateWithdrawalRequest struct {
	UserID         string `json:"user_id" binding:"required"`
	InvestmentID   string `json:"investment_id" binding:"required"`
	OverrideLockup bool   `json:"override_lockup"`
}

// CreateWithdrawal starts the notice period for an investment
func CreateWithdrawal(c *gin.Context) {
	var req CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	withdrawal, err := newWithdrawalService().Request(req.InvestmentID, req.UserID, req.OverrideLockup)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"withdrawal": withdrawal})
}

// ListWithdrawalsByUser returns paginated withdrawals for a user
func ListWithdrawalsByUser(c *gin.Context) {
	p := parsePagination(c, "requested_at", "id", "status")

	query := dbconfig.DB.Model(&models.Withdrawal{}).Where("user_id = ?", c.Param("id"))
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var withdrawals []models.Withdrawal
	if err := query.Order(p.Order()).Offset(p.Offset()).Limit(p.PageSize).Find(&withdrawals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, paginated(withdrawals, p, total))
}

// GetWithdrawal returns a specific withdrawal by ID
func GetWithdrawal(c *gin.Context) {
	var withdrawal models.Withdrawal
	if err := dbconfig.DB.First(&withdrawal, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, withdrawal)
}
