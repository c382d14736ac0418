package routes

import (
	"github.com/gin-gonic/gin"

	"fundcontrol/internal/handlers"
)

// SetupWithdrawalRoutes sets up all routes related to withdrawals
func SetupWithdrawalRoutes(r *gin.Engine) {
	withdrawals := r.Group("/withdrawals")
	{
		withdrawals.POST("", handlers.CreateWithdrawal)
		withdrawals.GET("/:id", handlers.GetWithdrawal)
	}
}
