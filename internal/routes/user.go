package routes

import (
	"github.com/gin-gonic/gin"

	"fundcontrol/internal/handlers"
)

// SetupUserRoutes sets up all routes related to user accounts
func SetupUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.GET("", handlers.ListUsers)
		users.GET("/:id", handlers.GetUser)
		users.POST("", handlers.CreateUser)
		users.GET("/:id/investments", handlers.ListInvestmentsByUser)
		users.GET("/:id/transactions", handlers.ListTransactionsByUser)
		users.GET("/:id/withdrawals", handlers.ListWithdrawalsByUser)
	}
}
