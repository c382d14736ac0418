package routes

import (
	"github.com/gin-gonic/gin"

	"fundcontrol/internal/handlers"
)

// SetupTransactionRoutes sets up all routes related to ledger transactions
func SetupTransactionRoutes(r *gin.Engine) {
	transactions := r.Group("/transactions")
	{
		transactions.GET("/:id", handlers.GetTransaction)
		transactions.PATCH("/:id", handlers.UpdateTransaction)
	}
}
