package routes

import (
	"github.com/gin-gonic/gin"

	"fundcontrol/internal/handlers"
)

// SetupInvestmentRoutes sets up all routes related to investments
func SetupInvestmentRoutes(r *gin.Engine) {
	investments := r.Group("/investments")
	{
		investments.POST("", handlers.CreateInvestment)
		investments.GET("/:id", handlers.GetInvestment)
		investments.POST("/:id/submit", handlers.SubmitInvestment)
		investments.POST("/:id/confirm", handlers.ConfirmInvestment)
		investments.GET("/:id/schedule", handlers.GetInvestmentSchedule)
	}
}
