package routes

import (
	"github.com/gin-gonic/gin"

	"fundcontrol/internal/handlers"
	"fundcontrol/internal/middleware"
)

// SetupAdminRoutes sets up the admin console routes. The whole group is
// rate-limited per client IP.
func SetupAdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: 5,
		Burst:             10,
	}))
	{
		admin.GET("/time-machine", handlers.GetTimeMachine)
		admin.POST("/time-machine", handlers.SetTimeMachine)
		admin.DELETE("/time-machine", handlers.ResetTimeMachine)

		admin.POST("/synchronize", handlers.Synchronize)

		admin.POST("/withdrawals/terminate", handlers.TerminateInvestment)
		admin.POST("/withdrawals", handlers.ManageWithdrawal)

		admin.GET("/pending-payouts", handlers.ListPendingPayouts)
		admin.POST("/pending-payouts", handlers.ManagePayout)

		admin.GET("/activity", handlers.ListActivity)
		admin.GET("/activity/stream", handlers.StreamActivity)
	}
}
