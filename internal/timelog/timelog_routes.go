package timelog

import (
	"go-timeclock/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	timelogs := r.Group("/timelogs")
	{
		timelogs.GET("/:badge", h.GetByBadge)
		timelogs.POST("/clock-in", middleware.RateLimitByIP(2, 10), h.ClockIn)
		timelogs.POST("/clock-out", middleware.RateLimitByIP(2, 10), h.ClockOut)
	}
}
