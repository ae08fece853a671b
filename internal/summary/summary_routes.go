package summary

import (
	"go-timeclock/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	hours := r.Group("/summary")
	{
		hours.GET("/:badge/hours", h.TotalHours)
		hours.POST("/:badge/reset", middleware.RateLimitByIP(0.5, 2), h.ResetHours)
	}
}
