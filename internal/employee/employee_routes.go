package employee

import (
	"go-timeclock/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.GET("/directory", handler.GetDirectory)

		employees.POST("",
			middleware.RateLimitByIP(1, 5),
			handler.Create,
		)
		employees.PUT("/:id",
			middleware.RateLimitByIP(1, 5),
			handler.Update,
		)
		employees.DELETE("/:id",
			middleware.RateLimitByIP(0.5, 2),
			handler.Delete,
		)
		employees.POST("/purge",
			middleware.RateLimitByIP(0.1, 1),
			handler.Purge,
		)
	}
}
