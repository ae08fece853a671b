package app

import (
	"time"

	"go-timeclock/internal/employee"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/summary"
	"go-timeclock/internal/timelog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type moduleConfig struct {
	clockZone    *time.Location
	numericBadge bool
}

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg moduleConfig,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	timelogRepo := timelog.NewRepository(gormDB)
	summaryRepo := summary.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewService(gormDB, employeeRepo, rdb, cfg.numericBadge)
	timelogService := timelog.NewService(gormDB, timelogRepo, outboxRepo, cfg.clockZone)
	summaryService := summary.NewService(gormDB, summaryRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	timelogHandler := timelog.NewHandler(timelogService)
	summaryHandler := summary.NewHandler(summaryService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler)
		timelog.RegisterRoutes(api, timelogHandler)
		summary.RegisterRoutes(api, summaryHandler)
	}

	return nil
}
