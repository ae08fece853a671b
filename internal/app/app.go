package app

import (
	"fmt"
	"os"
	"time"

	"go-timeclock/internal/employee"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/shared/connection"
	"go-timeclock/internal/timelog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultZone = "Asia/Jakarta"

// BuildApp connects the shared infrastructure and registers every
// module on the router. The process owns one pooled DB handle and one
// redis client; components receive them, never open their own.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&timelog.TimeLog{},
		&kafka.OutboxEvent{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
	} else {
		zap.L().Warn("REDIS_ADDR not set, directory cache disabled")
	}

	zone := os.Getenv("TIMECLOCK_ZONE")
	if zone == "" {
		zone = defaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return fmt.Errorf("load timeclock zone %q: %w", zone, err)
	}
	zap.L().Info("timeclock zone configured", zap.String("zone", zone))

	numericBadge := os.Getenv("BADGE_NUMERIC") != "false"

	return registerModules(router, gormDB, rdb, moduleConfig{
		clockZone:    loc,
		numericBadge: numericBadge,
	})
}
