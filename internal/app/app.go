package app

import (
	"os"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/middleware"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module on the
// router. The API binary does not need kafka: events leave through the
// outbox table and the worker picks them up.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

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
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	return registerModules(router, sqlDB, gormDB, redisClient)
}
