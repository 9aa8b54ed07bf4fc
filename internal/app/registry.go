package app

import (
	"database/sql"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/admin"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/audit"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/auth"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/leave"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/messaging/kafka"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/sysconfig"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	configRepo := sysconfig.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	userService := user.NewService(db, userRepo, auditService)
	authService := auth.NewService(userRepo, auditService)
	configService := sysconfig.NewService(configRepo, auditService)
	balanceResolver := leave.NewBalanceResolver(leaveRepo, configRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo, userRepo, configRepo, balanceResolver, outboxRepo, auditService)
	dashboardService := admin.NewService(userRepo, leaveRepo, configRepo, auditRepo)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditService)
	userHandler := user.NewHandler(userService)
	authHandler := auth.NewHandler(authService)
	configHandler := sysconfig.NewHandler(configService)
	leaveHandler := leave.NewHandler(leaveService)
	dashboardHandler := admin.NewHandler(dashboardService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler)
		sysconfig.RegisterRoutes(api, configHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
		admin.RegisterRoutes(api, dashboardHandler)
		audit.RegisterRoutes(api, auditHandler)
	}

	return nil
}
