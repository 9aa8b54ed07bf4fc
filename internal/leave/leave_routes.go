package leave

import (
	"github.com/sushant-78/smart-leave-managment-back-end/internal/middleware"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", handler.GetAll)
		leaves.GET("/balance", handler.GetBalance)
		leaves.GET("/team", middleware.RoleMiddleware(user.RoleManager, user.RoleAdmin), handler.GetTeam)
		leaves.GET("/:id", handler.GetByID)

		leaves.POST("",
			middleware.RateLimitByUser(rate.Limit(1), 5),
			middleware.Idempotency(rdb),
			handler.Apply,
		)
		leaves.DELETE("/:id", handler.Cancel)
		leaves.PUT("/:id/decision", middleware.RoleMiddleware(user.RoleManager, user.RoleAdmin), handler.Decide)
	}
}
