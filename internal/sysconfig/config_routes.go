package sysconfig

import (
	"github.com/sushant-78/smart-leave-managment-back-end/internal/middleware"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	cfg := r.Group("/admin/config")
	cfg.Use(middleware.AuthMiddleware())
	{
		// Everyone authenticated may read the policy they are subject to.
		cfg.GET("/current", handler.GetCurrent)
		cfg.GET("/:year", handler.GetByYear)

		admin := cfg.Group("")
		admin.Use(middleware.RoleMiddleware(user.RoleAdmin))
		{
			admin.POST("", handler.Create)
			admin.PATCH("/:year", handler.Upsert)
		}
	}
}
