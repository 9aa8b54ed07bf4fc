package audit

import (
	"github.com/sushant-78/smart-leave-managment-back-end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	logs := r.Group("/audit")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("", middleware.RoleMiddleware("admin"), handler.GetAll)
		logs.GET("/me", handler.GetMine)
	}
}
