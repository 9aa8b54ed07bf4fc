package user

import (
	"github.com/sushant-78/smart-leave-managment-back-end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/managers", handler.GetManagers)

		admin := users.Group("")
		admin.Use(middleware.RoleMiddleware(RoleAdmin))
		{
			admin.POST("", handler.Create)
			admin.GET("", handler.GetAll)
			admin.GET("/unassigned", handler.GetUnassigned)
			admin.GET("/:id", handler.GetByID)
			admin.PUT("/:id", handler.Update)
			admin.DELETE("/:id", handler.Delete)
		}
	}
}
