package admin

import (
	"github.com/sushant-78/smart-leave-managment-back-end/internal/middleware"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	dash := r.Group("/admin")
	dash.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(user.RoleAdmin))
	{
		dash.GET("/dashboard", handler.GetDashboard)
	}
}
