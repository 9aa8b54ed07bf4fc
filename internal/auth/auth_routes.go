package auth

import (
	"time"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		// Brute-force protection on the credential endpoint.
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Every(6*time.Second), 5), handler.Login)
		authGroup.POST("/refresh", middleware.AuthMiddleware(), handler.Refresh)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
