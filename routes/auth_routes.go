package routes

import (
	"rideway/internal/handlers"
	"rideway/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(api *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		auth.GET("/me", middleware.AuthRequired(jwtSecret), authHandler.GetProfile)
	}
}
