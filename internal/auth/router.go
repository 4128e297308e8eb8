package auth

import (
	"github.com/gin-gonic/gin"

	"seatwise/internal/shared/config"
	"seatwise/internal/shared/middleware"
)

func SetupAuthRoutes(router *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	authRoutes := router.Group("/auth")
	{
		// Public routes
		authRoutes.POST("/register", controller.Register)
		authRoutes.POST("/login", controller.Login)
		authRoutes.POST("/refresh", controller.RefreshToken)
		authRoutes.POST("/logout", controller.Logout)

		// Routes that need a valid access token
		protected := authRoutes.Group("")
		protected.Use(middleware.JWTAuthWithConfig(cfg))
		{
			protected.PUT("/change-password", controller.ChangePassword)
			protected.GET("/me", controller.GetMe)
		}
	}
}
