package events

import (
	"seatwise/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse events
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.GetAllEvents)               // GET /api/v1/events
		publicEvents.GET("/upcoming", controller.GetUpcomingEvents) // GET /api/v1/events/upcoming
		publicEvents.GET("/:eventId", controller.GetEvent)          // GET /api/v1/events/:eventId
	}

	// Admin routes - event management
	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)            // POST /api/v1/admin/events
		adminEvents.PUT("/:eventId", controller.UpdateEvent)    // PUT /api/v1/admin/events/:eventId
		adminEvents.DELETE("/:eventId", controller.DeleteEvent) // DELETE /api/v1/admin/events/:eventId
	}
}
