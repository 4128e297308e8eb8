package seatmap

import (
	"seatwise/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSeatMapRoutes(router *gin.RouterGroup, controller Controller) {
	// Public route - the seat picker needs the layout and booked set
	router.GET("/events/:eventId/seatmap", controller.GetSeatMap)

	// Admin routes - designer persistence
	admin := router.Group("/admin/events")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.PUT("/:eventId/seatmap", controller.SaveSeatMap)              // PUT /api/v1/admin/events/:eventId/seatmap
		admin.POST("/:eventId/seatmap/convert", controller.ConvertSeatMap) // POST /api/v1/admin/events/:eventId/seatmap/convert
	}
}
