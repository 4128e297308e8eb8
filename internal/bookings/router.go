package bookings

import (
	"seatwise/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller *Controller) {
	// All booking routes require authentication
	bookingRoutes := router.Group("/bookings")
	bookingRoutes.Use(middleware.JWTAuth())
	{
		bookingRoutes.POST("", controller.CreateBooking)            // POST /api/v1/bookings
		bookingRoutes.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id
		bookingRoutes.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel
	}

	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.JWTAuth())
	{
		userRoutes.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}

	// Admin occupancy reporting
	adminRoutes := router.Group("/admin/events")
	adminRoutes.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminRoutes.GET("/:eventId/occupancy", controller.GetEventOccupancy) // GET /api/v1/admin/events/:eventId/occupancy
	}
}
