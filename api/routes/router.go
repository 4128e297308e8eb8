// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"seatwise/internal/auth"
	"seatwise/internal/bookings"
	"seatwise/internal/events"
	"seatwise/internal/ledger"
	"seatwise/internal/seatmap"
	"seatwise/internal/shared/config"
	"seatwise/internal/shared/database"
	"seatwise/pkg/cache"
	"seatwise/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher ledger.EventPublisher

	// services shared across feature routers
	cacheService  cache.Service
	eventService  events.Service
	ledgerService ledger.Service
}

// NewRouter creates a new router instance. The publisher is optional;
// without it ledger mutations are not broadcast.
func NewRouter(cfg *config.Config, db *database.DB, publisher ledger.EventPublisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Swagger UI
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Event routes come first so the seat-map and booking routers can
		// reuse the event service.
		r.setupEventRoutes(api)
		r.setupSeatMapRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatwise-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatwise-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController, r.config)
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)

	if r.cacheService != nil {
		eventService.SetCacheService(r.cacheService)
	}

	r.eventService = eventService

	eventController := events.NewController(eventService)
	events.SetupEventRoutes(rg, eventController)
}

// setupSeatMapRoutes configures seating layout routes
func (r *Router) setupSeatMapRoutes(rg *gin.RouterGroup) {
	ledgerRepo := ledger.NewRepository(r.db.GetPostgreSQL())

	var reserver *ledger.AtomicReserver
	if r.db.Redis != nil {
		reserver = ledger.NewAtomicReserver(r.db.GetRedisClient())
	}

	r.ledgerService = ledger.NewService(ledgerRepo, reserver, r.publisher, logger.GetDefault())

	store := events.NewSeatMapStore(r.eventService)
	seatMapService := seatmap.NewService(store, r.ledgerService, logger.GetDefault())

	if r.cacheService != nil {
		seatMapService.SetCacheService(r.cacheService)
	}

	seatMapController := seatmap.NewController(seatMapService)

	seatmap.SetupSeatMapRoutes(rg, seatMapController)
}

// setupBookingRoutes configures booking management routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.eventService, r.ledgerService, logger.GetDefault())

	if r.cacheService != nil {
		bookingService.SetCacheService(r.cacheService)
	}

	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}
