package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/config"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/utils"
)

// RegisterListingRoutes registers the slot query surface.
func RegisterListingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/listings")
	{
		api.GET("/:id/slots", hb.Availability.GetSlots)
	}
}

// RegisterBookingRoutes registers booking creation and lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.Bookings.Create)
		api.POST("/recurring", hb.Bookings.CreateRecurring)
		api.POST("/:id/transition", hb.Bookings.Transition)
	}
}

// RegisterProviderRoutes registers provider-scoped schedule management.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("/:id/bookings", hb.Bookings.List)
		api.POST("/:id/blocked-times", hb.BlockedTimes.Create)
		api.GET("/:id/blocked-times", hb.BlockedTimes.List)
		api.DELETE("/:id/blocked-times/:blockId", hb.BlockedTimes.Delete)
	}
}

// RegisterUserRoutes registers user calendar-connection management.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/:id/calendar-connections", hb.Calendars.Create)
		api.GET("/:id/calendar-connections", hb.Calendars.List)
		api.DELETE("/:id/calendar-connections/:connId", hb.Calendars.Delete)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/healthz", hb.Health.Check)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, hb *handlers.HandlerBundle, logger *zap.Logger) {
	r.Use(utils.ErrorHandler(logger))
	r.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterListingRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
