package handlers

import (
	"salestracker/internal/logger"
	"salestracker/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Public auth endpoints
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/api/verify-token", h.verifyToken)

	// Endpoints requiring a valid token
	authed := router.Group("/", h.identityMiddleware)
	{
		authed.GET("/profile", h.profile)

		// Admin-only: ingestion and analytics
		admin := authed.Group("/", h.adminOnly)
		{
			admin.POST("/upload-sales", h.uploadSales)
			h.registerAnalyticsRoutes(admin)

			// Live summary feed for the admin dashboard, served on the same port.
			admin.GET("/ws/summary", h.wsSummary)
		}
	}

	return router
}

func (h *Handler) registerAnalyticsRoutes(admin *gin.RouterGroup) {
	analytics := admin.Group("/analytics")
	{
		analytics.GET("/summary", h.analyticsSummary)
		analytics.GET("/top-customers", h.analyticsTopCustomers)
		analytics.GET("/by-date", h.analyticsByDate)
	}
}
