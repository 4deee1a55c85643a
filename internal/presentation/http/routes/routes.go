package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/felixotieno/haraka-api/internal/config"
	"github.com/felixotieno/haraka-api/internal/domain/entity"
	domainRepo "github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/internal/presentation/http/handler"
	"github.com/felixotieno/haraka-api/internal/presentation/http/middleware"
	"github.com/felixotieno/haraka-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Ledger     *handler.LedgerHandler
	Driver     *handler.DriverHandler
	Restaurant *handler.RestaurantHandler
	Order      *handler.OrderHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Log             *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Uploaded restaurant images
	router.Static("/uploads", deps.Cfg.Storage.Path)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration)
		protected.Use(rateLimiter.Middleware())

		registerLedgerRoutes(protected, h, deps)
		registerMarketplaceRoutes(protected, h, deps)
	}

	return router
}

func registerLedgerRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	adminOnly := middleware.RequireRole(entity.RoleAdmin)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/driver/:driverId", h.Ledger.ListEntries)
		ledger.POST("/entry", adminOnly, h.Ledger.CreateEntry)
		ledger.GET("/balance/:driverId", h.Ledger.GetBalance)
		ledger.POST("/settlement", adminOnly,
			middleware.IdempotencyRequired(deps.IdempotencyRepo, deps.Log), h.Ledger.CreateSettlement)
		ledger.GET("/settlements/:driverId", h.Ledger.ListSettlements)
		ledger.GET("/settlement/:settlementId", h.Ledger.GetSettlement)
		ledger.POST("/auto-settle/:driverId", adminOnly, h.Ledger.AutoSettle)
		ledger.GET("/summary/all", adminOnly, h.Ledger.GetSummary)
	}
}

func registerMarketplaceRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	adminOnly := middleware.RequireRole(entity.RoleAdmin)
	ownerOrAdmin := middleware.RequireRole(entity.RoleOwner, entity.RoleAdmin)
	driverOrAdmin := middleware.RequireRole(entity.RoleDriver, entity.RoleAdmin)

	drivers := rg.Group("/drivers")
	{
		drivers.GET("", h.Driver.List)
		drivers.POST("", adminOnly, h.Driver.Create)
		drivers.GET("/:id", h.Driver.Get)
		drivers.PUT("/:id", driverOrAdmin, h.Driver.Update)
		drivers.PUT("/:id/status", driverOrAdmin, h.Driver.UpdateStatus)
		drivers.DELETE("/:id", adminOnly, h.Driver.Delete)
	}

	restaurants := rg.Group("/restaurants")
	{
		restaurants.GET("", h.Restaurant.List)
		restaurants.POST("", ownerOrAdmin, h.Restaurant.Create)
		restaurants.GET("/:id", h.Restaurant.Get)
		restaurants.PUT("/:id", ownerOrAdmin, h.Restaurant.Update)
		restaurants.DELETE("/:id", ownerOrAdmin, h.Restaurant.Delete)
		restaurants.POST("/:id/image", ownerOrAdmin, h.Restaurant.UploadImage)
		restaurants.GET("/:id/menu", h.Restaurant.ListMenu)
		restaurants.POST("/:id/menu", ownerOrAdmin, h.Restaurant.AddMenuItem)
	}

	menuItems := rg.Group("/menu-items")
	{
		menuItems.PUT("/:id", ownerOrAdmin, h.Restaurant.UpdateMenuItem)
		menuItems.DELETE("/:id", ownerOrAdmin, h.Restaurant.DeleteMenuItem)
	}

	orders := rg.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", middleware.IdempotencyRequired(deps.IdempotencyRepo, deps.Log), h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}
}
