// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"puntoventa/internal/domain/auth"
	"puntoventa/internal/domain/catalogs/paymentmethod"
	"puntoventa/internal/domain/documents/sale"
	"puntoventa/internal/domain/pricing"
	"puntoventa/internal/infrastructure/http/v1/handlers"
	"puntoventa/internal/infrastructure/http/v1/middleware"
	"puntoventa/internal/infrastructure/storage/postgres"
	"puntoventa/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// PricingEngine computes cart breakdowns
	PricingEngine *pricing.Engine

	// PaymentMethodService resolves methods and installment plans
	PaymentMethodService *paymentmethod.Service

	// SaleService confirms and retrieves sales
	SaleService *sale.Service

	// IdempotencyStore protects sale confirmation against duplicate
	// submissions; nil disables the middleware.
	IdempotencyStore *postgres.IdempotencyStore
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	pricingHandler := handlers.NewPricingHandler(base, cfg.PricingEngine, cfg.PaymentMethodService)
	methodHandler := handlers.NewPaymentMethodHandler(base, cfg.PaymentMethodService)
	saleHandler := handlers.NewSaleHandler(base, cfg.SaleService)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Public endpoints
		v1.POST("/auth/login", authHandler.Login)

		// Protected endpoints
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/password", authHandler.ChangePassword)
		protected.POST("/auth/operators", middleware.RequireAdmin(), authHandler.Register)

		// Live cart pricing; recomputed on every selection change
		protected.POST("/pricing/quote", pricingHandler.Quote)

		methods := protected.Group("/payment-methods")
		{
			methods.GET("", methodHandler.List)
			methods.GET("/:id", methodHandler.GetByID)
			methods.POST("", middleware.RequireAdmin(), methodHandler.Create)
			methods.PUT("/:id", middleware.RequireAdmin(), methodHandler.Update)
			methods.POST("/:id/deletion-mark", middleware.RequireAdmin(), methodHandler.SetDeletionMark)
		}

		sales := protected.Group("/sales")
		{
			if cfg.IdempotencyStore != nil {
				sales.POST("", middleware.Idempotency(cfg.IdempotencyStore), saleHandler.Confirm)
			} else {
				sales.POST("", saleHandler.Confirm)
			}
			sales.GET("", saleHandler.List)
			sales.GET("/:id", saleHandler.GetByID)
			sales.GET("/:id/ticket", saleHandler.Ticket)
			sales.GET("/by-number/:number", saleHandler.GetByNumber)
		}
	}

	return router
}
