package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/couponhub/internal/server/http/handlers"
	"github.com/polkiloo/couponhub/internal/server/http/middleware"
)

// maxRequestBody caps decompressed request bodies.
const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.LoyaltyFacade, health handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade, logger)
	couponHandler := handlers.NewCouponHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(health)

	api := engine.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/google-login", authHandler.GoogleLogin)
	api.POST("/complete-profile", authHandler.CompleteProfile)
	api.GET("/health", healthHandler.Check)

	coupons := api.Group("/coupons")
	coupons.Use(middleware.AuthRequired(facade))
	coupons.POST("", couponHandler.Create)
	coupons.GET("/store", couponHandler.StoreCoupons)
	coupons.GET("/available", couponHandler.Redeemable)
	coupons.PUT("/:id", couponHandler.Update)
	coupons.DELETE("/:id", couponHandler.Delete)

	return engine
}
