package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"tripfund/internal/config"
	"tripfund/internal/handler"
	"tripfund/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	TripHandler       *handler.TripHandler
	CommitmentHandler *handler.CommitmentHandler
	RedisClient       *redis.Client
	NewRelicApp       *newrelic.Application
	Payment           config.PaymentConfig
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Idempotent commits need Redis; without it, retries are the client's problem.
	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Frontend configuration for the payment form.
	router.GET("/config", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"payment_provider":       deps.Payment.Provider,
			"stripe_publishable_key": deps.Payment.StripePublishableKey,
		})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Trip routes.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.CreateTrip)
			trips.GET("", deps.TripHandler.GetAll)
			trips.GET("/:id/status", deps.TripHandler.GetStatus)
			trips.POST("/:id/commitments", deps.CommitmentHandler.Commit)
		}

		// Commitment routes.
		commitments := v1.Group("/commitments")
		{
			commitments.GET("/:id", deps.CommitmentHandler.GetCommitment)
		}
	}

	return router
}
