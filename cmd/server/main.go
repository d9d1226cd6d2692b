package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"tripfund/internal/app"
	"tripfund/internal/config"
	"tripfund/internal/handler"
	"tripfund/internal/payment"
	"tripfund/internal/repository/memory"
	"tripfund/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so Redis can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Redis is optional; without it commits simply aren't idempotent.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Connected to Redis")
	}

	// Wire dependencies.
	server := wireServer(redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize the in-process trip store. State lives as long as the process.
	store := memory.NewStore()
	tripRepo := memory.NewTripRepository(store)
	commitmentRepo := memory.NewCommitmentRepository(store)

	// Select the payment authority.
	authority := newAuthority(cfg.Payment)

	// Initialize services.
	notificationService := service.NewNotificationService()
	tripService := service.NewTripService(tripRepo, commitmentRepo)
	commitmentService := service.NewCommitmentService(tripRepo, commitmentRepo, authority, notificationService)

	// Initialize handlers.
	tripHandler := handler.NewTripHandler(tripService)
	commitmentHandler := handler.NewCommitmentHandler(commitmentService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		TripHandler:       tripHandler,
		CommitmentHandler: commitmentHandler,
		RedisClient:       redisClient,
		NewRelicApp:       nrApp,
		Payment:           cfg.Payment,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// newAuthority builds the payment authority named by the config. Falls back
// to the simulated authority when Stripe credentials are missing so the
// service still runs locally.
func newAuthority(cfg config.PaymentConfig) payment.Authority {
	if cfg.Provider == "stripe" {
		if cfg.StripeSecretKey == "" {
			log.Println("PAYMENT_PROVIDER=stripe but STRIPE_SECRET_KEY is empty; using simulated authority")
			return payment.NewSimulatedAuthority()
		}
		log.Println("Using Stripe payment authority")
		return payment.NewStripeAuthority(cfg.StripeSecretKey)
	}

	log.Println("Using simulated payment authority")
	return payment.NewSimulatedAuthority()
}
