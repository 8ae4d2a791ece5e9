package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sre-sandbox/shopping-api/internal/chaos"
	"github.com/sre-sandbox/shopping-api/internal/config"
	"github.com/sre-sandbox/shopping-api/internal/handlers"
	"github.com/sre-sandbox/shopping-api/internal/repository"
	"github.com/sre-sandbox/shopping-api/internal/service"
	"github.com/sre-sandbox/shopping-api/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting shopping api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"chaos_mode", cfg.Latency.ChaosMode,
		"chaos_multiplier", cfg.Latency.ChaosMultiplier,
		"db_failure_rate", cfg.Faults.DBFailureRate,
		"payment_failure_rate", cfg.Faults.PaymentFailureRate,
	)

	// Shared, seedable random source for jitter, gates and order ids
	rng := chaos.NewRand(cfg.RandomSeed)

	// Fault-injection engine
	latency := chaos.NewLatencySimulator(cfg.Latency, rng)
	faults := chaos.NewFailureInjector(cfg.Faults, rng, log)

	// Initialize repositories
	productRepo := repository.NewInMemoryProductRepository()
	cartRepo := repository.NewInMemoryCartRepository()

	// Initialize services
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(productRepo, cartRepo, rng)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(latency, log)
	productHandler := handlers.NewProductHandler(catalogService, latency, faults, log)
	cartHandler := handlers.NewCartHandler(cartService, latency, faults, log)
	checkoutHandler := handlers.NewCheckoutHandler(cartService, latency, faults, log)

	// Create router
	router := handlers.NewRouter(healthHandler, productHandler, cartHandler, checkoutHandler, latency, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
