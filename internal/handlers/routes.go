package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sre-sandbox/shopping-api/internal/chaos"
	"github.com/sre-sandbox/shopping-api/internal/middleware"
)

// NewRouter assembles the full HTTP surface: middleware stack, the fixed
// route table and the JSON 404 fallback.
func NewRouter(
	health *HealthHandler,
	products *ProductHandler,
	carts *CartHandler,
	checkout *CheckoutHandler,
	latency *chaos.LatencySimulator,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics("shopping-api"))
	r.Use(chimiddleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"X-Response-Time", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health snapshot on both / and /health
	r.Get("/", health.ServeHTTP)
	r.Get("/health", health.ServeHTTP)

	// Prometheus exposition; not part of the simulated surface, so no
	// artificial latency or gates here.
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", products.ListProducts)
		r.Get("/products/{productId}", products.GetProduct)
		r.Get("/categories", products.ListCategories)

		r.Get("/cart/{userId}", carts.GetCart)
		r.Post("/cart/{userId}/add", carts.AddItem)

		r.Post("/checkout", checkout.Checkout)
	})

	// Unmatched routes still pay the base latency tier
	r.NotFound(notFoundHandler(latency, logger))
	r.MethodNotAllowed(notFoundHandler(latency, logger))

	return r
}

func notFoundHandler(latency *chaos.LatencySimulator, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		realized := latency.Apply(chaos.TierBase)
		SetResponseTime(w, realized)

		WriteJSON(w, http.StatusNotFound, map[string]string{
			"error": "Not found",
			"path":  r.URL.Path,
		}, logger)
	}
}
