package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sre-sandbox/shopping-api/internal/chaos"
	"github.com/sre-sandbox/shopping-api/internal/models"
	"github.com/sre-sandbox/shopping-api/internal/repository"
	"github.com/sre-sandbox/shopping-api/internal/service"
)

// CartHandler handles cart HTTP requests
type CartHandler struct {
	carts   *service.CartService
	latency *chaos.LatencySimulator
	faults  *chaos.FailureInjector
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *service.CartService, latency *chaos.LatencySimulator, faults *chaos.FailureInjector, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:   carts,
		latency: latency,
		faults:  faults,
		logger:  logger,
	}
}

// GetCart handles GET /api/cart/{userId}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	realized := h.latency.Apply(chaos.TierCart)
	SetResponseTime(w, realized)

	if err := h.faults.Storage(); err != nil {
		WriteServerError(w, err, h.logger)
		return
	}

	userID := chi.URLParam(r, "userId")
	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get cart", "userId", userID, "error", err)
		WriteServerError(w, err, h.logger)
		return
	}

	h.logger.Info("retrieved cart", "userId", userID, "items", len(cart.Items))
	WriteJSON(w, http.StatusOK, cart, h.logger)
}

// AddItem handles POST /api/cart/{userId}/add. The body is parsed before
// the latency simulation, so a malformed body reports wall-clock elapsed
// time instead of a simulated delay.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode add item request", "error", err)
		SetResponseTime(w, time.Since(start))
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	realized := h.latency.Apply(chaos.TierCart)
	SetResponseTime(w, realized)

	if err := h.faults.Storage(); err != nil {
		WriteServerError(w, err, h.logger)
		return
	}

	userID := chi.URLParam(r, "userId")
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.carts.AddItem(r.Context(), userID, req.ProductID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			h.logger.Warn("product not found", "userId", userID, "productId", req.ProductID)
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
		case errors.Is(err, service.ErrInvalidQuantity):
			h.logger.Warn("invalid quantity", "userId", userID, "quantity", quantity)
			WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.logger)
		default:
			h.logger.Error("failed to add item", "userId", userID, "error", err)
			WriteServerError(w, err, h.logger)
		}
		return
	}

	h.logger.Info("added product to cart", "userId", userID, "productId", req.ProductID, "quantity", quantity)
	WriteJSON(w, http.StatusOK, cart, h.logger)
}
