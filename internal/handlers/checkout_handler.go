package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sre-sandbox/shopping-api/internal/chaos"
	"github.com/sre-sandbox/shopping-api/internal/models"
	"github.com/sre-sandbox/shopping-api/internal/repository"
	"github.com/sre-sandbox/shopping-api/internal/service"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	carts   *service.CartService
	latency *chaos.LatencySimulator
	faults  *chaos.FailureInjector
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(carts *service.CartService, latency *chaos.LatencySimulator, faults *chaos.FailureInjector, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		carts:   carts,
		latency: latency,
		faults:  faults,
		logger:  logger,
	}
}

// Checkout handles POST /api/checkout. Gate order is fixed: the data-layer
// gate rolls first, and the payment gate is only evaluated when it passes.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode checkout request", "error", err)
		SetResponseTime(w, time.Since(start))
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	realized := h.latency.Apply(chaos.TierCheckout)
	SetResponseTime(w, realized)

	if err := h.faults.Storage(); err != nil {
		WriteServerError(w, err, h.logger)
		return
	}

	if err := h.faults.Payment(); err != nil {
		WriteServerError(w, err, h.logger)
		return
	}

	if req.UserID == "" {
		h.logger.Warn("checkout request missing user_id")
		WriteError(w, http.StatusBadRequest, "user_id is required", h.logger)
		return
	}

	order, err := h.carts.Checkout(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyCart) {
			h.logger.Warn("checkout failed - empty cart", "userId", req.UserID)
			WriteError(w, http.StatusBadRequest, "Cart is empty", h.logger)
			return
		}

		h.logger.Error("checkout failed", "userId", req.UserID, "error", err)
		WriteServerError(w, err, h.logger)
		return
	}

	h.logger.Info("checkout successful",
		"userId", req.UserID,
		"orderId", order.OrderID,
		"total", order.Total,
		"itemsCount", order.ItemsCount,
	)
	WriteJSON(w, http.StatusOK, order, h.logger)
}
