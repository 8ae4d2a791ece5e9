package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sre-sandbox/shopping-api/internal/chaos"
	"github.com/sre-sandbox/shopping-api/internal/models"
	"github.com/sre-sandbox/shopping-api/internal/repository"
	"github.com/sre-sandbox/shopping-api/internal/service"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	catalog *service.CatalogService
	latency *chaos.LatencySimulator
	faults  *chaos.FailureInjector
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog *service.CatalogService, latency *chaos.LatencySimulator, faults *chaos.FailureInjector, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		latency: latency,
		faults:  faults,
		logger:  logger,
	}
}

// ProductListResponse is the body of GET /api/products
type ProductListResponse struct {
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
}

// CategoriesResponse is the body of GET /api/categories
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ListProducts handles GET /api/products?category=<c>
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	realized := h.latency.Apply(chaos.TierProduct)
	SetResponseTime(w, realized)

	if err := h.faults.Storage(); err != nil {
		WriteServerError(w, err, h.logger)
		return
	}

	category := r.URL.Query().Get("category")
	products, err := h.catalog.ListProducts(r.Context(), category)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		WriteServerError(w, err, h.logger)
		return
	}

	h.logger.Info("retrieved products", "count", len(products), "category", category)
	WriteJSON(w, http.StatusOK, ProductListResponse{Products: products, Count: len(products)}, h.logger)
}

// GetProduct handles GET /api/products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	realized := h.latency.Apply(chaos.TierProduct)
	SetResponseTime(w, realized)

	if err := h.faults.Storage(); err != nil {
		WriteServerError(w, err, h.logger)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		h.logger.Warn("invalid product ID format", "productId", chi.URLParam(r, "productId"))
		WriteError(w, http.StatusBadRequest, "Invalid product ID", h.logger)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.logger.Warn("product not found", "productId", productID)
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}

		h.logger.Error("failed to get product", "productId", productID, "error", err)
		WriteServerError(w, err, h.logger)
		return
	}

	h.logger.Info("retrieved product", "productId", productID)
	WriteJSON(w, http.StatusOK, product, h.logger)
}

// ListCategories handles GET /api/categories. The route is ungated and pays
// the base latency tier.
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	realized := h.latency.Apply(chaos.TierBase)
	SetResponseTime(w, realized)

	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		WriteServerError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, CategoriesResponse{Categories: categories}, h.logger)
}
