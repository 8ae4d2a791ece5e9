package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sre-sandbox/shopping-api/internal/chaos"
	"github.com/sre-sandbox/shopping-api/internal/config"
	"github.com/sre-sandbox/shopping-api/internal/repository"
	"github.com/sre-sandbox/shopping-api/internal/service"
)

// newTestRouter builds the full router with zero latency tiers and the
// given failure rates, so dispatch ordering is exercised end to end without
// slowing tests down.
func newTestRouter(t *testing.T, faults config.FaultsConfig) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rng := chaos.NewRand(42)

	latency := chaos.NewLatencySimulator(config.LatencyConfig{ChaosMultiplier: 1}, rng)
	injector := chaos.NewFailureInjector(faults, rng, log)

	productRepo := repository.NewInMemoryProductRepository()
	cartRepo := repository.NewInMemoryCartRepository()
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(productRepo, cartRepo, rng)

	return NewRouter(
		NewHealthHandler(latency, log),
		NewProductHandler(catalogService, latency, injector, log),
		NewCartHandler(cartService, latency, injector, log),
		NewCheckoutHandler(cartService, latency, injector, log),
		latency,
		log,
	)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestHealth_Snapshot(t *testing.T) {
	router := newTestRouter(t, config.FaultsConfig{})

	for _, path := range []string{"/", "/health"} {
		w := doRequest(t, router, http.MethodGet, path, "")

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, w.Code)
		}

		var resp HealthResponse
		decodeBody(t, w, &resp)

		if resp.Status != "healthy" {
			t.Errorf("%s: expected status healthy, got %s", path, resp.Status)
		}
		if resp.Service != "shopping-api" {
			t.Errorf("%s: expected service shopping-api, got %s", path, resp.Service)
		}
		if resp.ChaosMode {
			t.Errorf("%s: expected chaos_mode false", path)
		}
		if w.Header().Get("X-Response-Time") == "" {
			t.Errorf("%s: expected X-Response-Time header", path)
		}
	}
}

func TestUnknownRoute_Returns404WithPath(t *testing.T) {
	router := newTestRouter(t, config.FaultsConfig{})

	w := doRequest(t, router, http.MethodGet, "/nope", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}

	var resp map[string]string
	decodeBody(t, w, &resp)

	if resp["error"] != "Not found" {
		t.Errorf("expected error 'Not found', got %q", resp["error"])
	}
	if resp["path"] != "/nope" {
		t.Errorf("expected path /nope, got %q", resp["path"])
	}
	if w.Header().Get("X-Response-Time") == "" {
		t.Error("expected X-Response-Time header on 404")
	}
}

func TestStorageGate_FailsAllGatedRoutes(t *testing.T) {
	router := newTestRouter(t, config.FaultsConfig{DBFailureRate: 1.0})

	gated := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/products", ""},
		{http.MethodGet, "/api/products/1", ""},
		{http.MethodGet, "/api/cart/alice", ""},
		{http.MethodPost, "/api/cart/alice/add", `{"product_id": 1}`},
		{http.MethodPost, "/api/checkout", `{"user_id": "alice"}`},
	}

	for _, tc := range gated {
		w := doRequest(t, router, tc.method, tc.path, tc.body)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s %s: expected status 500, got %d", tc.method, tc.path, w.Code)
		}

		var resp map[string]string
		decodeBody(t, w, &resp)

		if resp["status"] != "error" {
			t.Errorf("%s %s: expected status field 'error', got %q", tc.method, tc.path, resp["status"])
		}
		if resp["error"] == "" {
			t.Errorf("%s %s: expected an error description", tc.method, tc.path)
		}
		if w.Header().Get("X-Response-Time") == "" {
			t.Errorf("%s %s: expected X-Response-Time header on failure", tc.method, tc.path)
		}
	}
}

func TestStorageGate_UngatedRoutesStillSucceed(t *testing.T) {
	router := newTestRouter(t, config.FaultsConfig{DBFailureRate: 1.0})

	for _, path := range []string{"/health", "/api/categories"} {
		w := doRequest(t, router, http.MethodGet, path, "")

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200 despite DB failures, got %d", path, w.Code)
		}
	}
}

func TestMetricsEndpoint_Exposed(t *testing.T) {
	router := newTestRouter(t, config.FaultsConfig{})

	// Generate some traffic first so counters exist.
	doRequest(t, router, http.MethodGet, "/api/products", "")

	w := doRequest(t, router, http.MethodGet, "/metrics", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	if !strings.Contains(w.Body.String(), "simulated_latency_seconds") {
		t.Error("expected simulated_latency_seconds metric in exposition")
	}
}
