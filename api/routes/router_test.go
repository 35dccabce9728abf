package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/davidrenteria/shopvista-backend/internal/cart"
	"github.com/davidrenteria/shopvista-backend/internal/catalog"
	"github.com/davidrenteria/shopvista-backend/internal/pricing"
	"github.com/davidrenteria/shopvista-backend/internal/storage"
	"github.com/davidrenteria/shopvista-backend/internal/wishlist"
	"github.com/davidrenteria/shopvista-backend/pkg/config"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
	"github.com/davidrenteria/shopvista-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type fakeKV struct {
	data map[string]string
}

func (f *fakeKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	value, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeKV) StateKey(name string) string {
	return "sv:state:" + name
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	adapter, err := storage.NewAdapter(&fakeKV{data: map[string]string{}}, logg)
	if err != nil {
		t.Fatalf("adapter: %v", err)
	}
	converter, err := pricing.NewConverter(decimal.NewFromInt(82))
	if err != nil {
		t.Fatalf("converter: %v", err)
	}
	pricingCfg := config.PricingConfig{
		DiscountThreshold: decimal.RequireFromString("2000"),
		DiscountRate:      decimal.RequireFromString("0.20"),
		BundleCategories:  []string{"electronics", "jewelery"},
	}
	offers := pricing.NewOfferPolicy(pricingCfg)

	cartEngine, err := cart.NewEngine(context.Background(), cart.EngineParams{
		Storage:   adapter,
		Converter: converter,
		Offers:    offers,
		Logger:    logg,
		Metrics:   storefrontMetrics,
	})
	if err != nil {
		t.Fatalf("cart engine: %v", err)
	}
	wishlistEngine, err := wishlist.NewEngine(context.Background(), wishlist.EngineParams{
		Storage: adapter,
		Cart:    cartEngine,
		Logger:  logg,
		Metrics: storefrontMetrics,
	})
	if err != nil {
		t.Fatalf("wishlist engine: %v", err)
	}

	snapshot := catalog.New([]catalog.Product{
		{ID: 1, Title: "Backpack", Description: "Fits laptops", Price: decimal.RequireFromString("10.00"), Category: "men's clothing", Image: "https://img.test/1.jpg"},
		{ID: 2, Title: "Portable SSD", Description: "USB drive", Price: decimal.RequireFromString("64.00"), Category: "electronics", Image: "https://img.test/2.jpg"},
	})

	return NewRouter(Deps{
		Config:    &config.Config{App: config.AppConfig{Env: "test"}},
		Logger:    logg,
		Store:     stubPinger{},
		Catalog:   snapshot,
		Converter: converter,
		Offers:    offers,
		Cart:      cartEngine,
		Wishlist:  wishlistEngine,
		Registry:  registry,
	})
}

func TestRouterEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, target, reader)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(http.MethodGet, "/health/live", ""); rec.Code != http.StatusOK {
		t.Fatalf("live: expected 200, got %d", rec.Code)
	}
	if rec := do(http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}
	if rec := do(http.MethodGet, "/metrics", ""); rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}

	rec := do(http.MethodGet, "/api/v1/products?category=electronics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("products: expected 200, got %d", rec.Code)
	}
	var listEnvelope struct {
		Data struct {
			Products []struct {
				ID int `json:"id"`
			} `json:"products"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listEnvelope); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(listEnvelope.Data.Products) != 1 || listEnvelope.Data.Products[0].ID != 2 {
		t.Fatalf("expected only the SSD, got %+v", listEnvelope.Data.Products)
	}

	if rec := do(http.MethodPost, "/api/v1/cart/items", `{"product_id":1,"quantity":2}`); rec.Code != http.StatusOK {
		t.Fatalf("cart add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(http.MethodPatch, "/api/v1/cart/items/1", `{"delta":-1}`); rec.Code != http.StatusOK {
		t.Fatalf("cart patch: expected 200, got %d", rec.Code)
	}
	if rec := do(http.MethodPost, "/api/v1/wishlist/toggle", `{"product_id":2}`); rec.Code != http.StatusOK {
		t.Fatalf("wishlist toggle: expected 200, got %d", rec.Code)
	}
	if rec := do(http.MethodPost, "/api/v1/wishlist/move-all", ""); rec.Code != http.StatusOK {
		t.Fatalf("wishlist move-all: expected 200, got %d", rec.Code)
	}

	rec = do(http.MethodGet, "/api/v1/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("cart fetch: expected 200, got %d", rec.Code)
	}
	var cartEnvelope struct {
		Data struct {
			Items []struct {
				ProductID int `json:"product_id"`
				Quantity  int `json:"quantity"`
			} `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cartEnvelope); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(cartEnvelope.Data.Items) != 2 {
		t.Fatalf("expected 2 cart lines, got %+v", cartEnvelope.Data.Items)
	}

	if rec := do(http.MethodGet, "/api/v1/products/99", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown product: expected 404, got %d", rec.Code)
	}
}

func TestRouterRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a generated request id header")
	}

	req = httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") != "fixed-id" {
		t.Fatalf("expected propagated request id, got %q", rec.Header().Get("X-Request-Id"))
	}
}
