package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/davidrenteria/shopvista-backend/internal/cart"
	"github.com/davidrenteria/shopvista-backend/internal/catalog"
	"github.com/davidrenteria/shopvista-backend/internal/pricing"
	"github.com/davidrenteria/shopvista-backend/internal/storage"
	"github.com/davidrenteria/shopvista-backend/internal/wishlist"
	"github.com/davidrenteria/shopvista-backend/pkg/config"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
)

type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
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

type testHarness struct {
	logg      *logger.Logger
	catalog   *catalog.Catalog
	converter *pricing.Converter
	offers    *pricing.OfferPolicy
	cart      *cart.Engine
	wishlist  *wishlist.Engine
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	adapter, err := storage.NewAdapter(newFakeKV(), logg)
	if err != nil {
		t.Fatalf("adapter: %v", err)
	}
	converter, err := pricing.NewConverter(decimal.NewFromInt(82))
	if err != nil {
		t.Fatalf("converter: %v", err)
	}
	offers := pricing.NewOfferPolicy(config.PricingConfig{
		DiscountThreshold: decimal.RequireFromString("2000"),
		DiscountRate:      decimal.RequireFromString("0.20"),
		BundleCategories:  []string{"electronics", "jewelery"},
	})

	cartEngine, err := cart.NewEngine(context.Background(), cart.EngineParams{
		Storage:   adapter,
		Converter: converter,
		Offers:    offers,
		Logger:    logg,
	})
	if err != nil {
		t.Fatalf("cart engine: %v", err)
	}
	wishlistEngine, err := wishlist.NewEngine(context.Background(), wishlist.EngineParams{
		Storage: adapter,
		Cart:    cartEngine,
		Logger:  logg,
	})
	if err != nil {
		t.Fatalf("wishlist engine: %v", err)
	}

	cat := catalog.New([]catalog.Product{
		{ID: 1, Title: "Fjallraven Backpack", Description: "Fits 15in laptops", Price: decimal.RequireFromString("10.00"), Category: "men's clothing", Image: "https://img.test/1.jpg"},
		{ID: 2, Title: "Gold Chain Bracelet", Description: "Wedding jewellery", Price: decimal.RequireFromString("695.00"), Category: "jewelery", Image: "https://img.test/2.jpg"},
		{ID: 3, Title: "Portable SSD 1TB", Description: "USB 3.0 external drive", Price: decimal.RequireFromString("64.00"), Category: "electronics", Image: "https://img.test/3.jpg"},
	})

	return &testHarness{
		logg:      logg,
		catalog:   cat,
		converter: converter,
		offers:    offers,
		cart:      cartEngine,
		wishlist:  wishlistEngine,
	}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}
