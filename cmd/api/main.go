package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/davidrenteria/shopvista-backend/api/routes"
	"github.com/davidrenteria/shopvista-backend/internal/cart"
	"github.com/davidrenteria/shopvista-backend/internal/catalog"
	"github.com/davidrenteria/shopvista-backend/internal/pricing"
	"github.com/davidrenteria/shopvista-backend/internal/storage"
	"github.com/davidrenteria/shopvista-backend/internal/wishlist"
	"github.com/davidrenteria/shopvista-backend/pkg/config"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
	"github.com/davidrenteria/shopvista-backend/pkg/metrics"
	"github.com/davidrenteria/shopvista-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	converter, err := pricing.NewConverter(cfg.Pricing.ExchangeRate)
	if err != nil {
		logg.Error(context.Background(), "failed to create currency converter", err)
		os.Exit(1)
	}
	offers := pricing.NewOfferPolicy(cfg.Pricing)

	catalogClient, err := catalog.NewClient(catalog.ClientParams{
		Config:  cfg.Catalog,
		Logger:  logg,
		Metrics: storefrontMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	// The catalog is fetched once at startup. A failed fetch degrades to an
	// empty catalog; carts and wishlists still serve from snapshots.
	snapshot, err := catalogClient.Fetch(context.Background())
	if err != nil {
		logg.Error(context.Background(), "catalog fetch failed, serving empty catalog", err)
		snapshot = catalog.Empty()
	}

	store, err := storage.NewAdapter(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create storage adapter", err)
		os.Exit(1)
	}

	cartEngine, err := cart.NewEngine(context.Background(), cart.EngineParams{
		Storage:   store,
		Converter: converter,
		Offers:    offers,
		Logger:    logg,
		Metrics:   storefrontMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart engine", err)
		os.Exit(1)
	}

	wishlistEngine, err := wishlist.NewEngine(context.Background(), wishlist.EngineParams{
		Storage: store,
		Cart:    cartEngine,
		Logger:  logg,
		Metrics: storefrontMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist engine", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"products": snapshot.Len(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			Store:     redisClient,
			Catalog:   snapshot,
			Converter: converter,
			Offers:    offers,
			Cart:      cartEngine,
			Wishlist:  wishlistEngine,
			Registry:  registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
