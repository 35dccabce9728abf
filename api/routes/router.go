package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidrenteria/shopvista-backend/api/controllers"
	"github.com/davidrenteria/shopvista-backend/api/middleware"
	"github.com/davidrenteria/shopvista-backend/internal/cart"
	"github.com/davidrenteria/shopvista-backend/internal/catalog"
	"github.com/davidrenteria/shopvista-backend/internal/pricing"
	"github.com/davidrenteria/shopvista-backend/internal/wishlist"
	"github.com/davidrenteria/shopvista-backend/pkg/config"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
	"github.com/davidrenteria/shopvista-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	Store     redis.Pinger
	Catalog   *catalog.Catalog
	Converter *pricing.Converter
	Offers    *pricing.OfferPolicy
	Cart      *cart.Engine
	Wishlist  *wishlist.Engine
	Registry  *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.Store, deps.Catalog))
	})

	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, deps.Converter, deps.Offers, deps.Logger))
			r.Get("/categories", controllers.ProductCategories(deps.Catalog))
			r.Get("/{productId}", controllers.ProductDetail(deps.Catalog, deps.Converter, deps.Offers, deps.Logger))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, deps.Converter, deps.Logger))
			r.Delete("/", controllers.CartClear(deps.Cart, deps.Converter, deps.Logger))
			r.Post("/items", controllers.CartAddItem(deps.Cart, deps.Catalog, deps.Converter, deps.Logger))
			r.Patch("/items/{productId}", controllers.CartChangeQuantity(deps.Cart, deps.Converter, deps.Logger))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, deps.Converter, deps.Logger))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(deps.Wishlist, deps.Converter, deps.Offers, deps.Logger))
			r.Delete("/", controllers.WishlistClear(deps.Wishlist, deps.Converter, deps.Offers, deps.Logger))
			r.Post("/toggle", controllers.WishlistToggle(deps.Wishlist, deps.Catalog, deps.Converter, deps.Offers, deps.Logger))
			r.Delete("/items/{productId}", controllers.WishlistRemove(deps.Wishlist, deps.Converter, deps.Offers, deps.Logger))
			r.Post("/items/{productId}/move-to-cart", controllers.WishlistMoveToCart(deps.Wishlist, deps.Converter, deps.Offers, deps.Logger))
			r.Post("/move-all", controllers.WishlistMoveAll(deps.Wishlist, deps.Converter, deps.Offers, deps.Logger))
		})
	})

	return r
}
