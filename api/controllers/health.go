package controllers

import (
	"net/http"

	"github.com/davidrenteria/shopvista-backend/api/responses"
	"github.com/davidrenteria/shopvista-backend/internal/catalog"
	"github.com/davidrenteria/shopvista-backend/pkg/config"
	pkgerrors "github.com/davidrenteria/shopvista-backend/pkg/errors"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
	"github.com/davidrenteria/shopvista-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopVista-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the state store is reachable and reports how much of
// the catalog loaded. An empty catalog does not fail readiness: the API
// still serves carts and wishlists from snapshots.
func HealthReady(cfg *config.Config, logg *logger.Logger, store redis.Pinger, cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopVista-Env", cfg.App.Env)

		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "state store ping"))
				return
			}
		}

		payload := map[string]any{"status": "ready"}
		if cat != nil {
			payload["catalog_products"] = cat.Len()
		}
		responses.WriteSuccess(w, payload)
	}
}
