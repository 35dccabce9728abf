package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidrenteria/shopvista-backend/api/responses"
	"github.com/davidrenteria/shopvista-backend/api/validators"
	"github.com/davidrenteria/shopvista-backend/internal/catalog"
	"github.com/davidrenteria/shopvista-backend/internal/pricing"
	"github.com/davidrenteria/shopvista-backend/internal/wishlist"
	pkgerrors "github.com/davidrenteria/shopvista-backend/pkg/errors"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
)

type wishlistToggleRequest struct {
	ProductID int `json:"product_id" validate:"required,min=1"`
}

type wishlistMoveRequest struct {
	Quantity int `json:"quantity" validate:"omitempty,min=1"`
}

type wishlistEntryView struct {
	ProductID      int    `json:"product_id"`
	Title          string `json:"title"`
	Price          string `json:"price"`
	DisplayPrice   string `json:"display_price"`
	Image          string `json:"image"`
	Category       string `json:"category"`
	BundleEligible bool   `json:"bundle_eligible"`
}

type wishlistView struct {
	Items []wishlistEntryView `json:"items"`
}

func newWishlistView(engine *wishlist.Engine, converter *pricing.Converter, offers *pricing.OfferPolicy) (wishlistView, error) {
	entries := engine.Items()
	views := make([]wishlistEntryView, 0, len(entries))
	for _, entry := range entries {
		display, err := converter.Convert(entry.Price)
		if err != nil {
			return wishlistView{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "price wishlist entry")
		}
		views = append(views, wishlistEntryView{
			ProductID:      entry.ProductID,
			Title:          entry.Title,
			Price:          pricing.Format(entry.Price),
			DisplayPrice:   pricing.Format(display),
			Image:          entry.Image,
			Category:       entry.Category,
			BundleEligible: offers.BundleEligible(entry.Category),
		})
	}
	return wishlistView{Items: views}, nil
}

// WishlistFetch serves the wishlist entries.
func WishlistFetch(engine *wishlist.Engine, converter *pricing.Converter, offers *pricing.OfferPolicy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := newWishlistView(engine, converter, offers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// WishlistToggle adds the product when absent and removes it when present.
func WishlistToggle(engine *wishlist.Engine, cat *catalog.Catalog, converter *pricing.Converter, offers *pricing.OfferPolicy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload wishlistToggleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := cat.FindByID(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		wishlisted := engine.Toggle(r.Context(), product)

		view, err := newWishlistView(engine, converter, offers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"wishlisted": wishlisted,
			"items":      view.Items,
		})
	}
}

// WishlistRemove deletes a wishlist entry.
func WishlistRemove(engine *wishlist.Engine, converter *pricing.Converter, offers *pricing.OfferPolicy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathInt(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine.Remove(r.Context(), productID)

		view, err := newWishlistView(engine, converter, offers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// WishlistClear empties the wishlist.
func WishlistClear(engine *wishlist.Engine, converter *pricing.Converter, offers *pricing.OfferPolicy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine.Clear(r.Context())

		view, err := newWishlistView(engine, converter, offers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// WishlistMoveToCart moves a wishlisted product into the cart. The quantity
// defaults to one when the body omits it.
func WishlistMoveToCart(engine *wishlist.Engine, converter *pricing.Converter, offers *pricing.OfferPolicy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathInt(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := wishlistMoveRequest{}
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		if payload.Quantity == 0 {
			payload.Quantity = 1
		}

		if err := engine.MoveToCart(r.Context(), productID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := newWishlistView(engine, converter, offers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// WishlistMoveAll moves every wishlist entry into the cart with quantity one.
func WishlistMoveAll(engine *wishlist.Engine, converter *pricing.Converter, offers *pricing.OfferPolicy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := engine.MoveAll(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := newWishlistView(engine, converter, offers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
