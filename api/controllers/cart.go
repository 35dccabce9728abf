package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidrenteria/shopvista-backend/api/responses"
	"github.com/davidrenteria/shopvista-backend/api/validators"
	"github.com/davidrenteria/shopvista-backend/internal/cart"
	"github.com/davidrenteria/shopvista-backend/internal/catalog"
	"github.com/davidrenteria/shopvista-backend/internal/pricing"
	pkgerrors "github.com/davidrenteria/shopvista-backend/pkg/errors"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type cartAddRequest struct {
	ProductID int `json:"product_id" validate:"required,min=1"`
	Quantity  int `json:"quantity" validate:"required,min=1"`
}

type cartQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type cartLineView struct {
	ProductID    int    `json:"product_id"`
	Title        string `json:"title"`
	Price        string `json:"price"`
	DisplayPrice string `json:"display_price"`
	Image        string `json:"image"`
	Category     string `json:"category"`
	Quantity     int    `json:"quantity"`
	LineTotal    string `json:"line_total"`
}

type cartQuoteView struct {
	Subtotal  string                 `json:"subtotal"`
	Discount  string                 `json:"discount"`
	Total     string                 `json:"total"`
	ItemCount int                    `json:"item_count"`
	Offers    []pricing.AppliedOffer `json:"applied_offers"`
}

type cartView struct {
	Items []cartLineView `json:"items"`
	Quote cartQuoteView  `json:"quote"`
}

func newCartView(engine *cart.Engine, converter *pricing.Converter) (cartView, error) {
	quote, err := engine.Totals()
	if err != nil {
		return cartView{}, err
	}

	lines := engine.Items()
	views := make([]cartLineView, 0, len(lines))
	for _, line := range lines {
		display, err := converter.Convert(line.Price)
		if err != nil {
			return cartView{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "price cart line")
		}
		views = append(views, cartLineView{
			ProductID:    line.ProductID,
			Title:        line.Title,
			Price:        pricing.Format(line.Price),
			DisplayPrice: pricing.Format(display),
			Image:        line.Image,
			Category:     line.Category,
			Quantity:     line.Quantity,
			LineTotal:    pricing.Format(display.Mul(decimal.NewFromInt(int64(line.Quantity)))),
		})
	}

	offers := quote.Offers
	if offers == nil {
		offers = []pricing.AppliedOffer{}
	}

	return cartView{
		Items: views,
		Quote: cartQuoteView{
			Subtotal:  pricing.Format(quote.Subtotal),
			Discount:  pricing.Format(quote.Discount),
			Total:     pricing.Format(quote.Total),
			ItemCount: quote.ItemCount,
			Offers:    offers,
		},
	}, nil
}

// CartFetch serves the cart lines and the priced quote.
func CartFetch(engine *cart.Engine, converter *pricing.Converter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := newCartView(engine, converter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartAddItem adds a catalog product to the cart.
func CartAddItem(engine *cart.Engine, cat *catalog.Catalog, converter *pricing.Converter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := cat.FindByID(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		if err := engine.Add(r.Context(), product, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := newCartView(engine, converter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartChangeQuantity applies a signed delta to an existing cart line.
func CartChangeQuantity(engine *cart.Engine, converter *pricing.Converter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathInt(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine.ChangeQuantity(r.Context(), productID, payload.Delta)

		view, err := newCartView(engine, converter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartRemoveItem deletes a cart line.
func CartRemoveItem(engine *cart.Engine, converter *pricing.Converter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathInt(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine.Remove(r.Context(), productID)

		view, err := newCartView(engine, converter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartClear empties the cart.
func CartClear(engine *cart.Engine, converter *pricing.Converter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine.Clear(r.Context())

		view, err := newCartView(engine, converter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
