package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidrenteria/shopvista-backend/api/responses"
	"github.com/davidrenteria/shopvista-backend/api/validators"
	"github.com/davidrenteria/shopvista-backend/internal/catalog"
	"github.com/davidrenteria/shopvista-backend/internal/pricing"
	pkgerrors "github.com/davidrenteria/shopvista-backend/pkg/errors"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
)

type productView struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          string          `json:"price"`
	DisplayPrice   string          `json:"display_price"`
	Category       string          `json:"category"`
	Image          string          `json:"image"`
	Rating         *catalog.Rating `json:"rating,omitempty"`
	BundleEligible bool            `json:"bundle_eligible"`
}

type productListView struct {
	Products   []productView `json:"products"`
	Categories []string      `json:"categories"`
}

func newProductView(p catalog.Product, converter *pricing.Converter, offers *pricing.OfferPolicy) (productView, error) {
	display, err := converter.Convert(p.Price)
	if err != nil {
		return productView{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "price product")
	}
	return productView{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Price:          pricing.Format(p.Price),
		DisplayPrice:   pricing.Format(display),
		Category:       p.Category,
		Image:          p.Image,
		Rating:         p.Rating,
		BundleEligible: offers.BundleEligible(p.Category),
	}, nil
}

// ProductList serves the filtered catalog. The query matches title or
// description case-insensitively; the category must match exactly unless it
// is "all".
func ProductList(cat *catalog.Catalog, converter *pricing.Converter, offers *pricing.OfferPolicy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := validators.QueryString(r, "query", "")
		category := validators.QueryString(r, "category", catalog.CategoryAll)

		matched := cat.Filter(query, category)
		views := make([]productView, 0, len(matched))
		for _, p := range matched {
			view, err := newProductView(p, converter, offers)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			views = append(views, view)
		}

		responses.WriteSuccess(w, productListView{
			Products:   views,
			Categories: cat.Categories(),
		})
	}
}

// ProductDetail serves a single catalog product by id.
func ProductDetail(cat *catalog.Catalog, converter *pricing.Converter, offers *pricing.OfferPolicy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathInt(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := cat.FindByID(productID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		view, err := newProductView(product, converter, offers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ProductCategories serves the distinct categories in feed order.
func ProductCategories(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"categories": cat.Categories()})
	}
}
