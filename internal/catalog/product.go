package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is one catalog record as served by the external product source.
// Records are immutable once loaded; cart and wishlist keep their own
// snapshots of the fields they need.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      *Rating         `json:"rating,omitempty"`
}

// Rating mirrors the optional rating object on the external feed.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// validate enforces the strict schema at the load boundary. Records failing
// validation are quarantined by the client rather than propagated.
func (p Product) validate() error {
	if p.ID <= 0 {
		return errInvalidProduct("id must be positive")
	}
	if strings.TrimSpace(p.Title) == "" {
		return errInvalidProduct("title is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return errInvalidProduct("category is required")
	}
	if p.Price.IsNegative() {
		return errInvalidProduct("price cannot be negative")
	}
	return nil
}

type errInvalidProduct string

func (e errInvalidProduct) Error() string {
	return "invalid product: " + string(e)
}
