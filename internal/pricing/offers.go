package pricing

import (
	"fmt"
	"strings"

	"github.com/davidrenteria/shopvista-backend/pkg/config"
	"github.com/shopspring/decimal"
)

const flatDiscountCode = "flat_threshold_discount"

// AppliedOffer describes a discount applied to a cart quote.
type AppliedOffer struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// OfferPolicy evaluates the configured offers against cart subtotals and
// product categories. Evaluation is stateless and deterministic.
type OfferPolicy struct {
	threshold decimal.Decimal
	rate      decimal.Decimal
	bundle    map[string]struct{}
}

// NewOfferPolicy builds the policy from pricing configuration.
func NewOfferPolicy(cfg config.PricingConfig) *OfferPolicy {
	bundle := make(map[string]struct{}, len(cfg.BundleCategories))
	for _, category := range cfg.BundleCategories {
		normalized := strings.ToLower(strings.TrimSpace(category))
		if normalized == "" {
			continue
		}
		bundle[normalized] = struct{}{}
	}
	return &OfferPolicy{
		threshold: cfg.DiscountThreshold,
		rate:      cfg.DiscountRate,
		bundle:    bundle,
	}
}

// Evaluate returns the discount for the given display-currency subtotal and
// the offers that produced it. The discount never exceeds the subtotal.
func (p *OfferPolicy) Evaluate(subtotal decimal.Decimal) (decimal.Decimal, []AppliedOffer) {
	if subtotal.LessThan(p.threshold) {
		return decimal.Zero, nil
	}

	discount := subtotal.Mul(p.rate)
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	offer := AppliedOffer{
		Code:        flatDiscountCode,
		Description: fmt.Sprintf("%s%% off orders of %s or more", p.rate.Mul(decimal.NewFromInt(100)).String(), Format(p.threshold)),
		Amount:      discount,
	}
	return discount, []AppliedOffer{offer}
}

// BundleEligible reports whether a product category carries the bundle badge.
// The badge is informational only; it never adjusts cart pricing.
func (p *OfferPolicy) BundleEligible(category string) bool {
	_, ok := p.bundle[strings.ToLower(strings.TrimSpace(category))]
	return ok
}
