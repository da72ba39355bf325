package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vaporvista/storefront-backend/internal/cart"
)

// Config holds the storefront pricing rules. Values come from the persisted
// store settings, falling back to configured defaults.
type Config struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingRate      decimal.Decimal
	TaxRate               decimal.Decimal
	TaxShipping           bool
}

// Totals is the computed checkout breakdown. All values are exact decimals;
// callers round at display time only.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Quote derives the checkout totals from the cart lines and pricing rules.
// Pure; no failure modes for well-typed, non-negative inputs.
//
// Shipping is free only when the subtotal strictly exceeds the threshold: a
// subtotal exactly at the threshold still pays the flat rate. Tax applies
// to the subtotal, and to shipping as well when TaxShipping is set.
func Quote(lines []cart.Line, cfg Config) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	shipping := cfg.FlatShippingRate
	if subtotal.GreaterThan(cfg.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	taxable := subtotal
	if cfg.TaxShipping {
		taxable = taxable.Add(shipping)
	}
	tax := taxable.Mul(cfg.TaxRate)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// DisplayTotals carries the two-decimal strings shown to shoppers.
type DisplayTotals struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// Display rounds each amount to two decimal places using round-half-up.
// Rounding happens only here, never inside the computation.
func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		Subtotal: t.Subtotal.StringFixed(2),
		Shipping: t.Shipping.StringFixed(2),
		Tax:      t.Tax.StringFixed(2),
		Total:    t.Total.StringFixed(2),
	}
}

// FreeShipping reports whether the quote qualified for free shipping.
func (t Totals) FreeShipping() bool {
	return t.Shipping.IsZero()
}
