package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vaporvista/storefront-backend/internal/cart"
)

func defaultConfig() Config {
	return Config{
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShippingRate:      decimal.RequireFromString("5.99"),
		TaxRate:               decimal.RequireFromString("0.07"),
	}
}

func line(id, unitPrice string, qty int) cart.Line {
	return cart.Line{
		ProductID: id,
		Name:      id,
		Slug:      id,
		UnitPrice: decimal.RequireFromString(unitPrice),
		Quantity:  qty,
	}
}

func TestQuoteBreakdown(t *testing.T) {
	t.Parallel()

	lines := []cart.Line{
		line("p1", "20.00", 2),
		line("p2", "5.00", 1),
	}
	totals := Quote(lines, defaultConfig())

	display := totals.Display()
	if display.Subtotal != "45.00" {
		t.Fatalf("unexpected subtotal: %s", display.Subtotal)
	}
	if display.Shipping != "5.99" {
		t.Fatalf("45.00 is under the threshold, expected flat rate, got %s", display.Shipping)
	}
	if display.Tax != "3.15" {
		t.Fatalf("unexpected tax: %s", display.Tax)
	}
	if display.Total != "54.14" {
		t.Fatalf("unexpected total: %s", display.Total)
	}
}

func TestFreeShippingBoundaryIsStrict(t *testing.T) {
	t.Parallel()
	cfg := defaultConfig()

	// Exactly at the threshold still pays shipping.
	at := Quote([]cart.Line{line("p1", "50.00", 1)}, cfg)
	if at.FreeShipping() {
		t.Fatal("subtotal equal to the threshold must not get free shipping")
	}
	if at.Display().Shipping != "5.99" {
		t.Fatalf("unexpected shipping at boundary: %s", at.Display().Shipping)
	}

	// One cent over qualifies.
	over := Quote([]cart.Line{line("p1", "50.01", 1)}, cfg)
	if !over.FreeShipping() {
		t.Fatal("subtotal over the threshold must get free shipping")
	}
	if over.Display().Shipping != "0.00" {
		t.Fatalf("unexpected shipping over boundary: %s", over.Display().Shipping)
	}
}

func TestTaxExcludesShippingByDefault(t *testing.T) {
	t.Parallel()

	totals := Quote([]cart.Line{line("p1", "10.00", 1)}, defaultConfig())
	if totals.Display().Tax != "0.70" {
		t.Fatalf("tax must apply to the subtotal only, got %s", totals.Display().Tax)
	}
}

func TestTaxIncludesShippingWhenConfigured(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.TaxShipping = true

	totals := Quote([]cart.Line{line("p1", "10.00", 1)}, cfg)
	// (10.00 + 5.99) * 0.07 = 1.1193
	if totals.Display().Tax != "1.12" {
		t.Fatalf("expected shipping-inclusive tax, got %s", totals.Display().Tax)
	}
	if totals.Display().Total != "17.11" {
		t.Fatalf("unexpected total: %s", totals.Display().Total)
	}
}

func TestQuoteEmptyCart(t *testing.T) {
	t.Parallel()

	totals := Quote(nil, defaultConfig())
	display := totals.Display()
	if display.Subtotal != "0.00" || display.Tax != "0.00" {
		t.Fatalf("unexpected empty totals: %+v", display)
	}
	// An empty cart is below the threshold, so the flat rate applies.
	if display.Shipping != "5.99" {
		t.Fatalf("unexpected empty-cart shipping: %s", display.Shipping)
	}
}

func TestQuoteAvoidsFloatAccumulationError(t *testing.T) {
	t.Parallel()

	// 0.10 added ten times is exactly 1.00 in decimal arithmetic.
	lines := []cart.Line{line("p1", "0.10", 10)}
	totals := Quote(lines, defaultConfig())
	if !totals.Subtotal.Equal(decimal.RequireFromString("1.00")) {
		t.Fatalf("expected exact 1.00, got %s", totals.Subtotal)
	}
}

func TestDisplayRoundsHalfUp(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.TaxRate = decimal.RequireFromString("0.075")

	// 3.00 * 0.075 = 0.225 -> 0.23 under round-half-up.
	totals := Quote([]cart.Line{line("p1", "3.00", 1)}, cfg)
	if totals.Display().Tax != "0.23" {
		t.Fatalf("rounding choice is pinned to half-up, got %s", totals.Display().Tax)
	}
}
