package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaporvista/storefront-backend/api/middleware"
	"github.com/vaporvista/storefront-backend/api/responses"
	"github.com/vaporvista/storefront-backend/api/validators"
	"github.com/vaporvista/storefront-backend/internal/cart"
	"github.com/vaporvista/storefront-backend/internal/pricing"
	"github.com/vaporvista/storefront-backend/internal/settings"
	pkgerrors "github.com/vaporvista/storefront-backend/pkg/errors"
	"github.com/vaporvista/storefront-backend/pkg/logger"
)

// SnapshotSource freezes the product fields a cart line stores at add time.
type SnapshotSource interface {
	Snapshot(ctx context.Context, productID string) (cart.ProductSnapshot, error)
}

type CartController struct {
	manager  *cart.Manager
	catalog  SnapshotSource
	settings settings.Service
	logg     *logger.Logger
}

func NewCartController(manager *cart.Manager, catalog SnapshotSource, svc settings.Service, logg *logger.Logger) *CartController {
	return &CartController{manager: manager, catalog: catalog, settings: svc, logg: logg}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity,omitempty"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type cartView struct {
	Lines      []cart.Line           `json:"lines"`
	TotalItems int                   `json:"totalItems"`
	Totals     pricing.DisplayTotals `json:"totals"`
}

// Get returns the session cart with its computed totals.
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := c.manager.ForSession(ctx, middleware.CartSessionFromContext(ctx))
	c.writeView(w, r, store)
}

// AddItem merges a product into the cart. A missing quantity defaults to
// one to match the storefront's add-to-cart button.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addItemRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		responses.WriteError(ctx, c.logg, w,
			pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1"))
		return
	}

	snapshot, err := c.catalog.Snapshot(ctx, req.ProductID)
	if err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}

	store := c.manager.ForSession(ctx, middleware.CartSessionFromContext(ctx))
	store.AddItem(ctx, snapshot, quantity)
	c.writeView(w, r, store)
}

// UpdateQuantity replaces the quantity on an existing line. A product not in
// the cart leaves it unchanged and returns the current view.
func (c *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateQuantityRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}

	store := c.manager.ForSession(ctx, middleware.CartSessionFromContext(ctx))
	store.UpdateQuantity(ctx, chi.URLParam(r, "productID"), req.Quantity)
	c.writeView(w, r, store)
}

// RemoveItem drops a line. Removing an absent product is idempotent.
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := c.manager.ForSession(ctx, middleware.CartSessionFromContext(ctx))
	store.RemoveItem(ctx, chi.URLParam(r, "productID"))
	c.writeView(w, r, store)
}

// Clear empties the cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := c.manager.ForSession(ctx, middleware.CartSessionFromContext(ctx))
	store.Clear(ctx)
	c.writeView(w, r, store)
}

// Quote returns just the computed totals for the session cart, for
// callers that do not need the line detail.
func (c *CartController) Quote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cfg, err := c.settings.PricingConfig(ctx)
	if err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}

	store := c.manager.ForSession(ctx, middleware.CartSessionFromContext(ctx))
	totals := pricing.Quote(store.Lines(), cfg)
	responses.WriteJSON(w, http.StatusOK, totals.Display())
}

func (c *CartController) writeView(w http.ResponseWriter, r *http.Request, store *cart.Store) {
	ctx := r.Context()

	cfg, err := c.settings.PricingConfig(ctx)
	if err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}

	lines := store.Lines()
	totals := pricing.Quote(lines, cfg)

	responses.WriteJSON(w, http.StatusOK, cartView{
		Lines:      lines,
		TotalItems: store.TotalItems(),
		Totals:     totals.Display(),
	})
}
