package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vaporvista/storefront-backend/api/middleware"
	"github.com/vaporvista/storefront-backend/api/responses"
	"github.com/vaporvista/storefront-backend/api/validators"
	"github.com/vaporvista/storefront-backend/internal/cart"
	"github.com/vaporvista/storefront-backend/internal/checkout"
	pkgerrors "github.com/vaporvista/storefront-backend/pkg/errors"
	"github.com/vaporvista/storefront-backend/pkg/logger"
	"github.com/vaporvista/storefront-backend/pkg/types"
)

type CheckoutController struct {
	checkout checkout.Service
	manager  *cart.Manager
	logg     *logger.Logger
}

func NewCheckoutController(svc checkout.Service, manager *cart.Manager, logg *logger.Logger) *CheckoutController {
	return &CheckoutController{checkout: svc, manager: manager, logg: logg}
}

type createOrderRequest struct {
	Address types.Address `json:"address" validate:"required"`
}

// Create freezes the session cart into a pending order. The cart stays
// intact until the payment flow confirms.
func (c *CheckoutController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createOrderRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}

	sessionID := middleware.CartSessionFromContext(ctx)
	store := c.manager.ForSession(ctx, sessionID)

	order, err := c.checkout.CreateOrder(ctx, sessionID, store, req.Address)
	if err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}
	responses.WriteJSON(w, http.StatusCreated, order)
}

// Confirm marks the order paid. The cart cleared is the one recorded on
// the order, so callbacks arriving without the shopper's cookie still
// empty the right session. Safe to retry.
func (c *CheckoutController) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		responses.WriteError(ctx, c.logg, w,
			pkgerrors.New(pkgerrors.CodeValidation, "invalid order id"))
		return
	}

	order, err := c.checkout.ConfirmOrder(ctx, orderID)
	if err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}
	responses.WriteJSON(w, http.StatusOK, order)
}
