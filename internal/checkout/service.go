package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vaporvista/storefront-backend/internal/cart"
	"github.com/vaporvista/storefront-backend/internal/pricing"
	"github.com/vaporvista/storefront-backend/pkg/db/models"
	"github.com/vaporvista/storefront-backend/pkg/enums"
	pkgerrors "github.com/vaporvista/storefront-backend/pkg/errors"
	"github.com/vaporvista/storefront-backend/pkg/types"
)

// orderNumberAttempts bounds regeneration when a number collides with the
// unique index.
const orderNumberAttempts = 5

type orderRepo interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
}

type settingsProvider interface {
	PricingConfig(ctx context.Context) (pricing.Config, error)
}

type cartResolver interface {
	ForSession(ctx context.Context, sessionID string) *cart.Store
	EndSession(sessionID string)
}

// Service turns a session cart into an order and completes it once the
// hosted payment flow reports success. The payment provider itself stays
// outside this boundary.
type Service interface {
	CreateOrder(ctx context.Context, sessionID string, store *cart.Store, address types.Address) (*models.Order, error)
	ConfirmOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

type service struct {
	orders   orderRepo
	settings settingsProvider
	carts    cartResolver
}

// NewService builds a checkout service backed by the provided stack.
func NewService(orders orderRepo, settings settingsProvider, carts cartResolver) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings provider required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart resolver required")
	}
	return &service{orders: orders, settings: settings, carts: carts}, nil
}

// CreateOrder freezes the session cart and its computed totals into a
// pending order. The cart itself is left untouched until confirmation.
func (s *service) CreateOrder(ctx context.Context, sessionID string, store *cart.Store, address types.Address) (*models.Order, error) {
	if store == nil || store.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if !address.Complete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is incomplete")
	}

	cfg, err := s.settings.PricingConfig(ctx)
	if err != nil {
		return nil, err
	}

	lines := store.Lines()
	totals := pricing.Quote(lines, cfg)

	order := &models.Order{
		ID:              uuid.New(),
		CartSessionID:   sessionID,
		Status:          enums.OrderStatusPending,
		ShippingAddress: &address,
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Items:           lineItems(lines),
	}

	// Order numbers carry limited entropy; regenerate on a unique-index
	// collision instead of surfacing it to the shopper.
	var createErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.Number = newOrderNumber()
		createErr = s.orders.Create(ctx, order)
		if createErr == nil {
			return order, nil
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			break
		}
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "persist order")
}

// ConfirmOrder marks a pending order paid, clears the cart of the session
// recorded on the order, and tears that session's store down. Confirming an
// already-paid order is a no-op so retried success callbacks stay safe.
func (s *service) ConfirmOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	switch order.Status {
	case enums.OrderStatusPaid:
		return order, nil
	case enums.OrderStatusPending:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order cannot be confirmed")
	}

	now := time.Now().UTC()
	order.Status = enums.OrderStatusPaid
	order.PaidAt = &now
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	// The success callback may arrive without the shopper's cookie, so the
	// cart to clear is the one the order froze, not the caller's.
	if order.CartSessionID != "" {
		store := s.carts.ForSession(ctx, order.CartSessionID)
		store.Clear(ctx)
		s.carts.EndSession(order.CartSessionID)
	}
	return order, nil
}

func lineItems(lines []cart.Line) []models.OrderLineItem {
	items := make([]models.OrderLineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderLineItem{
			ID:        uuid.New(),
			ProductID: line.ProductID,
			Name:      line.Name,
			Slug:      line.Slug,
			UnitPrice: line.UnitPrice,
			ImageRef:  line.ImageRef,
			Quantity:  line.Quantity,
			LineTotal: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return items
}

func newOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "VV-" + raw[:12]
}
