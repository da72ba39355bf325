package checkout

import (
	"context"
	"testing"

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

type stubOrderRepo struct {
	created     *models.Order
	createErrs  []error
	createCalls int
	seenNumbers []string
	byID        map[uuid.UUID]*models.Order
	updated     *models.Order
}

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) error {
	s.createCalls++
	s.seenNumbers = append(s.seenNumbers, order.Number)
	if len(s.createErrs) > 0 {
		err := s.createErrs[0]
		s.createErrs = s.createErrs[1:]
		if err != nil {
			return err
		}
	}
	s.created = order
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := s.byID[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) Update(ctx context.Context, order *models.Order) error {
	s.updated = order
	return nil
}

type stubSettings struct{}

func (stubSettings) PricingConfig(ctx context.Context) (pricing.Config, error) {
	return pricing.Config{
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShippingRate:      decimal.RequireFromString("5.99"),
		TaxRate:               decimal.RequireFromString("0.07"),
	}, nil
}

// stubCarts hands out stores keyed by session and records teardowns.
type stubCarts struct {
	stores map[string]*cart.Store
	ended  []string
}

func newStubCarts() *stubCarts {
	return &stubCarts{stores: make(map[string]*cart.Store)}
}

func (s *stubCarts) ForSession(ctx context.Context, sessionID string) *cart.Store {
	if store, ok := s.stores[sessionID]; ok {
		return store
	}
	store := cart.NewStore(cart.NewMemorySlot(), nil, nil)
	s.stores[sessionID] = store
	return store
}

func (s *stubCarts) EndSession(sessionID string) {
	s.ended = append(s.ended, sessionID)
}

func testAddress() types.Address {
	return types.Address{
		Name:       "Jordan Reyes",
		Email:      "jordan@example.com",
		Line1:      "12 Main St",
		City:       "Tulsa",
		State:      "OK",
		PostalCode: "74101",
		Country:    "US",
	}
}

func cartWith(t *testing.T, products ...cart.ProductSnapshot) *cart.Store {
	t.Helper()
	store := cart.NewStore(cart.NewMemorySlot(), nil, nil)
	for _, p := range products {
		store.AddItem(context.Background(), p, 1)
	}
	return store
}

func product(id, priceStr string) cart.ProductSnapshot {
	return cart.ProductSnapshot{
		ID:    id,
		Name:  "Product " + id,
		Slug:  "product-" + id,
		Price: decimal.RequireFromString(priceStr),
	}
}

func TestCreateOrderFreezesCartAndTotals(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &stubOrderRepo{}
	svc, err := NewService(repo, stubSettings{}, newStubCarts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := cartWith(t, product("p1", "20.00"), product("p2", "5.00"))
	store.UpdateQuantity(ctx, "p1", 2)

	order, err := svc.CreateOrder(ctx, "sess-1", store, testAddress())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created != order {
		t.Fatal("expected order to be persisted")
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if order.Subtotal.StringFixed(2) != "45.00" || order.Total.StringFixed(2) != "54.14" {
		t.Fatalf("unexpected totals: %s / %s", order.Subtotal, order.Total)
	}
	if len(order.Items) != 2 || order.Items[0].ProductID != "p1" {
		t.Fatalf("unexpected line items: %+v", order.Items)
	}
	if order.Items[0].LineTotal.StringFixed(2) != "40.00" {
		t.Fatalf("unexpected line total: %s", order.Items[0].LineTotal)
	}
	// Creating the order does not clear the cart; only confirmation does.
	if store.IsEmpty() {
		t.Fatal("cart must stay intact until confirmation")
	}
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&stubOrderRepo{}, stubSettings{}, newStubCarts())
	store := cart.NewStore(cart.NewMemorySlot(), nil, nil)

	_, err := svc.CreateOrder(context.Background(), "sess-1", store, testAddress())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateOrderRejectsIncompleteAddress(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&stubOrderRepo{}, stubSettings{}, newStubCarts())
	store := cartWith(t, product("p1", "10.00"))

	addr := testAddress()
	addr.PostalCode = ""
	_, err := svc.CreateOrder(context.Background(), "sess-1", store, addr)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateOrderRegeneratesNumberOnCollision(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{createErrs: []error{gorm.ErrDuplicatedKey}}
	svc, _ := NewService(repo, stubSettings{}, newStubCarts())
	store := cartWith(t, product("p1", "10.00"))

	order, err := svc.CreateOrder(context.Background(), "sess-1", store, testAddress())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.createCalls != 2 {
		t.Fatalf("expected a retry after the collision, got %d create calls", repo.createCalls)
	}
	if len(repo.seenNumbers) != 2 || repo.seenNumbers[0] == repo.seenNumbers[1] {
		t.Fatalf("expected a fresh number per attempt, got %v", repo.seenNumbers)
	}
	if order.Number != repo.seenNumbers[1] {
		t.Fatalf("order carries stale number %s", order.Number)
	}
}

func TestCreateOrderGivesUpAfterRepeatedCollisions(t *testing.T) {
	t.Parallel()

	errs := make([]error, orderNumberAttempts)
	for i := range errs {
		errs[i] = gorm.ErrDuplicatedKey
	}
	repo := &stubOrderRepo{createErrs: errs}
	svc, _ := NewService(repo, stubSettings{}, newStubCarts())
	store := cartWith(t, product("p1", "10.00"))

	_, err := svc.CreateOrder(context.Background(), "sess-1", store, testAddress())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if repo.createCalls != orderNumberAttempts {
		t.Fatalf("expected %d attempts, got %d", orderNumberAttempts, repo.createCalls)
	}
}

func TestConfirmOrderMarksPaidAndClearsOrderSessionCart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	order := &models.Order{ID: uuid.New(), CartSessionID: "sess-1", Status: enums.OrderStatusPending}
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	carts := newStubCarts()
	svc, _ := NewService(repo, stubSettings{}, carts)

	// The cart lives under the session recorded on the order, not whoever
	// happens to call confirm.
	store := carts.ForSession(ctx, "sess-1")
	store.AddItem(ctx, product("p1", "10.00"), 1)

	confirmed, err := svc.ConfirmOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmed.Status != enums.OrderStatusPaid || confirmed.PaidAt == nil {
		t.Fatalf("expected paid order, got %+v", confirmed)
	}
	if !store.IsEmpty() {
		t.Fatal("confirmation must clear the order's session cart")
	}
	if len(carts.ended) != 1 || carts.ended[0] != "sess-1" {
		t.Fatalf("expected session teardown for sess-1, got %v", carts.ended)
	}
}

func TestConfirmOrderIdempotentWhenAlreadyPaid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	order := &models.Order{ID: uuid.New(), CartSessionID: "sess-1", Status: enums.OrderStatusPaid}
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	carts := newStubCarts()
	svc, _ := NewService(repo, stubSettings{}, carts)

	confirmed, err := svc.ConfirmOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmed != order || repo.updated != nil {
		t.Fatal("already-paid orders must be returned untouched")
	}
	if len(carts.ended) != 0 {
		t.Fatalf("already-paid confirm must not touch the session, got %v", carts.ended)
	}
}

func TestConfirmOrderRejectsCanceled(t *testing.T) {
	t.Parallel()

	order := &models.Order{ID: uuid.New(), Status: enums.OrderStatusCanceled}
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	svc, _ := NewService(repo, stubSettings{}, newStubCarts())

	_, err := svc.ConfirmOrder(context.Background(), order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestConfirmOrderNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&stubOrderRepo{}, stubSettings{}, newStubCarts())
	_, err := svc.ConfirmOrder(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
