package cart

import (
	"context"
	"sync"

	"github.com/vaporvista/storefront-backend/pkg/logger"
	"github.com/vaporvista/storefront-backend/pkg/metrics"
)

// Store owns the authoritative in-memory cart for one session and keeps it
// synchronized with its slot. All mutation goes through the operations
// below; every successful mutation overwrites the slot best-effort. A failed
// slot write is logged and swallowed, the in-memory cart stays
// authoritative for the rest of the session.
//
// None of the operations return errors: malformed persisted state, unknown
// product IDs and out-of-range quantities all degrade to no-ops.
type Store struct {
	mu      sync.Mutex
	cart    Cart
	slot    Slot
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

// NewStore builds a store over the given slot. The cart starts empty; call
// Restore once at session start to adopt any persisted snapshot.
func NewStore(slot Slot, logg *logger.Logger, m *metrics.CartMetrics) *Store {
	return &Store{
		slot:    slot,
		logg:    logg,
		metrics: m,
	}
}

// Restore reads the slot and adopts the snapshot if it passes structural
// validation. Absent or malformed values leave the cart empty. Never fails.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.slot.Read(ctx)
	if err != nil {
		s.warn(ctx, "cart.restore_read_failed", err)
		s.metrics.IncRestore("discarded")
		s.cart = Cart{}
		return
	}
	if snap == nil {
		s.metrics.IncRestore("empty")
		s.cart = Cart{}
		return
	}
	if err := snap.Validate(); err != nil {
		s.warn(ctx, "cart.restore_snapshot_invalid", err)
		s.metrics.IncRestore("discarded")
		s.cart = Cart{}
		return
	}
	s.cart = cartFromSnapshot(*snap)
	s.metrics.IncRestore("restored")
}

// AddItem merges the product into an existing line or appends a new one.
// Quantities of zero or less are a no-op; the API layer defaults omitted
// quantities to 1 before calling in.
func (s *Store) AddItem(ctx context.Context, product ProductSnapshot, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.addItem(product, quantity) {
		return
	}
	s.metrics.IncOperation("add_item")
	s.persist(ctx)
}

// UpdateQuantity replaces the quantity of an existing line. Quantities
// below one and unknown product IDs are no-ops.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.updateQuantity(productID, quantity) {
		return
	}
	s.metrics.IncOperation("update_quantity")
	s.persist(ctx)
}

// RemoveItem drops the line for the product ID. Unknown IDs are a no-op,
// so repeated calls are idempotent.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.removeItem(productID) {
		return
	}
	s.metrics.IncOperation("remove_item")
	s.persist(ctx)
}

// Clear resets the cart to empty and overwrites the slot. Used on explicit
// user action and after checkout completion.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.clearAll()
	s.metrics.IncOperation("clear")
	s.persist(ctx)
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// TotalItems returns the cached item count.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

// IsEmpty reports whether the cart holds no lines.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsEmpty()
}

func (s *Store) persist(ctx context.Context) {
	if err := s.slot.Write(ctx, s.cart.snapshot()); err != nil {
		s.warn(ctx, "cart.slot_write_failed", err)
		s.metrics.IncWriteFailure()
	}
}

func (s *Store) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}
