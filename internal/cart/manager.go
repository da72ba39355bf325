package cart

import (
	"context"
	"sync"

	"github.com/vaporvista/storefront-backend/pkg/logger"
	"github.com/vaporvista/storefront-backend/pkg/metrics"
)

// SlotFactory builds the slot backing a given cart session.
type SlotFactory func(sessionID string) Slot

// Manager hands out one Store per cart session, restoring the persisted
// snapshot the first time a session is seen and tearing the store down when
// the session ends. It replaces the ambient global the storefront UI used
// to keep.
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*Store
	slots   SlotFactory
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

func NewManager(slots SlotFactory, logg *logger.Logger, m *metrics.CartMetrics) *Manager {
	return &Manager{
		stores:  make(map[string]*Store),
		slots:   slots,
		logg:    logg,
		metrics: m,
	}
}

// ForSession returns the store for the session, creating and restoring it
// on first use.
func (m *Manager) ForSession(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}
	store := NewStore(m.slots(sessionID), m.logg, m.metrics)
	store.Restore(ctx)
	m.stores[sessionID] = store
	return store
}

// EndSession drops the in-memory store for the session. The slot keeps
// whatever was last written; a returning session restores from it.
func (m *Manager) EndSession(sessionID string) {
	m.mu.Lock()
	delete(m.stores, sessionID)
	m.mu.Unlock()
}
