package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Slot is the durable whole-value cell a cart session persists into. Read
// returns (nil, nil) when no value exists. Implementations overwrite the
// entire value on Write; concurrent writers get last-write-wins.
type Slot interface {
	Read(ctx context.Context) (*Snapshot, error)
	Write(ctx context.Context, snap Snapshot) error
}

// MemorySlot is an in-process Slot used by tests and by deployments that
// run without redis. The snapshot round-trips through JSON so reads see
// exactly what a remote cell would return.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Read(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(m.data, &snap); err != nil {
		return nil, fmt.Errorf("decoding cart snapshot: %w", err)
	}
	return &snap, nil
}

func (m *MemorySlot) Write(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding cart snapshot: %w", err)
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

// Corrupt replaces the stored value with arbitrary bytes. Test hook for the
// malformed-snapshot path.
func (m *MemorySlot) Corrupt(raw []byte) {
	m.mu.Lock()
	m.data = raw
	m.mu.Unlock()
}
