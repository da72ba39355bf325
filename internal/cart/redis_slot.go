package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgredis "github.com/vaporvista/storefront-backend/pkg/redis"
)

// RedisSlot stores the cart snapshot as one JSON value per session key.
// The TTL lets abandoned carts age out; every write refreshes it.
type RedisSlot struct {
	client *pkgredis.Client
	key    string
	ttl    time.Duration
}

func NewRedisSlot(client *pkgredis.Client, sessionID string, ttl time.Duration) *RedisSlot {
	return &RedisSlot{
		client: client,
		key:    pkgredis.CartKey(sessionID),
		ttl:    ttl,
	}
}

func (r *RedisSlot) Read(ctx context.Context) (*Snapshot, error) {
	data, err := r.client.Get(ctx, r.key)
	if errors.Is(err, pkgredis.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding cart snapshot: %w", err)
	}
	return &snap, nil
}

func (r *RedisSlot) Write(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding cart snapshot: %w", err)
	}
	return r.client.Set(ctx, r.key, data, r.ttl)
}
