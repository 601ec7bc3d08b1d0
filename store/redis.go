package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/katalvlaran/beepath/grid"
)

// default prefix for redis keys
const defaultPrefix = "beepath"

// RedisStore keeps layouts in Redis as JSON under "<prefix>:grid:<id>".
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps client. Entries expire after ttl; ttl <= 0 keeps
// them forever. An empty prefix selects "beepath".
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:grid:%s", r.prefix, id)
}

// Save writes l under id and refreshes its TTL.
func (r *RedisStore) Save(ctx context.Context, id string, l grid.Layout) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", id, err)
	}
	if err := r.client.Set(ctx, r.key(id), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("store: save %s: %w", id, err)
	}
	return nil
}

// Load reads the layout under id.
func (r *RedisStore) Load(ctx context.Context, id string) (grid.Layout, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return grid.Layout{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return grid.Layout{}, fmt.Errorf("store: load %s: %w", id, err)
	}
	var l grid.Layout
	if err := json.Unmarshal(raw, &l); err != nil {
		return grid.Layout{}, fmt.Errorf("store: decode %s: %w", id, err)
	}
	return l, nil
}

// Delete removes id.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("store: delete %s: %w", id, err)
	}
	return nil
}
