// Package store persists grid layouts between requests and provides the
// distributed search guard.
//
// What:
//
//   - Store saves and loads grid.Layout snapshots by session ID.
//   - MemoryStore keeps them in process with an optional TTL.
//   - RedisStore keeps them in Redis as JSON with a TTL.
//   - RedisGuard is an animate.Guard backed by a redsync mutex per key.
//
// Errors:
//
//   - ErrNotFound: no layout under the ID (never saved or expired).
package store

import (
	"context"
	"errors"

	"github.com/katalvlaran/beepath/grid"
)

// ErrNotFound is returned when no layout is stored under an ID.
var ErrNotFound = errors.New("store: grid not found")

// Store persists grid layouts by ID. Implementations are safe for
// concurrent use.
type Store interface {
	Save(ctx context.Context, id string, l grid.Layout) error
	Load(ctx context.Context, id string) (grid.Layout, error)
	Delete(ctx context.Context, id string) error
}
