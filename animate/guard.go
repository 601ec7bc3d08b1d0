package animate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/zyedidia/generic/mapset"
)

// ErrSearchInProgress is returned when a search already holds the key.
var ErrSearchInProgress = errors.New("animate: search already in progress")

// Guard admits at most one search per key. The returned release func must
// be called exactly once when the search ends; calling it again is a no-op.
type Guard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// LocalGuard is an in-process Guard.
type LocalGuard struct {
	mu   sync.Mutex
	held mapset.Set[string]
}

// NewLocalGuard returns an empty LocalGuard.
func NewLocalGuard() *LocalGuard {
	return &LocalGuard{held: mapset.New[string]()}
}

// Acquire claims key or fails with ErrSearchInProgress. It never blocks.
func (g *LocalGuard) Acquire(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held.Has(key) {
		return nil, fmt.Errorf("%w: %s", ErrSearchInProgress, key)
	}
	g.held.Put(key)

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			g.held.Remove(key)
			g.mu.Unlock()
		})
	}, nil
}

// Held reports whether key is currently claimed.
func (g *LocalGuard) Held(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.held.Has(key)
}
