package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/katalvlaran/beepath/grid"
)

type memoryItem struct {
	layout  grid.Layout
	expires time.Time // zero means never
}

// MemoryStore is an in-process Store. Expired entries are dropped lazily
// on access.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore returns a MemoryStore whose entries live for ttl
// (forever when ttl <= 0).
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Save stores a copy of l under id, refreshing its TTL.
func (m *MemoryStore) Save(ctx context.Context, id string, l grid.Layout) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.Walls = append([]grid.Coord(nil), l.Walls...)
	it := memoryItem{layout: l}
	if m.ttl > 0 {
		it.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.items[id] = it
	m.mu.Unlock()
	return nil
}

// Load returns a copy of the layout under id.
func (m *MemoryStore) Load(ctx context.Context, id string) (grid.Layout, error) {
	if err := ctx.Err(); err != nil {
		return grid.Layout{}, err
	}
	m.mu.RLock()
	it, ok := m.items[id]
	m.mu.RUnlock()
	if !ok {
		return grid.Layout{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !it.expires.IsZero() && !m.now().Before(it.expires) {
		m.mu.Lock()
		delete(m.items, id)
		m.mu.Unlock()
		return grid.Layout{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	l := it.layout
	l.Walls = append([]grid.Coord(nil), l.Walls...)
	return l, nil
}

// Delete removes id. Deleting a missing id is not an error.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
	return nil
}

// Len reports the number of entries, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
