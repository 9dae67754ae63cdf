// internal/store/memory.go
//
// In-memory store of live game sessions.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Map access is guarded by an RWMutex; each game additionally has its own
//     mutex so input for one game is applied strictly in order (single writer)
//     while different games proceed in parallel.
//   - Get returns a snapshot (deep copy), never the live game.
//   - Idle games are evicted by Sweep after the configured TTL.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/fbwordle/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get returns a snapshot of a game.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update runs fn with exclusive access to the live game.
	// fn's error is returned unchanged.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete removes a game; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error
}

type entry struct {
	mu      sync.Mutex
	g       *game.Game
	touched time.Time
}

// Memory is an in-memory map-based Store implementation.
type Memory struct {
	mu    sync.RWMutex
	games map[string]*entry
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{games: make(map[string]*entry), now: time.Now}
}

func (m *Memory) Save(_ context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.games[g.ID]; ok {
		e.mu.Lock()
		e.g, e.touched = g, m.now()
		e.mu.Unlock()
		return nil
	}
	m.games[g.ID] = &entry{g: g, touched: m.now()}
	return nil
}

func (m *Memory) lookup(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (m *Memory) Get(_ context.Context, id string) (*game.Game, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.g.Clone(), nil
}

func (m *Memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	e.touched = m.now()
	return fn(e.g)
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

var _ Store = (*Memory)(nil)

// Len reports the number of stored games.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Janitor calls Sweep every interval until ctx is done.
func (m *Memory) Janitor(ctx context.Context, every, ttl time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep(ttl)
		}
	}
}

// Sweep evicts games untouched for longer than ttl and returns how many.
func (m *Memory) Sweep(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		e.mu.Lock()
		stale := e.touched.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(m.games, id)
			n++
		}
	}
	return n
}
