package daily

import (
	"context"
	"sync"
)

// Cursor stores the next rotation index per session.
// Advance returns the current index and stores (current+1) mod n atomically.
type Cursor interface {
	Advance(ctx context.Context, sessionID string, n int) (int, error)
}

// Rotation hands each session the next word of a fixed list, wrapping.
type Rotation struct {
	words  []string
	cursor Cursor
}

// NewRotation returns a Rotation over a copy of words.
func NewRotation(words []string, cursor Cursor) (*Rotation, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	if cursor == nil {
		cursor = NewMemoryCursor()
	}
	return &Rotation{words: append([]string(nil), words...), cursor: cursor}, nil
}

// Next returns the session's current word and advances its cursor.
func (r *Rotation) Next(ctx context.Context, sessionID string) (word string, next int, err error) {
	i, err := r.cursor.Advance(ctx, sessionID, len(r.words))
	if err != nil {
		return "", 0, err
	}
	return r.words[i%len(r.words)], (i + 1) % len(r.words), nil
}

// Len is the rotation size.
func (r *Rotation) Len() int { return len(r.words) }

// memoryCursor keeps cursors in a map; state is lost on restart.
type memoryCursor struct {
	mu   sync.Mutex
	next map[string]int
}

// NewMemoryCursor constructs an in-memory Cursor.
func NewMemoryCursor() Cursor {
	return &memoryCursor{next: make(map[string]int)}
}

func (m *memoryCursor) Advance(_ context.Context, sessionID string, n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyWordList
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.next[sessionID] % n
	m.next[sessionID] = (cur + 1) % n
	return cur, nil
}
