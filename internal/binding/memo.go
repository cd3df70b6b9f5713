package binding

import (
	"sync"

	"github.com/five82/tote/internal/cart"
)

// Memo caches a value derived from a state snapshot and recomputes it only
// when the snapshot pointer changes.
type Memo[T any] struct {
	derive func(*cart.State) T

	mu   sync.Mutex
	key  *cart.State
	val  T
	runs int
}

// NewMemo returns a Memo for derive.
func NewMemo[T any](derive func(*cart.State) T) *Memo[T] {
	return &Memo[T]{derive: derive}
}

// Get returns derive(s), reusing the previous result when s is the same
// snapshot as last time.
func (m *Memo[T]) Get(s *cart.State) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.key != nil && m.key == s {
		return m.val
	}
	m.val = m.derive(s)
	m.key = s
	m.runs++
	return m.val
}

// computations reports how many times derive has run.
func (m *Memo[T]) computations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}
