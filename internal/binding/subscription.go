package binding

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/state"
)

// Subscription delivers change signals without ever blocking the store.
// Bursts of changes collapse into one pending signal; Snapshot always
// returns the newest state.
type Subscription struct {
	store  *state.Store
	ch     chan struct{}
	cancel func()

	mu     sync.Mutex
	latest *cart.State
	closed bool
}

func newSubscription(store *state.Store) *Subscription {
	sub := &Subscription{
		store:  store,
		ch:     make(chan struct{}, 1),
		latest: store.GetState(),
	}
	sub.cancel = store.Subscribe(sub.notify)
	return sub
}

func (s *Subscription) notify(st *cart.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.latest = st
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C returns the change signal channel. It is closed by Close.
func (s *Subscription) C() <-chan struct{} { return s.ch }

// Snapshot returns the most recent state seen by the subscription.
func (s *Subscription) Snapshot() *cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Close stops delivery and closes C. It is safe to call more than once.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	s.cancel()
}

// ChangedMsg reports a new cart snapshot to a bubbletea program.
type ChangedMsg struct {
	State *cart.State
}

// WaitForChange returns a command that blocks until sub signals and then
// yields the latest snapshot. It yields nil once the subscription is closed.
func WaitForChange(sub *Subscription) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-sub.C(); !ok {
			return nil
		}
		return ChangedMsg{State: sub.Snapshot()}
	}
}
