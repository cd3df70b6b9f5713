package state

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/events"
)

// Listener is called with the state produced by a change.
type Listener func(*cart.State)

// Store owns the canonical cart state.
type Store struct {
	opts    Options
	reducer cart.Reducer
	logger  *slog.Logger
	bus     *events.Bus
	emitter *events.Emitter

	mu        sync.Mutex
	state     *cart.State
	subs      map[uint64]*subscriber
	nextSub   uint64
	destroyed bool

	// version counts state changes. delivering is set while one goroutine
	// runs subscribers; redeliver asks it for another pass.
	version    uint64
	delivering bool
	redeliver  bool

	idle  timerSlot
	burst timerSlot
	save  timerSlot

	burstActive bool
	burstStart  time.Time
	burstItems  int

	// saveMu serialises writes so a Flush and a firing save timer never
	// interleave their backend calls.
	saveMu sync.Mutex
}

// subscriber remembers the last state version it was handed, so it never
// sees an older state after a newer one.
type subscriber struct {
	fn   Listener
	seen uint64
}

// outcome is what a locked transition hands to publish.
type outcome struct {
	prev, next *cart.State
	events     []events.Event
}

// New builds a Store and arms its idle timer.
func New(opts Options) *Store {
	opts = opts.withDefaults()
	s := &Store{
		opts:    opts,
		reducer: cart.Reducer{ToggleWindow: opts.ToggleWindow},
		logger:  opts.Logger,
		bus:     events.NewBus(opts.Logger),
		subs:    make(map[uint64]*subscriber),
	}
	sinks := append([]events.Sink{s.bus}, opts.Sinks...)
	s.emitter = events.NewEmitter(opts.Logger, sinks...)

	s.state = opts.Initial
	if s.state == nil {
		s.state = cart.NewState(opts.Clock.Now())
	}

	s.mu.Lock()
	s.armIdleLocked()
	s.mu.Unlock()
	return s
}

// GetState returns the current snapshot. Callers must treat it as read-only.
func (s *Store) GetState() *cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time { return s.opts.Clock.Now() }

// ToggleWindow returns the configured hesitation window.
func (s *Store) ToggleWindow() time.Duration { return s.opts.ToggleWindow }

// Telemetry derives the current telemetry snapshot.
func (s *Store) Telemetry() cart.Telemetry {
	return cart.SelectTelemetry(s.GetState(), s.Now(), s.opts.ToggleWindow)
}

// Dispatch applies a, emits the resulting events, notifies subscribers if
// the state changed and schedules a save. It never panics on behalf of a
// listener and is a no-op after Destroy.
func (s *Store) Dispatch(a cart.Action) {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	out := s.applyLocked(a)
	s.mu.Unlock()

	s.publish(out)
}

// Subscribe registers fn for state changes and returns its unsubscribe func.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = &subscriber{fn: fn, seen: s.version}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
		})
	}
}

// OnEvent registers fn for events of type t and returns its unsubscribe func.
func (s *Store) OnEvent(t events.Type, fn events.Listener) func() {
	return s.bus.On(t, fn)
}

// RegisterHoverIntent records a hover over productID lasting d. Hovers
// shorter than the configured minimum are ignored.
func (s *Store) RegisterHoverIntent(productID int64, d time.Duration) {
	if d < s.opts.HoverIntentMin {
		return
	}
	s.Dispatch(cart.RecordHoverIntent{ProductID: productID, Duration: d})
}

// RegisterToggle records one open or close of the cart view.
func (s *Store) RegisterToggle() {
	s.Dispatch(cart.RecordToggle{})
}

// Flush performs a pending debounced save immediately.
func (s *Store) Flush() {
	s.mu.Lock()
	if !s.save.pending() {
		s.mu.Unlock()
		return
	}
	s.save.stop()
	snap := s.state
	s.mu.Unlock()

	s.write(snap)
}

// Destroy stops every timer and drops every listener. A pending save is
// discarded; call Flush first to keep it.
func (s *Store) Destroy() {
	s.mu.Lock()
	s.destroyed = true
	s.idle.stop()
	s.burst.stop()
	s.save.stop()
	s.burstActive = false
	s.subs = make(map[uint64]*subscriber)
	s.mu.Unlock()

	s.bus.Clear()
}

// applyLocked runs a and any follow-up actions it produces through the
// reducer and effect plan, arming timers as requested.
func (s *Store) applyLocked(actions ...cart.Action) outcome {
	now := s.opts.Clock.Now()
	out := outcome{prev: s.state}

	queue := actions
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]

		before := s.state
		after := s.reducer.Reduce(before, a, now)
		fx := plan(s.reducer, a, before, after, now, s.burstActive)
		s.state = after

		if fx.interaction {
			s.armIdleLocked()
		}
		switch fx.burst {
		case burstStart:
			s.burstActive = true
			s.burstStart = now
			s.burstItems = fx.burstQty
			s.armBurstLocked()
		case burstExtend:
			s.burstItems += fx.burstQty
			s.armBurstLocked()
		}

		out.events = append(out.events, fx.events...)
		queue = append(queue, fx.followUps...)
	}

	out.next = s.state
	if out.next != out.prev {
		s.version++
		s.save.arm(s.opts.Clock, s.opts.SaveDebounce, s.onSaveTimer)
	}
	return out
}

// publish runs outside the lock: events first, then subscribers.
func (s *Store) publish(out outcome) {
	for _, ev := range out.events {
		s.emitter.Emit(ev)
	}
	if out.next != out.prev {
		s.deliver()
	}
}

// deliver hands every subscriber the current state. Only one goroutine
// delivers at a time; a change made meanwhile, including one dispatched by
// a subscriber, triggers another pass by that goroutine instead of a
// concurrent one. Each subscriber gets the state as it is when called, so
// delivery never goes backwards.
func (s *Store) deliver() {
	s.mu.Lock()
	if s.delivering {
		s.redeliver = true
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for {
		s.redeliver = false
		ids := make([]uint64, 0, len(s.subs))
		for id := range s.subs {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		s.mu.Unlock()

		for _, id := range ids {
			s.mu.Lock()
			sub, ok := s.subs[id]
			if !ok || sub.seen == s.version {
				s.mu.Unlock()
				continue
			}
			sub.seen = s.version
			st := s.state
			s.mu.Unlock()

			s.notify(sub.fn, st)
		}

		s.mu.Lock()
		if !s.redeliver {
			break
		}
	}
	s.delivering = false
	s.mu.Unlock()
}

func (s *Store) notify(fn Listener, st *cart.State) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("cart subscriber panicked", "panic", r)
		}
	}()
	fn(st)
}

func (s *Store) armIdleLocked() {
	s.idle.arm(s.opts.Clock, s.opts.idleDelay(), s.onIdleTimer)
}

func (s *Store) armBurstLocked() {
	s.burst.arm(s.opts.Clock, s.opts.BurstThreshold, s.onBurstTimer)
}

func (s *Store) onIdleTimer(gen uint64) {
	s.mu.Lock()
	if s.destroyed || !s.idle.claim(gen) {
		s.mu.Unlock()
		return
	}
	out := s.applyLocked(cart.SetIdle{Idle: true})
	s.mu.Unlock()

	s.publish(out)
}

func (s *Store) onBurstTimer(gen uint64) {
	s.mu.Lock()
	if s.destroyed || !s.burst.claim(gen) {
		s.mu.Unlock()
		return
	}
	now := s.opts.Clock.Now()
	ended := events.Event{
		Type:      events.AddBurstEnded,
		Timestamp: now,
		Payload: events.AddBurstEndedPayload{
			ItemsAdded: s.burstItems,
			Duration:   now.Sub(s.burstStart),
		},
	}
	s.burstActive = false
	s.burstItems = 0
	s.burstStart = time.Time{}

	out := s.applyLocked(cart.EndAddBurst{})
	out.events = append([]events.Event{ended}, out.events...)
	s.mu.Unlock()

	s.publish(out)
}

func (s *Store) onSaveTimer(gen uint64) {
	s.mu.Lock()
	if s.destroyed || !s.save.claim(gen) {
		s.mu.Unlock()
		return
	}
	snap := s.state
	s.mu.Unlock()

	s.write(snap)
}

func (s *Store) write(snap *cart.State) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("cart save panicked", "panic", r)
		}
	}()
	s.opts.Saver.Save(snap)
}
