package state

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/clock"
	"github.com/five82/tote/internal/events"
)

var start = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

type recordingSaver struct {
	mu    sync.Mutex
	saves []*cart.State
}

func (r *recordingSaver) Save(s *cart.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, s)
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func (r *recordingSaver) last() *cart.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

type harness struct {
	store *Store
	clock *clock.Fake
	saver *recordingSaver
	seen  []events.Event
}

func newHarness(t *testing.T, mutate func(*Options)) *harness {
	t.Helper()
	h := &harness{clock: clock.NewFake(start), saver: &recordingSaver{}}
	opts := Options{
		Clock:          h.clock,
		Random:         fixedRandom(0.5),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Saver:          h.saver,
		IdleThreshold:  30 * time.Second,
		IdleJitter:     10 * time.Second,
		BurstThreshold: 2 * time.Second,
		ToggleWindow:   20 * time.Second,
		SaveDebounce:   500 * time.Millisecond,
		Sinks: []events.Sink{events.SinkFunc(func(e events.Event) {
			h.seen = append(h.seen, e)
		})},
	}
	if mutate != nil {
		mutate(&opts)
	}
	h.store = New(opts)
	t.Cleanup(h.store.Destroy)
	return h
}

func (h *harness) types() []events.Type {
	out := make([]events.Type, 0, len(h.seen))
	for _, e := range h.seen {
		out = append(out, e.Type)
	}
	return out
}

func (h *harness) ofType(t events.Type) []events.Event {
	var out []events.Event
	for _, e := range h.seen {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func TestDispatch_AddEmitsAddToCartThenBurstStart(t *testing.T) {
	h := newHarness(t, nil)

	h.store.Dispatch(cart.AddItem{ID: 7, Quantity: 2})

	assert.Equal(t, []events.Type{events.AddToCart, events.AddBurstStarted}, h.types())
	assert.Equal(t, events.AddToCartPayload{ID: 7, Quantity: 2}, h.seen[0].Payload)
	assert.True(t, h.store.GetState().IsAddBurst)
}

func TestBurst_CoalescesRapidAdds(t *testing.T) {
	h := newHarness(t, nil)

	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})
	h.clock.Advance(200 * time.Millisecond)
	h.store.Dispatch(cart.AddItem{ID: 2, Quantity: 2})
	h.clock.Advance(200 * time.Millisecond)
	h.store.Dispatch(cart.AddItem{ID: 3, Quantity: 3})

	h.clock.Advance(1999 * time.Millisecond)
	assert.Empty(t, h.ofType(events.AddBurstEnded), "burst must not end before a full quiet period")
	assert.True(t, h.store.GetState().IsAddBurst)

	h.clock.Advance(time.Millisecond)
	require.Len(t, h.ofType(events.AddBurstStarted), 1)
	ended := h.ofType(events.AddBurstEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, events.AddBurstEndedPayload{ItemsAdded: 6, Duration: 2400 * time.Millisecond}, ended[0].Payload)
	assert.False(t, h.store.GetState().IsAddBurst)
}

func TestBurst_NegativeAddExtendsActiveBurst(t *testing.T) {
	h := newHarness(t, nil)

	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 3})
	h.clock.Advance(1500 * time.Millisecond)
	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: -1})
	h.clock.Advance(1500 * time.Millisecond)
	assert.Empty(t, h.ofType(events.AddBurstEnded), "a negative add re-arms the quiet period")

	h.clock.Advance(500 * time.Millisecond)
	ended := h.ofType(events.AddBurstEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, events.AddBurstEndedPayload{ItemsAdded: 2, Duration: 3500 * time.Millisecond}, ended[0].Payload)
	assert.Len(t, h.ofType(events.AddBurstStarted), 1)
}

func TestBurst_QuietGapStartsNewBurst(t *testing.T) {
	h := newHarness(t, nil)

	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})
	h.clock.Advance(3 * time.Second)
	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})
	h.clock.Advance(3 * time.Second)

	assert.Len(t, h.ofType(events.AddBurstStarted), 2)
	ended := h.ofType(events.AddBurstEnded)
	require.Len(t, ended, 2)
	assert.Equal(t, 1, ended[1].Payload.(events.AddBurstEndedPayload).ItemsAdded)
}

func TestIdle_FiresAtJitteredThreshold(t *testing.T) {
	h := newHarness(t, nil)

	// threshold 30s + 0.5 * 10s jitter
	h.clock.Advance(35*time.Second - time.Millisecond)
	assert.False(t, h.store.GetState().IsIdle)

	h.clock.Advance(time.Millisecond)
	assert.True(t, h.store.GetState().IsIdle)
	idle := h.ofType(events.CartIdle)
	require.Len(t, idle, 1)
	assert.Equal(t, events.CartIdlePayload{IdleDuration: 35 * time.Second, ItemCount: 0}, idle[0].Payload)
}

func TestIdle_InteractionResetsTimer(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.IdleJitter = -1 })

	h.clock.Advance(20 * time.Second)
	h.store.Dispatch(cart.RecordInteraction{})
	h.clock.Advance(20 * time.Second)
	assert.False(t, h.store.GetState().IsIdle, "interaction at 20s pushes the deadline to 50s")

	h.clock.Advance(10 * time.Second)
	assert.True(t, h.store.GetState().IsIdle)

	h.store.Dispatch(cart.AddItem{ID: 4, Quantity: 1})
	assert.False(t, h.store.GetState().IsIdle)
}

func TestIdle_JitterIsRedrawnOnEveryReset(t *testing.T) {
	draws := 0
	h := newHarness(t, func(o *Options) {
		o.Random = randomFunc(func() float64 { draws++; return 0 })
	})
	before := draws
	h.store.Dispatch(cart.RecordInteraction{})
	h.store.Dispatch(cart.RecordInteraction{})
	assert.Equal(t, before+2, draws)
}

type randomFunc func() float64

func (f randomFunc) Float64() float64 { return f() }

func TestToggle_HesitationAfterFourQuickToggles(t *testing.T) {
	h := newHarness(t, nil)

	for i := 0; i < 4; i++ {
		h.store.RegisterToggle()
		h.clock.Advance(time.Second)
	}

	tel := h.store.Telemetry()
	assert.Equal(t, 4, tel.ToggleCount)
	assert.True(t, tel.IsHesitating)

	toggled := h.ofType(events.CartToggled)
	require.Len(t, toggled, 4)
	assert.Equal(t, events.CartToggledPayload{Count: 1, WindowDuration: 0}, toggled[0].Payload)
	assert.Equal(t, events.CartToggledPayload{Count: 4, WindowDuration: 3 * time.Second}, toggled[3].Payload)
}

func TestToggle_FirstToggleAfterStartupEmits(t *testing.T) {
	h := newHarness(t, nil)
	h.clock.Advance(5 * time.Second)

	h.store.RegisterToggle()

	toggled := h.ofType(events.CartToggled)
	require.Len(t, toggled, 1)
	assert.Equal(t, events.CartToggledPayload{Count: 1, WindowDuration: 5 * time.Second}, toggled[0].Payload)
}

func TestToggle_SpacedTogglesNeverHesitate(t *testing.T) {
	h := newHarness(t, nil)

	for i := 0; i < 5; i++ {
		h.store.RegisterToggle()
		assert.False(t, h.store.Telemetry().IsHesitating)
		h.clock.Advance(25 * time.Second)
	}
	// Only the first toggle lands inside a live window; every later one resets it.
	toggled := h.ofType(events.CartToggled)
	require.Len(t, toggled, 1)
	assert.Equal(t, 1, toggled[0].Payload.(events.CartToggledPayload).Count)
}

func TestHoverIntent_IgnoresShortHovers(t *testing.T) {
	h := newHarness(t, nil)

	h.store.RegisterHoverIntent(5, 100*time.Millisecond)
	h.store.RegisterHoverIntent(5, 800*time.Millisecond)
	h.store.RegisterHoverIntent(6, 1200*time.Millisecond)

	hovers := h.ofType(events.HoverIntent)
	require.Len(t, hovers, 2)
	assert.Equal(t, events.HoverIntentPayload{ProductID: 5, Duration: 800 * time.Millisecond}, hovers[0].Payload)
	tel := h.store.Telemetry()
	assert.Equal(t, 2, tel.HoverIntentCount)
	assert.Equal(t, time.Second, tel.AvgHoverDuration)
}

func TestDispatch_NoopDoesNotNotifyOrSave(t *testing.T) {
	h := newHarness(t, nil)
	calls := 0
	h.store.Subscribe(func(*cart.State) { calls++ })

	before := h.store.GetState()
	h.store.Dispatch(cart.RemoveItem{ID: 42})
	h.store.Dispatch(cart.SetIdle{Idle: false})
	h.store.Dispatch(cart.ClearCart{})

	assert.Same(t, before, h.store.GetState())
	assert.Zero(t, calls)
	h.clock.Advance(time.Second)
	assert.Zero(t, h.saver.count())
	assert.Empty(t, h.seen)
}

func TestDispatch_RemoveAndUpdatePayloads(t *testing.T) {
	h := newHarness(t, nil)
	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 2})
	h.store.Dispatch(cart.AddItem{ID: 2, Quantity: 3})
	h.seen = nil

	h.store.Dispatch(cart.UpdateQuantity{ID: 2, Quantity: 5})
	h.store.Dispatch(cart.RemoveItem{ID: 1})
	h.store.Dispatch(cart.ClearCart{})

	assert.Equal(t, []events.Event{
		{Type: events.UpdateQuantity, Timestamp: start, Payload: events.UpdateQuantityPayload{ID: 2, Before: 3, After: 5}},
		{Type: events.RemoveFromCart, Timestamp: start, Payload: events.RemoveFromCartPayload{ID: 1, ItemCount: 5}},
		{Type: events.ClearCart, Timestamp: start, Payload: events.ClearCartPayload{ItemCount: 5}},
	}, h.seen)
}

func TestSave_DebouncedToLatestState(t *testing.T) {
	h := newHarness(t, nil)

	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})
	h.clock.Advance(300 * time.Millisecond)
	h.store.Dispatch(cart.AddItem{ID: 2, Quantity: 1})
	h.clock.Advance(300 * time.Millisecond)
	assert.Zero(t, h.saver.count(), "second change restarted the debounce")

	h.clock.Advance(200 * time.Millisecond)
	require.Equal(t, 1, h.saver.count())
	assert.Len(t, h.saver.last().Items, 2)
}

func TestFlush_WritesPendingSaveOnce(t *testing.T) {
	h := newHarness(t, nil)
	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})

	h.store.Flush()
	require.Equal(t, 1, h.saver.count())
	h.store.Flush()
	h.clock.Advance(time.Second)
	assert.Equal(t, 1, h.saver.count(), "flushed save must not fire again")
}

func TestSubscribers_PanicIsIsolated(t *testing.T) {
	h := newHarness(t, nil)
	var got []int
	h.store.Subscribe(func(*cart.State) { got = append(got, 1) })
	h.store.Subscribe(func(*cart.State) { panic("bad listener") })
	h.store.Subscribe(func(s *cart.State) { got = append(got, cart.ItemCount(s)) })

	assert.NotPanics(t, func() { h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 3}) })
	assert.Equal(t, []int{1, 3}, got)
}

func TestSubscribe_UnsubscribeStopsNotifications(t *testing.T) {
	h := newHarness(t, nil)
	calls := 0
	off := h.store.Subscribe(func(*cart.State) { calls++ })

	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})
	off()
	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})
	assert.Equal(t, 1, calls)
}

func TestSubscriber_CanDispatchReentrantly(t *testing.T) {
	h := newHarness(t, nil)
	h.store.Subscribe(func(s *cart.State) {
		if cart.ItemCount(s) == 1 {
			h.store.Dispatch(cart.AddItem{ID: 99, Quantity: 1})
		}
	})

	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})
	assert.Equal(t, 2, cart.ItemCount(h.store.GetState()))
}

func TestSubscribers_NeverSeeOlderStateAfterReentrantDispatch(t *testing.T) {
	h := newHarness(t, nil)
	h.store.Subscribe(func(s *cart.State) {
		if cart.ItemCount(s) == 1 {
			h.store.Dispatch(cart.AddItem{ID: 99, Quantity: 1})
		}
	})
	var first, late []int
	h.store.Subscribe(func(s *cart.State) { first = append(first, cart.ItemCount(s)) })
	h.store.Subscribe(func(s *cart.State) { late = append(late, cart.ItemCount(s)) })

	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})

	assert.Equal(t, 2, cart.ItemCount(h.store.GetState()))
	assert.Equal(t, []int{2}, first)
	assert.Equal(t, []int{2}, late)
}

func TestSubscribers_ConcurrentDispatchIsMonotonic(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.Sinks = nil })
	var (
		mu   sync.Mutex
		seen []int
	)
	h.store.Subscribe(func(s *cart.State) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, cart.ItemCount(s))
	})

	var wg sync.WaitGroup
	for g := 1; g <= 8; g++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for range 25 {
				h.store.Dispatch(cart.AddItem{ID: id, Quantity: 1})
			}
		}(int64(g))
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	for i := 1; i < len(seen); i++ {
		require.Greater(t, seen[i], seen[i-1], "delivery went backwards at %d: %v", i, seen)
	}
	assert.Equal(t, 200, seen[len(seen)-1])
	assert.Equal(t, 200, cart.ItemCount(h.store.GetState()))
}

func TestOnEvent_ExactTypeOnly(t *testing.T) {
	h := newHarness(t, nil)
	var adds, removes int
	h.store.OnEvent(events.AddToCart, func(events.Event) { adds++ })
	off := h.store.OnEvent(events.RemoveFromCart, func(events.Event) { removes++ })

	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})
	h.store.Dispatch(cart.RemoveItem{ID: 1})
	off()
	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})
	h.store.Dispatch(cart.RemoveItem{ID: 1})

	assert.Equal(t, 2, adds)
	assert.Equal(t, 1, removes)
}

func TestPreferences_DoNotResetIdle(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.IdleJitter = -1 })

	h.clock.Advance(29 * time.Second)
	h.store.Dispatch(cart.SetSoundEnabled{Enabled: false})
	h.clock.Advance(time.Second)
	assert.True(t, h.store.GetState().IsIdle)
	assert.False(t, h.store.GetState().Prefs.SoundEnabled)
}

func TestDestroy_LeavesNoTimersAndIgnoresDispatch(t *testing.T) {
	h := newHarness(t, nil)
	calls := 0
	h.store.Subscribe(func(*cart.State) { calls++ })
	h.store.OnEvent(events.AddToCart, func(events.Event) { calls++ })
	h.store.Dispatch(cart.AddItem{ID: 1, Quantity: 1})
	calls = 0

	h.store.Destroy()
	assert.Zero(t, h.clock.Pending())

	before := h.store.GetState()
	h.store.Dispatch(cart.AddItem{ID: 2, Quantity: 1})
	h.clock.Advance(time.Minute)
	assert.Same(t, before, h.store.GetState())
	assert.Zero(t, calls)
	assert.Zero(t, h.saver.count())
}

func TestPlan_IsPure(t *testing.T) {
	r := cart.Reducer{}
	prev := cart.NewState(start)
	next := r.Reduce(prev, cart.AddItem{ID: 1, Quantity: 2}, start)

	fx := plan(r, cart.AddItem{ID: 1, Quantity: 2}, prev, next, start, true)
	assert.Equal(t, burstExtend, fx.burst)
	assert.Equal(t, 2, fx.burstQty)
	assert.Empty(t, fx.followUps)
	assert.True(t, fx.interaction)

	fx = plan(r, cart.AddItem{ID: 1, Quantity: 2}, prev, next, start, false)
	assert.Equal(t, burstStart, fx.burst)
	assert.Equal(t, []cart.Action{cart.StartAddBurst{}}, fx.followUps)

	held := r.Reduce(next, cart.AddItem{ID: 1, Quantity: -1}, start)
	fx = plan(r, cart.AddItem{ID: 1, Quantity: -1}, next, held, start, false)
	assert.Equal(t, burstStart, fx.burst)
	assert.Equal(t, -1, fx.burstQty)

	same := plan(r, cart.RemoveItem{ID: 5}, prev, prev, start, false)
	assert.Empty(t, same.events)
	assert.False(t, same.interaction)
}
