// Package state provides the cart store: the single owner of the cart state,
// its behavioural timers, and its debounced persistence.
//
// # Overview
//
// A Store accepts actions through Dispatch, computes the next state with
// cart.Reducer, and then carries out whatever the transition implies: events
// for observers, timer resets, subscriber notification and a save.
//
//	UI callback ──→ Dispatch(action)
//	                  │
//	                  ├─ cart.Reducer.Reduce(prev, action)   pure
//	                  ├─ plan(action, prev, next)            pure
//	                  ├─ arm idle / burst / save timers      under lock
//	                  │
//	                  └─ publish (lock released)
//	                       ├─ Emitter → Bus, DOM target, journal
//	                       └─ subscribers
//
// # Concurrency Model
//
// The store is guarded by one mutex. Reduction, effect planning and timer
// arming happen under it; event delivery, subscriber calls and backend
// writes happen after it is released. That keeps Dispatch re-entrant: a
// subscriber may dispatch again without deadlocking.
//
// Subscribers are run by one goroutine at a time and always receive the
// state current at the moment of the call, never an older one than they
// already saw. A change made while subscribers are running, whether by a
// subscriber or by a timer on another goroutine, is delivered in a further
// pass by the goroutine already delivering. A Dispatch that lands during
// such a pass may therefore return before subscribers have seen its change.
//
// Three timers drive asynchronous work:
//
//   - idle: re-armed on every interaction at threshold + random jitter;
//     firing dispatches SetIdle(true), which emits cartIdle.
//   - burst: armed by the first add and re-armed by each following add;
//     firing emits addBurstEnded and dispatches EndAddBurst.
//   - save: re-armed on every state change; firing writes the latest state.
//
// Timers carry a generation number. A callback that fires after its slot
// was stopped or re-armed sees a newer generation and does nothing.
//
// # State Identity
//
// Subscribers run only when the state pointer changes. Actions that change
// nothing (removing an absent id, setting idle to its current value) produce
// no notification and no save.
//
// # Persistence
//
// Saves are fire-and-forget through the Saver interface. Flush writes a
// pending save immediately; Destroy discards it.
//
// # Multiple Processes
//
// Nothing coordinates two processes sharing one storage slot. Each keeps its
// own in-memory cart and the last save wins. Burst and idle telemetry are
// per-process by nature.
//
// # Testing Considerations
//
// Supply a clock.Fake and a fixed Random to make every deadline exact:
//
//	clk := clock.NewFake(start)
//	s := state.New(state.Options{Clock: clk, Random: fixed(0)})
//	s.Dispatch(cart.AddItem{ID: 1, Quantity: 1})
//	clk.Advance(state.DefaultBurstThreshold) // burst ends here
package state
