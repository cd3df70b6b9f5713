// Package cart holds the shopping-cart data model, the closed set of actions
// that change it, the pure transition function, and the selectors that derive
// read-only views from a state value.
//
// # State identity
//
// A *State is never modified after it has been returned from Reduce. Every
// branch that changes something returns a fresh value; every branch that
// changes nothing returns its input pointer. Callers can therefore compare
// pointers to decide whether anything changed:
//
//	next := r.Reduce(prev, cart.RemoveItem{ID: 9}, now)
//	if next == prev {
//		// absent id: nothing to notify, nothing to save
//	}
//
// # Side effects
//
// Reduce performs none. Events, timers and persistence are the store's job
// (package state); the reducer only answers "what is the next state".
//
// # Selectors
//
// Selectors take the state (and, for telemetry, the current time and window)
// as arguments and read nothing else, so they can be tested without a clock.
package cart
