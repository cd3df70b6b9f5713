// Package ui is the tote storefront: a Bubble Tea program over the cart.
//
// The screen has a product list, an optional cart pane and an activity pane
// fed from the event journal. The model reads and writes the cart only
// through a binding.Cart handle and learns about changes from a
// binding.Subscription, so timer-driven updates (idle, burst end) redraw the
// header without a keypress.
//
// Shopper gestures double as telemetry. Opening or closing the cart pane
// registers a toggle, resting the cursor on a product registers a hover when
// the cursor moves on, and every keypress counts as activity for idle
// detection. With reduced motion on, changed cart lines are not flashed.
package ui
