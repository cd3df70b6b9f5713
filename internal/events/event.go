// Package events carries cart activity to observers. The store emits every
// event once, through an Emitter; sinks translate it for their audience: the
// typed Bus for in-process subscribers, the DOM-style Target for code that
// only knows event names, and the Journal for an on-disk activity log.
package events

import "time"

// Type names one kind of cart event.
type Type string

const (
	AddToCart       Type = "addToCart"
	RemoveFromCart  Type = "removeFromCart"
	UpdateQuantity  Type = "updateQuantity"
	ClearCart       Type = "clearCart"
	CartIdle        Type = "cartIdle"
	AddBurstStarted Type = "addBurstStarted"
	AddBurstEnded   Type = "addBurstEnded"
	CartToggled     Type = "cartToggled"
	HoverIntent     Type = "hoverIntent"
)

// Event is one emitted occurrence. Payload holds the *Payload struct matching
// Type.
type Event struct {
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// AddToCartPayload reports the quantity after the add.
type AddToCartPayload struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// RemoveFromCartPayload reports the total item count after removal.
type RemoveFromCartPayload struct {
	ID        int64 `json:"id"`
	ItemCount int   `json:"itemCount"`
}

type UpdateQuantityPayload struct {
	ID     int64 `json:"id"`
	Before int   `json:"before"`
	After  int   `json:"after"`
}

// ClearCartPayload reports how many items were discarded.
type ClearCartPayload struct {
	ItemCount int `json:"itemCount"`
}

type CartIdlePayload struct {
	IdleDuration time.Duration `json:"idleDuration"`
	ItemCount    int           `json:"itemCount"`
}

type AddBurstStartedPayload struct {
	StartedAt time.Time `json:"startedAt"`
}

type AddBurstEndedPayload struct {
	ItemsAdded int           `json:"itemsAdded"`
	Duration   time.Duration `json:"duration"`
}

type CartToggledPayload struct {
	Count          int           `json:"count"`
	WindowDuration time.Duration `json:"windowDuration"`
}

type HoverIntentPayload struct {
	ProductID int64         `json:"productId"`
	Duration  time.Duration `json:"duration"`
}
