package events

import (
	"log/slog"
	"time"
)

// DOM-style event names. Code that should not depend on the store API (a
// checkout page clearing state after payment, say) listens for these.
const (
	NameCartUpdated     = "cartUpdated"
	NameAddToCart       = "addToCart"
	NameRemoveFromCart  = "removeFromCart"
	NameUpdateQuantity  = "updateQuantity"
	NameCartIdle        = "cartIdle"
	NameAddBurstStarted = "addBurstStarted"
	NameAddBurstEnded   = "addBurstEnded"
)

// CustomEvent is the untyped event seen by Target listeners.
type CustomEvent struct {
	Name      string
	Detail    any
	Timestamp time.Time
}

// CartUpdatedDetail is the Detail of a cartUpdated event.
type CartUpdatedDetail struct {
	Cause   Type
	Payload any
}

// Target is a named-event dispatcher in the manner of a DOM EventTarget.
type Target struct {
	handlers registry[string, func(CustomEvent)]
	logger   *slog.Logger
}

// NewTarget returns an empty Target.
func NewTarget(logger *slog.Logger) *Target {
	if logger == nil {
		logger = slog.Default()
	}
	return &Target{logger: logger}
}

// AddEventListener registers fn for name and returns a func removing it.
func (t *Target) AddEventListener(name string, fn func(CustomEvent)) func() {
	return t.handlers.add(name, fn)
}

// DispatchEvent calls every listener for ev.Name, isolating panics.
func (t *Target) DispatchEvent(ev CustomEvent) {
	for _, fn := range t.handlers.list(ev.Name) {
		t.call(fn, ev)
	}
}

// RemoveAll drops every listener.
func (t *Target) RemoveAll() { t.handlers.clear() }

func (t *Target) call(fn func(CustomEvent), ev CustomEvent) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("dom listener panicked", "name", ev.Name, "panic", r)
		}
	}()
	fn(ev)
}

// DOMSink bridges emitted events onto a Target.
type DOMSink struct {
	Target *Target
}

var domNames = map[Type]string{
	AddToCart:       NameAddToCart,
	RemoveFromCart:  NameRemoveFromCart,
	UpdateQuantity:  NameUpdateQuantity,
	CartIdle:        NameCartIdle,
	AddBurstStarted: NameAddBurstStarted,
	AddBurstEnded:   NameAddBurstEnded,
}

// Deliver dispatches the event under its DOM name, if it has one, followed by
// cartUpdated for any change to the cart contents.
func (s DOMSink) Deliver(ev Event) {
	if s.Target == nil {
		return
	}
	if name, ok := domNames[ev.Type]; ok {
		s.Target.DispatchEvent(CustomEvent{Name: name, Detail: ev.Payload, Timestamp: ev.Timestamp})
	}
	switch ev.Type {
	case AddToCart, RemoveFromCart, UpdateQuantity, ClearCart:
		s.Target.DispatchEvent(CustomEvent{
			Name:      NameCartUpdated,
			Detail:    CartUpdatedDetail{Cause: ev.Type, Payload: ev.Payload},
			Timestamp: ev.Timestamp,
		})
	}
}

var _ Sink = DOMSink{}
