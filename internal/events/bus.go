package events

import "log/slog"

// Listener handles one event.
type Listener func(Event)

// Bus delivers events to listeners registered for their exact type.
type Bus struct {
	listeners registry[Type, Listener]
	logger    *slog.Logger
}

// NewBus returns an empty Bus.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// On registers fn for events of type t and returns its unsubscribe func.
func (b *Bus) On(t Type, fn Listener) func() {
	return b.listeners.add(t, fn)
}

// Deliver implements Sink. Listeners run in registration order; a panic in
// one does not stop the rest.
func (b *Bus) Deliver(ev Event) {
	for _, fn := range b.listeners.list(ev.Type) {
		b.call(fn, ev)
	}
}

// Clear removes every listener.
func (b *Bus) Clear() { b.listeners.clear() }

// Len returns the number of listeners for t.
func (b *Bus) Len(t Type) int { return b.listeners.count(t) }

func (b *Bus) call(fn Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event listener panicked", "type", ev.Type, "panic", r)
		}
	}()
	fn(ev)
}

var _ Sink = (*Bus)(nil)
