package events

import "log/slog"

// Sink receives every emitted event.
type Sink interface {
	Deliver(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Deliver(e Event) { f(e) }

// Emitter is the single emission point. It forwards each event to its sinks
// in the order given to NewEmitter; the set is fixed after construction.
type Emitter struct {
	sinks  []Sink
	logger *slog.Logger
}

// NewEmitter returns an Emitter delivering to sinks.
func NewEmitter(logger *slog.Logger, sinks ...Sink) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{sinks: append([]Sink(nil), sinks...), logger: logger}
}

// Emit delivers ev to every sink. A panicking sink is logged and skipped.
func (e *Emitter) Emit(ev Event) {
	for _, s := range e.sinks {
		e.deliver(s, ev)
	}
}

func (e *Emitter) deliver(s Sink, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("event sink panicked", "type", ev.Type, "panic", r)
		}
	}()
	s.Deliver(ev)
}
