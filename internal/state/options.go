package state

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/clock"
	"github.com/five82/tote/internal/events"
)

const (
	DefaultIdleThreshold  = 30 * time.Second
	DefaultIdleJitter     = 10 * time.Second
	DefaultBurstThreshold = 2 * time.Second
	DefaultSaveDebounce   = 500 * time.Millisecond
	DefaultHoverIntentMin = 500 * time.Millisecond
)

// Saver persists a state. Implementations must not panic and should log
// their own failures; the store never sees an error.
type Saver interface {
	Save(*cart.State)
}

// Random supplies idle-timer jitter. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// Options configure a Store. Zero durations take the Default* values.
type Options struct {
	Clock  clock.Clock
	Random Random
	Logger *slog.Logger
	Saver  Saver
	// Sinks receive every event after the store's own typed bus.
	Sinks []events.Sink

	IdleThreshold  time.Duration
	IdleJitter     time.Duration
	BurstThreshold time.Duration
	ToggleWindow   time.Duration
	SaveDebounce   time.Duration
	HoverIntentMin time.Duration

	// Initial replaces the empty starting state.
	Initial *cart.State
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

type nopSaver struct{}

func (nopSaver) Save(*cart.State) {}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clock.Real{}
	}
	if o.Random == nil {
		o.Random = globalRandom{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Saver == nil {
		o.Saver = nopSaver{}
	}
	if o.IdleThreshold <= 0 {
		o.IdleThreshold = DefaultIdleThreshold
	}
	if o.IdleJitter < 0 {
		o.IdleJitter = 0
	} else if o.IdleJitter == 0 {
		o.IdleJitter = DefaultIdleJitter
	}
	if o.BurstThreshold <= 0 {
		o.BurstThreshold = DefaultBurstThreshold
	}
	if o.ToggleWindow <= 0 {
		o.ToggleWindow = cart.DefaultToggleWindow
	}
	if o.SaveDebounce <= 0 {
		o.SaveDebounce = DefaultSaveDebounce
	}
	if o.HoverIntentMin <= 0 {
		o.HoverIntentMin = DefaultHoverIntentMin
	}
	return o
}

// idleDelay draws the next idle deadline: the threshold plus a uniform
// share of the jitter window, re-rolled on every call.
func (o Options) idleDelay() time.Duration {
	return o.IdleThreshold + time.Duration(o.Random.Float64()*float64(o.IdleJitter))
}
