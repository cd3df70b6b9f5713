package cart

import (
	"maps"
	"time"
)

// Item is one cart line. Quantity is always at least 1 for an item held in a
// State; AddedAt is set on first add and never refreshed.
type Item struct {
	ID       int64
	Quantity int
	AddedAt  time.Time
}

// Prefs are the UI preferences persisted next to the cart contents.
type Prefs struct {
	ReducedMotion  bool
	SoundEnabled   bool
	HapticsEnabled bool
}

// DefaultPrefs returns the preferences of a fresh cart.
func DefaultPrefs() Prefs {
	return Prefs{SoundEnabled: true, HapticsEnabled: true}
}

// State is the canonical cart model owned by the store.
type State struct {
	Items map[int64]Item
	Prefs Prefs

	LastInteractionTime time.Time
	IsIdle              bool
	IsAddBurst          bool

	ToggleCount       int
	ToggleWindowStart time.Time

	HoverIntentCount int
	HoverIntentTotal time.Duration
}

// NewState returns an empty cart whose last interaction and toggle window
// both start now.
func NewState(now time.Time) *State {
	return &State{
		Items:               map[int64]Item{},
		Prefs:               DefaultPrefs(),
		LastInteractionTime: now,
		ToggleWindowStart:   now,
	}
}

func (s *State) clone() *State {
	dup := *s
	return &dup
}

func (s *State) cloneItems() map[int64]Item {
	if s.Items == nil {
		return map[int64]Item{}
	}
	return maps.Clone(s.Items)
}

func (s *State) touch(now time.Time) {
	s.LastInteractionTime = now
	s.IsIdle = false
}
