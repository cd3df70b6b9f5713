package cart

import (
	"slices"
	"time"
)

// HesitationThreshold is the toggle count at which a live window counts as
// hesitation.
const HesitationThreshold = 3

// Items returns the cart lines ordered by AddedAt, then ID.
func Items(s *State) []Item {
	out := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b Item) int {
		if c := a.AddedAt.Compare(b.AddedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// ItemCount returns the sum of all quantities.
func ItemCount(s *State) int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// UniqueItemCount returns the number of distinct products.
func UniqueItemCount(s *State) int {
	return len(s.Items)
}

// IsEmpty reports whether the cart holds no items.
func IsEmpty(s *State) bool {
	return len(s.Items) == 0
}

// ItemByID returns the line for id.
func ItemByID(s *State, id int64) (Item, bool) {
	item, ok := s.Items[id]
	return item, ok
}

// HasItem reports whether id is in the cart.
func HasItem(s *State, id int64) bool {
	_, ok := s.Items[id]
	return ok
}

func ReducedMotion(s *State) bool  { return s.Prefs.ReducedMotion }
func SoundEnabled(s *State) bool   { return s.Prefs.SoundEnabled }
func HapticsEnabled(s *State) bool { return s.Prefs.HapticsEnabled }

// Telemetry is the behavioural summary derived from a state.
type Telemetry struct {
	ToggleCount      int
	WindowDuration   time.Duration
	IsHesitating     bool
	HoverIntentCount int
	AvgHoverDuration time.Duration
}

// SelectTelemetry derives the telemetry snapshot at now for a hesitation
// window of the given length.
func SelectTelemetry(s *State, now time.Time, window time.Duration) Telemetry {
	if window <= 0 {
		window = DefaultToggleWindow
	}
	t := Telemetry{
		ToggleCount:      s.ToggleCount,
		HoverIntentCount: s.HoverIntentCount,
	}
	if !s.ToggleWindowStart.IsZero() {
		t.WindowDuration = now.Sub(s.ToggleWindowStart)
	}
	t.IsHesitating = s.ToggleCount >= HesitationThreshold && t.WindowDuration <= window
	if s.HoverIntentCount > 0 {
		t.AvgHoverDuration = s.HoverIntentTotal / time.Duration(s.HoverIntentCount)
	}
	return t
}
