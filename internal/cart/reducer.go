package cart

import "time"

// DefaultToggleWindow is the hesitation window used when none is configured.
const DefaultToggleWindow = 20 * time.Second

// Reducer computes state transitions. It holds configuration only.
type Reducer struct {
	ToggleWindow time.Duration
}

func (r Reducer) window() time.Duration {
	if r.ToggleWindow <= 0 {
		return DefaultToggleWindow
	}
	return r.ToggleWindow
}

// Reduce returns the state that results from applying a to s at time now.
// It returns s itself when a changes nothing.
func (r Reducer) Reduce(s *State, a Action, now time.Time) *State {
	switch a := a.(type) {
	case AddItem:
		return addItem(s, a, now)
	case RemoveItem:
		if _, ok := s.Items[a.ID]; !ok {
			return s
		}
		next := s.clone()
		next.Items = s.cloneItems()
		delete(next.Items, a.ID)
		next.touch(now)
		return next
	case UpdateQuantity:
		return updateQuantity(s, a, now)
	case ClearCart:
		if len(s.Items) == 0 {
			return s
		}
		next := s.clone()
		next.Items = map[int64]Item{}
		next.touch(now)
		return next
	case SetReducedMotion:
		if s.Prefs.ReducedMotion == a.Enabled {
			return s
		}
		next := s.clone()
		next.Prefs.ReducedMotion = a.Enabled
		return next
	case SetSoundEnabled:
		if s.Prefs.SoundEnabled == a.Enabled {
			return s
		}
		next := s.clone()
		next.Prefs.SoundEnabled = a.Enabled
		return next
	case SetHapticsEnabled:
		if s.Prefs.HapticsEnabled == a.Enabled {
			return s
		}
		next := s.clone()
		next.Prefs.HapticsEnabled = a.Enabled
		return next
	case RecordInteraction:
		next := s.clone()
		next.touch(now)
		return next
	case SetIdle:
		if s.IsIdle == a.Idle {
			return s
		}
		next := s.clone()
		next.IsIdle = a.Idle
		return next
	case StartAddBurst:
		return setBurst(s, true)
	case EndAddBurst:
		return setBurst(s, false)
	case RecordToggle:
		next := s.clone()
		if now.Sub(s.ToggleWindowStart) > r.window() {
			next.ToggleCount = 1
			next.ToggleWindowStart = now
		} else {
			next.ToggleCount++
		}
		return next
	case ResetToggleWindow:
		if s.ToggleCount == 0 && s.ToggleWindowStart.Equal(now) {
			return s
		}
		next := s.clone()
		next.ToggleCount = 0
		next.ToggleWindowStart = now
		return next
	case RecordHoverIntent:
		next := s.clone()
		next.HoverIntentCount++
		next.HoverIntentTotal += a.Duration
		return next
	case Hydrate:
		return hydrate(s, a)
	}
	return s
}

// Interaction reports whether the transition prev -> next caused by a counts
// as user activity for idle detection.
func (r Reducer) Interaction(prev, next *State, a Action) bool {
	if prev == next {
		return false
	}
	switch a.(type) {
	case AddItem, RemoveItem, UpdateQuantity, ClearCart, RecordInteraction:
		return true
	}
	return false
}

func addItem(s *State, a AddItem, now time.Time) *State {
	existing, ok := s.Items[a.ID]
	qty := a.Quantity
	if ok {
		qty += existing.Quantity
	}
	if qty <= 0 && !ok {
		return s
	}

	next := s.clone()
	next.Items = s.cloneItems()
	if qty <= 0 {
		delete(next.Items, a.ID)
	} else {
		addedAt := now
		if ok {
			addedAt = existing.AddedAt
		}
		next.Items[a.ID] = Item{ID: a.ID, Quantity: qty, AddedAt: addedAt}
	}
	next.touch(now)
	return next
}

func updateQuantity(s *State, a UpdateQuantity, now time.Time) *State {
	existing, ok := s.Items[a.ID]
	if !ok {
		return s
	}
	next := s.clone()
	next.Items = s.cloneItems()
	if a.Quantity <= 0 {
		delete(next.Items, a.ID)
	} else {
		existing.Quantity = a.Quantity
		next.Items[a.ID] = existing
	}
	next.touch(now)
	return next
}

func setBurst(s *State, on bool) *State {
	if s.IsAddBurst == on {
		return s
	}
	next := s.clone()
	next.IsAddBurst = on
	return next
}

func hydrate(s *State, a Hydrate) *State {
	if a.Items == nil && a.Prefs == nil {
		return s
	}
	next := s.clone()
	if a.Items != nil {
		next.Items = make(map[int64]Item, len(a.Items))
		for id, item := range a.Items {
			if item.Quantity <= 0 {
				continue
			}
			item.ID = id
			next.Items[id] = item
		}
	}
	if a.Prefs != nil {
		next.Prefs = *a.Prefs
	}
	return next
}
