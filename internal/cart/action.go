package cart

import "time"

// Action is a request to change the cart. The set of implementations is
// closed; Reduce ignores anything it does not recognise.
type Action interface {
	action()
}

// AddItem adds Quantity to the existing quantity of ID (zero if absent).
// A non-positive result removes the item.
type AddItem struct {
	ID       int64
	Quantity int
}

// RemoveItem deletes ID if present.
type RemoveItem struct {
	ID int64
}

// UpdateQuantity sets the quantity of an existing item. Quantity <= 0
// removes it. Absent ids are ignored.
type UpdateQuantity struct {
	ID       int64
	Quantity int
}

// ClearCart empties the cart.
type ClearCart struct{}

// SetReducedMotion replaces the reduced-motion preference.
type SetReducedMotion struct{ Enabled bool }

// SetSoundEnabled replaces the sound preference.
type SetSoundEnabled struct{ Enabled bool }

// SetHapticsEnabled replaces the haptics preference.
type SetHapticsEnabled struct{ Enabled bool }

// RecordInteraction marks the user as active.
type RecordInteraction struct{}

// SetIdle sets the idle flag.
type SetIdle struct{ Idle bool }

// StartAddBurst and EndAddBurst flip the burst flag. Only the store's burst
// timer issues them.
type (
	StartAddBurst struct{}
	EndAddBurst   struct{}
)

// RecordToggle counts one cart open/close inside the hesitation window.
type RecordToggle struct{}

// ResetToggleWindow restarts the hesitation window with a zero count.
type ResetToggleWindow struct{}

// RecordHoverIntent adds one qualifying hover to the telemetry totals.
type RecordHoverIntent struct {
	ProductID int64
	Duration  time.Duration
}

// Hydrate merges a loaded snapshot. Nil fields are left untouched.
type Hydrate struct {
	Items map[int64]Item
	Prefs *Prefs
}

func (AddItem) action()           {}
func (RemoveItem) action()        {}
func (UpdateQuantity) action()    {}
func (ClearCart) action()         {}
func (SetReducedMotion) action()  {}
func (SetSoundEnabled) action()   {}
func (SetHapticsEnabled) action() {}
func (RecordInteraction) action() {}
func (SetIdle) action()           {}
func (StartAddBurst) action()     {}
func (EndAddBurst) action()       {}
func (RecordToggle) action()      {}
func (ResetToggleWindow) action() {}
func (RecordHoverIntent) action() {}
func (Hydrate) action()           {}
