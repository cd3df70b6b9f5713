package binding

import (
	"time"

	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/state"
)

// Cart is the read/write handle presentation code uses. Reads reflect the
// store's current snapshot; writes are thin dispatches.
type Cart struct {
	store *state.Store

	items  *Memo[[]cart.Item]
	count  *Memo[int]
	unique *Memo[int]
}

func newCart(store *state.Store) *Cart {
	return &Cart{
		store:  store,
		items:  NewMemo(cart.Items),
		count:  NewMemo(cart.ItemCount),
		unique: NewMemo(cart.UniqueItemCount),
	}
}

// Snapshot returns the current state. Callers must not modify it.
func (c *Cart) Snapshot() *cart.State { return c.store.GetState() }

// Items returns the cart lines ordered by when they were first added. The
// slice is shared between callers until the next change.
func (c *Cart) Items() []cart.Item { return c.items.Get(c.Snapshot()) }

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int { return c.count.Get(c.Snapshot()) }

// UniqueItemCount returns the number of distinct products.
func (c *Cart) UniqueItemCount() int { return c.unique.Get(c.Snapshot()) }

func (c *Cart) IsEmpty() bool { return cart.IsEmpty(c.Snapshot()) }

func (c *Cart) GetItem(id int64) (cart.Item, bool) { return cart.ItemByID(c.Snapshot(), id) }

func (c *Cart) HasItem(id int64) bool { return cart.HasItem(c.Snapshot(), id) }

func (c *Cart) Prefs() cart.Prefs { return c.Snapshot().Prefs }

// IsIdle reports whether the idle timer has fired since the last interaction.
func (c *Cart) IsIdle() bool { return c.Snapshot().IsIdle }

// IsAddBurst reports whether a rapid-add burst is in progress.
func (c *Cart) IsAddBurst() bool { return c.Snapshot().IsAddBurst }

// Telemetry returns the behavioural summary as of now. It reads the clock,
// so it is derived on every call rather than memoised.
func (c *Cart) Telemetry() cart.Telemetry { return c.store.Telemetry() }

// AddItem adds qty of id. Quantities below one are treated as one.
func (c *Cart) AddItem(id int64, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.store.Dispatch(cart.AddItem{ID: id, Quantity: qty})
}

func (c *Cart) RemoveItem(id int64) { c.store.Dispatch(cart.RemoveItem{ID: id}) }

// UpdateQuantity sets the quantity of id; zero or less removes the line.
func (c *Cart) UpdateQuantity(id int64, qty int) {
	c.store.Dispatch(cart.UpdateQuantity{ID: id, Quantity: qty})
}

func (c *Cart) ClearCart() { c.store.Dispatch(cart.ClearCart{}) }

// RecordInteraction marks user activity that does not change the cart.
func (c *Cart) RecordInteraction() { c.store.Dispatch(cart.RecordInteraction{}) }

func (c *Cart) ToggleReducedMotion() {
	c.store.Dispatch(cart.SetReducedMotion{Enabled: !c.Prefs().ReducedMotion})
}

func (c *Cart) ToggleSound() {
	c.store.Dispatch(cart.SetSoundEnabled{Enabled: !c.Prefs().SoundEnabled})
}

func (c *Cart) ToggleHaptics() {
	c.store.Dispatch(cart.SetHapticsEnabled{Enabled: !c.Prefs().HapticsEnabled})
}

// SetPrefs applies each preference that differs from the current value.
func (c *Cart) SetPrefs(p cart.Prefs) {
	c.store.Dispatch(cart.SetReducedMotion{Enabled: p.ReducedMotion})
	c.store.Dispatch(cart.SetSoundEnabled{Enabled: p.SoundEnabled})
	c.store.Dispatch(cart.SetHapticsEnabled{Enabled: p.HapticsEnabled})
}

func (c *Cart) RegisterHoverIntent(productID int64, d time.Duration) {
	c.store.RegisterHoverIntent(productID, d)
}

func (c *Cart) RegisterToggle() { c.store.RegisterToggle() }
