package state

import (
	"time"

	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/events"
)

type burstOp int

const (
	burstNone burstOp = iota
	burstStart
	burstExtend
)

// effects is what one transition asks of the store beyond the state change.
type effects struct {
	events      []events.Event
	followUps   []cart.Action
	interaction bool
	burst       burstOp
	burstQty    int
}

// plan decides the side effects of the transition prev -> next caused by a.
// It reads nothing but its arguments.
func plan(r cart.Reducer, a cart.Action, prev, next *cart.State, now time.Time, burstActive bool) effects {
	fx := effects{interaction: r.Interaction(prev, next, a)}
	if prev == next {
		return fx
	}
	emit := func(t events.Type, payload any) {
		fx.events = append(fx.events, events.Event{Type: t, Timestamp: now, Payload: payload})
	}

	switch a := a.(type) {
	case cart.AddItem:
		emit(events.AddToCart, events.AddToCartPayload{ID: a.ID, Quantity: next.Items[a.ID].Quantity})
		// Every add that changed the cart takes part in the burst; a negative
		// quantity lowers the running total.
		fx.burstQty = a.Quantity
		if burstActive {
			fx.burst = burstExtend
			break
		}
		fx.burst = burstStart
		fx.followUps = append(fx.followUps, cart.StartAddBurst{})
		emit(events.AddBurstStarted, events.AddBurstStartedPayload{StartedAt: now})
	case cart.RemoveItem:
		emit(events.RemoveFromCart, events.RemoveFromCartPayload{ID: a.ID, ItemCount: cart.ItemCount(next)})
	case cart.UpdateQuantity:
		emit(events.UpdateQuantity, events.UpdateQuantityPayload{
			ID:     a.ID,
			Before: prev.Items[a.ID].Quantity,
			After:  next.Items[a.ID].Quantity,
		})
	case cart.ClearCart:
		emit(events.ClearCart, events.ClearCartPayload{ItemCount: cart.ItemCount(prev)})
	case cart.SetIdle:
		if a.Idle {
			emit(events.CartIdle, events.CartIdlePayload{
				IdleDuration: now.Sub(next.LastInteractionTime),
				ItemCount:    cart.ItemCount(next),
			})
		}
	case cart.RecordToggle:
		// A changed window start means the window was reset, not extended.
		if next.ToggleWindowStart.Equal(prev.ToggleWindowStart) {
			emit(events.CartToggled, events.CartToggledPayload{
				Count:          next.ToggleCount,
				WindowDuration: now.Sub(next.ToggleWindowStart),
			})
		}
	case cart.RecordHoverIntent:
		emit(events.HoverIntent, events.HoverIntentPayload{ProductID: a.ProductID, Duration: a.Duration})
	}
	return fx
}
