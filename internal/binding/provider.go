package binding

import (
	"context"
	"errors"

	"github.com/five82/tote/internal/state"
)

// ErrNoProvider is returned when a context carries no Provider.
var ErrNoProvider = errors.New("cart provider not found in context")

type providerKey struct{}

// Provider exposes one Store to presentation code.
type Provider struct {
	store *state.Store
	cart  *Cart
}

// NewProvider wraps store. The Provider does not take over the store's
// lifecycle until Close is called.
func NewProvider(store *state.Store) *Provider {
	p := &Provider{store: store}
	p.cart = newCart(store)
	return p
}

// Store returns the underlying store for wiring code such as the CLI.
func (p *Provider) Store() *state.Store { return p.store }

// Cart returns the shared handle. Every call returns the same value.
func (p *Provider) Cart() *Cart { return p.cart }

// Subscribe starts a coalescing subscription to state changes.
func (p *Provider) Subscribe() *Subscription {
	return newSubscription(p.store)
}

// Close writes any pending save and tears the store down.
func (p *Provider) Close() {
	p.store.Flush()
	p.store.Destroy()
}

// WithProvider returns a copy of ctx carrying p.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext returns the Provider carried by ctx.
func FromContext(ctx context.Context) (*Provider, error) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	if !ok || p == nil {
		return nil, ErrNoProvider
	}
	return p, nil
}

// CartFromContext is shorthand for FromContext followed by Cart.
func CartFromContext(ctx context.Context) (*Cart, error) {
	p, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return p.Cart(), nil
}
