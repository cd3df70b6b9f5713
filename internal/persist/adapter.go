package persist

import (
	"log/slog"

	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/clock"
)

// Adapter reads and writes the cart envelope through a KV backend.
type Adapter struct {
	kv     KV
	clock  clock.Clock
	logger *slog.Logger
}

// NewAdapter wraps kv. A nil clock uses wall time; a nil logger uses
// slog.Default().
func NewAdapter(kv KV, clk clock.Clock, logger *slog.Logger) *Adapter {
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{kv: kv, clock: clk, logger: logger}
}

// LoadPersisted returns the saved cart, or nil when the slot is empty,
// unreadable, of another version, or holds no valid items.
func (a *Adapter) LoadPersisted() *Snapshot {
	raw, ok, err := a.kv.Get(CurrentKey)
	if err != nil {
		a.logger.Warn("read persisted cart", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	snap := decodeEnvelope(raw, a.clock.Now())
	if snap == nil {
		a.logger.Debug("discarding unusable persisted cart", "key", CurrentKey)
	}
	return snap
}

// LoadLegacy migrates the legacy slot. When it yields at least one item the
// slot is removed, so migration happens once. It returns nil when there is
// nothing to migrate.
func (a *Adapter) LoadLegacy() []cart.Item {
	raw, ok, err := a.kv.Get(LegacyKey)
	if err != nil {
		a.logger.Warn("read legacy cart", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	items := decodeLegacy(raw, a.clock.Now())
	if len(items) == 0 {
		return nil
	}
	if err := a.kv.Remove(LegacyKey); err != nil {
		a.logger.Warn("remove legacy cart", "error", err)
	}
	a.logger.Info("migrated legacy cart", "items", len(items))
	return items
}

// Save writes s. Failures are logged; the in-memory cart stays authoritative.
func (a *Adapter) Save(s *cart.State) {
	data, err := Encode(s, a.clock.Now())
	if err != nil {
		a.logger.Warn("encode cart", "error", err)
		return
	}
	if err := a.kv.Set(CurrentKey, string(data)); err != nil {
		a.logger.Warn("save cart", "error", err)
	}
}

// Clear removes the saved cart.
func (a *Adapter) Clear() {
	if err := a.kv.Remove(CurrentKey); err != nil {
		a.logger.Warn("clear persisted cart", "error", err)
	}
}
