package persist

import (
	"encoding/json"
	"math"
	"time"

	"github.com/five82/tote/internal/cart"
)

const (
	// SchemaVersion is the envelope version this package reads and writes.
	SchemaVersion = 1
	// CurrentKey holds the versioned envelope.
	CurrentKey = "tote.cart.v1"
	// LegacyKey holds the pre-versioning array of cart lines.
	LegacyKey = "cart"
)

// PersistedCart is the stored envelope. Timestamps are Unix milliseconds.
type PersistedCart struct {
	Version   int             `json:"version"`
	Items     []PersistedItem `json:"items"`
	UI        PersistedPrefs  `json:"ui"`
	UpdatedAt int64           `json:"updatedAt"`
}

type PersistedItem struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
	AddedAt  int64 `json:"addedAt,omitempty"`
}

type PersistedPrefs struct {
	ReducedMotion  bool `json:"reducedMotion"`
	SoundEnabled   bool `json:"soundEnabled"`
	HapticsEnabled bool `json:"hapticsEnabled"`
}

// Snapshot is a validated envelope ready to hydrate a store.
type Snapshot struct {
	Items     map[int64]cart.Item
	Prefs     cart.Prefs
	UpdatedAt time.Time
}

// Encode serialises s as a version 1 envelope stamped with now.
func Encode(s *cart.State, now time.Time) ([]byte, error) {
	items := cart.Items(s)
	env := PersistedCart{
		Version: SchemaVersion,
		Items:   make([]PersistedItem, 0, len(items)),
		UI: PersistedPrefs{
			ReducedMotion:  s.Prefs.ReducedMotion,
			SoundEnabled:   s.Prefs.SoundEnabled,
			HapticsEnabled: s.Prefs.HapticsEnabled,
		},
		UpdatedAt: now.UnixMilli(),
	}
	for _, item := range items {
		pi := PersistedItem{ID: item.ID, Quantity: item.Quantity}
		if !item.AddedAt.IsZero() {
			pi.AddedAt = item.AddedAt.UnixMilli()
		}
		env.Items = append(env.Items, pi)
	}
	return json.Marshal(env)
}

// decodeEnvelope validates raw without trusting its shape. It returns nil
// for anything other than a version 1 envelope holding at least one valid
// item.
func decodeEnvelope(raw string, now time.Time) *Snapshot {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil
	}
	if v, ok := doc["version"].(float64); !ok || v != SchemaVersion {
		return nil
	}
	list, ok := doc["items"].([]any)
	if !ok {
		return nil
	}

	snap := &Snapshot{Items: make(map[int64]cart.Item), Prefs: cart.DefaultPrefs()}
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, ok := wholeNumber(obj["id"])
		if !ok {
			continue
		}
		qty, ok := wholeNumber(obj["quantity"])
		if !ok || qty <= 0 {
			continue
		}
		addedAt := now
		if ms, ok := wholeNumber(obj["addedAt"]); ok && ms > 0 {
			addedAt = time.UnixMilli(ms)
		}
		snap.Items[id] = cart.Item{ID: id, Quantity: int(qty), AddedAt: addedAt}
	}
	if len(snap.Items) == 0 {
		return nil
	}

	if ui, ok := doc["ui"].(map[string]any); ok {
		if v, ok := ui["reducedMotion"].(bool); ok {
			snap.Prefs.ReducedMotion = v
		}
		if v, ok := ui["soundEnabled"].(bool); ok {
			snap.Prefs.SoundEnabled = v
		}
		if v, ok := ui["hapticsEnabled"].(bool); ok {
			snap.Prefs.HapticsEnabled = v
		}
	}
	if ms, ok := wholeNumber(doc["updatedAt"]); ok {
		snap.UpdatedAt = time.UnixMilli(ms)
	}
	return snap
}

// decodeLegacy normalises the legacy array. Duplicate ids are merged by
// summing their quantities; order of first appearance is kept.
func decodeLegacy(raw string, now time.Time) []cart.Item {
	var list []any
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}

	var out []cart.Item
	index := make(map[int64]int)
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, ok := wholeNumber(obj["id"])
		if !ok {
			continue
		}
		qty, ok := wholeNumber(obj["quantity"])
		if !ok {
			qty = 1
		}
		qty = max(qty, 1)

		if i, seen := index[id]; seen {
			out[i].Quantity += int(qty)
			continue
		}
		index[id] = len(out)
		out = append(out, cart.Item{ID: id, Quantity: int(qty), AddedAt: now})
	}
	return out
}

// maxExactFloat is the largest integer a JSON number holds without loss.
const maxExactFloat = 1 << 53

// wholeNumber accepts a finite JSON number and floors it.
func wholeNumber(v any) (int64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxExactFloat {
		return 0, false
	}
	return int64(math.Floor(f)), true
}
