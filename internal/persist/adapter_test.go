package persist

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/clock"
)

var (
	t0    = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	quiet = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func newTestAdapter(t *testing.T) (*Adapter, *MemoryKV, *clock.Fake) {
	t.Helper()
	kv := NewMemoryKV()
	clk := clock.NewFake(t0)
	return NewAdapter(kv, clk, quiet), kv, clk
}

func sampleState() *cart.State {
	r := cart.Reducer{}
	s := cart.NewState(t0)
	s = r.Reduce(s, cart.AddItem{ID: 3, Quantity: 2}, t0)
	s = r.Reduce(s, cart.AddItem{ID: 7, Quantity: 1}, t0.Add(time.Second))
	return s
}

func TestEncode_Golden(t *testing.T) {
	data, err := Encode(sampleState(), t0.Add(time.Minute))
	require.NoError(t, err)

	var pretty bytes.Buffer
	require.NoError(t, json.Indent(&pretty, data, "", "  "))
	pretty.WriteByte('\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "envelope", pretty.Bytes())
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	a, _, _ := newTestAdapter(t)
	state := sampleState()
	r := cart.Reducer{}
	state = r.Reduce(state, cart.SetReducedMotion{Enabled: true}, t0)

	a.Save(state)
	snap := a.LoadPersisted()
	require.NotNil(t, snap)

	assert.Len(t, snap.Items, len(state.Items))
	for id, item := range state.Items {
		got, ok := snap.Items[id]
		require.True(t, ok, "item %d missing", id)
		assert.Equal(t, item.Quantity, got.Quantity)
		assert.True(t, item.AddedAt.Equal(got.AddedAt))
	}
	assert.Equal(t, state.Prefs, snap.Prefs)
	assert.True(t, t0.Equal(snap.UpdatedAt))
}

func TestLoadPersisted_CorruptSlotIsNil(t *testing.T) {
	a, kv, _ := newTestAdapter(t)
	require.NoError(t, kv.Set(CurrentKey, "not json"))

	assert.NotPanics(t, func() {
		assert.Nil(t, a.LoadPersisted())
	})
}

func TestLoadPersisted_RejectsShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"wrong version", `{"version":2,"items":[{"id":1,"quantity":1}]}`},
		{"missing version", `{"items":[{"id":1,"quantity":1}]}`},
		{"items not array", `{"version":1,"items":{"id":1}}`},
		{"no valid items", `{"version":1,"items":[{"id":"x","quantity":1},{"id":2,"quantity":0}],"ui":{"soundEnabled":false}}`},
		{"empty items", `{"version":1,"items":[]}`},
		{"array root", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, kv, _ := newTestAdapter(t)
			require.NoError(t, kv.Set(CurrentKey, tt.raw))
			assert.Nil(t, a.LoadPersisted())
		})
	}
}

func TestLoadPersisted_FiltersInvalidItems(t *testing.T) {
	a, kv, _ := newTestAdapter(t)
	require.NoError(t, kv.Set(CurrentKey, `{"version":1,"items":[
		{"id":1,"quantity":2,"addedAt":1740830400000},
		{"id":2,"quantity":-1},
		{"id":"3","quantity":1},
		{"id":4},
		{"id":5,"quantity":1}
	],"ui":{"reducedMotion":true}}`))

	snap := a.LoadPersisted()
	require.NotNil(t, snap)
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 2, snap.Items[1].Quantity)
	assert.True(t, t0.Equal(snap.Items[1].AddedAt))
	assert.True(t, t0.Equal(snap.Items[5].AddedAt), "missing addedAt defaults to load time")
	assert.Equal(t, cart.Prefs{ReducedMotion: true, SoundEnabled: true, HapticsEnabled: true}, snap.Prefs)
}

func TestLoadPersisted_EmptySlotIsNil(t *testing.T) {
	a, _, _ := newTestAdapter(t)
	assert.Nil(t, a.LoadPersisted())
}

func TestLoadLegacy_MigratesOnceAndRemovesSlot(t *testing.T) {
	a, kv, _ := newTestAdapter(t)
	require.NoError(t, kv.Set(LegacyKey, `[{"id":3,"quantity":2,"name":"X"},{"id":"bad"}]`))

	items := a.LoadLegacy()
	assert.Equal(t, []cart.Item{{ID: 3, Quantity: 2, AddedAt: t0}}, items)

	_, ok, err := kv.Get(LegacyKey)
	require.NoError(t, err)
	assert.False(t, ok, "legacy slot must be removed")
	assert.Nil(t, a.LoadLegacy(), "second migration finds nothing")
}

func TestLoadLegacy_NormalisesQuantities(t *testing.T) {
	a, kv, _ := newTestAdapter(t)
	require.NoError(t, kv.Set(LegacyKey, `[
		{"id":1,"name":"a","price":3.5,"image":"a.png"},
		{"id":2,"quantity":2.7},
		{"id":3,"quantity":-4},
		{"id":1,"quantity":2},
		"junk"
	]`))

	items := a.LoadLegacy()
	assert.Equal(t, []cart.Item{
		{ID: 1, Quantity: 3, AddedAt: t0},
		{ID: 2, Quantity: 2, AddedAt: t0},
		{ID: 3, Quantity: 1, AddedAt: t0},
	}, items)
}

func TestLoadLegacy_NothingValidKeepsSlot(t *testing.T) {
	a, kv, _ := newTestAdapter(t)
	require.NoError(t, kv.Set(LegacyKey, `[{"id":"bad"}]`))

	assert.Nil(t, a.LoadLegacy())
	_, ok, _ := kv.Get(LegacyKey)
	assert.True(t, ok)
}

func TestLoadLegacy_CorruptIsNil(t *testing.T) {
	a, kv, _ := newTestAdapter(t)
	require.NoError(t, kv.Set(LegacyKey, `{{{`))
	assert.Nil(t, a.LoadLegacy())
}

func TestSave_WriteFailureIsSwallowed(t *testing.T) {
	a, kv, _ := newTestAdapter(t)
	kv.FailWrites = true

	assert.NotPanics(t, func() { a.Save(sampleState()) })
	_, ok, _ := kv.Get(CurrentKey)
	assert.False(t, ok)
}

func TestClear_RemovesCurrentSlot(t *testing.T) {
	a, kv, _ := newTestAdapter(t)
	a.Save(sampleState())
	a.Clear()

	_, ok, _ := kv.Get(CurrentKey)
	assert.False(t, ok)
}
