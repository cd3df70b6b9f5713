package ui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tote/internal/binding"
	"github.com/five82/tote/internal/catalog"
	"github.com/five82/tote/internal/clock"
	"github.com/five82/tote/internal/state"
)

type zeroRandom struct{}

func (zeroRandom) Float64() float64 { return 0 }

var testProducts = []catalog.Product{
	{ID: 1, Name: "Bread", Price: 300, Category: "bakery"},
	{ID: 2, Name: "Milk", Price: 229, Category: "dairy"},
	{ID: 3, Name: "Tea", Price: 450, Category: "pantry"},
}

func newTestModel(t *testing.T) (Model, *clock.Fake, *binding.Provider) {
	t.Helper()
	clk := clock.NewFake(time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC))
	store := state.New(state.Options{
		Clock:  clk,
		Random: zeroRandom{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	provider := binding.NewProvider(store)
	t.Cleanup(provider.Close)

	cache := catalog.NewCache(clk.Now)
	products, err := catalog.NewStatic(testProducts).Products(context.Background())
	require.NoError(t, err)
	cache.Update(products, nil)

	m := New(Options{Provider: provider, Catalog: cache, Now: clk.Now})
	t.Cleanup(m.sub.Close)
	return m, clk, provider
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestAddAndDecrementSelectedProduct(t *testing.T) {
	m, _, p := newTestModel(t)

	m = press(t, m, "a", "+", "enter")
	item, ok := p.Cart().GetItem(1)
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity)

	m = press(t, m, "-")
	item, _ = p.Cart().GetItem(1)
	assert.Equal(t, 2, item.Quantity)

	press(t, m, "d")
	assert.False(t, p.Cart().HasItem(1))
}

func TestCursorMovesAndClamps(t *testing.T) {
	m, _, p := newTestModel(t)

	m = press(t, m, "j", "j", "j", "j")
	assert.Equal(t, 2, m.cursor)
	m = press(t, m, "a", "g", "a")
	assert.Equal(t, 0, m.cursor)
	assert.True(t, p.Cart().HasItem(3))
	assert.True(t, p.Cart().HasItem(1))
}

func TestToggleCartRegistersToggle(t *testing.T) {
	m, _, p := newTestModel(t)

	m = press(t, m, "c", "c", "c")
	assert.True(t, m.cartOpen)
	tel := p.Cart().Telemetry()
	assert.Equal(t, 3, tel.ToggleCount)
	assert.True(t, tel.IsHesitating)
}

func TestHoverDwellIsRegisteredOnLeave(t *testing.T) {
	m, clk, p := newTestModel(t)

	clk.Advance(900 * time.Millisecond)
	m = press(t, m, "down")
	clk.Advance(100 * time.Millisecond)
	press(t, m, "down")

	tel := p.Cart().Telemetry()
	assert.Equal(t, 1, tel.HoverIntentCount, "the 100ms dwell is below the minimum")
	assert.Equal(t, 900*time.Millisecond, tel.AvgHoverDuration)
}

func TestKeypressResetsIdle(t *testing.T) {
	m, clk, p := newTestModel(t)

	clk.Advance(state.DefaultIdleThreshold)
	require.True(t, p.Cart().IsIdle())

	press(t, m, "?")
	assert.False(t, p.Cart().IsIdle())
}

func TestFlashRespectsReducedMotion(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "a")
	assert.Equal(t, int64(1), m.flashID)

	next, _ := m.Update(flashDoneMsg{seq: m.flashSeq})
	m = next.(Model)
	assert.Zero(t, m.flashID)

	m = press(t, m, "m", "a")
	assert.Zero(t, m.flashID)
}

func TestStaleFlashDoneIsIgnored(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "a", "j", "a")
	assert.Equal(t, int64(2), m.flashID)
	next, _ := m.Update(flashDoneMsg{seq: m.flashSeq - 1})
	assert.Equal(t, int64(2), next.(Model).flashID)
}

func TestChangedMsgFromTimerUpdatesSnapshot(t *testing.T) {
	m, _, p := newTestModel(t)

	p.Cart().AddItem(2, 4)
	next, cmd := m.Update(binding.ChangedMsg{State: p.Cart().Snapshot()})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Same(t, p.Cart().Snapshot(), m.snapshot)
	assert.Equal(t, int64(2), m.flashID)
}

func TestViewRendersCartAndBadges(t *testing.T) {
	m, clk, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	m = press(t, m, "a", "a", "c")
	out := m.View()
	assert.Contains(t, out, "2 items")
	assert.Contains(t, out, "$6.00")
	assert.Contains(t, out, "Bakery")
	assert.Contains(t, out, "2 × Bread")
	assert.Contains(t, out, "adding")

	clk.Advance(state.DefaultIdleThreshold)
	assert.Contains(t, m.View(), "idle")
}

func TestViewBeforeSize(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.True(t, strings.HasPrefix(m.View(), "Loading"))
}

func TestThemeCycle(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "T")
	assert.Equal(t, "Kanagawa", m.theme.Name)
	assert.Equal(t, "Nightfox", NextTheme("unknown-theme"))
	assert.Len(t, ThemeNames(), 3)
}
