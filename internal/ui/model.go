package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tote/internal/binding"
	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/catalog"
)

const (
	defaultRefresh = time.Second
	flashDuration  = 600 * time.Millisecond
	activityLines  = 6
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Provider     *binding.Provider
	Catalog      *catalog.Cache
	JournalPath  string
	ThemeName    string
	RefreshEvery time.Duration
	// Now is the clock used for hover dwell; nil uses time.Now.
	Now func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx          context.Context
	cart         *binding.Cart
	sub          *binding.Subscription
	catalog      *catalog.Cache
	journalPath  string
	refreshEvery time.Duration
	now          func() time.Time

	theme  Theme
	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool

	products       []catalog.Product
	byID           map[int64]catalog.Product
	catalogOffline bool
	catalogErr     error

	snapshot *cart.State
	cursor   int
	cartOpen bool

	hoverID    int64
	hoverSince time.Time

	flashID  int64
	flashSeq int

	activity []string
}

// New creates the storefront model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	refresh := opts.RefreshEvery
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		ctx:          ctx,
		cart:         opts.Provider.Cart(),
		sub:          opts.Provider.Subscribe(),
		catalog:      opts.Catalog,
		journalPath:  opts.JournalPath,
		refreshEvery: refresh,
		now:          now,
		theme:        GetTheme(opts.ThemeName),
		keys:         DefaultKeyMap(),
		help:         help.New(),
	}
	m.snapshot = m.cart.Snapshot()
	m.applyCatalog()
	if len(m.products) > 0 {
		m.hoverID = m.products[0].ID
		m.hoverSince = m.now()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.refreshEvery),
		binding.WaitForChange(m.sub),
		loadActivityCmd(m.journalPath, m.namer()),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		m.applyCatalog()
		return m, tea.Batch(tickCmd(m.refreshEvery), loadActivityCmd(m.journalPath, m.namer()))

	case binding.ChangedMsg:
		cmd := m.observe(msg.State)
		return m, tea.Batch(cmd, binding.WaitForChange(m.sub))

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashID = 0
		}
		return m, nil

	case activityMsg:
		m.activity = msg.lines
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input. Every key counts as shopper activity:
// cart mutations reset the idle timer themselves, everything else records
// an explicit interaction.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mutated := false

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.endHover()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.cursor + 1)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.products) - 1)

	case key.Matches(msg, m.keys.Add):
		if p, ok := m.selected(); ok {
			m.cart.AddItem(p.ID, 1)
			mutated = true
		}

	case key.Matches(msg, m.keys.Decrement):
		if p, ok := m.selected(); ok {
			if item, ok := m.cart.GetItem(p.ID); ok {
				m.cart.UpdateQuantity(p.ID, item.Quantity-1)
				mutated = true
			}
		}

	case key.Matches(msg, m.keys.Remove):
		if p, ok := m.selected(); ok && m.cart.HasItem(p.ID) {
			m.cart.RemoveItem(p.ID)
			mutated = true
		}

	case key.Matches(msg, m.keys.Clear):
		if !m.cart.IsEmpty() {
			m.cart.ClearCart()
			mutated = true
		}

	case key.Matches(msg, m.keys.ToggleCart):
		m.cartOpen = !m.cartOpen
		m.cart.RegisterToggle()

	case key.Matches(msg, m.keys.ReducedMotion):
		m.cart.ToggleReducedMotion()
		m.flashID = 0
	case key.Matches(msg, m.keys.Sound):
		m.cart.ToggleSound()
	case key.Matches(msg, m.keys.Haptics):
		m.cart.ToggleHaptics()
	}

	if !mutated {
		m.cart.RecordInteraction()
	}
	return m, m.observe(m.cart.Snapshot())
}

// observe moves the model to next and returns a command that ends any flash
// highlight it started.
func (m *Model) observe(next *cart.State) tea.Cmd {
	prev := m.snapshot
	m.snapshot = next
	if prev == nil || next == nil || prev == next || next.Prefs.ReducedMotion {
		return nil
	}

	var grown int64
	for _, item := range cart.Items(next) {
		if old, ok := prev.Items[item.ID]; !ok || item.Quantity > old.Quantity {
			grown = item.ID
		}
	}
	if grown == 0 {
		return nil
	}
	m.flashID = grown
	m.flashSeq++
	return flashCmd(m.flashSeq, flashDuration)
}

func (m *Model) moveCursor(to int) {
	if len(m.products) == 0 {
		return
	}
	to = max(0, min(to, len(m.products)-1))
	if to == m.cursor {
		return
	}
	m.endHover()
	m.cursor = to
	m.hoverID = m.products[to].ID
	m.hoverSince = m.now()
}

// endHover reports how long the cursor rested on the current product. The
// store drops dwell times below its hover minimum.
func (m *Model) endHover() {
	if m.hoverID == 0 {
		return
	}
	m.cart.RegisterHoverIntent(m.hoverID, m.now().Sub(m.hoverSince))
	m.hoverID = 0
}

func (m Model) selected() (catalog.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.products) {
		return catalog.Product{}, false
	}
	return m.products[m.cursor], true
}

func (m *Model) applyCatalog() {
	if m.catalog == nil {
		return
	}
	snap := m.catalog.Snapshot()
	m.catalogOffline = snap.IsOffline()
	m.catalogErr = snap.LastError
	if !snap.HasProducts {
		return
	}
	m.products = snap.Products
	m.byID = catalog.Lookup(snap.Products)
	if m.cursor >= len(m.products) {
		m.cursor = max(0, len(m.products)-1)
	}
}

func (m Model) namer() func(int64) string {
	byID := m.byID
	return func(id int64) string {
		return byID[id].Name
	}
}

// Run starts the Bubble Tea program and blocks until the shopper quits or
// ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Provider == nil {
		return errors.New("ui requires a cart provider")
	}
	if opts.Context == nil {
		opts.Context = ctx
	}
	m := New(opts)
	defer m.sub.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
