package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/catalog"
)

// ItemView is one cart line as reported by list and the mutating commands.
type ItemView struct {
	ID       int64     `json:"id" yaml:"id"`
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Quantity int       `json:"quantity" yaml:"quantity"`
	Price    int64     `json:"price_cents" yaml:"price_cents"`
	Subtotal int64     `json:"subtotal_cents" yaml:"subtotal_cents"`
	AddedAt  time.Time `json:"added_at" yaml:"added_at"`
}

// CartView summarises a cart.
type CartView struct {
	Items      []ItemView `json:"items" yaml:"items"`
	ItemCount  int        `json:"item_count" yaml:"item_count"`
	Unique     int        `json:"unique_items" yaml:"unique_items"`
	TotalCents int64      `json:"total_cents" yaml:"total_cents"`
	Total      string     `json:"total" yaml:"total"`
	Prefs      PrefsView  `json:"prefs" yaml:"prefs"`
}

// PrefsView mirrors cart.Prefs with stable field names.
type PrefsView struct {
	ReducedMotion bool `json:"reduced_motion" yaml:"reduced_motion"`
	Sound         bool `json:"sound" yaml:"sound"`
	Haptics       bool `json:"haptics" yaml:"haptics"`
}

func newPrefsView(p cart.Prefs) PrefsView {
	return PrefsView{ReducedMotion: p.ReducedMotion, Sound: p.SoundEnabled, Haptics: p.HapticsEnabled}
}

func newCartView(s *cart.State, products map[int64]catalog.Product) CartView {
	view := CartView{
		Items:     []ItemView{},
		ItemCount: cart.ItemCount(s),
		Unique:    cart.UniqueItemCount(s),
		Prefs:     newPrefsView(s.Prefs),
	}
	for _, item := range cart.Items(s) {
		iv := ItemView{ID: item.ID, Quantity: item.Quantity, AddedAt: item.AddedAt}
		if p, ok := products[item.ID]; ok {
			iv.Name = p.Name
			iv.Price = p.Price
			iv.Subtotal = p.Price * int64(item.Quantity)
		}
		view.TotalCents += iv.Subtotal
		view.Items = append(view.Items, iv)
	}
	view.Total = catalog.FormatPrice(view.TotalCents)
	return view
}

func renderCart(w io.Writer, view CartView) error {
	if len(view.Items) == 0 {
		_, err := fmt.Fprintln(w, "Cart is empty.")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "ITEM", "QTY", "PRICE", "SUBTOTAL")
	for _, item := range view.Items {
		name := item.Name
		if name == "" {
			name = "(unknown)"
		}
		t.Row(
			fmt.Sprint(item.ID),
			name,
			fmt.Sprint(item.Quantity),
			catalog.FormatPrice(item.Price),
			catalog.FormatPrice(item.Subtotal),
		)
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d %s, %s\n", view.ItemCount, plural(view.ItemCount, "item", "items"), view.Total)
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
