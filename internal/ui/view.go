package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tote/internal/catalog"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	styles := m.theme.Styles()
	header := m.renderHeader(styles)
	footer := m.renderFooter(styles)
	activity := m.renderActivity(styles, m.width)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(activity)
	bodyHeight = max(bodyHeight, 3)

	var body string
	if m.cartOpen {
		left := m.width * 3 / 5
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderProducts(styles, left, bodyHeight),
			m.renderCart(styles, m.width-left, bodyHeight),
		)
	} else {
		body = m.renderProducts(styles, m.width, bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, activity, footer)
}

func (m Model) renderHeader(styles Styles) string {
	count := m.cart.ItemCount()
	parts := []string{
		styles.Title.Render("tote"),
		styles.Text.Render(fmt.Sprintf("%d %s · %s", count, plural(count, "item", "items"), catalog.FormatPrice(m.total()))),
	}

	tel := m.cart.Telemetry()
	if m.cart.IsAddBurst() {
		parts = append(parts, styles.Badge("adding", m.theme.Info))
	}
	if m.cart.IsIdle() {
		parts = append(parts, styles.Badge("idle", m.theme.Faint))
	}
	if tel.IsHesitating {
		parts = append(parts, styles.Badge("hesitating", m.theme.Warning))
	}
	if m.catalogOffline {
		parts = append(parts, styles.Badge("catalog offline", m.theme.Danger))
	}

	line := strings.Join(parts, "  ")
	return styles.Header.Width(m.width).Render(line)
}

func (m Model) renderProducts(styles Styles, width, height int) string {
	pane := styles.Pane
	if !m.cartOpen {
		pane = styles.PaneFocus
	}
	inner := max(width-pane.GetHorizontalFrameSize(), 10)

	var lines []string
	lines = append(lines, styles.Title.Render("Products"))
	if len(m.products) == 0 {
		msg := "No products yet"
		if m.catalogErr != nil {
			msg = "Catalog unavailable: " + m.catalogErr.Error()
		}
		lines = append(lines, styles.MutedText.Render(msg))
	}

	lastCategory := ""
	for i, p := range m.products {
		if p.Category != lastCategory || i == 0 {
			lines = append(lines, styles.AccentText.Render(catalog.CategoryTitle(p.Category)))
			lastCategory = p.Category
		}
		qty := ""
		if item, ok := m.cart.GetItem(p.ID); ok {
			qty = fmt.Sprintf("×%d", item.Quantity)
		}
		price := catalog.FormatPrice(p.Price)
		name := truncate(p.Name, inner-len(price)-8)
		row := fmt.Sprintf("  %-*s %4s %s", inner-len(price)-8, name, qty, price)
		if i == m.cursor {
			row = styles.Selected.Width(inner).Render(row)
		} else {
			row = styles.Text.Render(row)
		}
		lines = append(lines, row)
	}

	return pane.Width(inner).Height(height - pane.GetVerticalFrameSize()).Render(clip(lines, height-pane.GetVerticalFrameSize()))
}

func (m Model) renderCart(styles Styles, width, height int) string {
	pane := styles.PaneFocus
	inner := max(width-pane.GetHorizontalFrameSize(), 10)

	lines := []string{styles.Title.Render("Cart")}
	items := m.cart.Items()
	if len(items) == 0 {
		lines = append(lines, styles.MutedText.Render("Your cart is empty"))
	}
	for _, item := range items {
		name := fmt.Sprintf("#%d", item.ID)
		lineTotal := "unavailable"
		if p, ok := m.byID[item.ID]; ok {
			name = p.Name
			lineTotal = catalog.FormatPrice(p.Price * int64(item.Quantity))
		}
		label := truncate(fmt.Sprintf("%d × %s", item.Quantity, name), inner-len(lineTotal)-1)
		row := fmt.Sprintf("%-*s %s", inner-len(lineTotal)-1, label, lineTotal)
		if item.ID == m.flashID {
			row = styles.Flash.Render(row)
		} else {
			row = styles.Text.Render(row)
		}
		lines = append(lines, row)
	}
	if len(items) > 0 {
		lines = append(lines, "", styles.SuccessText.Render("Total "+catalog.FormatPrice(m.total())))
	}

	return pane.Width(inner).Height(height - pane.GetVerticalFrameSize()).Render(clip(lines, height-pane.GetVerticalFrameSize()))
}

func (m Model) renderActivity(styles Styles, width int) string {
	pane := styles.Pane
	inner := max(width-pane.GetHorizontalFrameSize(), 10)
	lines := []string{styles.Title.Render("Activity")}
	if len(m.activity) == 0 {
		lines = append(lines, styles.FaintText.Render("Nothing yet"))
	}
	for _, line := range m.activity {
		lines = append(lines, styles.MutedText.Render(truncate(line, inner)))
	}
	return pane.Width(inner).Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter(styles Styles) string {
	prefs := m.cart.Prefs()
	flags := fmt.Sprintf("motion:%s  sound:%s  haptics:%s  theme:%s",
		onOff(!prefs.ReducedMotion), onOff(prefs.SoundEnabled), onOff(prefs.HapticsEnabled), m.theme.Name)
	return styles.Footer.Render(m.help.View(m.keys) + "\n" + styles.FaintText.Render(flags))
}

// total sums known product prices; lines whose product left the catalog are
// excluded.
func (m Model) total() int64 {
	var sum int64
	for _, item := range m.cart.Items() {
		if p, ok := m.byID[item.ID]; ok {
			sum += p.Price * int64(item.Quantity)
		}
	}
	return sum
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

func truncate(s string, width int) string {
	if width <= 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func clip(lines []string, height int) string {
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
