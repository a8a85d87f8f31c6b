package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shopfront/internal/pages"
)

// renderHeader renders the logo, page title, cart summary and session.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	snapshot := m.store.State()
	left := []string{bg.Render("shopfront", styles.Logo)}
	if title := m.page.view.Title; title != "" {
		left = append(left, bg.Render(truncate(title, 40), styles.Text))
	}

	count := 0
	for _, item := range snapshot.Cart {
		count += item.Quantity
	}
	cart := fmt.Sprintf("Cart %d", count)
	if count > 0 {
		cart += " · " + pages.FormatPrice(snapshot.CartTotal())
	}
	right := []string{bg.Render(cart, styles.AccentText)}
	if snapshot.Auth.IsAuthenticated {
		right = append(right, bg.Render(snapshot.Auth.User.FullName(), styles.SuccessText))
	} else {
		right = append(right, bg.Render("guest", styles.MutedText))
	}

	leftStr := strings.Join(left, sep)
	rightStr := strings.Join(right, sep)
	gap := m.width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr) - 2
	return styles.Header.Width(m.width).Render(leftStr + bg.Spaces(max(gap, 2)) + rightStr)
}

// renderNav renders the numbered section links, highlighting the current one.
func (m Model) renderNav() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	current := routePath(m.page.path)
	colon := bg.Sep(":")

	segments := make([]string, 0, len(navLinks))
	for _, link := range navLinks {
		label := bg.Render(link.label, styles.MutedText)
		if link.path == current {
			label = m.theme.Styles().Selected.Render(link.label)
		}
		segments = append(segments, bg.Render(link.key, styles.AccentText)+colon+label)
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))
	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderStatus shows the search box, the latest notice, or what the keys act
// on for the current page.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	line := ""
	switch {
	case m.search.active:
		line = m.search.input.View()
	case m.notice != "" && m.noticeErr:
		line = styles.DangerText.Render(m.notice)
	case m.notice != "":
		line = styles.SuccessText.Render(m.notice)
	default:
		line = m.contextLine()
	}
	return lipgloss.NewStyle().Width(m.width).MaxHeight(1).Render(line)
}

func (m Model) contextLine() string {
	styles := m.theme.Styles()
	if p, ok := m.detailProduct(); ok {
		parts := []string{fmt.Sprintf("Qty %d", m.quantity)}
		if n := len(p.Images); n > 0 {
			parts = append(parts, fmt.Sprintf("Image %d/%d %s", m.image+1, n, p.Images[m.image]))
		}
		return styles.MutedText.Render(strings.Join(parts, " · "))
	}
	if p, ok := m.selectedProduct(); ok {
		return styles.Selected.Render(fmt.Sprintf("▸ %d. %s", m.selected+1, p.Title)) +
			" " + styles.MutedText.Render(pages.FormatPrice(p.DiscountedPrice()))
	}
	if m.onCheckout() {
		cart := m.store.State().Cart
		if m.selected < len(cart) {
			line := cart[m.selected]
			return styles.Selected.Render(fmt.Sprintf("▸ %d. %s × %d", m.selected+1, line.Product.Title, line.Quantity))
		}
	}
	return ""
}

func (m Model) renderFooter() string {
	return m.theme.Styles().Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// renderHelp renders the key binding overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		styles.Modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// renderForm draws the open form over the content area.
func (m Model) renderForm() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.form.form.Title))
	b.WriteString("\n\n")
	for i, field := range m.form.form.Fields {
		label := styles.MutedText
		if i == m.form.focus {
			label = styles.AccentText
		}
		b.WriteString(label.Render(padRight(field.Label, 18)))
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	switch {
	case m.form.busy:
		b.WriteString(styles.WarningText.Render("Submitting..."))
	case m.form.err != "":
		b.WriteString(styles.DangerText.Render(m.form.err))
	default:
		b.WriteString(styles.FaintText.Render("tab next field · enter submit · esc cancel"))
	}

	return lipgloss.Place(
		m.width,
		m.content.Height,
		lipgloss.Center,
		lipgloss.Center,
		styles.Modal.Width(min(64, max(m.width-4, 20))).Render(b.String()),
	)
}
