package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/shopfront/internal/pages"
)

// keyMap defines all keyboard bindings for the storefront.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// History
	Back    key.Binding
	Forward key.Binding
	Reload  key.Binding

	// Navigation
	Nav  key.Binding
	Up   key.Binding
	Down key.Binding
	Open key.Binding

	// Shopping
	AddToCart key.Binding
	More      key.Binding
	Less      key.Binding
	Remove    key.Binding
	ClearCart key.Binding
	PrevImage key.Binding
	NextImage key.Binding
	Logout    key.Binding
	Search    key.Binding

	// Forms
	NextField key.Binding
	PrevField key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),

		Back: key.NewBinding(
			key.WithKeys("backspace", "["),
			key.WithHelp("[", "Back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Forward"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),

		Nav: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", "Sections"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),

		AddToCart: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add to cart"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "More"),
		),
		Less: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Less"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove line"),
		),
		ClearCart: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Clear cart"),
		),
		PrevImage: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "Previous image"),
		),
		NextImage: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "Next image"),
		),
		Logout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Sign out"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Nav, k.Back, k.Search, k.Reload, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Nav, k.Back, k.Forward, k.Reload, k.Search},
		{k.Up, k.Down, k.Open, k.PrevImage, k.NextImage},
		{k.AddToCart, k.More, k.Less, k.Remove, k.ClearCart},
		{k.Logout, k.CycleTheme, k.Help, k.Quit},
	}
}

// navLinks are the numbered header links, in key order.
var navLinks = []struct {
	key   string
	label string
	path  string
}{
	{"1", "Home", pages.PathHome},
	{"2", "Products", pages.PathProducts},
	{"3", "Cart", pages.PathCheckout},
	{"4", "Sign In", pages.PathSignIn},
	{"5", "Register", pages.PathRegister},
	{"6", "Profile", pages.PathProfile},
	{"7", "Contact", pages.PathContact},
	{"8", "About", pages.PathAbout},
}
