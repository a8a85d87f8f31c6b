package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shopfront/internal/pages"
	"github.com/five82/shopfront/internal/prefs"
	"github.com/five82/shopfront/internal/router"
	"github.com/five82/shopfront/internal/shopapi"
	"github.com/five82/shopfront/internal/state"
)

type fakeNav struct {
	targets  []string
	reloads  int
	backs    int
	forwards int
	atOldest bool
}

func (f *fakeNav) Navigate(_ context.Context, target string, _ map[string]string) {
	f.targets = append(f.targets, target)
}

func (f *fakeNav) Reload(context.Context) { f.reloads++ }

func (f *fakeNav) Back(context.Context) bool {
	f.backs++
	return !f.atOldest
}

func (f *fakeNav) Forward(context.Context) bool {
	f.forwards++
	return true
}

func (f *fakeNav) last() string {
	if len(f.targets) == 0 {
		return ""
	}
	return f.targets[len(f.targets)-1]
}

type loginAPI struct {
	shopapi.API
}

func (loginAPI) Login(_ context.Context, username, _ string) (shopapi.User, string, error) {
	return shopapi.User{ID: 1, FirstName: "Emily", Username: username}, "tok", nil
}

var (
	phone = shopapi.Product{ID: 1, Title: "Phone", Price: 100, Stock: 50}
	lamp  = shopapi.Product{ID: 2, Title: "Lamp", Price: 20, Stock: 3, Images: []string{"a.jpg", "b.jpg", "c.jpg"}}
	chair = shopapi.Product{ID: 3, Title: "Chair", Price: 40, Stock: 0}
)

type harness struct {
	model     Model
	nav       *fakeNav
	store     *state.Store
	prefsPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := state.New()
	nav := &fakeNav{}
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	forms := pages.NewForms(pages.Deps{API: loginAPI{}, Store: store, NewOrderID: func() string { return "o-1" }})
	h := &harness{
		model:     New(Options{Router: nav, Store: store, Forms: forms, PrefsPath: prefsPath}),
		nav:       nav,
		store:     store,
		prefsPath: prefsPath,
	}
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) keys(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) show(path, markup string) {
	h.send(pageMsg{path: path, view: router.View{Title: path, Markup: markup}})
}

func TestNavKeysNavigate(t *testing.T) {
	h := newHarness(t)

	h.keys("2")
	h.keys("8")
	h.keys("9")

	if len(h.nav.targets) != 2 || h.nav.targets[0] != "/products" || h.nav.targets[1] != "/about" {
		t.Fatalf("targets = %v, want [/products /about]", h.nav.targets)
	}
}

func TestHistoryKeys(t *testing.T) {
	h := newHarness(t)

	h.keys("[")
	h.send(tea.KeyMsg{Type: tea.KeyBackspace})
	h.keys("]")
	h.keys("r")

	if h.nav.backs != 2 || h.nav.forwards != 1 || h.nav.reloads != 1 {
		t.Fatalf("backs/forwards/reloads = %d/%d/%d, want 2/1/1", h.nav.backs, h.nav.forwards, h.nav.reloads)
	}

	h.nav.atOldest = true
	h.keys("[")
	if h.model.notice == "" {
		t.Fatalf("expected a notice when back has nowhere to go")
	}
}

func TestPageMsgShowsMarkupAndKeepsSelectionOnRerender(t *testing.T) {
	h := newHarness(t)
	h.store.SetProducts([]shopapi.Product{phone, lamp, chair})
	h.show("/products", "catalog markup")

	if !strings.Contains(h.model.content.View(), "catalog markup") {
		t.Fatalf("viewport does not show page markup")
	}

	h.keys("jjj")
	if h.model.selected != 2 {
		t.Fatalf("selected = %d, want 2 (bounded by listing)", h.model.selected)
	}

	h.show("/products", "catalog again")
	if h.model.selected != 2 {
		t.Fatalf("selected = %d after same-path render, want 2", h.model.selected)
	}

	h.show("/products/search?q=a", "results")
	if h.model.selected != 0 {
		t.Fatalf("selected = %d after path change, want 0", h.model.selected)
	}
}

func TestEnterOpensSelectedProduct(t *testing.T) {
	h := newHarness(t)
	h.store.SetProducts([]shopapi.Product{phone, lamp})
	h.show("/", "home")

	h.keys("j")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	if got := h.nav.last(); got != "/products/2" {
		t.Fatalf("navigated to %q, want /products/2", got)
	}
}

func TestAddToCartFromListing(t *testing.T) {
	h := newHarness(t)
	h.store.SetProducts([]shopapi.Product{phone, chair})
	h.show("/products", "")

	h.keys("a")
	if h.store.CartCount() != 1 {
		t.Fatalf("CartCount = %d, want 1", h.store.CartCount())
	}

	h.keys("ja")
	if h.store.CartCount() != 1 || !h.model.noticeErr {
		t.Fatalf("out-of-stock product was added (count %d)", h.store.CartCount())
	}
}

func TestDetailQuantityBoundedByStock(t *testing.T) {
	h := newHarness(t)
	h.store.SetSelectedProduct(lamp)
	h.show("/products/2", "lamp")

	h.keys("+++++")
	if h.model.quantity != 3 {
		t.Fatalf("quantity = %d, want stock limit 3", h.model.quantity)
	}
	h.keys("-----")
	if h.model.quantity != 1 {
		t.Fatalf("quantity = %d, want floor 1", h.model.quantity)
	}

	h.keys("+a")
	item, ok := h.store.State().CartItem(lamp.ID)
	if !ok || item.Quantity != 2 {
		t.Fatalf("cart line = %+v (ok=%v), want quantity 2", item, ok)
	}
	if h.model.quantity != 1 {
		t.Fatalf("quantity = %d after add, want reset to 1", h.model.quantity)
	}
}

func TestDetailImageCycles(t *testing.T) {
	h := newHarness(t)
	h.store.SetSelectedProduct(lamp)
	h.show("/products/2", "lamp")

	h.keys("<")
	if h.model.image != 2 {
		t.Fatalf("image = %d, want wrap to 2", h.model.image)
	}
	h.keys(">>")
	if h.model.image != 1 {
		t.Fatalf("image = %d, want 1", h.model.image)
	}
}

func TestDetailIgnoresStaleSelectedProduct(t *testing.T) {
	h := newHarness(t)
	h.store.SetSelectedProduct(phone)
	h.show("/products/2", "still loading")

	h.keys("a")
	if h.store.CartCount() != 0 {
		t.Fatalf("added a product that is not on screen")
	}
}

func TestCheckoutLineKeys(t *testing.T) {
	h := newHarness(t)
	h.store.AddToCart(phone, 1)
	h.store.AddToCart(lamp, 1)
	h.show("/checkout", "cart")

	h.keys("+")
	if item, _ := h.store.State().CartItem(phone.ID); item.Quantity != 2 {
		t.Fatalf("phone quantity = %d, want 2", item.Quantity)
	}
	if h.nav.reloads != 1 {
		t.Fatalf("reloads = %d, want 1", h.nav.reloads)
	}

	h.keys("j-")
	if _, ok := h.store.State().CartItem(lamp.ID); ok {
		t.Fatalf("lamp should be removed when its quantity reaches zero")
	}

	h.show("/checkout", "cart")
	h.keys("x")
	if h.store.CartCount() != 0 {
		t.Fatalf("CartCount = %d, want 0", h.store.CartCount())
	}
}

func TestClearCart(t *testing.T) {
	h := newHarness(t)
	h.store.AddToCart(phone, 3)
	h.show("/products", "")

	h.keys("C")
	if h.store.CartCount() != 0 {
		t.Fatalf("CartCount = %d, want 0", h.store.CartCount())
	}
	if h.nav.reloads != 0 {
		t.Fatalf("reloaded a page that does not show the cart")
	}
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.store.Login(shopapi.User{ID: 1, FirstName: "Emily"}, "tok")
	h.show("/profile", "")

	h.keys("o")

	if h.store.State().Auth.IsAuthenticated {
		t.Fatalf("still authenticated after logout")
	}
	if got := h.nav.last(); got != "/products" {
		t.Fatalf("navigated to %q, want /products", got)
	}
}

func TestSearchDebounceRunsOnlyLatest(t *testing.T) {
	h := newHarness(t)
	h.show("/products", "")

	h.keys("/")
	if !h.model.search.active {
		t.Fatalf("search box did not open")
	}
	h.keys("ab")
	if h.model.search.seq != 2 {
		t.Fatalf("seq = %d, want 2", h.model.search.seq)
	}

	h.send(searchTickMsg{seq: 1})
	if len(h.nav.targets) != 0 {
		t.Fatalf("stale tick navigated: %v", h.nav.targets)
	}

	h.send(searchTickMsg{seq: 2})
	if got := h.nav.last(); got != "/products/search?q=ab" {
		t.Fatalf("navigated to %q, want /products/search?q=ab", got)
	}
}

func TestSearchEnterAndEscape(t *testing.T) {
	h := newHarness(t)

	h.keys("/x")
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	h.send(searchTickMsg{seq: 1})
	if h.model.search.active || len(h.nav.targets) != 0 {
		t.Fatalf("cancelled search still active or navigated: %v", h.nav.targets)
	}

	h.keys("/")
	h.keys("lamp")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.model.search.active {
		t.Fatalf("enter should close the search box")
	}
	if got := h.nav.last(); got != "/products/search?q=lamp" {
		t.Fatalf("navigated to %q, want /products/search?q=lamp", got)
	}
}

func TestSignInFormSubmits(t *testing.T) {
	h := newHarness(t)
	h.show("/signin", "sign in")

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if !h.model.form.active || len(h.model.form.inputs) != 2 {
		t.Fatalf("sign-in form not open: %+v", h.model.form)
	}

	h.keys("emilys")
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	h.keys("secret")
	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !h.model.form.busy {
		t.Fatalf("expected a submit command")
	}

	h.send(cmd())

	if h.model.form.active {
		t.Fatalf("form should close after a successful submit")
	}
	auth := h.store.State().Auth
	if !auth.IsAuthenticated || auth.User.Username != "emilys" {
		t.Fatalf("auth = %+v, want emilys signed in", auth)
	}
	if got := h.nav.last(); got != "/products" {
		t.Fatalf("navigated to %q, want /products", got)
	}
}

func TestFormValidationKeepsFormOpen(t *testing.T) {
	h := newHarness(t)
	h.show("/register", "register")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	var cmd tea.Cmd
	for range h.model.form.inputs {
		cmd = h.send(tea.KeyMsg{Type: tea.KeyEnter})
	}
	if cmd == nil {
		t.Fatalf("expected the last enter to submit")
	}
	h.send(cmd())

	if !h.model.form.active || h.model.form.err != "Please fill in First Name." {
		t.Fatalf("form = active %v err %q, want open with validation error", h.model.form.active, h.model.form.err)
	}

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.model.form.active {
		t.Fatalf("esc should close the form")
	}
}

func TestCheckoutWithEmptyCartHasNoForm(t *testing.T) {
	h := newHarness(t)
	h.show("/checkout", "empty")

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.model.form.active {
		t.Fatalf("empty cart should not open the shipping form")
	}
}

func TestThemeCycleSavesPrefs(t *testing.T) {
	h := newHarness(t)

	h.keys("T")

	want := NextTheme(prefs.DefaultTheme())
	if h.model.theme.Name != want {
		t.Fatalf("theme = %q, want %q", h.model.theme.Name, want)
	}
	if got := prefs.Load(h.prefsPath).Theme; got != want {
		t.Fatalf("saved theme = %q, want %q", got, want)
	}
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	h := newHarness(t)

	h.keys("?")
	if !h.model.showHelp || !strings.Contains(h.model.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	h.keys("2")
	if h.model.showHelp || len(h.nav.targets) != 0 {
		t.Fatalf("key should only close help, got targets %v", h.nav.targets)
	}
}

func TestViewShowsChrome(t *testing.T) {
	h := newHarness(t)
	h.store.AddToCart(phone, 2)
	h.show("/products", "body text")

	out := h.model.View()
	for _, want := range []string{"shopfront", "Products", "Cart 2", "guest", "body text"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View() missing %q", want)
		}
	}
}
