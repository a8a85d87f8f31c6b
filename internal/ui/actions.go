package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shopfront/internal/pages"
	"github.com/five82/shopfront/internal/shopapi"
)

func (m Model) onListing() bool {
	switch routePath(m.page.path) {
	case pages.PathHome, pages.PathProducts, pages.PathSearch:
		return true
	}
	return false
}

func (m Model) onCheckout() bool {
	return routePath(m.page.path) == pages.PathCheckout
}

// detailProduct returns the product shown on a detail page. The store's
// selected product only counts when it matches the id in the path.
func (m Model) detailProduct() (shopapi.Product, bool) {
	path := routePath(m.page.path)
	if path == pages.PathSearch || !strings.HasPrefix(path, "/products/") {
		return shopapi.Product{}, false
	}
	selected := m.store.State().SelectedProduct
	if selected == nil || strconv.Itoa(selected.ID) != strings.TrimPrefix(path, "/products/") {
		return shopapi.Product{}, false
	}
	return *selected, true
}

func (m Model) selectableCount() int {
	switch {
	case m.onListing():
		return len(m.store.State().Products)
	case m.onCheckout():
		return len(m.store.State().Cart)
	}
	return 0
}

func (m *Model) clampSelection() {
	n := m.selectableCount()
	if m.selected >= n {
		m.selected = max(0, n-1)
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) moveSelection(delta int) {
	n := m.selectableCount()
	if n == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), n-1)
}

func (m Model) selectedProduct() (shopapi.Product, bool) {
	products := m.store.State().Products
	if !m.onListing() || m.selected >= len(products) {
		return shopapi.Product{}, false
	}
	return products[m.selected], true
}

// open handles enter: form pages open their form, listings open the
// selected product.
func (m *Model) open() tea.Cmd {
	if m.forms != nil {
		if form, ok := m.forms.For(routePath(m.page.path)); ok {
			m.form = newFormState(form)
			return textinput.Blink
		}
	}
	if p, ok := m.selectedProduct(); ok {
		m.navigate(pages.ProductTarget(p.ID))
	}
	return nil
}

func (m *Model) addToCart() {
	if p, ok := m.detailProduct(); ok {
		if p.Stock == 0 {
			m.setNotice(p.Title+" is out of stock.", true)
			return
		}
		m.store.AddToCart(p, m.quantity)
		m.setNotice(fmt.Sprintf("Added %d × %s to cart.", m.quantity, p.Title), false)
		m.quantity = 1
		return
	}
	if p, ok := m.selectedProduct(); ok {
		if p.Stock == 0 {
			m.setNotice(p.Title+" is out of stock.", true)
			return
		}
		m.store.AddToCart(p, 1)
		m.setNotice("Added "+p.Title+" to cart.", false)
	}
}

// adjustQuantity changes the pending quantity on a detail page, or the
// selected cart line on checkout. A cart line taken to zero is removed.
func (m *Model) adjustQuantity(delta int) {
	if p, ok := m.detailProduct(); ok {
		m.quantity = min(max(m.quantity+delta, 1), max(p.Stock, 1))
		return
	}
	if !m.onCheckout() {
		return
	}
	cart := m.store.State().Cart
	if m.selected >= len(cart) {
		return
	}
	line := cart[m.selected]
	m.store.UpdateCartQuantity(line.Product.ID, line.Quantity+delta)
	m.router.Reload(m.ctx)
}

func (m *Model) removeLine() {
	if !m.onCheckout() {
		return
	}
	cart := m.store.State().Cart
	if m.selected >= len(cart) {
		return
	}
	m.store.RemoveFromCart(cart[m.selected].Product.ID)
	m.setNotice("Removed "+cart[m.selected].Product.Title+".", false)
	m.router.Reload(m.ctx)
}

func (m *Model) clearCart() {
	if m.store.CartCount() == 0 {
		m.setNotice("Your cart is already empty.", false)
		return
	}
	m.store.ClearCart()
	m.setNotice("Cart cleared.", false)
	if m.onCheckout() {
		m.router.Reload(m.ctx)
	}
}

func (m *Model) stepImage(delta int) {
	p, ok := m.detailProduct()
	if !ok || len(p.Images) == 0 {
		return
	}
	n := len(p.Images)
	m.image = ((m.image+delta)%n + n) % n
}

func (m *Model) logout() {
	if !m.store.State().Auth.IsAuthenticated {
		m.setNotice("You are not signed in.", false)
		return
	}
	m.store.Logout()
	m.setNotice("Signed out.", false)
	m.navigate(pages.PathProducts)
}
