package state

import (
	"strings"
	"sync"

	"github.com/five82/shopfront/internal/shopapi"
)

// CartItem is one line of the cart.
type CartItem struct {
	Product  shopapi.Product
	Quantity int
}

// LineTotal returns the discounted price of the whole line.
func (c CartItem) LineTotal() float64 {
	return c.Product.DiscountedPrice() * float64(c.Quantity)
}

// Auth describes the current session. IsAuthenticated is true iff both User
// and Token are set.
type Auth struct {
	User            *shopapi.User
	Token           string
	IsAuthenticated bool
}

// AppState is a point-in-time copy of everything pages read.
type AppState struct {
	Products        []shopapi.Product
	Cart            []CartItem
	Auth            Auth
	SelectedProduct *shopapi.Product
	CurrentPath     string
}

// CartItem returns the line for productID, if any.
func (s AppState) CartItem(productID int) (CartItem, bool) {
	for _, item := range s.Cart {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// Option configures a Store.
type Option func(*Store)

// WithClearCartOnLogout selects whether Logout also empties the cart.
func WithClearCartOnLogout(clear bool) Option {
	return func(s *Store) {
		s.clearCartOnLogout = clear
	}
}

// Store is the single owner of AppState. All writes go through its methods and
// each method holds the lock for its entire body.
type Store struct {
	mu                sync.RWMutex
	state             AppState
	clearCartOnLogout bool
}

// New returns an empty Store. By default Logout clears the cart.
func New(opts ...Option) *Store {
	s := &Store{clearCartOnLogout: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a deep copy of the current state.
func (s *Store) State() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := AppState{
		Products:    cloneProducts(s.state.Products),
		Cart:        cloneCart(s.state.Cart),
		CurrentPath: s.state.CurrentPath,
		Auth: Auth{
			Token:           s.state.Auth.Token,
			IsAuthenticated: s.state.Auth.IsAuthenticated,
		},
	}
	if s.state.Auth.User != nil {
		user := *s.state.Auth.User
		snap.Auth.User = &user
	}
	if s.state.SelectedProduct != nil {
		product := cloneProduct(*s.state.SelectedProduct)
		snap.SelectedProduct = &product
	}
	return snap
}

// SetProducts replaces the catalog wholesale.
func (s *Store) SetProducts(products []shopapi.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Products = cloneProducts(products)
}

// SetSelectedProduct replaces the product shown by the detail view.
func (s *Store) SetSelectedProduct(product shopapi.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := cloneProduct(product)
	s.state.SelectedProduct = &p
}

// ClearSelectedProduct drops the detail view's product.
func (s *Store) ClearSelectedProduct() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedProduct = nil
}

// AddToCart increments the line for product by quantity, appending a new line
// when none exists. Non-positive quantities are ignored.
func (s *Store) AddToCart(product shopapi.Product, quantity int) {
	if quantity <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Cart {
		if s.state.Cart[i].Product.ID == product.ID {
			s.state.Cart[i].Quantity += quantity
			return
		}
	}
	s.state.Cart = append(s.state.Cart, CartItem{Product: cloneProduct(product), Quantity: quantity})
}

// UpdateCartQuantity sets the quantity of productID's line. A quantity of zero
// or less removes the line. Unknown ids are ignored.
func (s *Store) UpdateCartQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Cart {
		if s.state.Cart[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			s.state.Cart = removeAt(s.state.Cart, i)
			return
		}
		s.state.Cart[i].Quantity = quantity
		return
	}
}

// RemoveFromCart drops productID's line if present.
func (s *Store) RemoveFromCart(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Cart {
		if s.state.Cart[i].Product.ID == productID {
			s.state.Cart = removeAt(s.state.Cart, i)
			return
		}
	}
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Cart = nil
}

// CartTotal sums the discounted line totals. An empty cart totals zero.
func (s *Store) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cartTotal(s.state.Cart)
}

// CartCount returns the number of units across all lines.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.state.Cart {
		count += item.Quantity
	}
	return count
}

// Login records an authenticated session. A blank token or a user without an
// id leaves the session untouched.
func (s *Store) Login(user shopapi.User, token string) {
	token = strings.TrimSpace(token)
	if token == "" || user.ID == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user
	s.state.Auth = Auth{User: &u, Token: token, IsAuthenticated: true}
}

// Logout ends the session, clearing the cart when the store is configured to.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Auth = Auth{}
	if s.clearCartOnLogout {
		s.state.Cart = nil
	}
}

// SetCurrentPath records the path whose output is on screen.
func (s *Store) SetCurrentPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentPath = path
}

// CurrentPath returns the last rendered path.
func (s *Store) CurrentPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentPath
}

// CartTotal sums the discounted line totals of a snapshot.
func (s AppState) CartTotal() float64 {
	return cartTotal(s.Cart)
}

func cartTotal(items []CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

func removeAt(items []CartItem, i int) []CartItem {
	out := make([]CartItem, 0, len(items)-1)
	out = append(out, items[:i]...)
	out = append(out, items[i+1:]...)
	if len(out) == 0 {
		return nil
	}
	return out
}

func cloneProduct(p shopapi.Product) shopapi.Product {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}

func cloneProducts(items []shopapi.Product) []shopapi.Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]shopapi.Product, len(items))
	for i, p := range items {
		dup[i] = cloneProduct(p)
	}
	return dup
}

func cloneCart(items []CartItem) []CartItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]CartItem, len(items))
	for i, item := range items {
		dup[i] = CartItem{Product: cloneProduct(item.Product), Quantity: item.Quantity}
	}
	return dup
}
