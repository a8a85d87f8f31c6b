// Package state holds the single in-memory application state of shopfront.
//
// # Overview
//
// The Store owns the catalog cache, the cart, the auth session, the product
// selected by the detail view and the path currently on screen. Pages and the
// router receive the same *Store at startup; nothing else keeps a copy of this
// data. The Store never calls back into the router or pages.
//
// # Core Types
//
// Store:
//   - Created once with New and mutated in place for the life of the session
//   - Uses sync.RWMutex; bubbletea commands and router renders run on goroutines
//   - Every operation holds the lock for its whole body, so no reader sees an
//     intermediate state (Login sets user, token and the flag together)
//
// AppState:
//   - Deep copy returned by State()
//   - Slices, the user and the selected product are cloned; callers may keep
//     or modify the copy without affecting the Store
//
// # Cart Rules
//
//	store.AddToCart(p, 2)          → appends a line, or adds 2 to p's line
//	store.AddToCart(p, 0)          → ignored
//	store.UpdateCartQuantity(id, 0) → removes the line
//	store.RemoveFromCart(unknown)  → ignored
//
// A product id appears at most once in the cart and every quantity is >= 1.
// CartTotal sums price × (1 − discount/100) × quantity and is 0 when empty.
//
// # Session Rules
//
// Login ignores a blank token or a user without an id, so IsAuthenticated is
// never true without both. Logout clears user and token and, unless the store
// was built with WithClearCartOnLogout(false), empties the cart.
//
// # Usage Example
//
//	store := state.New(state.WithClearCartOnLogout(cfg.ClearCartOnLogout))
//	store.SetProducts(list.Products)
//	store.AddToCart(list.Products[0], 1)
//	fmt.Println(store.CartTotal())
package state
