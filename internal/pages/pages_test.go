package pages

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shopfront/internal/apperr"
	"github.com/five82/shopfront/internal/router"
	"github.com/five82/shopfront/internal/shopapi"
	"github.com/five82/shopfront/internal/state"
)

type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	products    []shopapi.Product
	productsErr error
	categories  []string
	catErr      error
	product     map[int]shopapi.Product
	productErr  error
	search      func(q string) (shopapi.ProductList, error)
	login       func(u, p string) (shopapi.User, string, error)
	current     func(token string) (shopapi.User, error)
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) called(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func (f *fakeAPI) FetchProducts(_ context.Context, limit int) (shopapi.ProductList, error) {
	f.record("products")
	if f.productsErr != nil {
		return shopapi.ProductList{}, f.productsErr
	}
	items := f.products
	if limit < len(items) {
		items = items[:limit]
	}
	return shopapi.ProductList{Products: items, Total: len(f.products), Limit: limit}, nil
}

func (f *fakeAPI) FetchProduct(_ context.Context, id int) (shopapi.Product, error) {
	f.record("product")
	if f.productErr != nil {
		return shopapi.Product{}, f.productErr
	}
	p, ok := f.product[id]
	if !ok {
		return shopapi.Product{}, apperr.NotFound("product")
	}
	return p, nil
}

func (f *fakeAPI) SearchProducts(_ context.Context, q string) (shopapi.ProductList, error) {
	f.record("search:" + q)
	return f.search(q)
}

func (f *fakeAPI) FetchCategories(context.Context) ([]string, error) {
	f.record("categories")
	return f.categories, f.catErr
}

func (f *fakeAPI) Login(_ context.Context, u, p string) (shopapi.User, string, error) {
	f.record("login")
	return f.login(u, p)
}

func (f *fakeAPI) CurrentUser(_ context.Context, token string) (shopapi.User, error) {
	f.record("me")
	return f.current(token)
}

var (
	phone  = shopapi.Product{ID: 1, Title: "Phone", Brand: "Acme", Price: 100, DiscountPercentage: 10, Rating: 4.4, Stock: 50}
	lamp   = shopapi.Product{ID: 2, Title: "Lamp", Brand: "Glow", Price: 20, Rating: 3.1, Stock: 3, Images: []string{"a", "b"}}
	emily  = shopapi.User{ID: 7, FirstName: "Emily", LastName: "Johnson", Username: "emilys", Email: "emily@x.com"}
	failed = apperr.Network("fetch products", errors.New("connection refused"))
)

func newDeps(api *fakeAPI) Deps {
	return Deps{
		API:           api,
		Store:         state.New(),
		MarkdownStyle: "notty",
		NewOrderID:    func() string { return "order-1" },
	}.withDefaults()
}

func render(t *testing.T, page router.Page, target string, params map[string]string) router.View {
	t.Helper()
	u, err := url.Parse(target)
	require.NoError(t, err)
	return page.Render(context.Background(), router.Request{
		Path:   u.Path,
		Target: target,
		Params: params,
		Query:  u.Query(),
	})
}

// commitView runs the view's state changes the way the router does on commit.
func commitView(view router.View) router.View {
	if view.Apply != nil {
		view.Apply()
	}
	return view
}

func TestRegister_RouteTableOrder(t *testing.T) {
	r := router.New(router.SurfaceFunc(func(string, router.View) {}))
	require.NoError(t, Register(r, newDeps(&fakeAPI{})))

	tests := map[string]any{
		"/":                     &Home{},
		"/products":             &Catalog{},
		"/products/search?q=tv": &Search{},
		"/products/42":          &Detail{},
		"/checkout":             &Checkout{},
		"/checkout/complete":    &Complete{},
		"/signin":               &SignIn{},
		"/register":             &RegisterPage{},
		"/profile":              &Profile{},
		"/contact":              &Contact{},
		"/about":                &About{},
	}
	for target, want := range tests {
		page, _ := r.Resolve(target)
		assert.IsType(t, want, page, target)
	}

	_, req := r.Resolve("/products/42")
	assert.Equal(t, "42", req.Param("id"))
}

func TestRegister_RequiresCollaborators(t *testing.T) {
	r := router.New(router.SurfaceFunc(func(string, router.View) {}))
	assert.Error(t, Register(r, Deps{}))
}

func TestCatalog_ListsAndStoresProducts(t *testing.T) {
	api := &fakeAPI{products: []shopapi.Product{phone, lamp}}
	d := newDeps(api)

	view := render(t, &Catalog{deps: d}, "/products", nil)
	assert.Empty(t, d.Store.State().Products, "rendering alone must not touch the store")
	commitView(view)

	assert.Equal(t, "Products", view.Title)
	assert.Contains(t, view.Markup, "2 products available")
	assert.Contains(t, view.Markup, "Phone")
	assert.Contains(t, view.Markup, "$90.00")
	assert.Len(t, d.Store.State().Products, 2)
}

func TestCatalog_FailureRendersInlineError(t *testing.T) {
	d := newDeps(&fakeAPI{productsErr: failed})

	view := commitView(render(t, &Catalog{deps: d}, "/products", nil))

	assert.Contains(t, view.Markup, apperr.Describe(failed))
	assert.Contains(t, view.Markup, "Press r to retry")
	assert.Empty(t, d.Store.State().Products)
}

func TestHome_FetchesFeaturedAndCategories(t *testing.T) {
	api := &fakeAPI{products: []shopapi.Product{phone, lamp}, categories: []string{"beauty", "laptops"}}
	d := newDeps(api)

	view := commitView(render(t, &Home{deps: d}, "/", nil))

	assert.True(t, api.called("products"))
	assert.True(t, api.called("categories"))
	assert.Contains(t, view.Markup, "Categories (2)")
	assert.Contains(t, view.Markup, "beauty, laptops")
	assert.Len(t, d.Store.State().Products, 2)
}

func TestHome_AnyFailureIsAnError(t *testing.T) {
	api := &fakeAPI{products: []shopapi.Product{phone}, catErr: apperr.API("categories", 500)}
	d := newDeps(api)

	view := render(t, &Home{deps: d}, "/", nil)

	assert.Contains(t, view.Markup, "status 500")
	assert.Contains(t, view.Markup, "Press r to retry")
}

func TestSearch_EmptyQueryRedirects(t *testing.T) {
	api := &fakeAPI{}
	view := render(t, &Search{deps: newDeps(api)}, "/products/search?q=%20", nil)

	assert.Equal(t, PathProducts, view.Redirect)
	assert.False(t, api.called("search"))
}

func TestSearch_ResultsReplaceListing(t *testing.T) {
	api := &fakeAPI{search: func(q string) (shopapi.ProductList, error) {
		return shopapi.ProductList{Products: []shopapi.Product{lamp}, Total: 1}, nil
	}}
	d := newDeps(api)
	d.Store.SetProducts([]shopapi.Product{phone})

	view := render(t, &Search{deps: d}, SearchTarget("desk lamp"), nil)
	assert.Equal(t, phone.ID, d.Store.State().Products[0].ID)
	commitView(view)

	assert.True(t, api.called("search:desk lamp"))
	assert.Contains(t, view.Markup, `Results for "desk lamp"`)
	require.Len(t, d.Store.State().Products, 1)
	assert.Equal(t, lamp.ID, d.Store.State().Products[0].ID)
}

func TestSearch_NoMatches(t *testing.T) {
	api := &fakeAPI{search: func(string) (shopapi.ProductList, error) { return shopapi.ProductList{}, nil }}

	view := render(t, &Search{deps: newDeps(api)}, "/products/search?q=zzz", nil)

	assert.Contains(t, view.Markup, "No products match")
}

func TestSearchTarget(t *testing.T) {
	assert.Equal(t, PathProducts, SearchTarget("  "))
	assert.Equal(t, "/products/search?q=red+shoes", SearchTarget(" red shoes "))
	assert.Equal(t, "/products/12", ProductTarget(12))
}

func TestDetail_NonNumericIDIsNotFound(t *testing.T) {
	api := &fakeAPI{}
	for _, id := range []string{"abc", "0", "-3"} {
		view := render(t, &Detail{deps: newDeps(api)}, "/products/"+id, map[string]string{"id": id})
		assert.Equal(t, "Product not found", view.Title, id)
	}
	assert.False(t, api.called("product"))
}

func TestDetail_MissingProductIsNotFound(t *testing.T) {
	view := render(t, &Detail{deps: newDeps(&fakeAPI{})}, "/products/99", map[string]string{"id": "99"})
	assert.Equal(t, "Product not found", view.Title)
}

func TestDetail_SelectsProduct(t *testing.T) {
	api := &fakeAPI{product: map[int]shopapi.Product{2: lamp}}
	d := newDeps(api)

	view := render(t, &Detail{deps: d}, "/products/2", map[string]string{"id": "2"})
	assert.Nil(t, d.Store.State().SelectedProduct)
	commitView(view)

	assert.Equal(t, "Lamp", view.Title)
	assert.Contains(t, view.Markup, "3 available (low stock)")
	assert.Contains(t, view.Markup, "Images:")
	selected := d.Store.State().SelectedProduct
	require.NotNil(t, selected)
	assert.Equal(t, 2, selected.ID)
}

func TestDetail_NetworkFailureOffersRetry(t *testing.T) {
	api := &fakeAPI{productErr: failed}

	view := render(t, &Detail{deps: newDeps(api)}, "/products/1", map[string]string{"id": "1"})

	assert.Contains(t, view.Markup, "Press r to retry")
}

func TestSummarize(t *testing.T) {
	sum := Summarize([]state.CartItem{{Product: phone, Quantity: 2}})

	assert.InDelta(t, 180.0, sum.Subtotal, 1e-9)
	assert.InDelta(t, 9.99, sum.Shipping, 1e-9)
	assert.InDelta(t, 14.4, sum.Tax, 1e-9)
	assert.InDelta(t, 204.39, sum.Total, 1e-9)
}

func TestCheckout_RendersFromStore(t *testing.T) {
	d := newDeps(&fakeAPI{})
	page := &Checkout{deps: d}

	empty := render(t, page, "/checkout", nil)
	assert.Contains(t, empty.Markup, "Your cart is empty")

	d.Store.AddToCart(phone, 2)
	full := render(t, page, "/checkout", nil)
	assert.Contains(t, full.Markup, "2 × $90.00")
	assert.Contains(t, full.Markup, "$180.00")
	assert.Contains(t, full.Markup, "$9.99")
	assert.Contains(t, full.Markup, "$204.39")

	again := render(t, page, "/checkout", nil)
	assert.Equal(t, full, again)
}

func TestComplete_ShowsOrderNumber(t *testing.T) {
	view := render(t, Complete{}, "/checkout/complete?order=abc-123", nil)
	assert.Contains(t, view.Markup, "abc-123")
}

func TestProfile_AnonymousRedirectsToSignIn(t *testing.T) {
	api := &fakeAPI{}
	view := render(t, &Profile{deps: newDeps(api)}, "/profile", nil)

	assert.Equal(t, PathSignIn, view.Redirect)
	assert.False(t, api.called("me"))
}

func TestProfile_RefreshesUser(t *testing.T) {
	updated := emily
	updated.Phone = "+1 555"
	api := &fakeAPI{current: func(token string) (shopapi.User, error) {
		assert.Equal(t, "tok", token)
		return updated, nil
	}}
	d := newDeps(api)
	d.Store.Login(emily, "tok")

	view := commitView(render(t, &Profile{deps: d}, "/profile", nil))

	assert.Contains(t, view.Markup, "Emily Johnson")
	assert.Contains(t, view.Markup, "+1 555")
	assert.Contains(t, view.Markup, "Order #12345")
	assert.Equal(t, "+1 555", d.Store.State().Auth.User.Phone)
}

func TestProfile_FallsBackToStoredUser(t *testing.T) {
	api := &fakeAPI{current: func(string) (shopapi.User, error) { return shopapi.User{}, failed }}
	d := newDeps(api)
	d.Store.Login(emily, "tok")

	view := commitView(render(t, &Profile{deps: d}, "/profile", nil))

	assert.Contains(t, view.Markup, "Emily Johnson")
	assert.Contains(t, view.Markup, "could not be reached")
	assert.True(t, d.Store.State().Auth.IsAuthenticated)
}

func TestSessionStatus(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	sign := func(exp time.Time) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)
		return token
	}

	assert.Equal(t, "expires in 30m0s", sessionStatus(sign(now.Add(30*time.Minute)), now))
	assert.True(t, strings.HasPrefix(sessionStatus(sign(now.Add(-time.Hour)), now), "expired "))
	assert.Equal(t, "active", sessionStatus("not-a-jwt", now))
}

func TestAbout_RendersMarkdown(t *testing.T) {
	view := render(t, &About{deps: newDeps(&fakeAPI{})}, "/about", nil)

	assert.Equal(t, "About", view.Title)
	assert.Contains(t, view.Markup, "About Shopfront")
	assert.NotContains(t, view.Markup, "| --- |")
}

func TestNotFound(t *testing.T) {
	view := render(t, NotFound{}, "/nowhere", nil)
	assert.Equal(t, "Not Found", view.Title)
	assert.Contains(t, view.Markup, "/nowhere")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$180.00", FormatPrice(180))
	assert.Equal(t, "$1,234.50", FormatPrice(1234.5))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★★☆ 4.4", Stars(4.4))
	assert.Equal(t, "★★★★★ 7.0", Stars(7))
	assert.Equal(t, "☆☆☆☆☆ 0.0", Stars(0))
}
