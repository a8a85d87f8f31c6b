package pages

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/five82/shopfront/internal/router"
	"github.com/five82/shopfront/internal/shopapi"
)

const homeFeatured = 4

// Home shows a few featured products next to the category list. Both are
// fetched concurrently.
type Home struct {
	deps Deps
}

// Render implements router.Page.
func (h *Home) Render(ctx context.Context, _ router.Request) router.View {
	var (
		featured   shopapi.ProductList
		categories []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := h.deps.API.FetchProducts(gctx, homeFeatured)
		featured = list
		return err
	})
	g.Go(func() error {
		names, err := h.deps.API.FetchCategories(gctx)
		categories = names
		return err
	})
	if err := g.Wait(); err != nil {
		return errorView(h.deps.Logger, "Home", err)
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Welcome to Shopfront"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Featured"))
	b.WriteString("\n")
	for i, p := range featured.Products {
		b.WriteString(productLine(i, p))
		b.WriteString("\n")
	}
	if len(categories) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("Categories (%d)", len(categories))))
		b.WriteString("\n")
		b.WriteString(strings.Join(categories, ", "))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("j/k select · enter open · 2 all products · / search"))
	return router.View{Title: "Home", Markup: b.String(), Apply: h.deps.showListing(featured.Products)}
}

// Catalog lists the first page of products and makes it the current listing.
type Catalog struct {
	deps Deps
}

// Render implements router.Page.
func (c *Catalog) Render(ctx context.Context, _ router.Request) router.View {
	list, err := c.deps.API.FetchProducts(ctx, c.deps.CatalogLimit)
	if err != nil {
		return errorView(c.deps.Logger, "Products", err)
	}
	apply := c.deps.showListing(list.Products)

	if len(list.Products) == 0 {
		return router.View{Title: "Products", Markup: "There are no products.", Apply: apply}
	}
	return router.View{
		Title:  "Products",
		Markup: listing("Our Products", fmt.Sprintf("%d products available", len(list.Products)), list.Products),
		Apply:  apply,
	}
}

// Search shows results for the q query parameter. The results replace the
// current listing; an empty query falls back to the full catalog.
type Search struct {
	deps Deps
}

// Render implements router.Page.
func (s *Search) Render(ctx context.Context, req router.Request) router.View {
	query := strings.TrimSpace(req.Query.Get("q"))
	if query == "" {
		return router.View{Redirect: PathProducts}
	}

	list, err := s.deps.API.SearchProducts(ctx, query)
	if err != nil {
		return errorView(s.deps.Logger, "Search", err)
	}
	apply := s.deps.showListing(list.Products)

	title := fmt.Sprintf("Results for %q", query)
	if len(list.Products) == 0 {
		return router.View{
			Title:  "Search",
			Markup: headingStyle.Render(title) + "\n\nNo products match your search.",
			Apply:  apply,
		}
	}
	return router.View{
		Title:  "Search",
		Markup: listing(title, fmt.Sprintf("%d of %d matches", len(list.Products), list.Total), list.Products),
		Apply:  apply,
	}
}

// SearchTarget builds the route for a search query.
func SearchTarget(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return PathProducts
	}
	return PathSearch + "?q=" + url.QueryEscape(query)
}

// ProductTarget builds the detail route for a product id.
func ProductTarget(id int) string {
	return fmt.Sprintf("/products/%d", id)
}

// showListing makes products the current listing once the page commits.
func (d Deps) showListing(products []shopapi.Product) func() {
	return func() { d.Store.SetProducts(products) }
}

func listing(title, count string, products []shopapi.Product) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(count))
	b.WriteString("\n\n")
	for i, p := range products {
		b.WriteString(productLine(i, p))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("j/k select · enter open · a add to cart · / search"))
	return b.String()
}
