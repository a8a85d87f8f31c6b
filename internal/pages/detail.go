package pages

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/five82/shopfront/internal/apperr"
	"github.com/five82/shopfront/internal/router"
	"github.com/five82/shopfront/internal/shopapi"
)

// Detail shows one product and makes it the selected product.
type Detail struct {
	deps Deps
}

// Render implements router.Page.
func (d *Detail) Render(ctx context.Context, req router.Request) router.View {
	id, err := strconv.Atoi(req.Param("id"))
	if err != nil || id <= 0 {
		return productNotFound()
	}

	product, err := d.deps.API.FetchProduct(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return productNotFound()
		}
		return errorView(d.deps.Logger, "Product", err)
	}
	return router.View{
		Title:  product.Title,
		Markup: renderProduct(product),
		Apply:  func() { d.deps.Store.SetSelectedProduct(product) },
	}
}

func productNotFound() router.View {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Product not found"))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("Press 2 to go back to products."))
	return router.View{Title: "Product not found", Markup: b.String()}
}

func renderProduct(p shopapi.Product) string {
	var b strings.Builder
	b.WriteString(hintStyle.Render("Products › " + p.Title))
	b.WriteString("\n\n")

	meta := []string{}
	if p.Category != "" {
		meta = append(meta, p.Category)
	}
	if p.Brand != "" {
		meta = append(meta, p.Brand)
	}
	if len(meta) > 0 {
		b.WriteString(hintStyle.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}
	b.WriteString(headingStyle.Render(p.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s/5\n\n", Stars(p.Rating))

	if p.DiscountPercentage > 0 {
		fmt.Fprintf(&b, "%s  -%d%%\n", strikeStyle.Render(FormatPrice(p.Price)), int(math.Round(p.DiscountPercentage)))
	}
	b.WriteString(labelStyle.Render(FormatPrice(p.DiscountedPrice())))
	b.WriteString("\n\n")

	if p.Description != "" {
		b.WriteString(p.Description)
		b.WriteString("\n\n")
	}

	stock := fmt.Sprintf("%d available", p.Stock)
	if p.LowStock() {
		stock = errorStyle.Render(stock + " (low stock)")
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Stock:"), stock)
	if n := len(p.Images); n > 0 {
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Images:"), n)
	}
	b.WriteString("\n")
	if p.Stock == 0 {
		b.WriteString(errorStyle.Render("Out of stock"))
	} else {
		b.WriteString(hintStyle.Render("+/- quantity · a add to cart · </> images · backspace back"))
	}
	return b.String()
}
