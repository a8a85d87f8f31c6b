package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/five82/shopfront/internal/router"
	"github.com/five82/shopfront/internal/state"
)

const (
	// ShippingFee is the flat shipping charge per order.
	ShippingFee = 9.99
	// TaxRate applies to the subtotal only.
	TaxRate = 0.08
)

// Summary is the price breakdown of an order.
type Summary struct {
	Subtotal float64
	Shipping float64
	Tax      float64
	Total    float64
}

// Summarize prices a cart.
func Summarize(items []state.CartItem) Summary {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	tax := subtotal * TaxRate
	return Summary{
		Subtotal: subtotal,
		Shipping: ShippingFee,
		Tax:      tax,
		Total:    subtotal + ShippingFee + tax,
	}
}

// Checkout shows the cart and the order summary.
type Checkout struct {
	deps Deps
}

// Render implements router.Page.
func (c *Checkout) Render(_ context.Context, _ router.Request) router.View {
	snapshot := c.deps.Store.State()

	var b strings.Builder
	b.WriteString(headingStyle.Render("Checkout"))
	b.WriteString("\n\n")
	if len(snapshot.Cart) == 0 {
		b.WriteString("Your cart is empty.\n\n")
		b.WriteString(hintStyle.Render("Press 2 to browse products."))
		return router.View{Title: "Checkout", Markup: b.String()}
	}

	b.WriteString(labelStyle.Render("Order Summary"))
	b.WriteString("\n")
	for i, item := range snapshot.Cart {
		fmt.Fprintf(&b, "%3d. %s  %d × %s  %s\n",
			i+1,
			item.Product.Title,
			item.Quantity,
			FormatPrice(item.Product.DiscountedPrice()),
			labelStyle.Render(FormatPrice(item.LineTotal())))
	}

	sum := Summarize(snapshot.Cart)
	b.WriteString("\n")
	for _, row := range []struct {
		label  string
		amount float64
	}{
		{"Subtotal:", sum.Subtotal},
		{"Shipping:", sum.Shipping},
		{"Tax:", sum.Tax},
	} {
		fmt.Fprintf(&b, "%-10s %s\n", row.label, FormatPrice(row.amount))
	}
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render(fmt.Sprintf("%-10s", "Total:")), labelStyle.Render(FormatPrice(sum.Total)))

	b.WriteString(hintStyle.Render("j/k select · +/- quantity · x remove · C clear · enter place order"))
	return router.View{Title: "Checkout", Markup: b.String()}
}

// Complete confirms a placed order.
type Complete struct{}

// Render implements router.Page.
func (Complete) Render(_ context.Context, req router.Request) router.View {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Thank you for your order!"))
	b.WriteString("\n\n")
	if order := strings.TrimSpace(req.Query.Get("order")); order != "" {
		fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Order number:"), order)
	}
	b.WriteString("A confirmation has been sent to your email.\n\n")
	b.WriteString(hintStyle.Render("Press 2 to keep shopping."))
	return router.View{Title: "Order placed", Markup: b.String()}
}
