package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/five82/shopfront/internal/apperr"
	"github.com/five82/shopfront/internal/router"
	"github.com/five82/shopfront/internal/shopapi"
	"github.com/five82/shopfront/internal/state"
)

// Route paths shared by pages, forms and the UI.
const (
	PathHome     = "/"
	PathProducts = "/products"
	PathSearch   = "/products/search"
	PathProduct  = "/products/:id"
	PathCheckout = "/checkout"
	PathComplete = "/checkout/complete"
	PathSignIn   = "/signin"
	PathRegister = "/register"
	PathProfile  = "/profile"
	PathContact  = "/contact"
	PathAbout    = "/about"
)

const (
	defaultCatalogLimit = 30
	defaultWidth        = 80
	defaultMarkdown     = "dark"
)

// Deps are the collaborators every page and form shares.
type Deps struct {
	API   shopapi.API
	Store *state.Store

	Logger         *zap.Logger
	CatalogLimit   int
	SimulatedDelay time.Duration
	// MarkdownStyle names the glamour style for markdown pages ("dark",
	// "light", "notty").
	MarkdownStyle string
	Width         int

	Now        func() time.Time
	NewOrderID func() string
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.CatalogLimit <= 0 {
		d.CatalogLimit = defaultCatalogLimit
	}
	if d.Width <= 0 {
		d.Width = defaultWidth
	}
	if strings.TrimSpace(d.MarkdownStyle) == "" {
		d.MarkdownStyle = defaultMarkdown
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewOrderID == nil {
		d.NewOrderID = func() string { return uuid.NewString() }
	}
	return d
}

// Register installs the storefront route table on r. Order matters: the
// literal /products/search must precede /products/:id.
func Register(r *router.Router, d Deps) error {
	if d.API == nil || d.Store == nil {
		return fmt.Errorf("register pages: api and store are required")
	}
	d = d.withDefaults()

	table := []struct {
		template string
		page     router.Page
	}{
		{PathHome, &Home{deps: d}},
		{PathProducts, &Catalog{deps: d}},
		{PathSearch, &Search{deps: d}},
		{PathProduct, &Detail{deps: d}},
		{PathCheckout, &Checkout{deps: d}},
		{PathComplete, &Complete{}},
		{PathSignIn, &SignIn{deps: d}},
		{PathRegister, &RegisterPage{}},
		{PathProfile, &Profile{deps: d}},
		{PathContact, &Contact{}},
		{PathAbout, &About{deps: d}},
	}
	for _, entry := range table {
		if err := r.Handle(entry.template, entry.page); err != nil {
			return err
		}
	}
	return nil
}

// NotFound renders unmatched paths.
type NotFound struct{}

// Render implements router.Page.
func (NotFound) Render(_ context.Context, req router.Request) router.View {
	return notFoundView(req.Path)
}

func notFoundView(path string) router.View {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Page not found"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Nothing lives at %s.\n\n", path)
	b.WriteString(hintStyle.Render("Press 2 to browse products or 1 to go home."))
	return router.View{Title: "Not Found", Markup: b.String()}
}

// errorView is the inline error state pages show when a collaborator fails.
func errorView(logger *zap.Logger, title string, err error) router.View {
	logger.Warn("page render failed", zap.String("page", title), zap.Error(err),
		zap.String("kind", apperr.KindOf(err).String()))

	var b strings.Builder
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(errorStyle.Render(apperr.Describe(err)))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("Press r to retry."))
	return router.View{Title: title, Markup: b.String()}
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	hintStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	strikeStyle  = lipgloss.NewStyle().Strikethrough(true).Faint(true)
)

// FormatPrice renders an amount in US dollars with thousands separators.
func FormatPrice(amount float64) string {
	return message.NewPrinter(language.English).Sprintf("$%.2f", amount)
}

// Stars draws a five-star rating bar followed by the numeric rating.
func Stars(rating float64) string {
	full := int(rating + 0.5)
	if full < 0 {
		full = 0
	}
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full) + fmt.Sprintf(" %.1f", rating)
}

func productLine(index int, p shopapi.Product) string {
	price := FormatPrice(p.DiscountedPrice())
	if p.DiscountPercentage > 0 {
		price = strikeStyle.Render(FormatPrice(p.Price)) + " " + price
	}
	brand := p.Brand
	if brand == "" {
		brand = p.Category
	}
	return fmt.Sprintf("%3d. %s  %s  %s  %s", index+1, p.Title, hintStyle.Render(brand), price, Stars(p.Rating))
}
