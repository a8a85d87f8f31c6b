package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/five82/shopfront/internal/router"
)

// SignIn shows the sign-in instructions. The form itself is drawn by the UI.
type SignIn struct {
	deps Deps
}

// Render implements router.Page.
func (s *SignIn) Render(_ context.Context, _ router.Request) router.View {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Sign In"))
	b.WriteString("\n\n")

	if auth := s.deps.Store.State().Auth; auth.IsAuthenticated {
		fmt.Fprintf(&b, "You are signed in as %s.\n\n", auth.User.FullName())
		b.WriteString(hintStyle.Render("Press 6 for your profile or o to sign out."))
		return router.View{Title: "Sign In", Markup: b.String()}
	}

	b.WriteString("Welcome back! Sign in with your store account.\n\n")
	b.WriteString(hintStyle.Render("Demo account: emilys / emilyspass"))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("Press enter to open the form. New here? Press 5 to register."))
	return router.View{Title: "Sign In", Markup: b.String()}
}

// RegisterPage shows the registration instructions.
type RegisterPage struct{}

// Render implements router.Page.
func (RegisterPage) Render(_ context.Context, _ router.Request) router.View {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Create Account"))
	b.WriteString("\n\n")
	b.WriteString("Join us for faster checkout and order tracking.\n\n")
	b.WriteString(hintStyle.Render("Press enter to open the form."))
	return router.View{Title: "Register", Markup: b.String()}
}

type pastOrder struct {
	id     string
	date   string
	status string
	items  int
	total  float64
}

var orderHistory = []pastOrder{
	{"12345", "2024-12-15", "Delivered", 3, 89.97},
	{"12344", "2024-12-10", "Shipped", 1, 29.99},
	{"12343", "2024-12-05", "Processing", 2, 159.98},
}

// Profile shows the signed-in shopper. Anonymous visitors are sent to the
// sign-in page.
type Profile struct {
	deps Deps
}

// Render implements router.Page.
func (p *Profile) Render(ctx context.Context, _ router.Request) router.View {
	auth := p.deps.Store.State().Auth
	if !auth.IsAuthenticated {
		return router.View{Redirect: PathSignIn}
	}

	user := *auth.User
	stale := false
	var apply func()
	fresh, err := p.deps.API.CurrentUser(ctx, auth.Token)
	if err != nil {
		p.deps.Logger.Info("profile refresh failed; using stored user", zap.Error(err))
		stale = true
	} else if fresh.ID == user.ID {
		user = fresh
		apply = func() { p.deps.Store.Login(fresh, auth.Token) }
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(user.FullName()))
	b.WriteString("\n")
	if user.Username != "" {
		b.WriteString(hintStyle.Render("@" + user.Username))
		b.WriteString("\n")
	}
	if stale {
		b.WriteString(hintStyle.Render("Showing saved details; the store could not be reached."))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Account Information"))
	b.WriteString("\n")
	for _, row := range [][2]string{
		{"First Name", user.FirstName},
		{"Last Name", user.LastName},
		{"Email", user.Email},
		{"Phone", user.Phone},
	} {
		fmt.Fprintf(&b, "%-11s %s\n", row[0]+":", row[1])
	}
	fmt.Fprintf(&b, "%-11s %s\n\n", "Session:", sessionStatus(auth.Token, p.deps.Now()))

	b.WriteString(labelStyle.Render("Order History"))
	b.WriteString("\n")
	for _, order := range orderHistory {
		fmt.Fprintf(&b, "Order #%s  %s  %-10s  %d items  %s\n",
			order.id, order.date, order.status, order.items, FormatPrice(order.total))
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("o sign out"))
	return router.View{Title: "Profile", Markup: b.String(), Apply: apply}
}

// sessionStatus describes when the session token expires. The token is only
// decoded, never verified: the signing key belongs to the store.
func sessionStatus(token string, now time.Time) string {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "active"
	}
	if claims.ExpiresAt == nil {
		return "active"
	}
	expires := claims.ExpiresAt.Time
	if !expires.After(now) {
		return "expired " + expires.Format(time.RFC1123)
	}
	return fmt.Sprintf("expires in %s", expires.Sub(now).Round(time.Minute))
}
