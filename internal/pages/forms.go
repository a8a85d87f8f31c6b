package pages

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/shopfront/internal/apperr"
)

// Field is one input of a form.
type Field struct {
	Key      string
	Label    string
	Secret   bool
	Optional bool
}

// Values holds submitted field values by key.
type Values map[string]string

// Outcome tells the caller what to do after a successful submit. Next, when
// set, is the path to navigate to; Notice is a message to show.
type Outcome struct {
	Next   string
	Notice string
}

// Form describes an input form attached to a page.
type Form struct {
	Title  string
	Fields []Field
	submit func(ctx context.Context, values Values) (Outcome, error)
}

// Submit validates required fields and runs the form's action. Failures are
// apperr errors suitable for apperr.Describe.
func (f Form) Submit(ctx context.Context, values Values) (Outcome, error) {
	trimmed := make(Values, len(values))
	for k, v := range values {
		trimmed[k] = strings.TrimSpace(v)
	}
	for _, field := range f.Fields {
		if !field.Optional && trimmed[field.Key] == "" {
			return Outcome{}, apperr.Validation("Please fill in " + field.Label + ".")
		}
	}
	return f.submit(ctx, trimmed)
}

// Forms builds the forms of the storefront pages.
type Forms struct {
	deps Deps
}

// NewForms returns the form set for d.
func NewForms(d Deps) *Forms {
	return &Forms{deps: d.withDefaults()}
}

// For returns the form shown on path, if that page has one.
func (f *Forms) For(path string) (Form, bool) {
	switch path {
	case PathSignIn:
		if f.deps.Store.State().Auth.IsAuthenticated {
			return Form{}, false
		}
		return Form{
			Title: "Sign In",
			Fields: []Field{
				{Key: "username", Label: "Username"},
				{Key: "password", Label: "Password", Secret: true},
			},
			submit: f.signIn,
		}, true
	case PathRegister:
		return Form{
			Title: "Create Account",
			Fields: []Field{
				{Key: "firstName", Label: "First Name"},
				{Key: "lastName", Label: "Last Name"},
				{Key: "email", Label: "Email"},
				{Key: "username", Label: "Username"},
				{Key: "password", Label: "Password", Secret: true},
				{Key: "confirmPassword", Label: "Confirm Password", Secret: true},
			},
			submit: f.register,
		}, true
	case PathContact:
		return Form{
			Title: "Send us a Message",
			Fields: []Field{
				{Key: "firstName", Label: "First Name"},
				{Key: "lastName", Label: "Last Name"},
				{Key: "email", Label: "Email"},
				{Key: "subject", Label: "Subject"},
				{Key: "message", Label: "Message"},
			},
			submit: f.contact,
		}, true
	case PathCheckout:
		if len(f.deps.Store.State().Cart) == 0 {
			return Form{}, false
		}
		return Form{
			Title: "Shipping Information",
			Fields: []Field{
				{Key: "firstName", Label: "First Name"},
				{Key: "lastName", Label: "Last Name"},
				{Key: "address", Label: "Address"},
				{Key: "city", Label: "City"},
				{Key: "state", Label: "State"},
				{Key: "zipCode", Label: "ZIP Code"},
			},
			submit: f.placeOrder,
		}, true
	default:
		return Form{}, false
	}
}

func (f *Forms) signIn(ctx context.Context, v Values) (Outcome, error) {
	user, token, err := f.deps.API.Login(ctx, v["username"], v["password"])
	if err != nil {
		if apperr.Is(err, apperr.KindAPI) {
			return Outcome{}, apperr.Validation("Invalid username or password.")
		}
		return Outcome{}, err
	}
	f.deps.Store.Login(user, token)
	f.deps.Logger.Info("signed in", zap.Int("user_id", user.ID))
	return Outcome{Next: PathProducts, Notice: "Welcome back, " + user.FullName() + "!"}, nil
}

func (f *Forms) register(ctx context.Context, v Values) (Outcome, error) {
	if !strings.Contains(v["email"], "@") {
		return Outcome{}, apperr.Validation("Please enter a valid email address.")
	}
	if v["password"] != v["confirmPassword"] {
		return Outcome{}, apperr.Validation("Passwords do not match.")
	}
	if err := f.pause(ctx); err != nil {
		return Outcome{}, err
	}
	return Outcome{Next: PathSignIn, Notice: "Account created successfully! Please sign in."}, nil
}

func (f *Forms) contact(ctx context.Context, v Values) (Outcome, error) {
	if !strings.Contains(v["email"], "@") {
		return Outcome{}, apperr.Validation("Please enter a valid email address.")
	}
	if err := f.pause(ctx); err != nil {
		return Outcome{}, err
	}
	return Outcome{Notice: "Thank you for your message! We'll get back to you within 24 hours."}, nil
}

func (f *Forms) placeOrder(ctx context.Context, _ Values) (Outcome, error) {
	if len(f.deps.Store.State().Cart) == 0 {
		return Outcome{}, apperr.Validation("Your cart is empty.")
	}
	if err := f.pause(ctx); err != nil {
		return Outcome{}, err
	}
	order := f.deps.NewOrderID()
	f.deps.Store.ClearCart()
	f.deps.Logger.Info("order placed", zap.String("order", order))
	return Outcome{Next: PathComplete + "?order=" + url.QueryEscape(order)}, nil
}

// pause stands in for the latency of a backend the demo does not have.
func (f *Forms) pause(ctx context.Context) error {
	if f.deps.SimulatedDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(f.deps.SimulatedDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return apperr.Network("request cancelled", ctx.Err())
	}
}
