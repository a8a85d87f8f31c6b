package shopapi

import "strings"

// Product mirrors a catalog entry returned by /products.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

// DiscountedPrice returns the unit price after the product discount.
func (p Product) DiscountedPrice() float64 {
	return p.Price * (1 - p.DiscountPercentage/100)
}

// LowStock reports whether fewer than ten units remain.
func (p Product) LowStock() bool {
	return p.Stock < 10
}

// ProductList mirrors the paged payload of /products and /products/search.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// User describes an authenticated shopper.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Username  string `json:"username"`
	Image     string `json:"image"`
}

// FullName joins first and last name, falling back to the username.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse accepts both the documented {user, token} envelope and the
// flattened user + accessToken shape dummyjson actually returns.
type loginResponse struct {
	User
	Nested      *User  `json:"user"`
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

func (r loginResponse) session() (User, string) {
	user := r.User
	if r.Nested != nil {
		user = *r.Nested
	}
	token := r.Token
	if token == "" {
		token = r.AccessToken
	}
	return user, token
}
