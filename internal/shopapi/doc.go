// Package shopapi provides an HTTP client for the storefront REST API.
//
// # Overview
//
// The storefront catalog and authentication live behind a public demo API
// (dummyjson.com by default). This package owns the wire types and the calls
// shopfront makes against it; pages depend on the API interface so tests can
// substitute an in-memory fake.
//
// # Architecture
//
//   - client.go: HTTP client, request construction and failure classification
//   - types.go: Product, User and list payloads mirroring the API schema
//
// # Client Usage
//
//	client, err := shopapi.NewClient("https://dummyjson.com", 5*time.Second)
//	if err != nil {
//		return fmt.Errorf("init api client: %w", err)
//	}
//
//	list, err := client.FetchProducts(ctx, 30)
//	product, err := client.FetchProduct(ctx, 42)
//	user, token, err := client.Login(ctx, "emilys", "emilyspass")
//
// # API Endpoints
//
//   - GET /products?limit=N: first N catalog entries plus the total count
//   - GET /products/{id}: a single product
//   - GET /products/search?q=...: full-text search
//   - GET /products/category-list: category slugs
//   - POST /auth/login: credentials for {user, token}
//   - GET /auth/me: the profile behind a bearer token
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and deadlines
//   - Set Accept: application/json and User-Agent: shopfront/0.1
//   - Run under the http.Client timeout passed to NewClient (default 5s)
//
// Concurrent FetchProduct calls for the same id are collapsed into one request
// with singleflight, so rapid re-navigation to a detail page does not fan out.
//
// # Error Handling
//
// Failures are returned as *apperr.Error values:
//
//   - Transport failures (refused, DNS, timeout): apperr.KindNetwork
//   - HTTP 404: apperr.KindNotFound with the status attached
//   - Any other status >= 400: apperr.KindAPI with the status attached
//   - Undecodable bodies: apperr.KindAPI wrapping the decode error
//   - Blank search queries or credentials: apperr.KindValidation, no request
//
// # Login Payloads
//
// The documented login contract is {user, token}; the live service returns the
// user fields flattened next to an accessToken. Both shapes are accepted.
package shopapi
