package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/five82/shopfront/internal/apperr"
)

// API defines the collaborator calls pages depend on.
// This interface is implemented by *Client and can be replaced in tests.
type API interface {
	FetchProducts(ctx context.Context, limit int) (ProductList, error)
	FetchProduct(ctx context.Context, id int) (Product, error)
	SearchProducts(ctx context.Context, query string) (ProductList, error)
	FetchCategories(ctx context.Context) ([]string, error)
	Login(ctx context.Context, username, password string) (User, string, error)
	CurrentUser(ctx context.Context, token string) (User, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the storefront REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	inflight  singleflight.Group
}

const (
	defaultBaseURL   = "https://dummyjson.com"
	defaultUserAgent = "shopfront/0.1"
	defaultTimeout   = 5 * time.Second
	defaultLimit     = 30
)

// NewClient builds a Client for baseURL. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchProducts retrieves the first limit products of the catalog.
func (c *Client) FetchProducts(ctx context.Context, limit int) (ProductList, error) {
	if c == nil {
		return ProductList{}, fmt.Errorf("client is nil")
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	values := url.Values{}
	values.Set("limit", strconv.Itoa(limit))
	rel := &url.URL{Path: "/products", RawQuery: values.Encode()}
	var payload ProductList
	if err := c.doURL(ctx, http.MethodGet, rel, nil, "", &payload); err != nil {
		return ProductList{}, err
	}
	return payload, nil
}

// FetchProduct retrieves a single product. Concurrent calls for the same id
// share one request.
func (c *Client) FetchProduct(ctx context.Context, id int) (Product, error) {
	if c == nil {
		return Product{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return Product{}, apperr.NotFound(fmt.Sprintf("product %d", id))
	}
	path := "/products/" + strconv.Itoa(id)
	// The shared request must outlive any one caller; the http client timeout
	// still bounds it.
	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(path, func() (any, error) {
		var payload Product
		if err := c.do(shared, http.MethodGet, path, &payload); err != nil {
			return Product{}, err
		}
		return payload, nil
	})
	select {
	case <-ctx.Done():
		return Product{}, apperr.Network("api "+path+" cancelled", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return Product{}, res.Err
		}
		return res.Val.(Product), nil
	}
}

// SearchProducts runs a full-text catalog search.
func (c *Client) SearchProducts(ctx context.Context, query string) (ProductList, error) {
	if c == nil {
		return ProductList{}, fmt.Errorf("client is nil")
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return ProductList{}, apperr.Validation("search query is empty")
	}
	values := url.Values{}
	values.Set("q", q)
	rel := &url.URL{Path: "/products/search", RawQuery: values.Encode()}
	var payload ProductList
	if err := c.doURL(ctx, http.MethodGet, rel, nil, "", &payload); err != nil {
		return ProductList{}, err
	}
	return payload, nil
}

// FetchCategories lists the catalog's category slugs.
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []string
	if err := c.do(ctx, http.MethodGet, "/products/category-list", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Login exchanges credentials for a user and session token.
func (c *Client) Login(ctx context.Context, username, password string) (User, string, error) {
	if c == nil {
		return User{}, "", fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return User{}, "", apperr.Validation("Username and password are required")
	}
	rel := &url.URL{Path: "/auth/login"}
	var payload loginResponse
	body := loginRequest{Username: strings.TrimSpace(username), Password: password}
	if err := c.doURL(ctx, http.MethodPost, rel, body, "", &payload); err != nil {
		return User{}, "", err
	}
	user, token := payload.session()
	if token == "" {
		return User{}, "", apperr.API("login response missing token", http.StatusOK)
	}
	return user, token, nil
}

// CurrentUser fetches the profile behind token.
func (c *Client) CurrentUser(ctx context.Context, token string) (User, error) {
	if c == nil {
		return User{}, fmt.Errorf("client is nil")
	}
	if token == "" {
		return User{}, apperr.Validation("token required")
	}
	rel := &url.URL{Path: "/auth/me"}
	var payload User
	if err := c.doURL(ctx, http.MethodGet, rel, nil, token, &payload); err != nil {
		return User{}, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, nil, "", dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body any, token string, dest any) error {
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + rel.Path
	reqURL.RawQuery = rel.RawQuery

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Network("api "+rel.Path+" unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return &apperr.Error{Kind: apperr.KindNotFound, Message: "api " + rel.Path, Status: resp.StatusCode}
	}
	if resp.StatusCode >= 400 {
		return apperr.API(fmt.Sprintf("api %s returned status %d", rel.String(), resp.StatusCode), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return apperr.Network("read response", err)
		}
		return &apperr.Error{Kind: apperr.KindAPI, Message: "decode response", Status: resp.StatusCode, Err: err}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	// A path prefix such as /api is kept; endpoints are joined onto it.
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
