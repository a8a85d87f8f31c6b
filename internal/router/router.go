package router

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Request is what a page receives when its route is resolved.
type Request struct {
	// Path is the matched path without its query string.
	Path string
	// Target is the path as navigated to, query included.
	Target string
	// Params holds template placeholder values, e.g. "id" for /products/:id.
	Params map[string]string
	// Query is the parsed query string.
	Query url.Values
	// Nav holds the extra params passed to Navigate.
	Nav map[string]string
}

// Param returns a template placeholder value.
func (r Request) Param(name string) string {
	return r.Params[name]
}

// View is a page's rendered output.
type View struct {
	Title  string
	Markup string
	// Redirect, when set, replaces the current history entry with this path
	// and renders it instead of Markup.
	Redirect string
	// Apply, when set, runs only if the view commits, just before it reaches
	// the surface. Pages put their state writes here so a superseded render
	// leaves no trace. It runs with the router locked and must not call back
	// into the router.
	Apply func()
}

// Page renders a route. Render may block on I/O; it must return a View for
// every outcome, including collaborator failures.
type Page interface {
	Render(ctx context.Context, req Request) View
}

// PageFunc adapts a function to Page.
type PageFunc func(ctx context.Context, req Request) View

// Render calls f.
func (f PageFunc) Render(ctx context.Context, req Request) View {
	return f(ctx, req)
}

// PathRecorder is told which path's output is on screen. *state.Store
// satisfies it.
type PathRecorder interface {
	SetCurrentPath(path string)
}

type route struct {
	pattern pattern
	page    Page
}

const (
	defaultRenderTimeout = 10 * time.Second
	maxRedirects         = 5
)

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRenderTimeout bounds every page render. Zero keeps the default.
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.renderTimeout = d
		}
	}
}

// WithHistory replaces the in-memory history stack.
func WithHistory(h History) Option {
	return func(r *Router) {
		if h != nil {
			r.history = h
		}
	}
}

// WithRecorder registers where the committed path is recorded.
func WithRecorder(rec PathRecorder) Option {
	return func(r *Router) {
		r.recorder = rec
	}
}

// WithNotFound sets the page used for unmatched paths.
func WithNotFound(page Page) Option {
	return func(r *Router) {
		if page != nil {
			r.notFound = page
		}
	}
}

// Router maps paths to pages, drives history and commits page output to a
// surface. The most recently requested navigation always wins: renders that
// finish after a newer navigation was issued are discarded.
type Router struct {
	surface       Surface
	logger        *zap.Logger
	renderTimeout time.Duration
	notFound      Page
	recorder      PathRecorder

	mu      sync.Mutex
	routes  []route
	history History
	current string

	generation atomic.Uint64
	inflight   sync.WaitGroup
}

// New returns a Router committing output to surface.
func New(surface Surface, opts ...Option) *Router {
	r := &Router{
		surface:       surface,
		logger:        zap.NewNop(),
		renderTimeout: defaultRenderTimeout,
		history:       NewStack(),
		notFound: PageFunc(func(context.Context, Request) View {
			return View{Title: "Not Found", Markup: "Page not found."}
		}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle registers page for a path template. Templates are tried in
// registration order and the first match wins.
func (r *Router) Handle(template string, page Page) error {
	if page == nil {
		return fmt.Errorf("route %q: page is nil", template)
	}
	p, err := compilePattern(template)
	if err != nil {
		return fmt.Errorf("route: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route{pattern: p, page: page})
	return nil
}

// Resolve returns the page for target and the request it would receive.
// Unmatched paths resolve to the not-found page.
func (r *Router) Resolve(target string) (Page, Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(target, nil)
}

func (r *Router) resolveLocked(target string, nav map[string]string) (Page, Request) {
	path, query := splitTarget(target)
	req := Request{Path: path, Target: target, Query: query, Nav: nav}
	for _, rt := range r.routes {
		if params, ok := rt.pattern.match(path); ok {
			req.Params = params
			return rt.page, req
		}
	}
	return r.notFound, req
}

// Start renders the initial path without adding a history entry.
func (r *Router) Start(ctx context.Context, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history.Replace(Entry{Path: target})
	r.current = target
	r.renderLocked(ctx, target, nil, 0)
}

// Navigate pushes target onto history and renders it. Navigating to the path
// already current re-renders it from the latest state without a new entry.
func (r *Router) Navigate(ctx context.Context, target string, params map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if target == "" {
		target = "/"
	}
	if target != r.current {
		r.history.Push(Entry{Path: target})
		r.current = target
	}
	r.renderLocked(ctx, target, params, 0)
}

// Reload re-renders the current path. Pages use it as their retry action.
func (r *Router) Reload(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == "" {
		return
	}
	r.renderLocked(ctx, r.current, nil, 0)
}

// ReloadIf re-renders path only if it is still the current path. It reports
// whether a render was started.
func (r *Router) ReloadIf(ctx context.Context, path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == "" || r.current != path {
		return false
	}
	r.renderLocked(ctx, path, nil, 0)
	return true
}

// Back steps one entry back in history. It reports false at the oldest entry.
func (r *Router) Back(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.history.Back()
	if !ok {
		return false
	}
	r.popLocked(ctx, entry)
	return true
}

// Forward steps one entry forward in history. It reports false at the newest
// entry.
func (r *Router) Forward(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.history.Forward()
	if !ok {
		return false
	}
	r.popLocked(ctx, entry)
	return true
}

// Pop renders a history entry that the history has already moved to. An
// entry without a path falls back to the history's current location.
func (r *Router) Pop(ctx context.Context, entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.popLocked(ctx, entry)
}

func (r *Router) popLocked(ctx context.Context, entry Entry) {
	target := entry.Path
	if target == "" {
		target = r.history.Location()
	}
	if target == "" {
		target = "/"
	}
	r.current = target
	r.renderLocked(ctx, target, nil, 0)
}

// Current returns the most recently requested path.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// HistoryLen returns the number of history entries.
func (r *Router) HistoryLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.Len()
}

// Wait blocks until every render started so far has finished or been
// discarded.
func (r *Router) Wait() {
	r.inflight.Wait()
}

// renderLocked starts an asynchronous render of target tagged with a fresh
// generation. r.mu must be held.
func (r *Router) renderLocked(ctx context.Context, target string, nav map[string]string, redirects int) {
	gen := r.generation.Inc()
	page, req := r.resolveLocked(target, nav)

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()

		if r.superseded(gen) {
			r.logger.Debug("skipping superseded render", zap.String("path", target), zap.Uint64("generation", gen))
			return
		}

		renderCtx, cancel := context.WithTimeout(ctx, r.renderTimeout)
		view := page.Render(renderCtx, req)
		cancel()

		r.commit(ctx, gen, target, view, redirects)
	}()
}

// superseded reports whether a newer render has been requested since gen. It
// does not take r.mu, so render goroutines can bail out before doing I/O or
// contending for the lock. commit re-checks under the lock.
func (r *Router) superseded(gen uint64) bool {
	return r.generation.Load() != gen
}

func (r *Router) commit(ctx context.Context, gen uint64, target string, view View, redirects int) {
	if r.superseded(gen) {
		r.logger.Debug("dropping stale render", zap.String("path", target), zap.Uint64("generation", gen))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if latest := r.generation.Load(); gen != latest {
		r.logger.Debug("dropping stale render",
			zap.String("path", target),
			zap.Uint64("generation", gen),
			zap.Uint64("latest", latest))
		return
	}

	if view.Redirect != "" && view.Redirect != target {
		if redirects >= maxRedirects {
			r.logger.Warn("redirect limit reached", zap.String("path", target), zap.String("redirect", view.Redirect))
			view = View{Title: "Redirect loop", Markup: "Too many redirects from " + target + "."}
		} else {
			r.logger.Debug("redirecting", zap.String("from", target), zap.String("to", view.Redirect))
			r.history.Replace(Entry{Path: view.Redirect})
			r.current = view.Redirect
			r.renderLocked(ctx, view.Redirect, nil, redirects+1)
			return
		}
	}

	if view.Apply != nil {
		view.Apply()
	}
	r.surface.Replace(target, view)
	if r.recorder != nil {
		r.recorder.SetCurrentPath(target)
	}
	r.logger.Debug("render committed", zap.String("path", target), zap.Uint64("generation", gen))
}
