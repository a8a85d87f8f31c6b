// Package router maps paths to pages and keeps the displayed page in step with
// navigation history.
//
// # Overview
//
// A Router owns a table of path templates, a History and a Surface. Navigation
// enters through one of four triggers:
//
//   - Start: initial path, rendered without a new history entry
//   - Navigate: in-app link or programmatic navigation, pushes an entry
//   - Back / Forward / Pop: history movement, renders without pushing
//   - Reload: re-renders the current path (the retry action of error states)
//
// # Resolution
//
// Templates are registered with Handle and tried in registration order; the
// first match wins. Literal segments compare case-sensitively, segment counts
// must be equal (no prefix matching) and ":name" placeholders capture one
// non-empty segment:
//
//	r.Handle("/products/search", searchPage) // must precede /products/:id
//	r.Handle("/products/:id", detailPage)
//
// Query strings are split off before matching and handed to the page as
// Request.Query. Unmatched paths resolve to the not-found page.
//
// # Rendering and Supersession
//
// Page.Render may block on network I/O, so every render runs on its own
// goroutine under a timeout (WithRenderTimeout, default 10s). Each render is
// tagged with a generation taken from a monotonically increasing counter when
// the navigation is issued. The commit step re-checks the generation under the
// router lock and drops the view if a newer navigation has been issued since:
//
//	Navigate(/slow)  gen 1 ──────────────────────────┐ (dropped)
//	Navigate(/fast)  gen 2 ────┐                     │
//	                           └─> surface.Replace   │
//
// Stale renders are not cancelled; they run to completion and their output is
// discarded. This keeps shared in-flight fetches usable by the newer render.
// A render that is already stale when its goroutine starts skips Render.
//
// Pages must not write application state while rendering. A View carries its
// writes in Apply, which the router runs under its lock only for the
// committing render, just before surface.Replace. A dropped view leaves no
// trace.
//
// Navigating to the path that is already current re-renders it from the
// latest state without adding a history entry.
//
// # Redirects
//
// A page may answer with View.Redirect (the profile page does this for
// anonymous users). The router replaces the current history entry with the
// redirect target and renders it, following at most five redirects.
//
// # Surfaces
//
// Surface.Replace is called with the router lock held. WriterSurface prints
// pages for the headless render command; the TUI installs a surface that hands
// views to the bubbletea program without blocking.
package router
