// Package ui implements shopfront's Bubble Tea interface.
//
// The terminal plays the browser. The content viewport shows whatever page
// the router last committed. The numbered header links work like anchors
// and the router's history stack gives back and forward.
//
// # Data Flow
//
// Key presses call the router (Navigate, Back, Forward, Reload) or the
// state store directly. The router renders pages off the UI goroutine and
// commits output to a ProgramSurface, which forwards the newest output to the
// program as a message. The model never waits on a render, so a slow page
// cannot freeze input, and a superseded render simply never arrives.
//
// # Transient State
//
// Selection cursor, pending quantity, image index, the search box and open
// forms belong to the model. Cart, session and product data live only in
// the store.
//
// # Search
//
// "/" opens an inline search box. Each edit schedules a tick tagged with a
// sequence number; only the tick matching the latest edit navigates, which
// debounces typing to one search per pause of SearchDebounce.
package ui
