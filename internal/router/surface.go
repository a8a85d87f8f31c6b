package router

import (
	"fmt"
	"io"
	"sync"
)

// Surface receives committed page output. Replace is called with the router's
// lock held, so implementations must return promptly and must not call back
// into the router.
type Surface interface {
	Replace(path string, view View)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(path string, view View)

// Replace calls f.
func (f SurfaceFunc) Replace(path string, view View) {
	f(path, view)
}

// WriterSurface prints every committed page to w. It backs the headless
// render command.
type WriterSurface struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSurface returns a surface writing to w.
func NewWriterSurface(w io.Writer) *WriterSurface {
	return &WriterSurface{w: w}
}

// Replace writes a header line followed by the page markup.
func (s *WriterSurface) Replace(path string, view View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := view.Title
	if title == "" {
		title = path
	}
	_, _ = fmt.Fprintf(s.w, "── %s (%s)\n%s\n", title, path, view.Markup)
}
