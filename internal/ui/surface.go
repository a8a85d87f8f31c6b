package ui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shopfront/internal/router"
)

// pageMsg carries committed router output into the model.
type pageMsg struct {
	path string
	view router.View
}

// ProgramSurface is the router surface for the TUI. Replace is called with
// the router's lock held, so it only parks the output in a single slot;
// Pump forwards the newest output to the program. Intermediate outputs that
// are overwritten before delivery are never shown.
type ProgramSurface struct {
	mu     sync.Mutex
	latest *pageMsg
	wake   chan struct{}
}

// NewProgramSurface returns an empty surface.
func NewProgramSurface() *ProgramSurface {
	return &ProgramSurface{wake: make(chan struct{}, 1)}
}

// Replace implements router.Surface. It never blocks.
func (s *ProgramSurface) Replace(path string, view router.View) {
	s.mu.Lock()
	s.latest = &pageMsg{path: path, view: view}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pump delivers parked output through send until ctx is done. send is
// typically (*tea.Program).Send.
func (s *ProgramSurface) Pump(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
			if msg := s.take(); msg != nil {
				send(*msg)
			}
		}
	}
}

func (s *ProgramSurface) take() *pageMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.latest
	s.latest = nil
	return msg
}
