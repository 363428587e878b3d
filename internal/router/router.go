// Package router holds the screen the controller is showing plus any
// overlays (such as help) opened on top of it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/speakflow/internal/screen"
)

// OpenMsg asks the router to show Screen over the current view.
type OpenMsg struct {
	Screen screen.Screen
}

// CloseMsg asks the router to close the topmost overlay.
type CloseMsg struct{}

// Router routes input to the topmost screen. The base screen mirrors the
// controller's view and only changes through SetBase.
type Router struct {
	base     screen.Screen
	overlays []screen.Screen
}

// New returns a router showing base.
func New(base screen.Screen) *Router {
	return &Router{base: base}
}

// SetBase replaces the base screen and closes every overlay.
func (r *Router) SetBase(s screen.Screen) tea.Cmd {
	r.base, r.overlays = s, nil
	return s.Init()
}

// Open shows s above everything else.
func (r *Router) Open(s screen.Screen) tea.Cmd {
	r.overlays = append(r.overlays, s)
	return s.Init()
}

// Close drops the topmost overlay. The base screen is never closed.
func (r *Router) Close() {
	if n := len(r.overlays); n > 0 {
		r.overlays = r.overlays[:n-1]
	}
}

// HasOverlay reports whether an overlay hides the base screen.
func (r *Router) HasOverlay() bool { return len(r.overlays) > 0 }

// Base returns the base screen.
func (r *Router) Base() screen.Screen { return r.base }

// Active returns the screen that receives key presses.
func (r *Router) Active() screen.Screen {
	if n := len(r.overlays); n > 0 {
		return r.overlays[n-1]
	}
	return r.base
}

// Update handles OpenMsg and CloseMsg and hands anything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case OpenMsg:
		return r.Open(msg.Screen)
	case CloseMsg:
		r.Close()
		return nil
	}

	var cmd tea.Cmd
	if n := len(r.overlays); n > 0 {
		r.overlays[n-1], cmd = r.overlays[n-1].Update(msg)
	} else if r.base != nil {
		r.base, cmd = r.base.Update(msg)
	}
	return cmd
}

// Broadcast delivers msg to the base screen and every overlay so async
// results reach a view hidden under help.
func (r *Router) Broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.overlays)+1)
	if r.base != nil {
		var cmd tea.Cmd
		r.base, cmd = r.base.Update(msg)
		cmds = append(cmds, cmd)
	}
	for i, s := range r.overlays {
		var cmd tea.Cmd
		r.overlays[i], cmd = s.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// View renders the active screen only; overlays are full screen.
func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
