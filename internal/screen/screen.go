// Package screen defines what the router and the root model need from a
// view, and how views talk back to the controller.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/speakflow/internal/controller"
	"github.com/abhisek/speakflow/internal/ui/layout"
)

// Screen is one full-body view. View gets the body size, the app draws
// the title and hint bars around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider is implemented by screens that list their keys in the
// hint bar.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EventMsg carries a controller event up to the root model, which is the
// only place events are dispatched.
type EventMsg struct {
	Event controller.Event
}

// Emit returns a command that raises e.
func Emit(e controller.Event) tea.Cmd {
	return func() tea.Msg { return EventMsg{Event: e} }
}
