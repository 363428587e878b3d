// Package help renders the key binding overlay.
package help

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakflow/internal/router"
	"github.com/abhisek/speakflow/internal/screen"
	"github.com/abhisek/speakflow/internal/ui/components"
	"github.com/abhisek/speakflow/internal/ui/layout"
	"github.com/abhisek/speakflow/internal/ui/theme"
)

// HelpScreen lists the bindings of the screen beneath it.
type HelpScreen struct {
	context  string
	bindings []layout.KeyHint
}

var _ screen.Screen = (*HelpScreen)(nil)

// New creates a help overlay for the named context.
func New(context string, bindings []layout.KeyHint) *HelpScreen {
	return &HelpScreen{context: context, bindings: bindings}
}

// Open returns a command that pushes a help overlay.
func Open(context string, bindings []layout.KeyHint) tea.Cmd {
	h := New(context, bindings)
	return func() tea.Msg { return router.OpenMsg{Screen: h} }
}

func (h *HelpScreen) Init() tea.Cmd { return nil }

func (h *HelpScreen) Title() string { return "Help" }

func (h *HelpScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return router.CloseMsg{} }
		}
	}
	return h, nil
}

func (h *HelpScreen) View(width, height int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Width(10)

	var b strings.Builder
	b.WriteString(theme.Title.Render(h.context + " keys"))
	b.WriteString("\n\n")
	for _, kb := range h.bindings {
		b.WriteString(keyStyle.Render(kb.Key))
		b.WriteString(theme.Body.Render(kb.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Press esc to close"))

	return components.Centered(components.Card(b.String(), components.ContentWidth(min(width, 60))), width, height)
}

func (h *HelpScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "esc", Description: "Close"}}
}
