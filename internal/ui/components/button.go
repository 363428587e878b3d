package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/speakflow/internal/ui/theme"
)

// Button is an action bound to one key, drawn with that key as a badge.
type Button struct {
	Label    string
	Key      string
	Disabled bool
}

// Pressed reports whether msg triggers the button.
func (b Button) Pressed(msg tea.Msg) bool {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || b.Disabled {
		return false
	}
	s := k.String()
	return s == b.Key || (b.Key == "space" && s == " ")
}

func (b Button) View() string {
	if b.Disabled {
		return theme.ButtonInactive.Render(b.Label)
	}
	badge := theme.Hint.Render("[" + b.Key + "]")
	return theme.ButtonActive.Render("▸ "+b.Label) + " " + badge
}
