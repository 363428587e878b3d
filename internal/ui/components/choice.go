package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakflow/internal/ui/theme"
)

// ChoiceOption is one entry of a Choice list.
type ChoiceOption struct {
	Label       string
	Description string
}

// Choice is a single-select list navigated with the arrow keys.
type Choice struct {
	Prompt   string
	Options  []ChoiceOption
	Selected int
}

// NewChoice creates a choice list with the first option selected.
func NewChoice(prompt string, options []ChoiceOption) Choice {
	return Choice{Prompt: prompt, Options: options}
}

// Update handles up/down navigation. Enter is left to the owner.
func (c Choice) Update(msg tea.Msg) Choice {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	}
	return c
}

// View renders the prompt and options.
func (c Choice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt) + "\n\n"
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	for i, opt := range c.Options {
		prefix, label := "  ", theme.Unselected.Render(opt.Label)
		if i == c.Selected {
			prefix, label = theme.Selected.Render("▸ "), theme.Selected.Render(opt.Label)
		}
		s += prefix + label
		if opt.Description != "" {
			s += dim.Render("  " + opt.Description)
		}
		s += "\n"
	}
	return s
}
