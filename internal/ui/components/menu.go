package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakflow/internal/ui/theme"
)

// MenuItem is one row of a Menu.
type MenuItem struct {
	Label    string
	Detail   string
	Disabled bool
}

// Menu is a vertical list with a cursor that only rests on enabled rows.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu returns a menu with the cursor on the first enabled row.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// next finds the first enabled row after from in direction dir, or -1.
func (m Menu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// Update moves the cursor on up/down, k/j and home/end.
func (m Menu) Update(msg tea.Msg) Menu {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m
	}
	target := -1
	switch k.String() {
	case "up", "k":
		target = m.next(m.Selected, -1)
	case "down", "j":
		target = m.next(m.Selected, 1)
	case "home", "g":
		target = m.next(-1, 1)
	case "end", "G":
		target = m.next(len(m.Items), -1)
	}
	if target >= 0 {
		m.Selected = target
	}
	return m
}

// Current returns the row under the cursor. Disabled rows never count.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) || m.Items[m.Selected].Disabled {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) View() string {
	detail := lipgloss.NewStyle().Foreground(theme.TextDim)
	rows := make([]string, len(m.Items))
	for i, item := range m.Items {
		var row string
		switch {
		case item.Disabled:
			row = theme.Locked.Render("🔒 " + item.Label)
		case i == m.Selected:
			row = theme.Selected.Render("▸ " + item.Label)
		default:
			row = "  " + theme.Unselected.Render(item.Label)
		}
		if item.Detail != "" && !item.Disabled {
			row += "  " + detail.Render(item.Detail)
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n") + "\n"
}
