package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestMenuSkipsDisabledRows(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Locked", Disabled: true},
		{Label: "Greetings"},
		{Label: "Numbers", Disabled: true},
		{Label: "Food"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial = %d, want 1", m.Selected)
	}
	m = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("down = %d, want 3", m.Selected)
	}
	m = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("down at end = %d, want 3", m.Selected)
	}
	m = m.Update(key("g"))
	if item, ok := m.Current(); !ok || item.Label != "Greetings" {
		t.Errorf("home = %+v", item)
	}
	if !strings.Contains(m.View(), "🔒 Locked") {
		t.Error("locked rows should show a lock")
	}
}

func TestMenuAllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a", Disabled: true}})
	if _, ok := m.Current(); ok {
		t.Error("nothing should be current")
	}
}

func TestButtonPressed(t *testing.T) {
	speak := Button{Label: "Speak", Key: "space"}
	if !speak.Pressed(key("space")) {
		t.Error("space should press")
	}
	if speak.Pressed(key("enter")) {
		t.Error("enter should not press a space button")
	}
	speak.Disabled = true
	if speak.Pressed(key("space")) {
		t.Error("disabled buttons never press")
	}
}

func TestGaugeWidth(t *testing.T) {
	for _, frac := range []float64{-1, 0, 0.37, 1, 2} {
		if w := lipgloss.Width(GaugePercent("Goal", frac, 40)); w != 40 {
			t.Errorf("frac %v: width = %d, want 40", frac, w)
		}
	}
	if w := lipgloss.Width(Gauge("", 0.5, 2)); w != 4 {
		t.Errorf("tiny gauge width = %d, want 4", w)
	}
}

func TestChoiceClamps(t *testing.T) {
	c := NewChoice("Pick", []ChoiceOption{{Label: "a"}, {Label: "b"}})
	c = c.Update(key("up"))
	if c.Selected != 0 {
		t.Errorf("up at top = %d", c.Selected)
	}
	c = c.Update(key("down")).Update(key("down"))
	if c.Selected != 1 {
		t.Errorf("down past end = %d", c.Selected)
	}
}

func TestTone(t *testing.T) {
	tests := map[rune]int{'ā': 1, 'Á': 2, 'ǐ': 3, 'ò': 4, 'ǜ': 4, 'a': 0, '好': 0}
	for r, want := range tests {
		if got := Tone(r); got != want {
			t.Errorf("Tone(%q) = %d, want %d", r, got, want)
		}
	}
}

func TestPinyinKeepsText(t *testing.T) {
	in := "Hěn gāoxìng rènshi nǐ"
	out := Pinyin(in)
	if !strings.Contains(out, "ě") || lipgloss.Width(out) != lipgloss.Width(in) {
		t.Errorf("Pinyin(%q) = %q", in, out)
	}
}
