package help

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/speakflow/internal/router"
	"github.com/abhisek/speakflow/internal/ui/layout"
)

func TestHelpClosesOnEsc(t *testing.T) {
	h := New("Lesson", []layout.KeyHint{{Key: "space", Description: "Record"}})

	tests := []struct {
		name    string
		key     tea.KeyPressMsg
		closing bool
	}{
		{"esc", tea.KeyPressMsg{Code: tea.KeyEscape}, true},
		{"question mark", tea.KeyPressMsg{Code: '?', Text: "?"}, true},
		{"other", tea.KeyPressMsg{Code: 'x', Text: "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := h.Update(tt.key)
			if !tt.closing {
				if cmd != nil {
					t.Error("unexpected command")
				}
				return
			}
			if cmd == nil {
				t.Fatal("expected a pop command")
			}
			if _, ok := cmd().(router.CloseMsg); !ok {
				t.Errorf("msg = %T, want PopScreenMsg", cmd())
			}
		})
	}
}

func TestHelpListsBindings(t *testing.T) {
	h := New("Lesson", []layout.KeyHint{{Key: "space", Description: "Record"}, {Key: "p", Description: "Play audio"}})
	view := h.View(100, 30)
	for _, want := range []string{"Lesson keys", "space", "Record", "Play audio"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestOpenPushesOverlay(t *testing.T) {
	msg := Open("Dashboard", nil)()
	push, ok := msg.(router.OpenMsg)
	if !ok {
		t.Fatalf("msg = %T", msg)
	}
	if push.Screen.Title() != "Help" {
		t.Errorf("title = %q", push.Screen.Title())
	}
}
