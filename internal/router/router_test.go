package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/speakflow/internal/screen"
)

type stubScreen struct {
	title string
	inits int
	seen  []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type keyish struct{}

func TestOverlayTakesInput(t *testing.T) {
	dash := &stubScreen{title: "dashboard"}
	help := &stubScreen{title: "help"}
	r := New(dash)

	r.Update(OpenMsg{Screen: help})
	if !r.HasOverlay() || r.Active() != help || help.inits != 1 {
		t.Fatalf("active = %s, inits = %d", r.Active().Title(), help.inits)
	}
	if got := r.View(80, 20); got != "help" {
		t.Errorf("view = %q", got)
	}

	r.Update(keyish{})
	if len(help.seen) != 1 || len(dash.seen) != 0 {
		t.Errorf("help saw %d, dashboard saw %d", len(help.seen), len(dash.seen))
	}

	r.Update(CloseMsg{})
	if r.HasOverlay() || r.Active() != dash {
		t.Errorf("active after close = %s", r.Active().Title())
	}
}

func TestCloseNeverDropsBase(t *testing.T) {
	dash := &stubScreen{title: "dashboard"}
	r := New(dash)
	r.Close()
	r.Close()
	if r.Active() != dash || r.Base() != dash {
		t.Error("base screen must survive Close")
	}
}

func TestSetBaseClosesOverlays(t *testing.T) {
	r := New(&stubScreen{title: "dashboard"})
	r.Open(&stubScreen{title: "help"})
	r.Open(&stubScreen{title: "help again"})

	chat := &stubScreen{title: "chat"}
	r.SetBase(chat)

	if r.HasOverlay() || r.Active() != chat || chat.inits != 1 {
		t.Errorf("active = %s, overlay = %v", r.Active().Title(), r.HasOverlay())
	}
}

func TestBroadcastReachesHiddenBase(t *testing.T) {
	lesson := &stubScreen{title: "lesson"}
	help := &stubScreen{title: "help"}
	r := New(lesson)
	r.Open(help)

	r.Broadcast(keyish{})

	if len(lesson.seen) != 1 || len(help.seen) != 1 {
		t.Errorf("lesson saw %d, help saw %d; want 1 each", len(lesson.seen), len(help.seen))
	}
}
