package chat

import (
	"errors"
	"testing"

	"github.com/abhisek/speakflow/internal/tutor"
)

func TestNewLoop_Greeting(t *testing.T) {
	l := NewLoop("Greetings & Introductions")
	msgs := l.Messages()
	if len(msgs) != 1 || msgs[0].Role != RoleAssistant || msgs[0].Content != Greeting {
		t.Fatalf("messages = %+v", msgs)
	}
	if l.SessionID() == "" {
		t.Error("expected a session id")
	}
}

func TestSend_BlankOrBusyIsNoop(t *testing.T) {
	l := NewLoop("t")
	if _, ok := l.Send("   "); ok {
		t.Error("blank send should be a no-op")
	}
	if _, ok := l.Send("你好"); !ok {
		t.Fatal("first send should succeed")
	}
	if _, ok := l.Send("再见"); ok {
		t.Error("send while busy should be a no-op")
	}
	if n := len(l.Messages()); n != 2 {
		t.Errorf("len = %d, want 2", n)
	}
}

func TestSendResolve_GrowsByTwo(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{"reply", "很好！(Hěn hǎo!) - Very good!", nil, "很好！(Hěn hǎo!) - Very good!"},
		{"error", "", errors.New("unavailable"), tutor.Apology},
		{"blank", "  ", nil, tutor.Apology},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoop("Greetings")
			req, ok := l.Send("你好")
			if !ok {
				t.Fatal("send failed")
			}
			if !l.Busy() {
				t.Error("expected busy after send")
			}
			if !l.Resolve(req, tt.reply, tt.err) {
				t.Fatal("resolve rejected")
			}

			msgs := l.Messages()
			if len(msgs) != 3 {
				t.Fatalf("len = %d, want 3", len(msgs))
			}
			if msgs[1].Role != RoleUser || msgs[1].Content != "你好" {
				t.Errorf("user msg = %+v", msgs[1])
			}
			if msgs[2].Role != RoleAssistant || msgs[2].Content != tt.want {
				t.Errorf("assistant msg = %+v", msgs[2])
			}
			if l.Busy() {
				t.Error("expected idle after resolve")
			}
		})
	}
}

func TestRequest_CarriesHistory(t *testing.T) {
	l := NewLoop("Ordering Food")
	req, _ := l.Send("菜单")
	if req.Topic != "Ordering Food" || req.UserText != "菜单" {
		t.Errorf("req = %+v", req)
	}
	if len(req.History) != 1 || req.History[0] != "Assistant: "+Greeting {
		t.Errorf("history = %v", req.History)
	}

	l.Resolve(req, "好的", nil)
	req2, _ := l.Send("买单")
	want := []string{"Assistant: " + Greeting, "User: 菜单", "Assistant: 好的"}
	if len(req2.History) != len(want) {
		t.Fatalf("history = %v", req2.History)
	}
	for i := range want {
		if req2.History[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, req2.History[i], want[i])
		}
	}
}

func TestResolve_StaleIgnored(t *testing.T) {
	old := NewLoop("t")
	oldReq, _ := old.Send("你好")

	l := NewLoop("t")
	req, _ := l.Send("你好")
	if l.Resolve(oldReq, "x", nil) {
		t.Error("request from another loop must be ignored")
	}

	l.Resolve(req, "ok", nil)
	if l.Resolve(req, "again", nil) {
		t.Error("a request resolves at most once")
	}
	if n := len(l.Messages()); n != 3 {
		t.Errorf("len = %d, want 3", n)
	}
}

func TestTargetPortion(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{Greeting, "你好！我们可以开始练习对话了吗？"},
		{"好的 (Hǎo de)", "好的"},
		{"全角（quán jiǎo）", "全角"},
		{"no brackets", "no brackets"},
		{"(only pinyin)", "(only pinyin)"},
	}
	for _, tt := range tests {
		if got := TargetPortion(tt.in); got != tt.want {
			t.Errorf("TargetPortion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlaybackText(t *testing.T) {
	l := NewLoop("t")
	req, _ := l.Send("你好")
	l.Resolve(req, "再见 (Zàijiàn) - Bye", nil)

	if got, ok := l.PlaybackText(2); !ok || got != "再见" {
		t.Errorf("PlaybackText(2) = %q, %v", got, ok)
	}
	if _, ok := l.PlaybackText(1); ok {
		t.Error("user messages are not played")
	}
	if _, ok := l.PlaybackText(9); ok {
		t.Error("out of range index")
	}
}
