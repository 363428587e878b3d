package tutor

import (
	"context"
	"strings"
	"testing"

	"github.com/abhisek/speakflow/internal/llm"
)

func TestLLMReplier_Reply(t *testing.T) {
	fake := llm.NewFake(llm.FakeReply{Text: "  你好！(Nǐ hǎo!) - Hello!\n"})
	r := NewLLMReplier(fake, DefaultConfig())

	got, err := r.Reply(context.Background(),
		[]string{"Assistant: 你好！", "User: 你好"}, "我想点这个", "Ordering Food")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "你好！(Nǐ hǎo!) - Hello!" {
		t.Errorf("reply = %q", got)
	}

	req, _ := fake.LastRequest()
	if req.Schema != nil {
		t.Error("reply requests are free text")
	}
	prompt := req.Messages[0].Content
	for _, want := range []string{"Ordering Food", "User: 你好", `"我想点这个"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestLLMReplier_Error(t *testing.T) {
	r := NewLLMReplier(llm.NewFake(), DefaultConfig())
	if _, err := r.Reply(context.Background(), nil, "你好", "Greetings"); err == nil {
		t.Fatal("expected error from an exhausted provider")
	}
}

func TestLLMReplier_HistoryWindow(t *testing.T) {
	fake := llm.NewFake(llm.FakeReply{Text: "好"})
	cfg := DefaultConfig()
	cfg.HistoryWindow = 2
	r := NewLLMReplier(fake, cfg)

	history := []string{"Assistant: one", "User: two", "Assistant: three", "User: four"}
	if _, err := r.Reply(context.Background(), history, "五", "Numbers"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last, _ := fake.LastRequest()
	prompt := last.Messages[0].Content
	if strings.Contains(prompt, "one") || strings.Contains(prompt, "two") {
		t.Errorf("old history should be windowed out:\n%s", prompt)
	}
	if !strings.Contains(prompt, "three") || !strings.Contains(prompt, "four") {
		t.Errorf("recent history missing:\n%s", prompt)
	}
}

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 0},
		{"6", 6},
		{"-1", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SPEAKFLOW_CHAT_HISTORY_WINDOW", tt.value)
			if got := ConfigFromEnv().HistoryWindow; got != tt.want {
				t.Errorf("HistoryWindow = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOfflineReplier(t *testing.T) {
	got, err := OfflineReplier{}.Reply(context.Background(), nil, "hi", "any")
	if err != nil || got != OfflineReply {
		t.Errorf("reply = %q, %v", got, err)
	}
}
