package scoring

import (
	"context"
	"strings"
	"testing"

	"github.com/abhisek/speakflow/internal/llm"
)

func TestLLMEvaluator_ParsesScore(t *testing.T) {
	fake := llm.NewFake(llm.FakeReply{Text: `{"score":88,"feedback":"Clear tones, soften the hǎo."}`})
	e := NewLLMEvaluator(fake, DefaultConfig())

	ev, err := e.Evaluate(context.Background(), "你好", "你好")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Score != 88 || ev.Fallback {
		t.Errorf("evaluation = %+v", ev)
	}

	req, _ := fake.LastRequest()
	if req.Schema == nil || req.Schema.Name != "pronunciation-score" {
		t.Fatal("expected pronunciation-score schema")
	}
	if !strings.Contains(req.Messages[0].Content, `"你好"`) {
		t.Errorf("prompt missing target: %q", req.Messages[0].Content)
	}
}

func TestLLMEvaluator_ClampsOutOfRange(t *testing.T) {
	fake := llm.NewFake(llm.FakeReply{Text: `{"score":140,"feedback":"!"}`})
	ev, err := NewLLMEvaluator(fake, DefaultConfig()).Evaluate(context.Background(), "一", "一")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Score != 100 {
		t.Errorf("score = %d, want 100", ev.Score)
	}
}

func TestLLMEvaluator_ProviderError(t *testing.T) {
	_, err := NewLLMEvaluator(llm.NewFake(), DefaultConfig()).Evaluate(context.Background(), "一", "一")
	if k, ok := llm.KindOf(err); !ok || k != llm.KindUnavailable {
		t.Fatalf("expected an unavailable provider error, got %v", err)
	}
}

func TestWithFallback(t *testing.T) {
	failing := NewLLMEvaluator(llm.NewFake(), DefaultConfig())
	ev, err := WithFallback(failing, nil).Evaluate(context.Background(), "三", "山")
	if err != nil {
		t.Fatalf("fallback must not return errors: %v", err)
	}
	if ev.Score != 75 || ev.Feedback != "Keep it up!" || !ev.Fallback {
		t.Errorf("evaluation = %+v, want fallback", ev)
	}
}

func TestOfflineEvaluator(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		recognized string
		wantMin    int
		wantMax    int
	}{
		{"exact", "你好", "你好", 100, 100},
		{"punctuation ignored", "你呢？", "你呢", 100, 100},
		{"one of two", "你好", "你", 40, 60},
		{"nothing heard", "很高兴认识你", "", 0, 0},
		{"unrelated", "菜单", "买单", 40, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := OfflineEvaluator{}.Evaluate(context.Background(), tt.target, tt.recognized)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ev.Score < tt.wantMin || ev.Score > tt.wantMax {
				t.Errorf("score = %d, want [%d,%d]", ev.Score, tt.wantMin, tt.wantMax)
			}
			if ev.Feedback == "" {
				t.Error("expected feedback text")
			}
		})
	}
}

func TestPassed(t *testing.T) {
	if (Evaluation{Score: 70}).Passed() {
		t.Error("70 should not pass")
	}
	if !(Evaluation{Score: 71}).Passed() {
		t.Error("71 should pass")
	}
}
