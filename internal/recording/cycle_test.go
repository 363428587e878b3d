package recording

import (
	"errors"
	"testing"

	"github.com/abhisek/speakflow/internal/scoring"
)

func TestCycle_HappyPath(t *testing.T) {
	c := New("你好")
	if c.Phase() != PhaseIdle {
		t.Fatalf("initial phase = %v", c.Phase())
	}

	tok, ok := c.Start()
	if !ok || tok == 0 {
		t.Fatal("expected start to succeed with a non-zero token")
	}
	if c.Phase() != PhaseRecording {
		t.Errorf("phase = %v, want recording", c.Phase())
	}

	if !c.CaptureSucceeded(tok, " 你好 ") {
		t.Fatal("expected capture to move to checking")
	}
	if c.Transcript() != "你好" {
		t.Errorf("transcript = %q", c.Transcript())
	}

	if !c.Evaluated(tok, scoring.Evaluation{Score: 92, Feedback: "Nice"}, nil) {
		t.Fatal("expected evaluation to be accepted")
	}
	ev, ok := c.Feedback()
	if !ok || ev.Score != 92 || c.Phase() != PhaseFeedback {
		t.Errorf("feedback = %+v, phase = %v", ev, c.Phase())
	}
}

func TestCycle_SingleCapture(t *testing.T) {
	c := New("一")
	c.Start()
	if _, ok := c.Start(); ok {
		t.Error("second start while recording must be rejected")
	}
}

func TestCycle_EmptyTranscriptFails(t *testing.T) {
	c := New("二")
	tok, _ := c.Start()
	if c.CaptureSucceeded(tok, "   ") {
		t.Fatal("empty transcript must not go to checking")
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", c.Phase())
	}
	ev, ok := c.Feedback()
	if !ok || ev != NotHeard {
		t.Errorf("feedback = %+v, want NotHeard", ev)
	}
}

func TestCycle_CaptureFailed(t *testing.T) {
	c := New("三")
	tok, _ := c.Start()
	if !c.CaptureFailed(tok) {
		t.Fatal("expected failure to apply")
	}
	ev, _ := c.Feedback()
	if ev.Score != 0 || ev.Feedback != "Didn't catch that. Try again!" {
		t.Errorf("feedback = %+v", ev)
	}

	// Starting again clears the notice.
	if _, ok := c.Start(); !ok {
		t.Fatal("restart should succeed")
	}
	if _, ok := c.Feedback(); ok {
		t.Error("feedback should clear on start")
	}
}

func TestCycle_EvaluationErrorUsesFallback(t *testing.T) {
	c := New("菜单")
	tok, _ := c.Start()
	c.CaptureSucceeded(tok, "菜单")
	c.Evaluated(tok, scoring.Evaluation{}, errors.New("timeout"))

	ev, _ := c.Feedback()
	if ev.Score != 75 || ev.Feedback != "Keep it up!" {
		t.Errorf("feedback = %+v, want fallback", ev)
	}
}

func TestCycle_ClampsScore(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{150, 100},
		{50, 50},
	}
	for _, tt := range tests {
		c := New("买单")
		tok, _ := c.Start()
		c.CaptureSucceeded(tok, "买单")
		c.Evaluated(tok, scoring.Evaluation{Score: tt.in}, nil)
		ev, _ := c.Feedback()
		if ev.Score != tt.want {
			t.Errorf("score %d clamped to %d, want %d", tt.in, ev.Score, tt.want)
		}
	}
}

func TestCycle_StopDiscardsLateResults(t *testing.T) {
	c := New("你呢？")
	tok, _ := c.Start()
	if !c.Stop() {
		t.Fatal("stop while recording should succeed")
	}
	if c.CaptureSucceeded(tok, "你呢") {
		t.Error("late capture for a stopped token must be ignored")
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", c.Phase())
	}
	if _, ok := c.Feedback(); ok {
		t.Error("stop must not produce feedback")
	}
}

func TestCycle_StaleTokenAcrossCycles(t *testing.T) {
	old := New("一")
	oldTok, _ := old.Start()

	c := New("一")
	tok, _ := c.Start()
	if tok == oldTok {
		t.Fatal("tokens must be unique across cycles")
	}
	if c.CaptureSucceeded(oldTok, "一") {
		t.Error("token from another cycle must be ignored")
	}
	if c.Evaluated(tok, scoring.Evaluation{Score: 90}, nil) {
		t.Error("evaluation before checking must be ignored")
	}
}

func TestCycle_AtMostOneResultPerStart(t *testing.T) {
	c := New("你好")
	tok, _ := c.Start()
	c.CaptureSucceeded(tok, "你好")
	c.Evaluated(tok, scoring.Evaluation{Score: 80}, nil)
	if c.Evaluated(tok, scoring.Evaluation{Score: 10}, nil) {
		t.Error("second evaluation for the same token must be ignored")
	}
	ev, _ := c.Feedback()
	if ev.Score != 80 {
		t.Errorf("score = %d, want 80", ev.Score)
	}
}

func TestCycle_FeedbackIsTerminal(t *testing.T) {
	c := New("一")
	tok, _ := c.Start()
	c.CaptureSucceeded(tok, "一")
	c.Evaluated(tok, scoring.Evaluation{Score: 64, Feedback: "Watch the tone"}, nil)

	if _, ok := c.Start(); ok {
		t.Fatal("start after feedback must be refused")
	}
	if c.Stop() {
		t.Error("stop after feedback must be refused")
	}
	ev, ok := c.Feedback()
	if !ok || ev.Score != 64 || c.Phase() != PhaseFeedback {
		t.Errorf("feedback = %+v, phase = %v", ev, c.Phase())
	}

	c.Reset()
	if _, ok := c.Start(); !ok {
		t.Error("a reset cycle should accept a new capture")
	}
}
