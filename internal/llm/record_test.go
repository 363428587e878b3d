package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/speakflow/internal/store"
)

type sinkFunc struct {
	events []store.LLMRequestEventData
	err    error
}

func (s *sinkFunc) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	s.events = append(s.events, d)
	return s.err
}

func steppingClock(step time.Duration) func() time.Time {
	t := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestRecording_Success(t *testing.T) {
	fake := NewFake(FakeReply{Text: `{"score":90,"feedback":"好"}`, Usage: Usage{InputTokens: 12, OutputTokens: 6}})
	sink := &sinkFunc{}
	p := WithRecording(fake, "gemini", sink, nil).(*recording)
	p.now = steppingClock(250 * time.Millisecond)

	ctx := WithPurpose(context.Background(), PurposeScore)
	_, err := p.Generate(ctx, Request{
		System:   "coach",
		Messages: UserMessage("你好"),
		Schema:   scoreTestSchema(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(sink.events) != 1 {
		t.Fatalf("events = %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Provider != "gemini" || ev.Purpose != "pronunciation-score" || ev.Model != "fake" {
		t.Errorf("event = %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 6 || ev.LatencyMs != 250 {
		t.Errorf("event = %+v", ev)
	}
	for _, want := range []string{"--- system ---\ncoach", "--- user ---\n你好", "--- schema test-score ---"} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ev.RequestBody)
		}
	}
}

func TestRecording_FailureKeepsModelOutput(t *testing.T) {
	bad := &Error{Kind: KindInvalidOutput, Output: "not json"}
	sink := &sinkFunc{}
	p := WithRecording(NewFake(FakeReply{Err: bad}), "openai", sink, nil)

	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x")})
	if !errors.Is(err, bad) {
		t.Fatalf("err = %v", err)
	}
	ev := sink.events[0]
	if ev.Success || ev.ResponseBody != "not json" || ev.Purpose != "unknown" || ev.ErrorMessage == "" {
		t.Errorf("event = %+v", ev)
	}
}

func TestRecording_SinkErrorIsSwallowed(t *testing.T) {
	sink := &sinkFunc{err: errors.New("disk full")}
	p := WithRecording(NewFake(FakeReply{Text: "ok"}), "openai", sink, nil)
	resp, err := p.Generate(context.Background(), Request{})
	if err != nil || resp.Text() != "ok" {
		t.Fatalf("resp = %v, err = %v", resp, err)
	}
}

func TestRecording_NilSink(t *testing.T) {
	p := WithRecording(NewFake(FakeReply{Text: "ok"}), "openai", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if p.ModelID() != "fake" {
		t.Errorf("model = %s", p.ModelID())
	}
}

func TestPurposeFrom(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != PurposeUnknown {
		t.Errorf("default = %s", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), PurposeChatReply)); got != PurposeChatReply {
		t.Errorf("got %s", got)
	}
}
