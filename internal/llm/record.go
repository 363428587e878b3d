package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/abhisek/speakflow/internal/logging"
	"github.com/abhisek/speakflow/internal/store"
)

// EventSink stores one row per LLM call. store.EventRepo satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

type recording struct {
	inner    Provider
	provider string
	sink     EventSink
	log      *logging.Logger
	now      func() time.Time
}

// WithRecording logs every call and appends it to sink, which may be nil.
// A failed write is logged and never fails the call.
func WithRecording(p Provider, provider string, sink EventSink, log *logging.Logger) Provider {
	if log == nil {
		log = logging.Nop()
	}
	return &recording{
		inner:    p,
		provider: provider,
		sink:     sink,
		log:      log.With("component", "llm", "provider", provider),
		now:      time.Now,
	}
}

func (r *recording) Generate(ctx context.Context, req Request) (*Response, error) {
	start := r.now()
	resp, err := r.inner.Generate(ctx, req)
	elapsed := r.now().Sub(start)

	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     string(PurposeFrom(ctx)),
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}

	if err != nil {
		ev.ErrorMessage = err.Error()
		var e *Error
		if errors.As(err, &e) && e.Output != "" {
			ev.ResponseBody = e.Output
		}
		r.log.Warn("llm call failed", "purpose", ev.Purpose, "latency_ms", ev.LatencyMs, "error", err)
	} else {
		r.log.Debug("llm call", "purpose", ev.Purpose, "model", ev.Model,
			"tokens_in", ev.InputTokens, "tokens_out", ev.OutputTokens, "latency_ms", ev.LatencyMs)
	}

	if r.sink != nil {
		if werr := r.sink.AppendLLMRequest(context.WithoutCancel(ctx), ev); werr != nil {
			r.log.Error("append llm event", "error", werr)
		}
	}
	return resp, err
}

func (r *recording) ModelID() string { return r.inner.ModelID() }

// transcript renders a request for `speakflow llm view`.
func transcript(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		b.WriteString("--- " + label + " ---\n")
		b.WriteString(strings.TrimSpace(body))
		b.WriteString("\n")
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		def, _ := json.MarshalIndent(req.Schema.Definition, "", "  ")
		section("schema "+req.Schema.Name, string(def))
	}
	return b.String()
}
