package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// FakeReply is one scripted turn for Fake.
type FakeReply struct {
	Text  string
	Usage Usage
	Stop  StopReason
	Err   error
}

// Fake is a scripted Provider for tests. Replies are consumed in order
// and returned verbatim; once the script runs out Generate reports the
// provider as unavailable.
type Fake struct {
	mu       sync.Mutex
	script   []FakeReply
	requests []Request
}

// NewFake returns a Fake that plays replies in order.
func NewFake(replies ...FakeReply) *Fake {
	return &Fake{script: replies}
}

// Queue appends replies to the script.
func (f *Fake) Queue(replies ...FakeReply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, replies...)
}

// Requests returns every request seen so far.
func (f *Fake) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// LastRequest returns the most recent request.
func (f *Fake) LastRequest() (Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return Request{}, false
	}
	return f.requests[len(f.requests)-1], true
}

func (f *Fake) Generate(_ context.Context, req Request) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if len(f.script) == 0 {
		return nil, &Error{Kind: KindUnavailable, Provider: "fake", Err: errors.New("script exhausted")}
	}
	next := f.script[0]
	f.script = f.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	stop := next.Stop
	if stop == "" {
		stop = StopEnd
	}
	return &Response{Content: json.RawMessage(next.Text), Usage: next.Usage, Model: "fake", Stop: stop}, nil
}

func (f *Fake) ModelID() string { return "fake" }
