// Package recording implements one speak-and-score round for a lesson item.
package recording

import (
	"strings"
	"sync/atomic"

	"github.com/abhisek/speakflow/internal/scoring"
)

// Phase is the current phase of a recording cycle.
type Phase int

const (
	PhaseIdle      Phase = iota // Waiting for the learner to start
	PhaseRecording              // Capture in progress
	PhaseChecking               // Transcript sent for evaluation
	PhaseFeedback               // Evaluation shown; terminal for the item
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRecording:
		return "recording"
	case PhaseChecking:
		return "checking"
	case PhaseFeedback:
		return "feedback"
	}
	return "unknown"
}

// Token identifies one started capture. The zero Token is never issued.
type Token uint64

var tokenSeq atomic.Uint64

func nextToken() Token {
	return Token(tokenSeq.Add(1))
}

// NotHeard is shown when a capture fails or yields no speech.
var NotHeard = scoring.Evaluation{Score: 0, Feedback: "Didn't catch that. Try again!"}

// Cycle tracks Idle → Recording → Checking → Feedback for one target text.
// It is not safe for concurrent use; the owning screen serializes access
// through its update loop.
type Cycle struct {
	target string
	phase  Phase
	token  Token

	feedback   *scoring.Evaluation
	transcript string
}

// New creates an idle cycle for target.
func New(target string) *Cycle {
	return &Cycle{target: target}
}

// Target returns the text being practiced.
func (c *Cycle) Target() string { return c.target }

// Phase returns the current phase.
func (c *Cycle) Phase() Phase { return c.phase }

// Token returns the live token, or zero when no capture or evaluation is
// pending.
func (c *Cycle) Token() Token { return c.token }

// Transcript returns the last recognized text.
func (c *Cycle) Transcript() string { return c.transcript }

// Feedback returns the visible evaluation, if any. A failed capture leaves
// NotHeard visible while the phase returns to idle.
func (c *Cycle) Feedback() (scoring.Evaluation, bool) {
	if c.feedback == nil {
		return scoring.Evaluation{}, false
	}
	return *c.feedback, true
}

// Start begins a capture. It returns false unless the cycle is idle, so
// only one capture runs at a time and an evaluated item stays evaluated.
func (c *Cycle) Start() (Token, bool) {
	if c.phase != PhaseIdle {
		return 0, false
	}
	c.phase = PhaseRecording
	c.token = nextToken()
	c.feedback = nil
	c.transcript = ""
	return c.token, true
}

// Stop cancels a capture in progress. Results still in flight for the old
// token are ignored.
func (c *Cycle) Stop() bool {
	if c.phase != PhaseRecording {
		return false
	}
	c.phase = PhaseIdle
	c.token = 0
	return true
}

// CaptureSucceeded moves to checking. It returns true when the caller must
// now evaluate the transcript. An empty transcript counts as a failure.
func (c *Cycle) CaptureSucceeded(tok Token, transcript string) bool {
	if !c.live(tok, PhaseRecording) {
		return false
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		c.fail()
		return false
	}
	c.transcript = transcript
	c.phase = PhaseChecking
	return true
}

// CaptureFailed returns to idle with NotHeard visible.
func (c *Cycle) CaptureFailed(tok Token) bool {
	if !c.live(tok, PhaseRecording) {
		return false
	}
	c.fail()
	return true
}

// Evaluated records the evaluation for tok. An error shows the neutral
// fallback instead.
func (c *Cycle) Evaluated(tok Token, ev scoring.Evaluation, err error) bool {
	if !c.live(tok, PhaseChecking) {
		return false
	}
	if err != nil {
		ev = scoring.Fallback
	}
	ev = scoring.Normalize(ev)
	c.feedback = &ev
	c.phase = PhaseFeedback
	c.token = 0
	return true
}

// Reset returns the cycle to a clean idle state.
func (c *Cycle) Reset() {
	c.phase = PhaseIdle
	c.token = 0
	c.feedback = nil
	c.transcript = ""
}

func (c *Cycle) live(tok Token, want Phase) bool {
	return tok != 0 && tok == c.token && c.phase == want
}

func (c *Cycle) fail() {
	nh := NotHeard
	c.feedback = &nh
	c.phase = PhaseIdle
	c.token = 0
}
