package lesson

import (
	"time"

	"github.com/abhisek/speakflow/internal/recording"
	"github.com/abhisek/speakflow/internal/scoring"
)

// captureDoneMsg is sent when a device capture returns.
type captureDoneMsg struct {
	Token      recording.Token
	Transcript string
	Err        error
}

// evaluatedMsg is sent when the evaluator has scored a transcript.
type evaluatedMsg struct {
	Token recording.Token
	Eval  scoring.Evaluation
	Err   error
}

// playDoneMsg is sent when audio playback finishes.
type playDoneMsg struct{}

// attemptLoggedMsg confirms the attempt event was written.
type attemptLoggedMsg struct {
	Err error
}

// spinnerTickMsg animates the listening and checking indicators.
type spinnerTickMsg time.Time
