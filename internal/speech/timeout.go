package speech

import (
	"context"
	"time"
)

// withSynthTimeout bounds every Synthesize call on s by d. A nil s or a
// non-positive d returns s unchanged.
func withSynthTimeout(s Synthesizer, d time.Duration) Synthesizer {
	if s == nil || d <= 0 {
		return s
	}
	return timedSynth{s, d}
}

type timedSynth struct {
	Synthesizer
	d time.Duration
}

func (t timedSynth) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.Synthesizer.Synthesize(ctx, text, voice)
}

// withSTTTimeout bounds every Transcribe call on s by d.
func withSTTTimeout(s Transcriber, d time.Duration) Transcriber {
	if s == nil || d <= 0 {
		return s
	}
	return timedSTT{s, d}
}

type timedSTT struct {
	Transcriber
	d time.Duration
}

func (t timedSTT) Transcribe(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.Transcriber.Transcribe(ctx, path)
}
