package speech

import (
	"context"
	"strings"

	"github.com/abhisek/speakflow/internal/logging"
)

// Player plays audio.
type Player interface {
	Play(ctx context.Context, wav []byte) error
	PlayFile(ctx context.Context, path string) error
}

// Speaker reads text aloud. Playback is best-effort: failures are logged
// and never reach the caller.
type Speaker struct {
	synth  Synthesizer
	player Player
	log    *logging.Logger
}

// NewSpeaker combines a synthesizer with a player. A nil synthesizer or
// player makes Speak a no-op.
func NewSpeaker(synth Synthesizer, player Player, log *logging.Logger) *Speaker {
	if log == nil {
		log = logging.Nop()
	}
	return &Speaker{synth: synth, player: player, log: log.With("component", "speech")}
}

// Enabled reports whether Speak produces sound.
func (s *Speaker) Enabled() bool {
	return s != nil && s.synth != nil && s.player != nil
}

// Speak synthesizes text in voice and plays it, blocking until playback
// ends.
func (s *Speaker) Speak(ctx context.Context, text, voice string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if !s.Enabled() {
		s.log.Debug("speech synthesis disabled", "text", text)
		return
	}

	wav, err := s.synth.Synthesize(ctx, text, voice)
	if err != nil {
		s.log.Warn("synthesis failed", "voice", voice, "error", err)
		return
	}
	if err := s.player.Play(ctx, wav); err != nil {
		s.log.Warn("playback failed", "error", err)
	}
}

// PlayFile plays a pre-recorded clip.
func (s *Speaker) PlayFile(ctx context.Context, path string) {
	if s == nil || s.player == nil {
		return
	}
	if err := s.player.PlayFile(ctx, path); err != nil {
		s.log.Warn("playback failed", "path", path, "error", err)
	}
}
