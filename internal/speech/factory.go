package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/abhisek/speakflow/internal/logging"
)

// Services bundles what the screens need from this package.
type Services struct {
	Speaker *Speaker

	// Capturer is nil in keyboard capture mode, where the screen takes
	// the typed text as the transcript.
	Capturer Capturer

	LessonVoice string
	ChatVoice   string

	closers []io.Closer
}

// New builds speech services from cfg.
func New(ctx context.Context, cfg Config, log *logging.Logger) (*Services, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}

	svc := &Services{LessonVoice: cfg.LessonVoice, ChatVoice: cfg.ChatVoice}
	player := ExecPlayer{Command: cfg.PlayCommand}

	var synth Synthesizer
	switch cfg.TTSProvider {
	case "gemini":
		g, err := NewGeminiSynthesizer(ctx, cfg.GeminiAPIKey, cfg.TTSModel)
		if err != nil {
			return nil, err
		}
		synth = g
	case "openai":
		synth = NewOpenAISynthesizer(cfg.OpenAIAPIKey, cfg.TTSModel)
	}
	svc.Speaker = NewSpeaker(withSynthTimeout(synth, cfg.Timeout), player, log)

	if cfg.CaptureMode == CaptureDevice {
		var stt Transcriber
		switch cfg.STTProvider {
		case "whisper":
			stt = NewWhisperTranscriber(cfg.OpenAIAPIKey, cfg.Language)
		case "gcp":
			g, err := NewGCPTranscriber(ctx, cfg.GCPCredentials, cfg.Language)
			if err != nil {
				return nil, fmt.Errorf("initializing gcp speech: %w", err)
			}
			svc.closers = append(svc.closers, g)
			stt = g
		}
		rec := ExecRecorder{Command: cfg.RecordCommand, Seconds: cfg.RecordSeconds}
		svc.Capturer = NewDeviceCapturer(rec, withSTTTimeout(stt, cfg.Timeout), log)
	}

	log.Info("speech configured",
		"tts", cfg.TTSProvider, "stt", cfg.STTProvider, "capture", cfg.CaptureMode, "timeout", cfg.Timeout)
	return svc, nil
}

// Disabled returns services that neither speak nor record.
func Disabled() *Services {
	cfg := DefaultConfig()
	return &Services{
		Speaker:     NewSpeaker(nil, nil, nil),
		LessonVoice: cfg.LessonVoice,
		ChatVoice:   cfg.ChatVoice,
	}
}

// Close releases provider connections.
func (s *Services) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
