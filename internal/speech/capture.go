package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/speakflow/internal/logging"
)

var (
	// ErrNoSpeech is returned when a capture finished but nothing was
	// recognized.
	ErrNoSpeech = errors.New("no speech recognized")

	// ErrCaptureUnavailable is returned when no recording device or tool
	// is available.
	ErrCaptureUnavailable = errors.New("audio capture unavailable")
)

// Capturer records one utterance and returns its transcript. Cancelling
// ctx stops the capture.
type Capturer interface {
	Capture(ctx context.Context) (string, error)
}

// Recorder writes microphone audio to a file.
type Recorder interface {
	Record(ctx context.Context, path string) error
}

// Transcriber turns a 16 kHz mono WAV file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// DeviceCapturer records from the microphone and transcribes the result.
type DeviceCapturer struct {
	rec Recorder
	stt Transcriber
	log *logging.Logger
}

// NewDeviceCapturer creates a capturer from a recorder and transcriber.
func NewDeviceCapturer(rec Recorder, stt Transcriber, log *logging.Logger) *DeviceCapturer {
	if log == nil {
		log = logging.Nop()
	}
	return &DeviceCapturer{rec: rec, stt: stt, log: log.With("component", "capture")}
}

func (d *DeviceCapturer) Capture(ctx context.Context) (string, error) {
	f, err := os.CreateTemp("", "speakflow-rec-*.wav")
	if err != nil {
		return "", fmt.Errorf("create recording file: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := d.rec.Record(ctx, path); err != nil {
		return "", fmt.Errorf("record: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if fi, err := os.Stat(path); err != nil || fi.Size() <= wavHeaderSize {
		return "", ErrNoSpeech
	}

	text, err := d.stt.Transcribe(ctx, path)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoSpeech
	}
	d.log.Debug("captured utterance", "transcript", text)
	return text, nil
}
