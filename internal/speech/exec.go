package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// expandCommand splits a command template on whitespace and substitutes
// {file} and {seconds}.
func expandCommand(template, file string, seconds int) (string, []string, error) {
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return "", nil, errors.New("empty command template")
	}
	for i, f := range fields {
		f = strings.ReplaceAll(f, "{file}", file)
		f = strings.ReplaceAll(f, "{seconds}", strconv.Itoa(seconds))
		fields[i] = f
	}
	return fields[0], fields[1:], nil
}

// ExecPlayer plays WAV audio through an external command.
type ExecPlayer struct {
	Command string
}

// Play writes wav to a temporary file and plays it.
func (p ExecPlayer) Play(ctx context.Context, wav []byte) error {
	f, err := os.CreateTemp("", "speakflow-*.wav")
	if err != nil {
		return fmt.Errorf("create temp audio: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(wav); err != nil {
		f.Close()
		return fmt.Errorf("write temp audio: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp audio: %w", err)
	}
	return p.PlayFile(ctx, f.Name())
}

// PlayFile plays an audio file in place.
func (p ExecPlayer) PlayFile(ctx context.Context, path string) error {
	name, args, err := expandCommand(p.Command, path, 0)
	if err != nil {
		return err
	}
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// ExecRecorder records microphone audio with an external command.
type ExecRecorder struct {
	Command string
	Seconds int
}

// Record captures up to Seconds of 16 kHz mono audio into path. A
// cancelled context kills the recorder and returns the context error.
func (r ExecRecorder) Record(ctx context.Context, path string) error {
	name, args, err := expandCommand(r.Command, path, r.Seconds)
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%w: %s not found", ErrCaptureUnavailable, name)
	}

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
