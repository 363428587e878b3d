// Package speech plays target-language audio and turns the learner's
// voice into text.
package speech

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Capture modes.
const (
	CaptureDevice   = "device"
	CaptureKeyboard = "keyboard"
)

// Config holds synthesis, playback and capture settings.
type Config struct {
	// TTSProvider is "gemini", "openai" or "none".
	TTSProvider string
	TTSModel    string

	// STTProvider is "whisper", "gcp" or "none".
	STTProvider string

	// CaptureMode is CaptureDevice or CaptureKeyboard.
	CaptureMode string

	// RecordCommand and PlayCommand are templates expanded with {file}
	// and {seconds}.
	RecordCommand string
	PlayCommand   string
	RecordSeconds int

	LessonVoice string
	ChatVoice   string

	// Language is the BCP-47 tag used for recognition.
	Language string

	GeminiAPIKey string
	OpenAIAPIKey string

	// GCPCredentials is a service-account file path or inline JSON.
	GCPCredentials string

	// Timeout bounds one synthesis or transcription call. Zero means no
	// bound beyond the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns defaults for the current platform with nothing
// configured: no synthesis, keyboard capture.
func DefaultConfig() Config {
	rec, play := defaultCommands(runtime.GOOS)
	return Config{
		TTSProvider:   "none",
		STTProvider:   "none",
		CaptureMode:   CaptureKeyboard,
		RecordCommand: rec,
		PlayCommand:   play,
		RecordSeconds: 5,
		LessonVoice:   "Kore",
		ChatVoice:     "Puck",
		Language:      "zh-CN",
		Timeout:       30 * time.Second,
	}
}

func defaultCommands(goos string) (record, play string) {
	if goos == "darwin" {
		return "rec -q -r 16000 -c 1 -b 16 {file} trim 0 {seconds}", "afplay {file}"
	}
	return "arecord -q -f S16_LE -r 16000 -c 1 -d {seconds} {file}", "aplay -q {file}"
}

// ConfigFromEnv reads SPEAKFLOW_* variables and picks providers from
// whichever credentials are present when none are named explicitly.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.GeminiAPIKey = firstEnv("SPEAKFLOW_GEMINI_API_KEY", "GEMINI_API_KEY")
	cfg.OpenAIAPIKey = firstEnv("SPEAKFLOW_OPENAI_API_KEY", "OPENAI_API_KEY")
	cfg.GCPCredentials = firstEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "GOOGLE_APPLICATION_CREDENTIALS")

	switch {
	case cfg.GeminiAPIKey != "":
		cfg.TTSProvider = "gemini"
	case cfg.OpenAIAPIKey != "":
		cfg.TTSProvider = "openai"
	}
	switch {
	case cfg.OpenAIAPIKey != "":
		cfg.STTProvider = "whisper"
	case cfg.GCPCredentials != "":
		cfg.STTProvider = "gcp"
	}

	overlay := []struct {
		env string
		dst *string
	}{
		{"SPEAKFLOW_TTS_PROVIDER", &cfg.TTSProvider},
		{"SPEAKFLOW_TTS_MODEL", &cfg.TTSModel},
		{"SPEAKFLOW_STT_PROVIDER", &cfg.STTProvider},
		{"SPEAKFLOW_RECORD_COMMAND", &cfg.RecordCommand},
		{"SPEAKFLOW_PLAY_COMMAND", &cfg.PlayCommand},
		{"SPEAKFLOW_LESSON_VOICE", &cfg.LessonVoice},
		{"SPEAKFLOW_CHAT_VOICE", &cfg.ChatVoice},
		{"SPEAKFLOW_SPEECH_LANGUAGE", &cfg.Language},
	}
	for _, o := range overlay {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.dst = v
		}
	}

	if cfg.STTProvider != "none" {
		cfg.CaptureMode = CaptureDevice
	}
	if v := os.Getenv("SPEAKFLOW_CAPTURE_MODE"); v != "" {
		cfg.CaptureMode = v
	}
	if v := os.Getenv("SPEAKFLOW_SPEECH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("SPEAKFLOW_RECORD_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RecordSeconds = n
		}
	}
	return cfg
}

// Validate checks provider names and the credentials they need.
func (c Config) Validate() error {
	switch c.TTSProvider {
	case "none":
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("gemini speech synthesis needs SPEAKFLOW_GEMINI_API_KEY")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("openai speech synthesis needs SPEAKFLOW_OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown TTS provider: %q", c.TTSProvider)
	}

	switch c.STTProvider {
	case "none", "gcp":
	case "whisper":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("whisper transcription needs SPEAKFLOW_OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown STT provider: %q", c.STTProvider)
	}

	switch c.CaptureMode {
	case CaptureKeyboard:
	case CaptureDevice:
		if c.STTProvider == "none" {
			return fmt.Errorf("device capture needs a speech-to-text provider")
		}
		if c.RecordSeconds <= 0 {
			return fmt.Errorf("record seconds must be positive, got %d", c.RecordSeconds)
		}
	default:
		return fmt.Errorf("unknown capture mode: %q", c.CaptureMode)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
