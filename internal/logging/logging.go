package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin key/value wrapper over a zap SugaredLogger. The TUI owns
// stdout, so records go to a file.
type Logger struct {
	sugar *zap.SugaredLogger
}

// Config controls where and how much is logged.
type Config struct {
	// Path is the log file. Empty means discard.
	Path string

	// Level is one of debug, info, warn, error. Default: info.
	Level string
}

// DefaultConfig returns a Config writing info-level logs next to the database.
func DefaultConfig(dataDir string) Config {
	return Config{
		Path:  filepath.Join(dataDir, "speakflow.log"),
		Level: "info",
	}
}

// ConfigFromEnv overlays SPEAKFLOW_LOG_FILE and SPEAKFLOW_LOG_LEVEL.
func ConfigFromEnv(dataDir string) Config {
	cfg := DefaultConfig(dataDir)
	if p := os.Getenv("SPEAKFLOW_LOG_FILE"); p != "" {
		cfg.Path = p
	}
	if l := os.Getenv("SPEAKFLOW_LOG_LEVEL"); l != "" {
		cfg.Level = l
	}
	return cfg
}

// New builds a file-backed JSON logger.
func New(cfg Config) (*Logger, error) {
	if cfg.Path == "" {
		return Nop(), nil
	}

	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{cfg.Path}
	zcfg.ErrorOutputPaths = []string{cfg.Path}
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.Sampling = nil

	zl, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{sugar: zl.Sugar()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, redact(kv)...) }
func (l *Logger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, redact(kv)...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, redact(kv)...) }
func (l *Logger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, redact(kv)...) }

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{sugar: l.sugar.With(redact(kv)...)}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

// redact masks values whose key names a credential.
func redact(kv []any) []any {
	if len(kv) < 2 {
		return kv
	}
	out := make([]any, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		k := strings.ToLower(key)
		if strings.Contains(k, "api_key") || strings.Contains(k, "apikey") ||
			strings.Contains(k, "token") || strings.Contains(k, "secret") {
			out[i+1] = "[REDACTED]"
		}
	}
	return out
}
