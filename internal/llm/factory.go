package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/speakflow/internal/logging"
)

// NewProvider builds the configured provider. Calls pass through retry,
// then recording, then the SDK, so every attempt is logged separately.
func NewProvider(ctx context.Context, cfg Config, sink EventSink, log *logging.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	switch cfg.Provider {
	case "anthropic":
		base = newAnthropic(cfg.Key(), cfg.Model())
	case "openai":
		base = newOpenAI(cfg.Key(), cfg.Model(), cfg.BaseURL)
	case "openrouter":
		base = newOpenRouter(cfg.Key(), cfg.Model(), cfg.BaseURL)
	case "gemini":
		g, err := newGemini(ctx, cfg.Key(), cfg.Model(), nil)
		if err != nil {
			return nil, fmt.Errorf("initializing gemini provider: %w", err)
		}
		base = g
	}

	return WithRetry(WithRecording(base, cfg.Provider, sink, log), cfg.Retry), nil
}

// NewProviderFromEnv uses SPEAKFLOW_* settings when they are complete and
// otherwise the first conventional API key it finds. The returned Config
// is what was used, or what was attempted on error.
func NewProviderFromEnv(ctx context.Context, sink EventSink, log *logging.Logger) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	if verr := cfg.Validate(); verr != nil {
		found, ok := DiscoverConfig()
		if !ok {
			return nil, cfg, fmt.Errorf("%w: %v", ErrNotConfigured, verr)
		}
		// Model and retry overrides still apply to a discovered key.
		found.Models, found.Retry, found.BaseURL = cfg.Models, cfg.Retry, cfg.BaseURL
		cfg = found
	}

	p, err := NewProvider(ctx, cfg, sink, log)
	return p, cfg, err
}
