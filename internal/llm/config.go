package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config selects and tunes the provider.
type Config struct {
	// Provider is one of gemini, openai, anthropic, openrouter.
	Provider string

	// Keys and models per provider. Model accepts the aliases in the
	// provider's alias table as well as raw model IDs.
	Keys   map[string]string
	Models map[string]string

	// BaseURL overrides the endpoint of OpenAI-compatible providers.
	BaseURL string

	Retry RetryConfig
}

// RetryConfig bounds retries of transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// providerNames in discovery priority. Gemini comes first because the
// same key also drives speech synthesis.
var providerNames = []string{"gemini", "openai", "anthropic", "openrouter"}

var defaultModels = map[string]string{
	"gemini":     "gemini-flash",
	"openai":     "gpt-4o-mini",
	"anthropic":  "claude-haiku",
	"openrouter": "google/gemini-2.0-flash-001",
}

// conventionalKeys are the variables other tools already use.
var conventionalKeys = map[string]string{
	"gemini":     "GEMINI_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// DefaultConfig is Gemini with no key.
func DefaultConfig() Config {
	models := make(map[string]string, len(defaultModels))
	for k, v := range defaultModels {
		models[k] = v
	}
	return Config{
		Provider: "gemini",
		Keys:     map[string]string{},
		Models:   models,
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2,
		},
	}
}

// ConfigFromEnv reads SPEAKFLOW_LLM_PROVIDER, SPEAKFLOW_<P>_API_KEY (or
// the conventional <P>_API_KEY), SPEAKFLOW_<P>_MODEL,
// SPEAKFLOW_LLM_BASE_URL and SPEAKFLOW_LLM_RETRIES.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv("SPEAKFLOW_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	for _, name := range providerNames {
		prefix := "SPEAKFLOW_" + envName(name)
		if k := os.Getenv(prefix + "_API_KEY"); k != "" {
			cfg.Keys[name] = k
		} else if k := os.Getenv(conventionalKeys[name]); k != "" {
			cfg.Keys[name] = k
		}
		if m := os.Getenv(prefix + "_MODEL"); m != "" {
			cfg.Models[name] = m
		}
	}
	cfg.BaseURL = os.Getenv("SPEAKFLOW_LLM_BASE_URL")
	if n := os.Getenv("SPEAKFLOW_LLM_RETRIES"); n != "" {
		if attempts, err := strconv.Atoi(n); err == nil && attempts > 0 {
			cfg.Retry.MaxAttempts = attempts
		}
	}
	return cfg
}

// DiscoverConfig picks the first provider whose conventional key variable
// (GEMINI_API_KEY, OPENAI_API_KEY, ...) is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, name := range providerNames {
		if k := os.Getenv(conventionalKeys[name]); k != "" {
			cfg.Provider = name
			cfg.Keys[name] = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Key returns the API key of the selected provider.
func (c Config) Key() string { return c.Keys[c.Provider] }

// Model returns the configured model of the selected provider.
func (c Config) Model() string { return c.Models[c.Provider] }

// Validate checks the provider is known and has a key.
func (c Config) Validate() error {
	if _, ok := defaultModels[c.Provider]; !ok {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if c.Key() == "" {
		return fmt.Errorf("SPEAKFLOW_%s_API_KEY is required for the %s provider", envName(c.Provider), c.Provider)
	}
	return nil
}

func envName(provider string) string { return strings.ToUpper(provider) }
