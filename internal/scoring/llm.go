package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/speakflow/internal/llm"
)

const scoreSystemPrompt = `You are a patient Mandarin Chinese pronunciation coach.
You compare what a learner was asked to say with what a speech recognizer heard.
Judge accuracy of the words and tones the recognizer captured.
Reply with a score from 0 to 100 and brief, encouraging feedback in English.`

// Config tunes the LLM evaluator.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the evaluator defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.2,
		Timeout:     15 * time.Second,
	}
}

// LLMEvaluator scores attempts with a language model.
type LLMEvaluator struct {
	provider llm.Provider
	cfg      Config
}

// NewLLMEvaluator creates an evaluator backed by provider.
func NewLLMEvaluator(provider llm.Provider, cfg Config) *LLMEvaluator {
	return &LLMEvaluator{provider: provider, cfg: cfg}
}

func (e *LLMEvaluator) Evaluate(ctx context.Context, target, recognized string) (Evaluation, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeScore)

	resp, err := e.provider.Generate(ctx, llm.Request{
		System:      scoreSystemPrompt,
		Messages:    llm.UserMessage(buildScorePrompt(target, recognized)),
		Schema:      scoreSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return Evaluation{}, fmt.Errorf("score attempt: %w", err)
	}

	var ev Evaluation
	if err := resp.Decode(&ev); err != nil {
		return Evaluation{}, fmt.Errorf("decode score: %w", err)
	}
	return Normalize(ev), nil
}

func buildScorePrompt(target, recognized string) string {
	return fmt.Sprintf(
		"The target Chinese text was %q.\nThe speech recognition engine captured %q.\n"+
			"On a scale of 0-100, how accurate is this? Provide feedback in English.",
		target, recognized)
}
