// Package tutor produces conversational replies for chat practice.
package tutor

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/speakflow/internal/llm"
)

// Apology is appended when no reply could be produced.
const Apology = "对不起，我不明白。(Duì bu qǐ, wǒ bù míng bai.) - Sorry, I don't understand."

// OfflineReply is the canned reply used when no language model is configured.
const OfflineReply = "你好！很高兴见到你。(Nǐ hǎo! Hěn gāoxìng jiàndào nǐ.) - Hello! Nice to meet you."

const replySystemPrompt = `You are a friendly Mandarin Chinese conversation partner for a language learner.
Stay in the role-play scenario you are given.
Keep every reply to one or two short, simple Chinese sentences.
After the Chinese, give the pinyin in round brackets, then " - " and the English translation.
Example: 你好！(Nǐ hǎo!) - Hello!`

// Replier produces the assistant's next message.
type Replier interface {
	Reply(ctx context.Context, history []string, userText, topic string) (string, error)
}

// Config tunes the LLM replier.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration

	// HistoryWindow caps how many prior lines are sent. Zero sends all.
	HistoryWindow int
}

// DefaultConfig returns the replier defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   300,
		Temperature: 0.7,
		Timeout:     20 * time.Second,
	}
}

// ConfigFromEnv overlays SPEAKFLOW_CHAT_HISTORY_WINDOW on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("SPEAKFLOW_CHAT_HISTORY_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.HistoryWindow = n
		}
	}
	return cfg
}

// LLMReplier asks a language model to continue the role-play.
type LLMReplier struct {
	provider llm.Provider
	cfg      Config
}

// NewLLMReplier creates a replier backed by provider.
func NewLLMReplier(provider llm.Provider, cfg Config) *LLMReplier {
	return &LLMReplier{provider: provider, cfg: cfg}
}

func (r *LLMReplier) Reply(ctx context.Context, history []string, userText, topic string) (string, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeChatReply)

	resp, err := r.provider.Generate(ctx, llm.Request{
		System:      replySystemPrompt,
		Messages:    llm.UserMessage(buildReplyPrompt(window(history, r.cfg.HistoryWindow), userText, topic)),
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return resp.Text(), nil
}

// OfflineReplier always answers with OfflineReply.
type OfflineReplier struct{}

func (OfflineReplier) Reply(context.Context, []string, string, string) (string, error) {
	return OfflineReply, nil
}

func window(history []string, n int) []string {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func buildReplyPrompt(history []string, userText, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Role-play scenario: %s.\n\n", topic)
	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, line := range history {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "The learner just said: %q\n", userText)
	b.WriteString("Reply in short, simple Chinese with pinyin in brackets, then the English translation.")
	return b.String()
}
