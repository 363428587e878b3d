package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicAliases = map[string]string{
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"claude-sonnet": "claude-sonnet-4-5",
}

// Anthropic requires max_tokens on every request.
const anthropicDefaultMaxTokens = 1024

type anthropicProvider struct {
	client anthropic.Client
	model  string
}

func newAnthropic(key, model string, opts ...option.RequestOption) *anthropicProvider {
	opts = append([]option.RequestOption{option.WithAPIKey(key)}, opts...)
	return &anthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  alias(model, anthropicAliases),
	}
}

func (p *anthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages:  make([]anthropic.MessageParam, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, anthropicError(err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, &Error{Kind: KindInvalidOutput, Provider: "anthropic", Err: errEmptyOutput}
	}

	stop := StopEnd
	if msg.StopReason == anthropic.StopReasonMaxTokens {
		stop = StopMaxTokens
	}
	usage := Usage{InputTokens: int(msg.Usage.InputTokens), OutputTokens: int(msg.Usage.OutputTokens)}
	return complete(req, text.String(), usage, string(msg.Model), stop)
}

func (p *anthropicProvider) ModelID() string { return p.model }

func anthropicError(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return fromStatus("anthropic", 0, err)
	}
	e := fromStatus("anthropic", apiErr.StatusCode, err)
	if apiErr.Response != nil {
		e.RetryAfter = parseRetryAfter(apiErr.Response.Header)
	}
	return e
}

// alias resolves a friendly model name; unknown names pass through.
func alias(name string, table map[string]string) string {
	if id, ok := table[name]; ok {
		return id
	}
	return name
}
