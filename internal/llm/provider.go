// Package llm talks to hosted language models. Scoring asks for JSON
// that matches a schema; the role-play tutor asks for free text. Both go
// through Provider, which the factory wraps with retry and event
// recording.
package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider generates one model turn.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model requests are sent to.
	ModelID() string
}

// Request is one generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, switches the provider to structured output and the
	// reply is validated before it is returned.
	Schema *Schema

	MaxTokens int

	// Temperature of zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema is a JSON Schema the reply must satisfy.
type Schema struct {
	// Name is kebab-case and doubles as the compiled-schema cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason says why the model stopped.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a model turn.
type Response struct {
	// Content is validated JSON for schema requests and raw text otherwise.
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request, which may be
	// a dated variant of ModelID.
	Model string
	Stop  StopReason
}

// Text returns the content as trimmed plain text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Decode unmarshals structured content into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Content) == 0 {
		return &Error{Kind: KindInvalidOutput, Err: errEmptyOutput}
	}
	return json.Unmarshal(r.Content, v)
}

// Usage is token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// complete turns raw model text into a Response. Schema requests get the
// text cleaned and validated; a truncated structured reply is an error
// because half a JSON object cannot be used.
func complete(req Request, text string, usage Usage, model string, stop StopReason) (*Response, error) {
	resp := &Response{Content: json.RawMessage(text), Usage: usage, Model: model, Stop: stop}
	if req.Schema == nil {
		return resp, nil
	}
	if stop == StopMaxTokens {
		return nil, &Error{Kind: KindTruncated, Output: text}
	}
	clean, err := validateStructured(req.Schema, text)
	if err != nil {
		return nil, err
	}
	resp.Content = clean
	return resp, nil
}
