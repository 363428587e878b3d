package llm

import "context"

// Purpose labels a request in the event log.
type Purpose string

const (
	PurposeScore     Purpose = "pronunciation-score"
	PurposeChatReply Purpose = "chat-reply"
	PurposeUnknown   Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose tags ctx so recorded events say what the call was for.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the tag set by WithPurpose.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
