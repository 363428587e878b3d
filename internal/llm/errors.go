package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrNotConfigured is returned by NewProviderFromEnv when no provider
// is configured through the environment.
var ErrNotConfigured = errors.New("no LLM provider configured")

var errEmptyOutput = errors.New("empty model output")

// ErrorKind classifies provider failures for the retry policy and for
// callers deciding whether to fall back.
type ErrorKind int

const (
	// KindUnavailable covers network failures, 5xx responses and anything
	// the provider did not explain.
	KindUnavailable ErrorKind = iota
	KindRateLimited
	// KindRejected is a 4xx other than 429: bad key, bad request.
	KindRejected
	// KindInvalidOutput means the reply did not match the schema.
	KindInvalidOutput
	// KindTruncated means a structured reply hit MaxTokens.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindRejected:
		return "rejected"
	case KindInvalidOutput:
		return "invalid output"
	case KindTruncated:
		return "truncated"
	default:
		return "unavailable"
	}
}

// Error is the error type every provider returns.
type Error struct {
	Kind     ErrorKind
	Provider string

	// Status is the HTTP status when there was one.
	Status int

	// RetryAfter is the server's requested backoff, if it sent one.
	RetryAfter time.Duration

	// Output is the offending model text for invalid or truncated replies.
	Output string

	Err error
}

func (e *Error) Error() string {
	msg := "llm " + e.Kind.String()
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// fromStatus classifies an SDK error by HTTP status. A zero status means
// the request never got a response.
func fromStatus(provider string, status int, err error) *Error {
	e := &Error{Kind: KindUnavailable, Provider: provider, Status: status, Err: err}
	switch {
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
	case status >= 400 && status < 500 && status != http.StatusRequestTimeout:
		e.Kind = KindRejected
	}
	return e
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
