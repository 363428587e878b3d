// Package chat holds the message history of a free-conversation session.
package chat

import (
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/speakflow/internal/tutor"
)

// Greeting seeds every conversation.
const Greeting = "你好！我们可以开始练习对话了吗？(Nǐ hǎo! Wǒmen kěyǐ kāishǐ liànxí duìhuà le ma?) - Hello! Shall we start practicing our conversation?"

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one line of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Request is an outstanding reply request. It is matched against the loop
// when the reply arrives so that replies for an exited chat are dropped.
type Request struct {
	SessionID string
	Seq       int

	// History is the conversation before UserText, one "User: " or
	// "Assistant: " line per message.
	History  []string
	UserText string
	Topic    string
}

// Loop is the append-only history of one chat. It allows one reply in
// flight at a time.
type Loop struct {
	id       string
	topic    string
	messages []Message
	seq      int
	busy     bool
}

// NewLoop starts a conversation about topic, seeded with Greeting.
func NewLoop(topic string) *Loop {
	return &Loop{
		id:       uuid.NewString(),
		topic:    topic,
		messages: []Message{{Role: RoleAssistant, Content: Greeting}},
	}
}

// SessionID identifies this conversation.
func (l *Loop) SessionID() string { return l.id }

// Topic is the role-play scenario, usually the unit title.
func (l *Loop) Topic() string { return l.topic }

// Busy reports whether a reply is outstanding.
func (l *Loop) Busy() bool { return l.busy }

// Messages returns a copy of the history.
func (l *Loop) Messages() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Send appends the user's message and returns the reply request. Blank
// text or an outstanding reply make it a no-op.
func (l *Loop) Send(text string) (Request, bool) {
	text = strings.TrimSpace(text)
	if text == "" || l.busy {
		return Request{}, false
	}

	history := FormatHistory(l.messages)
	l.messages = append(l.messages, Message{Role: RoleUser, Content: text})
	l.seq++
	l.busy = true

	return Request{
		SessionID: l.id,
		Seq:       l.seq,
		History:   history,
		UserText:  text,
		Topic:     l.topic,
	}, true
}

// Resolve appends the assistant's answer to req. A failed or blank reply
// appends tutor.Apology instead. Stale requests are ignored.
func (l *Loop) Resolve(req Request, reply string, err error) bool {
	if !l.busy || req.SessionID != l.id || req.Seq != l.seq {
		return false
	}
	reply = strings.TrimSpace(reply)
	if err != nil || reply == "" {
		reply = tutor.Apology
	}
	l.messages = append(l.messages, Message{Role: RoleAssistant, Content: reply})
	l.busy = false
	return true
}

// PlaybackText returns the text to synthesize for message i. Only
// assistant messages are spoken.
func (l *Loop) PlaybackText(i int) (string, bool) {
	if i < 0 || i >= len(l.messages) || l.messages[i].Role != RoleAssistant {
		return "", false
	}
	return TargetPortion(l.messages[i].Content), true
}

// TargetPortion strips the pinyin and translation from a reply: the text
// before the first "(" or "（", or the whole text when that is empty.
func TargetPortion(s string) string {
	cut := s
	if i := strings.IndexAny(s, "(（"); i >= 0 {
		cut = s[:i]
	}
	cut = strings.TrimSpace(cut)
	if cut == "" {
		return strings.TrimSpace(s)
	}
	return cut
}

// FormatHistory serializes messages for the reply prompt.
func FormatHistory(msgs []Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		prefix := "Assistant: "
		if m.Role == RoleUser {
			prefix = "User: "
		}
		out = append(out, prefix+m.Content)
	}
	return out
}
