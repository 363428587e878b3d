package chat

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	convo "github.com/abhisek/speakflow/internal/chat"
	"github.com/abhisek/speakflow/internal/content"
	"github.com/abhisek/speakflow/internal/controller"
	"github.com/abhisek/speakflow/internal/logging"
	"github.com/abhisek/speakflow/internal/screen"
	"github.com/abhisek/speakflow/internal/speech"
	"github.com/abhisek/speakflow/internal/store"
	"github.com/abhisek/speakflow/internal/tutor"
	"github.com/abhisek/speakflow/internal/ui/components"
	"github.com/abhisek/speakflow/internal/ui/layout"
)

const (
	replyTimeout   = 30 * time.Second
	playTimeout    = 45 * time.Second
	eventTimeout   = 2 * time.Second
	typingInterval = 300 * time.Millisecond
	inputCharLimit = 200
)

// ChatLog records conversation turns. store.EventRepo satisfies it.
type ChatLog interface {
	AppendChatEvent(ctx context.Context, data store.ChatEventData) error
}

// Deps are the collaborators of a chat screen.
type Deps struct {
	Replier tutor.Replier
	Speaker *speech.Speaker
	Voice   string
	Events  ChatLog
	Log     *logging.Logger
}

type replyMsg struct {
	Req     convo.Request
	Reply   string
	Err     error
	Latency time.Duration
}

type playDoneMsg struct{}

type chatLoggedMsg struct {
	Err error
}

type typingTickMsg time.Time

// ChatScreen is a role-play conversation about one unit's topic.
type ChatScreen struct {
	loop   *convo.Loop
	unitID string
	deps   Deps

	input    components.TextInput
	selected int
	playing  bool
	ticking  bool
	frame    int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New opens a conversation about unit.
func New(unit content.Unit, deps Deps) *ChatScreen {
	if deps.Replier == nil {
		deps.Replier = tutor.OfflineReplier{}
	}
	if deps.Log == nil {
		deps.Log = logging.Nop()
	}
	loop := convo.NewLoop(unit.Title)
	deps.Log = deps.Log.With("component", "chat", "unit", unit.ID, "session", loop.SessionID())

	return &ChatScreen{
		loop:   loop,
		unitID: unit.ID,
		deps:   deps,
		input:  components.NewTextInput("Type your reply in Chinese...", inputCharLimit),
	}
}

func (c *ChatScreen) Init() tea.Cmd { return c.input.Init() }

func (c *ChatScreen) Title() string { return "AI Role-play" }

// Loop exposes the conversation.
func (c *ChatScreen) Loop() *convo.Loop { return c.loop }

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return c, c.handleReply(msg)

	case playDoneMsg:
		c.playing = false
		return c, nil

	case chatLoggedMsg:
		if msg.Err != nil {
			c.deps.Log.Warn("failed to record chat turn", "error", msg.Err)
		}
		return c, nil

	case typingTickMsg:
		if !c.loop.Busy() {
			c.ticking = false
			return c, nil
		}
		c.frame++
		return c, typingTick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return c, screen.Emit(controller.Back{})
		case "enter":
			return c, c.send()
		case "up":
			c.moveSelection(-1)
			return c, nil
		case "down":
			c.moveSelection(1)
			return c, nil
		case "ctrl+p":
			return c, c.play()
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) send() tea.Cmd {
	req, ok := c.loop.Send(c.input.Value())
	if !ok {
		return nil
	}
	c.input.Reset()
	c.deps.Log.Debug("message sent", "seq", req.Seq)

	replier := c.deps.Replier
	reply := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		start := time.Now()
		text, err := replier.Reply(ctx, req.History, req.UserText, req.Topic)
		return replyMsg{Req: req, Reply: text, Err: err, Latency: time.Since(start)}
	}

	if c.ticking {
		return reply
	}
	c.ticking = true
	return tea.Batch(reply, typingTick())
}

func (c *ChatScreen) handleReply(msg replyMsg) tea.Cmd {
	if !c.loop.Resolve(msg.Req, msg.Reply, msg.Err) {
		return nil
	}
	fallback := msg.Err != nil || strings.TrimSpace(msg.Reply) == ""
	if msg.Err != nil {
		c.deps.Log.Warn("reply failed", "seq", msg.Req.Seq, "error", msg.Err)
	}
	msgs := c.loop.Messages()
	c.selected = len(msgs) - 1

	if c.deps.Events == nil {
		return nil
	}
	events := c.deps.Events
	data := store.ChatEventData{
		SessionID: c.loop.SessionID(),
		UnitID:    c.unitID,
		UserText:  msg.Req.UserText,
		Reply:     msgs[len(msgs)-1].Content,
		Fallback:  fallback,
		LatencyMs: msg.Latency.Milliseconds(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		return chatLoggedMsg{Err: events.AppendChatEvent(ctx, data)}
	}
}

// moveSelection steps through assistant messages only.
func (c *ChatScreen) moveSelection(delta int) {
	msgs := c.loop.Messages()
	for i := c.selected + delta; i >= 0 && i < len(msgs); i += delta {
		if msgs[i].Role == convo.RoleAssistant {
			c.selected = i
			return
		}
	}
}

// Selected is the index of the highlighted assistant message.
func (c *ChatScreen) Selected() int { return c.selected }

func (c *ChatScreen) play() tea.Cmd {
	if c.playing || c.deps.Speaker == nil {
		return nil
	}
	text, ok := c.loop.PlaybackText(c.selected)
	if !ok {
		return nil
	}
	c.playing = true
	speaker, voice := c.deps.Speaker, c.deps.Voice
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
		defer cancel()
		speaker.Speak(ctx, text, voice)
		return playDoneMsg{}
	}
}

func typingTick() tea.Cmd {
	return tea.Tick(typingInterval, func(t time.Time) tea.Msg {
		return typingTickMsg(t)
	})
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "enter", Description: "Send"},
		{Key: "↑/↓", Description: "Select reply"},
		{Key: "ctrl+p", Description: "Listen"},
		{Key: "esc", Description: "Back"},
	}
}
