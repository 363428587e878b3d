package lesson

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/speakflow/internal/content"
	"github.com/abhisek/speakflow/internal/controller"
	"github.com/abhisek/speakflow/internal/lesson"
	"github.com/abhisek/speakflow/internal/logging"
	"github.com/abhisek/speakflow/internal/recording"
	"github.com/abhisek/speakflow/internal/scoring"
	"github.com/abhisek/speakflow/internal/screen"
	"github.com/abhisek/speakflow/internal/screens/help"
	"github.com/abhisek/speakflow/internal/speech"
	"github.com/abhisek/speakflow/internal/store"
	"github.com/abhisek/speakflow/internal/ui/components"
	"github.com/abhisek/speakflow/internal/ui/layout"
)

const (
	evaluateTimeout = 30 * time.Second
	playTimeout     = 45 * time.Second
	attemptTimeout  = 2 * time.Second
	spinnerInterval = 120 * time.Millisecond
	transcriptLimit = 64
)

// AttemptLog records scored attempts. store.EventRepo satisfies it.
type AttemptLog interface {
	AppendAttemptEvent(ctx context.Context, data store.AttemptEventData) error
}

// Deps are the collaborators of a lesson screen.
type Deps struct {
	Evaluator scoring.Evaluator

	// Capturer records and transcribes speech. When nil the learner types
	// what they said.
	Capturer speech.Capturer

	Speaker  *speech.Speaker
	Voice    string
	Attempts AttemptLog
	Log      *logging.Logger
}

// LessonScreen runs one lesson: listen, speak, get scored, continue.
type LessonScreen struct {
	stepper   *lesson.Stepper
	unitID    string
	sessionID string
	deps      Deps

	input         components.TextInput
	cancelCapture context.CancelFunc
	playing       bool
	ticking       bool
	frame         int
	finished      bool
	err           error
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a lesson screen for unit. sessionID ties attempt events to
// the lesson's lifecycle events.
func New(unit content.Unit, sessionID string, deps Deps) *LessonScreen {
	if deps.Evaluator == nil {
		deps.Evaluator = scoring.OfflineEvaluator{}
	}
	if deps.Log == nil {
		deps.Log = logging.Nop()
	}
	deps.Log = deps.Log.With("component", "lesson", "unit", unit.ID)

	st, err := lesson.NewStepper(unit)
	return &LessonScreen{
		stepper:   st,
		unitID:    unit.ID,
		sessionID: sessionID,
		deps:      deps,
		input:     components.NewTextInput("Type what you said...", transcriptLimit),
		err:       err,
	}
}

func (l *LessonScreen) Init() tea.Cmd { return nil }

func (l *LessonScreen) Title() string {
	if l.stepper == nil {
		return "Lesson"
	}
	return l.stepper.Unit().Title
}

// Stepper exposes the lesson position.
func (l *LessonScreen) Stepper() *lesson.Stepper { return l.stepper }

func (l *LessonScreen) keyboardMode() bool { return l.deps.Capturer == nil }

func (l *LessonScreen) typing() bool {
	return l.keyboardMode() && l.stepper != nil && l.stepper.Cycle().Phase() == recording.PhaseRecording
}

func (l *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case captureDoneMsg:
		return l, l.handleCaptureDone(msg)

	case evaluatedMsg:
		return l, l.handleEvaluated(msg)

	case playDoneMsg:
		l.playing = false
		return l, nil

	case attemptLoggedMsg:
		if msg.Err != nil {
			l.deps.Log.Warn("failed to record attempt", "error", msg.Err)
		}
		return l, nil

	case spinnerTickMsg:
		return l, l.handleTick()

	case tea.KeyPressMsg:
		return l, l.handleKey(msg)
	}

	if l.typing() {
		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LessonScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if l.stepper == nil || l.finished {
		if key == "esc" {
			return l.leave()
		}
		return nil
	}

	if l.typing() {
		switch key {
		case "enter":
			return l.submitTyped()
		case "esc":
			l.stopRecording()
			return nil
		}
		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		return cmd
	}

	switch key {
	case "esc":
		return l.leave()
	case "space", " ":
		return l.toggleRecording()
	case "p":
		return l.play()
	case "enter":
		return l.next()
	case "?":
		return help.Open("Lesson", l.bindings())
	}
	return nil
}

func (l *LessonScreen) toggleRecording() tea.Cmd {
	cycle := l.stepper.Cycle()
	if cycle.Phase() == recording.PhaseRecording {
		l.stopRecording()
		return nil
	}

	tok, ok := cycle.Start()
	if !ok {
		return nil
	}
	l.deps.Log.Debug("recording started", "item", l.stepper.Item().ID, "token", uint64(tok))

	if l.keyboardMode() {
		l.input.Reset()
		return tea.Batch(l.input.Init(), l.startSpinner())
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancelCapture = cancel
	capturer := l.deps.Capturer
	capture := func() tea.Msg {
		text, err := capturer.Capture(ctx)
		return captureDoneMsg{Token: tok, Transcript: text, Err: err}
	}
	return tea.Batch(capture, l.startSpinner())
}

func (l *LessonScreen) stopRecording() {
	if l.stepper.Cycle().Stop() {
		l.deps.Log.Debug("recording stopped", "item", l.stepper.Item().ID)
	}
	l.cancel()
}

func (l *LessonScreen) cancel() {
	if l.cancelCapture != nil {
		l.cancelCapture()
		l.cancelCapture = nil
	}
}

func (l *LessonScreen) submitTyped() tea.Cmd {
	cycle := l.stepper.Cycle()
	text := l.input.Value()
	l.input.Reset()
	if !cycle.CaptureSucceeded(cycle.Token(), text) {
		return nil
	}
	return l.evaluate(cycle.Token(), cycle.Target(), cycle.Transcript())
}

func (l *LessonScreen) handleCaptureDone(msg captureDoneMsg) tea.Cmd {
	if l.stepper == nil || msg.Token != l.stepper.Cycle().Token() {
		return nil
	}
	l.cancel()
	cycle := l.stepper.Cycle()

	if msg.Err != nil {
		l.deps.Log.Warn("capture failed", "item", l.stepper.Item().ID, "error", msg.Err)
		cycle.CaptureFailed(msg.Token)
		return nil
	}
	if !cycle.CaptureSucceeded(msg.Token, msg.Transcript) {
		return nil
	}
	return l.evaluate(msg.Token, cycle.Target(), cycle.Transcript())
}

func (l *LessonScreen) evaluate(tok recording.Token, target, transcript string) tea.Cmd {
	evaluator := l.deps.Evaluator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), evaluateTimeout)
		defer cancel()
		ev, err := evaluator.Evaluate(ctx, target, transcript)
		return evaluatedMsg{Token: tok, Eval: ev, Err: err}
	}
}

func (l *LessonScreen) handleEvaluated(msg evaluatedMsg) tea.Cmd {
	if l.stepper == nil {
		return nil
	}
	cycle := l.stepper.Cycle()
	if !cycle.Evaluated(msg.Token, msg.Eval, msg.Err) {
		return nil
	}
	if msg.Err != nil {
		l.deps.Log.Warn("evaluation failed", "item", l.stepper.Item().ID, "error", msg.Err)
	}

	ev, _ := cycle.Feedback()
	item := l.stepper.Item()
	l.deps.Log.Info("attempt scored", "item", item.ID, "score", ev.Score, "fallback", ev.Fallback)

	if l.deps.Attempts == nil {
		return nil
	}
	attempts := l.deps.Attempts
	data := store.AttemptEventData{
		SessionID:  l.sessionID,
		UnitID:     l.unitID,
		ItemID:     item.ID,
		Target:     item.Text,
		Transcript: cycle.Transcript(),
		Score:      ev.Score,
		Feedback:   ev.Feedback,
		Fallback:   ev.Fallback,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), attemptTimeout)
		defer cancel()
		return attemptLoggedMsg{Err: attempts.AppendAttemptEvent(ctx, data)}
	}
}

func (l *LessonScreen) play() tea.Cmd {
	if l.playing || l.deps.Speaker == nil {
		return nil
	}
	l.playing = true
	item := l.stepper.Item()
	speaker, voice := l.deps.Speaker, l.deps.Voice
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
		defer cancel()
		if item.AudioPath != "" {
			speaker.PlayFile(ctx, item.AudioPath)
		} else {
			speaker.Speak(ctx, item.Text, voice)
		}
		return playDoneMsg{}
	}
}

// next continues once feedback is showing.
func (l *LessonScreen) next() tea.Cmd {
	if _, ok := l.stepper.Cycle().Feedback(); !ok {
		return nil
	}

	xp, completed := l.stepper.Advance()
	if completed {
		l.finished = true
		l.deps.Log.Info("lesson completed", "xp", xp)
		return screen.Emit(controller.SessionCompleted{UnitID: l.unitID, XPGained: xp})
	}
	return screen.Emit(controller.StepAdvanced{Step: l.stepper.Index()})
}

func (l *LessonScreen) leave() tea.Cmd {
	if l.stepper != nil {
		l.stepper.Cycle().Stop()
	}
	l.cancel()
	return screen.Emit(controller.Back{})
}

func (l *LessonScreen) startSpinner() tea.Cmd {
	if l.ticking {
		return nil
	}
	l.ticking = true
	return spinnerTick()
}

func (l *LessonScreen) handleTick() tea.Cmd {
	phase := l.stepper.Cycle().Phase()
	if phase != recording.PhaseRecording && phase != recording.PhaseChecking {
		l.ticking = false
		return nil
	}
	l.frame++
	return spinnerTick()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (l *LessonScreen) bindings() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "p", Description: "Play the phrase"},
		{Key: "space", Description: "Start or stop speaking"},
		{Key: "enter", Description: "Continue after feedback"},
		{Key: "esc", Description: "Back to the dashboard"},
		{Key: "?", Description: "Help"},
	}
}

func (l *LessonScreen) KeyHints() []layout.KeyHint {
	if l.stepper == nil {
		return []layout.KeyHint{{Key: "esc", Description: "Back"}}
	}
	if l.typing() {
		return []layout.KeyHint{
			{Key: "enter", Description: "Submit"},
			{Key: "esc", Description: "Cancel"},
		}
	}
	cycle := l.stepper.Cycle()
	hints := []layout.KeyHint{{Key: "p", Description: "Play"}}
	switch cycle.Phase() {
	case recording.PhaseRecording:
		hints = append(hints, layout.KeyHint{Key: "space", Description: "Stop"})
	case recording.PhaseIdle:
		hints = append(hints, layout.KeyHint{Key: "space", Description: "Speak"})
	}
	if _, ok := cycle.Feedback(); ok {
		hints = append(hints, layout.KeyHint{Key: "enter", Description: "Continue"})
	}
	return append(hints, layout.KeyHint{Key: "esc", Description: "Back"})
}
