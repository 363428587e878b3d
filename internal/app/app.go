package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/speakflow/internal/controller"
	"github.com/abhisek/speakflow/internal/logging"
	"github.com/abhisek/speakflow/internal/progress"
	"github.com/abhisek/speakflow/internal/router"
	"github.com/abhisek/speakflow/internal/scoring"
	"github.com/abhisek/speakflow/internal/screen"
	chatscreen "github.com/abhisek/speakflow/internal/screens/chat"
	"github.com/abhisek/speakflow/internal/screens/dashboard"
	lessonscreen "github.com/abhisek/speakflow/internal/screens/lesson"
	"github.com/abhisek/speakflow/internal/screens/onboarding"
	"github.com/abhisek/speakflow/internal/speech"
	"github.com/abhisek/speakflow/internal/store"
	"github.com/abhisek/speakflow/internal/tutor"
	"github.com/abhisek/speakflow/internal/ui/layout"
)

// Deps wires the application's services into the screens.
type Deps struct {
	Controller *controller.Controller
	Evaluator  scoring.Evaluator
	Replier    tutor.Replier
	Speech     *speech.Services

	// Events records practice history. It may be nil.
	Events store.EventRepo
	Log    *logging.Logger
}

// headerStats is shared by copies of AppModel and refreshed by the
// controller's subscription.
type headerStats struct {
	layout.HeaderStats
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   Deps
	router *router.Router
	stats  *headerStats
	width  int
	height int
}

// newAppModel creates an AppModel positioned at the controller's view.
func newAppModel(deps Deps) AppModel {
	if deps.Log == nil {
		deps.Log = logging.Nop()
	}
	if deps.Speech == nil {
		deps.Speech = speech.Disabled()
	}

	m := AppModel{deps: deps, stats: &headerStats{}}
	m.setStats(deps.Controller.State())
	deps.Controller.Subscribe(m.setStats)

	m.router = router.New(m.screenFor(deps.Controller.View()))
	return m
}

func (m AppModel) setStats(s progress.AppState) {
	m.stats.XP = s.User.XP
	m.stats.Streak = s.User.Streak
}

// screenFor builds the screen that renders v.
func (m AppModel) screenFor(v controller.View) screen.Screen {
	ctrl := m.deps.Controller
	state := ctrl.State()

	switch v.Kind {
	case controller.KindOnboarding:
		return onboarding.New()

	case controller.KindLesson:
		unit, _ := state.Unit(v.UnitID)
		return lessonscreen.New(unit, ctrl.LessonSessionID(), lessonscreen.Deps{
			Evaluator: m.deps.Evaluator,
			Capturer:  m.deps.Speech.Capturer,
			Speaker:   m.deps.Speech.Speaker,
			Voice:     m.deps.Speech.LessonVoice,
			Attempts:  m.deps.Events,
			Log:       m.deps.Log,
		})

	case controller.KindChat:
		unit, _ := state.Unit(v.UnitID)
		return chatscreen.New(unit, chatscreen.Deps{
			Replier: m.deps.Replier,
			Speaker: m.deps.Speech.Speaker,
			Voice:   m.deps.Speech.ChatVoice,
			Events:  m.deps.Events,
			Log:     m.deps.Log,
		})
	}

	return dashboard.New(state, m.deps.Events)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.EventMsg:
		return m, m.dispatch(msg.Event)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.HasOverlay() {
				return m, func() tea.Msg { return router.CloseMsg{} }
			}
		}
		return m, m.router.Update(msg)

	case router.OpenMsg, router.CloseMsg:
		return m, m.router.Update(msg)
	}

	// Async results must reach the view even when an overlay is on top.
	if m.router.HasOverlay() {
		return m, m.router.Broadcast(msg)
	}
	return m, m.router.Update(msg)
}

func (m AppModel) dispatch(e controller.Event) tea.Cmd {
	ctrl := m.deps.Controller
	prev := ctrl.View()
	next, changed := ctrl.Dispatch(context.Background(), e)
	if !changed || next == prev {
		return nil
	}
	return m.router.SetBase(m.screenFor(next))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	size := layout.Size{Width: m.width, Height: m.height}
	if size.TooSmall() {
		v.SetContent(layout.TooSmallNotice(size))
		return v
	}

	active := m.router.Active()
	chrome := layout.Chrome{Stats: m.stats.HeaderStats, Hints: m.footerHints(active)}
	if active != nil {
		chrome.Title = active.Title()
	}

	body := size.Body()
	v.SetContent(layout.Render(size, chrome, m.router.View(body.Width, body.Height)))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	return append(hints, layout.KeyHint{Key: "ctrl+c", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
