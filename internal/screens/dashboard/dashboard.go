package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakflow/internal/content"
	"github.com/abhisek/speakflow/internal/controller"
	"github.com/abhisek/speakflow/internal/progress"
	"github.com/abhisek/speakflow/internal/screen"
	"github.com/abhisek/speakflow/internal/screens/help"
	"github.com/abhisek/speakflow/internal/ui/components"
	"github.com/abhisek/speakflow/internal/ui/layout"
	"github.com/abhisek/speakflow/internal/ui/theme"
)

const practiceQueryTimeout = 2 * time.Second

// PracticeClock reports how long the learner has practiced.
// store.EventRepo satisfies it.
type PracticeClock interface {
	PracticeTimeSince(ctx context.Context, since time.Time) (time.Duration, error)
}

type practiceLoadedMsg struct {
	Practiced time.Duration
	Err       error
}

// DashboardScreen shows the learner's totals and the unit list.
type DashboardScreen struct {
	user  progress.UserProfile
	units []content.Unit
	menu  components.Menu

	clock     PracticeClock
	now       func() time.Time
	practiced time.Duration
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates a dashboard for state. clock may be nil, in which case the
// daily goal bar stays empty.
func New(state progress.AppState, clock PracticeClock) *DashboardScreen {
	items := make([]components.MenuItem, len(state.Units))
	for i, u := range state.Units {
		items[i] = components.MenuItem{
			Label:    u.Title,
			Detail:   fmt.Sprintf("%d%%", u.Progress),
			Disabled: u.Locked || len(u.Items) == 0,
		}
	}
	return &DashboardScreen{
		user:  state.User,
		units: state.Units,
		menu:  components.NewMenu(items),
		clock: clock,
		now:   time.Now,
	}
}

func (d *DashboardScreen) Title() string { return "Dashboard" }

func (d *DashboardScreen) Init() tea.Cmd {
	if d.clock == nil {
		return nil
	}
	clock := d.clock
	since := startOfDay(d.now())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), practiceQueryTimeout)
		defer cancel()
		dur, err := clock.PracticeTimeSince(ctx, since)
		return practiceLoadedMsg{Practiced: dur, Err: err}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}

// GoalPercent is today's practice as a fraction of the daily goal.
func (d *DashboardScreen) GoalPercent() float64 {
	goal := d.user.DailyGoalMinutes
	if goal <= 0 {
		goal = progress.DefaultDailyGoalMinutes
	}
	return min(d.practiced.Minutes()/float64(goal), 1)
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case practiceLoadedMsg:
		if msg.Err == nil {
			d.practiced = msg.Practiced
		}
		return d, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "l":
			return d, d.selectUnit(controller.ModeLesson)
		case "c":
			return d, d.selectUnit(controller.ModeChat)
		case "q":
			return d, tea.Quit
		case "?":
			return d, help.Open("Dashboard", d.bindings())
		}
		d.menu = d.menu.Update(msg)
	}
	return d, nil
}

func (d *DashboardScreen) selectUnit(mode controller.Mode) tea.Cmd {
	if _, ok := d.menu.Current(); !ok {
		return nil
	}
	return screen.Emit(controller.UnitSelected{UnitID: d.units[d.menu.Selected].ID, Mode: mode})
}

func (d *DashboardScreen) View(width, height int) string {
	compact := layout.BodySize(width, height).Compact()
	cw := components.ContentWidth(width)

	sections := []string{
		d.renderGreeting(cw),
		d.renderUnits(cw, compact),
	}
	return components.Centered(strings.Join(sections, "\n"), width, height)
}

func (d *DashboardScreen) renderGreeting(cw int) string {
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Hi, " + d.user.Name + "!")
	level := lipgloss.NewStyle().Foreground(theme.TextDim).Render(d.user.Level.Label())
	stats := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("🔥 %d", d.user.Streak)) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("⭐ %d", d.user.XP))

	gap := max(cw-6-lipgloss.Width(name)-lipgloss.Width(stats), 1)
	top := name + strings.Repeat(" ", gap) + stats

	bar := components.GaugePercent("Today's Goal", d.GoalPercent(), cw-6)
	return components.Card(top+"\n"+level+"\n\n"+bar, cw)
}

func (d *DashboardScreen) renderUnits(cw int, compact bool) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("UNITS"))
	b.WriteString("\n\n")
	b.WriteString(d.menu.View())

	if !compact && d.menu.Selected < len(d.units) {
		u := d.units[d.menu.Selected]
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("Unit %d", d.menu.Selected+1)))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(u.Outcome))
		b.WriteString("\n")
		b.WriteString(components.GaugePercent("", float64(u.Progress)/100, cw-6))
	}
	return components.Card(b.String(), cw)
}

func (d *DashboardScreen) bindings() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Choose a unit"},
		{Key: "enter", Description: "Practice the unit"},
		{Key: "c", Description: "Chat about the unit"},
		{Key: "?", Description: "Help"},
		{Key: "q", Description: "Quit"},
	}
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "enter", Description: "Practice"},
		{Key: "c", Description: "Chat"},
		{Key: "?", Description: "Help"},
		{Key: "q", Description: "Quit"},
	}
}
