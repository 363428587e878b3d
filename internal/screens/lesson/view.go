package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakflow/internal/recording"
	"github.com/abhisek/speakflow/internal/ui/components"
	"github.com/abhisek/speakflow/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (l *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if l.stepper == nil {
		msg := theme.Incorrect.Render("This unit has no phrases to practice.") + "\n\n" +
			theme.Hint.Render("Press esc to go back.")
		return components.Centered(components.Card(msg, cw), width, height)
	}

	sections := []string{
		l.renderProgress(cw),
		"",
		l.renderItem(cw),
	}
	if fb := l.renderFeedback(cw); fb != "" {
		sections = append(sections, "", fb)
	}
	sections = append(sections, "", l.renderControls())

	return components.Centered(strings.Join(sections, "\n"), width, height)
}

func (l *LessonScreen) renderProgress(cw int) string {
	pct := float64(l.stepper.Index()+1) / float64(l.stepper.Total())
	label := fmt.Sprintf("%d/%d", l.stepper.Index()+1, l.stepper.Total())
	return components.Gauge(label, pct, cw)
}

func (l *LessonScreen) renderItem(cw int) string {
	item := l.stepper.Item()
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("REPEAT AFTER THE AUDIO"),
		"",
		theme.Target.Render(item.Text),
		components.Pinyin(item.Phonetic),
		theme.Translation.Render(fmt.Sprintf("%q", item.Translation)),
	}
	if l.playing {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Accent).Render("🔊 Playing..."))
	}
	body := lipgloss.NewStyle().Width(cw - 6).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
	return components.Card(body, cw)
}

func (l *LessonScreen) renderFeedback(cw int) string {
	cycle := l.stepper.Cycle()
	ev, ok := cycle.Feedback()
	if !ok {
		return ""
	}

	icon, style := "!", lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	if ev.Passed() {
		icon, style = "✓", theme.Correct
	}
	lines := []string{style.Render(fmt.Sprintf("%s Score: %d%%", icon, ev.Score))}
	if t := cycle.Transcript(); t != "" {
		lines = append(lines, theme.Hint.Render("Heard: "+t))
	}
	lines = append(lines, theme.Body.Render(ev.Feedback))
	return components.Card(strings.Join(lines, "\n"), cw)
}

func (l *LessonScreen) renderControls() string {
	cycle := l.stepper.Cycle()
	spin := spinnerFrames[l.frame%len(spinnerFrames)]

	switch cycle.Phase() {
	case recording.PhaseRecording:
		if l.keyboardMode() {
			return theme.Body.Render("What did you say?") + "\n" + l.input.View()
		}
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("● Listening... " + spin)
	case recording.PhaseChecking:
		return theme.Hint.Render(spin + " Analysing...")
	}

	if cycle.Phase() == recording.PhaseFeedback {
		return components.Button{Label: "Continue", Key: "enter"}.View()
	}
	return components.Button{Label: "Speak", Key: "space"}.View()
}
