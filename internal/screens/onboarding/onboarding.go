package onboarding

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakflow/internal/controller"
	"github.com/abhisek/speakflow/internal/progress"
	"github.com/abhisek/speakflow/internal/screen"
	"github.com/abhisek/speakflow/internal/ui/components"
	"github.com/abhisek/speakflow/internal/ui/layout"
	"github.com/abhisek/speakflow/internal/ui/theme"
)

type step int

const (
	stepName step = iota
	stepExperience
	stepGoal
	stepConfirm
)

const nameLimit = 32

// OnboardingScreen collects the learner's profile one question at a time.
type OnboardingScreen struct {
	step       step
	name       components.TextInput
	experience components.Choice
	goal       components.Choice
	confirm    components.Button
	submitted  bool
	nameError  string
}

var _ screen.Screen = (*OnboardingScreen)(nil)

// New creates the onboarding screen.
func New() *OnboardingScreen {
	o := &OnboardingScreen{
		name:       components.NewTextInput("Your name", nameLimit),
		experience: components.NewChoice("Have you studied Chinese before?", choiceOptions(progress.ExperienceOptions)),
		goal:       components.NewChoice("Why are you learning Chinese?", choiceOptions(progress.GoalOptions)),
	}
	o.confirm = components.Button{Label: "Start learning", Key: "enter"}
	return o
}

func choiceOptions[T ~string](opts []progress.Option[T]) []components.ChoiceOption {
	out := make([]components.ChoiceOption, len(opts))
	for i, o := range opts {
		out[i] = components.ChoiceOption{Label: o.Label, Description: o.Description}
	}
	return out
}

func (o *OnboardingScreen) Title() string { return "Welcome" }

func (o *OnboardingScreen) Init() tea.Cmd {
	return o.name.Init()
}

// Profile returns the profile described by the current answers.
func (o *OnboardingScreen) Profile() progress.UserProfile {
	exp := progress.ExperienceOptions[o.experience.Selected].Value
	goal := progress.GoalOptions[o.goal.Selected].Value
	return progress.NewProfile(o.name.Value(), exp, goal)
}

func (o *OnboardingScreen) submit() tea.Cmd {
	if o.submitted {
		return nil
	}
	o.submitted = true
	return screen.Emit(controller.ProfileSubmitted{Profile: o.Profile()})
}

func (o *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if o.step == stepName {
			var cmd tea.Cmd
			o.name, cmd = o.name.Update(msg)
			return o, cmd
		}
		return o, nil
	}

	key := kmsg.String()
	if key == "esc" && o.step > stepName {
		o.step--
		return o, nil
	}

	switch o.step {
	case stepName:
		if key == "enter" {
			if o.name.Value() == "" {
				o.nameError = "Please tell us your name."
				return o, nil
			}
			o.nameError = ""
			o.step = stepExperience
			return o, nil
		}
		var cmd tea.Cmd
		o.name, cmd = o.name.Update(msg)
		return o, cmd

	case stepExperience:
		if key == "enter" {
			o.step = stepGoal
			return o, nil
		}
		o.experience = o.experience.Update(msg)

	case stepGoal:
		if key == "enter" {
			o.step = stepConfirm
			return o, nil
		}
		o.goal = o.goal.Update(msg)

	case stepConfirm:
		if o.confirm.Pressed(msg) {
			return o, o.submit()
		}
	}
	return o, nil
}

func (o *OnboardingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string

	switch o.step {
	case stepName:
		prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("What should we call you?")
		body = prompt + "\n\n" + o.name.View()
		if o.nameError != "" {
			body += "\n\n" + theme.Incorrect.Render(o.nameError)
		}
	case stepExperience:
		body = o.experience.View()
	case stepGoal:
		body = o.goal.View()
	case stepConfirm:
		p := o.Profile()
		lines := []string{
			theme.Target.Render("你好, " + p.Name + "!"),
			"",
			theme.Body.Render("Starting level: " + p.Level.Label()),
			theme.Body.Render("Goal: " + progress.GoalOptions[o.goal.Selected].Label),
			"",
			o.confirm.View(),
		}
		body = strings.Join(lines, "\n")
	}

	sections := []string{
		RenderBanner(width),
		"",
		theme.Subtitle.Render("Speak Mandarin with confidence"),
		"",
		components.Card(body, cw),
		"",
		theme.Hint.Render(o.stepLabel()),
	}
	return components.Centered(strings.Join(sections, "\n"), width, height)
}

func (o *OnboardingScreen) stepLabel() string {
	return []string{"Step 1 of 4", "Step 2 of 4", "Step 3 of 4", "Step 4 of 4"}[o.step]
}

func (o *OnboardingScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "enter", Description: "Continue"}}
	if o.step == stepExperience || o.step == stepGoal {
		hints = append(hints, layout.KeyHint{Key: "↑/↓", Description: "Choose"})
	}
	if o.step > stepName {
		hints = append(hints, layout.KeyHint{Key: "esc", Description: "Back"})
	}
	return hints
}
