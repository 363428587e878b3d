// Package controller decides which screen is active and applies the
// state changes that navigation implies.
package controller

import (
	"strings"

	"github.com/abhisek/speakflow/internal/progress"
)

// Kind is the kind of view.
type Kind int

const (
	KindOnboarding Kind = iota
	KindDashboard
	KindLesson
	KindChat
)

func (k Kind) String() string {
	switch k {
	case KindOnboarding:
		return "onboarding"
	case KindDashboard:
		return "dashboard"
	case KindLesson:
		return "lesson"
	case KindChat:
		return "chat"
	}
	return "unknown"
}

// View is the active view. UnitID is set for lesson and chat views.
type View struct {
	Kind   Kind
	UnitID string
}

// Mode selects what a unit is opened for.
type Mode int

const (
	ModeLesson Mode = iota
	ModeChat
)

// Event is a navigation or progress event raised by a screen.
type Event interface {
	event()
}

// ProfileSubmitted completes onboarding.
type ProfileSubmitted struct {
	Profile progress.UserProfile
}

// UnitSelected opens a unit from the dashboard.
type UnitSelected struct {
	UnitID string
	Mode   Mode
}

// StepAdvanced records the lesson's current item index.
type StepAdvanced struct {
	Step int
}

// Back leaves a lesson or chat without a reward.
type Back struct{}

// SessionCompleted finishes a lesson with the XP it earned.
type SessionCompleted struct {
	UnitID   string
	XPGained int
}

func (ProfileSubmitted) event() {}
func (UnitSelected) event()     {}
func (StepAdvanced) event()     {}
func (Back) event()             {}
func (SessionCompleted) event() {}

// InitialView is the dashboard for onboarded users, onboarding otherwise.
func InitialView(s progress.AppState) View {
	if s.User.Onboarded {
		return View{Kind: KindDashboard}
	}
	return View{Kind: KindOnboarding}
}

// Transition computes the view and state that follow e. mutated reports
// whether the state changed and must be persisted. Events that do not
// apply to the current view leave both unchanged.
func Transition(v View, s progress.AppState, e Event) (View, progress.AppState, bool) {
	switch v.Kind {
	case KindOnboarding:
		if ev, ok := e.(ProfileSubmitted); ok {
			p := ev.Profile
			if !p.Onboarded || strings.TrimSpace(p.Name) == "" {
				return v, s, false
			}
			next := s.Clone()
			next.User = p
			return View{Kind: KindDashboard}, next, true
		}

	case KindDashboard:
		if ev, ok := e.(UnitSelected); ok {
			u, found := s.Unit(ev.UnitID)
			if !found || u.Locked {
				return v, s, false
			}
			switch ev.Mode {
			case ModeLesson:
				if len(u.Items) == 0 {
					return v, s, false
				}
				next := s.Clone()
				next.CurrentSession = &progress.SessionDescriptor{
					UnitID:     u.ID,
					Step:       0,
					TotalSteps: len(u.Items),
				}
				return View{Kind: KindLesson, UnitID: u.ID}, next, true
			case ModeChat:
				return View{Kind: KindChat, UnitID: u.ID}, s, false
			}
		}

	case KindLesson:
		switch ev := e.(type) {
		case StepAdvanced:
			cs := s.CurrentSession
			if cs == nil || cs.UnitID != v.UnitID || ev.Step == cs.Step ||
				ev.Step < 0 || ev.Step >= cs.TotalSteps {
				return v, s, false
			}
			next := s.Clone()
			next.CurrentSession.Step = ev.Step
			return v, next, true
		case Back:
			next := s.Clone()
			next.CurrentSession = nil
			return View{Kind: KindDashboard}, next, true
		case SessionCompleted:
			if ev.UnitID != v.UnitID {
				return v, s, false
			}
			next := s.Clone()
			next.User = progress.ApplyReward(next.User, ev.XPGained)
			next.CurrentSession = nil
			return View{Kind: KindDashboard}, next, true
		}

	case KindChat:
		if _, ok := e.(Back); ok {
			return View{Kind: KindDashboard}, s, false
		}
	}
	return v, s, false
}
