package progress

import (
	"errors"
	"fmt"

	"github.com/abhisek/speakflow/internal/content"
)

// SessionDescriptor records the lesson in progress.
type SessionDescriptor struct {
	UnitID     string `json:"unit_id"`
	Step       int    `json:"step"`
	TotalSteps int    `json:"total_steps"`
	Review     bool   `json:"review"`
}

// AppState is the complete persisted application state.
type AppState struct {
	User           UserProfile        `json:"user"`
	Units          []content.Unit     `json:"units"`
	CurrentSession *SessionDescriptor `json:"current_session,omitempty"`
}

// DefaultState is the state of a fresh install.
func DefaultState(units []content.Unit) AppState {
	return AppState{
		User:  DefaultProfile(),
		Units: cloneUnits(units),
	}
}

// Clone returns a deep copy of s.
func (s AppState) Clone() AppState {
	out := s
	out.Units = cloneUnits(s.Units)
	if s.CurrentSession != nil {
		cs := *s.CurrentSession
		out.CurrentSession = &cs
	}
	return out
}

// Unit finds a unit by ID.
func (s AppState) Unit(id string) (content.Unit, bool) {
	for _, u := range s.Units {
		if u.ID == id {
			return u.Clone(), true
		}
	}
	return content.Unit{}, false
}

// Validate checks the cross-field invariants of the state.
func (s AppState) Validate() error {
	if s.User.XP < 0 {
		return errors.New("xp is negative")
	}
	if s.User.Streak < 0 {
		return errors.New("streak is negative")
	}
	if s.User.Onboarded && s.User.Name == "" {
		return errors.New("onboarded profile has no name")
	}
	if cs := s.CurrentSession; cs != nil {
		u, ok := s.Unit(cs.UnitID)
		if !ok {
			return fmt.Errorf("current session references unknown unit %q", cs.UnitID)
		}
		if u.Locked {
			return fmt.Errorf("current session references locked unit %q", cs.UnitID)
		}
		if cs.Step < 0 || cs.Step >= cs.TotalSteps {
			return fmt.Errorf("current session step %d out of range [0,%d)", cs.Step, cs.TotalSteps)
		}
	}
	return nil
}

// Reconcile merges a persisted state with the catalog. Content comes from
// the catalog; lock and progress come from the saved state. Units no longer
// in the catalog are dropped and new ones are appended. Any saved session
// is discarded since the app always starts outside a lesson.
func Reconcile(saved AppState, catalog []content.Unit) AppState {
	savedByID := make(map[string]content.Unit, len(saved.Units))
	for _, u := range saved.Units {
		savedByID[u.ID] = u
	}

	out := AppState{User: saved.User}
	out.Units = make([]content.Unit, 0, len(catalog))
	for _, cu := range catalog {
		u := cu.Clone()
		if su, ok := savedByID[cu.ID]; ok {
			u.Locked = su.Locked
			u.Progress = min(max(su.Progress, 0), 100)
		}
		out.Units = append(out.Units, u)
	}

	if out.User.DailyGoalMinutes <= 0 {
		out.User.DailyGoalMinutes = DefaultDailyGoalMinutes
	}
	return out
}

func cloneUnits(units []content.Unit) []content.Unit {
	if units == nil {
		return nil
	}
	out := make([]content.Unit, len(units))
	for i, u := range units {
		out[i] = u.Clone()
	}
	return out
}
