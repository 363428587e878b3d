package progress

import (
	"strings"

	"github.com/abhisek/speakflow/internal/content"
)

// Experience is the learner's self-reported prior exposure.
type Experience string

const (
	ExperienceNone    Experience = "none"
	ExperienceSome    Experience = "some"
	ExperienceRegular Experience = "regular"
)

// Goal is the learner's stated reason for learning.
type Goal string

const (
	GoalDaily     Goal = "daily"
	GoalTravel    Goal = "travel"
	GoalWork      Goal = "work"
	GoalExploring Goal = "exploring"
)

// DefaultDailyGoalMinutes is the daily practice target for new profiles.
const DefaultDailyGoalMinutes = 10

// Option is a selectable onboarding choice.
type Option[T ~string] struct {
	Value       T
	Label       string
	Description string
}

// ExperienceOptions lists the onboarding experience choices in display order.
var ExperienceOptions = []Option[Experience]{
	{ExperienceNone, "Never", "Total beginner"},
	{ExperienceSome, "A little", "Know some basics"},
	{ExperienceRegular, "Consistently", "Can hold simple talks"},
}

// GoalOptions lists the onboarding goal choices in display order.
var GoalOptions = []Option[Goal]{
	{GoalDaily, "Daily conversation", ""},
	{GoalTravel, "Travel", ""},
	{GoalWork, "Work/Study", ""},
	{GoalExploring, "Just exploring", ""},
}

// UserProfile is the single learner's identity and running totals.
type UserProfile struct {
	Name             string        `json:"name"`
	Experience       Experience    `json:"experience"`
	Goal             Goal          `json:"goal"`
	Level            content.Level `json:"level"`
	XP               int           `json:"xp"`
	Streak           int           `json:"streak"`
	DailyGoalMinutes int           `json:"daily_goal_minutes"`
	Onboarded        bool          `json:"onboarded"`
}

// DefaultProfile is the profile of a learner who has not onboarded.
func DefaultProfile() UserProfile {
	return UserProfile{
		Experience:       ExperienceNone,
		Goal:             GoalDaily,
		Level:            content.LevelBeginner,
		DailyGoalMinutes: DefaultDailyGoalMinutes,
	}
}

// DeriveLevel maps prior experience to a starting level.
func DeriveLevel(e Experience) content.Level {
	if e == ExperienceRegular {
		return content.LevelIntermediate
	}
	return content.LevelBeginner
}

// NewProfile builds the profile submitted at the end of onboarding.
// The streak starts at one for the first day.
func NewProfile(name string, exp Experience, goal Goal) UserProfile {
	return UserProfile{
		Name:             strings.TrimSpace(name),
		Experience:       exp,
		Goal:             goal,
		Level:            DeriveLevel(exp),
		XP:               0,
		Streak:           1,
		DailyGoalMinutes: DefaultDailyGoalMinutes,
		Onboarded:        true,
	}
}

// ApplyReward folds a completed session's XP into the profile. XP never
// decreases, and a zero streak bootstraps to one.
func ApplyReward(p UserProfile, xpGained int) UserProfile {
	if xpGained > 0 {
		p.XP += xpGained
	}
	if p.Streak == 0 {
		p.Streak = 1
	}
	return p
}
