package progress

import (
	"testing"

	"github.com/abhisek/speakflow/internal/content"
)

func TestDeriveLevel(t *testing.T) {
	tests := []struct {
		exp  Experience
		want content.Level
	}{
		{ExperienceNone, content.LevelBeginner},
		{ExperienceSome, content.LevelBeginner},
		{ExperienceRegular, content.LevelIntermediate},
	}
	for _, tt := range tests {
		if got := DeriveLevel(tt.exp); got != tt.want {
			t.Errorf("DeriveLevel(%s) = %s, want %s", tt.exp, got, tt.want)
		}
	}
}

func TestNewProfile(t *testing.T) {
	p := NewProfile("  Mei  ", ExperienceRegular, GoalTravel)

	if p.Name != "Mei" {
		t.Errorf("name = %q, want trimmed", p.Name)
	}
	if !p.Onboarded {
		t.Error("expected onboarded")
	}
	if p.XP != 0 || p.Streak != 1 || p.DailyGoalMinutes != 10 {
		t.Errorf("xp=%d streak=%d goal=%d", p.XP, p.Streak, p.DailyGoalMinutes)
	}
	if p.Level != content.LevelIntermediate {
		t.Errorf("level = %s", p.Level)
	}
}

func TestApplyReward(t *testing.T) {
	tests := []struct {
		name       string
		xp, streak int
		gained     int
		wantXP     int
		wantStreak int
	}{
		{"bootstrap streak", 0, 0, 40, 40, 1},
		{"streak untouched", 100, 5, 30, 130, 5},
		{"zero gain still bootstraps", 0, 0, 0, 0, 1},
		{"negative gain ignored", 50, 2, -10, 50, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyReward(UserProfile{XP: tt.xp, Streak: tt.streak}, tt.gained)
			if got.XP != tt.wantXP || got.Streak != tt.wantStreak {
				t.Errorf("got xp=%d streak=%d, want xp=%d streak=%d",
					got.XP, got.Streak, tt.wantXP, tt.wantStreak)
			}
		})
	}
}
