package progress

import (
	"testing"

	"github.com/abhisek/speakflow/internal/content"
)

func TestValidate(t *testing.T) {
	base := DefaultState(catalogUnits())

	tests := []struct {
		name    string
		mutate  func(*AppState)
		wantErr bool
	}{
		{"default ok", func(*AppState) {}, false},
		{"negative xp", func(s *AppState) { s.User.XP = -1 }, true},
		{"onboarded without name", func(s *AppState) { s.User.Onboarded = true }, true},
		{"session ok", func(s *AppState) {
			s.CurrentSession = &SessionDescriptor{UnitID: "unit_1", Step: 3, TotalSteps: 4}
		}, false},
		{"session on unknown unit", func(s *AppState) {
			s.CurrentSession = &SessionDescriptor{UnitID: "nope", TotalSteps: 1}
		}, true},
		{"session on locked unit", func(s *AppState) {
			s.CurrentSession = &SessionDescriptor{UnitID: "unit_3", TotalSteps: 3}
		}, true},
		{"step past end", func(s *AppState) {
			s.CurrentSession = &SessionDescriptor{UnitID: "unit_1", Step: 4, TotalSteps: 4}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base.Clone()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	catalog := catalogUnits()
	saved := AppState{
		User: UserProfile{Name: "Mei", Onboarded: true},
		Units: []content.Unit{
			{ID: "unit_3", Locked: false, Progress: 30},
			{ID: "retired_unit", Progress: 100},
		},
		CurrentSession: &SessionDescriptor{UnitID: "unit_1", TotalSteps: 4},
	}

	got := Reconcile(saved, catalog)

	if len(got.Units) != len(catalog) {
		t.Fatalf("units = %d, want %d", len(got.Units), len(catalog))
	}
	for i, u := range got.Units {
		if u.ID != catalog[i].ID {
			t.Errorf("unit %d = %s, want catalog order", i, u.ID)
		}
		if len(u.Items) != len(catalog[i].Items) {
			t.Errorf("unit %s lost its items", u.ID)
		}
	}

	food, _ := got.Unit("unit_3")
	if food.Locked || food.Progress != 30 {
		t.Errorf("unit_3 = locked %v progress %d, want saved values", food.Locked, food.Progress)
	}
	if _, ok := got.Unit("retired_unit"); ok {
		t.Error("unit missing from catalog should be dropped")
	}
	if got.CurrentSession != nil {
		t.Error("session should be cleared")
	}
	if got.User.DailyGoalMinutes != DefaultDailyGoalMinutes {
		t.Errorf("daily goal = %d, want default", got.User.DailyGoalMinutes)
	}
}
