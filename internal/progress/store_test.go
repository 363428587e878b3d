package progress

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/abhisek/speakflow/internal/content"
	"github.com/abhisek/speakflow/internal/store"
)

type memPersister struct {
	saved   *AppState
	saves   int
	saveErr error
	loadErr error
}

func (m *memPersister) Load(context.Context) (*AppState, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return nil, nil
	}
	s := m.saved.Clone()
	return &s, nil
}

func (m *memPersister) Save(_ context.Context, s AppState) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	c := s.Clone()
	m.saved = &c
	return nil
}

func catalogUnits() []content.Unit {
	return content.Default().Units()
}

func TestOpen_FreshInstallUsesDefaults(t *testing.T) {
	st, err := Open(context.Background(), &memPersister{}, catalogUnits(), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s := st.State()
	if s.User.Onboarded {
		t.Error("fresh install should not be onboarded")
	}
	if s.User.DailyGoalMinutes != 10 || s.User.XP != 0 || s.User.Streak != 0 {
		t.Errorf("profile = %+v", s.User)
	}
	if len(s.Units) != 3 {
		t.Errorf("units = %d, want 3", len(s.Units))
	}
}

func TestOpen_LoadErrorIsReturned(t *testing.T) {
	_, err := Open(context.Background(), &memPersister{loadErr: errors.New("disk")}, catalogUnits(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestOpen_DropsStaleSession(t *testing.T) {
	saved := DefaultState(catalogUnits())
	saved.User = NewProfile("Mei", ExperienceNone, GoalDaily)
	saved.CurrentSession = &SessionDescriptor{UnitID: "unit_1", Step: 2, TotalSteps: 4}

	st, err := Open(context.Background(), &memPersister{saved: &saved}, catalogUnits(), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if st.State().CurrentSession != nil {
		t.Error("expected stale session to be cleared")
	}
	if st.State().User.Name != "Mei" {
		t.Error("expected profile to be restored")
	}
}

func TestUpdate_PersistsThenNotifies(t *testing.T) {
	p := &memPersister{}
	st, _ := Open(context.Background(), p, catalogUnits(), nil)

	var notified []AppState
	unsub := st.Subscribe(func(s AppState) {
		if p.saves == 0 {
			t.Error("subscriber notified before persistence")
		}
		notified = append(notified, s)
	})

	err := st.Update(context.Background(), func(s *AppState) {
		s.User = NewProfile("Mei", ExperienceSome, GoalWork)
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(notified) != 1 || notified[0].User.Name != "Mei" {
		t.Fatalf("notified = %+v", notified)
	}
	if p.saved == nil || p.saved.User.Name != "Mei" {
		t.Fatal("state not persisted")
	}

	unsub()
	_ = st.Update(context.Background(), func(s *AppState) { s.User.XP = 10 })
	if len(notified) != 1 {
		t.Error("unsubscribed callback still invoked")
	}
}

func TestUpdate_RejectsInvalidState(t *testing.T) {
	p := &memPersister{}
	st, _ := Open(context.Background(), p, catalogUnits(), nil)

	err := st.Update(context.Background(), func(s *AppState) {
		s.CurrentSession = &SessionDescriptor{UnitID: "unit_3", Step: 0, TotalSteps: 3}
	})
	if err == nil {
		t.Fatal("expected session on a locked unit to be rejected")
	}
	if st.State().CurrentSession != nil {
		t.Error("rejected update leaked into state")
	}
	if p.saves != 0 {
		t.Error("rejected update was persisted")
	}
}

func TestUpdate_PersistFailureIsNotFatal(t *testing.T) {
	p := &memPersister{saveErr: errors.New("disk full")}
	st, _ := Open(context.Background(), p, catalogUnits(), nil)

	err := st.Update(context.Background(), func(s *AppState) { s.User.XP = 20 })
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if st.State().User.XP != 20 {
		t.Error("in-memory state should still advance")
	}
}

func TestState_ReturnsCopy(t *testing.T) {
	st, _ := Open(context.Background(), &memPersister{}, catalogUnits(), nil)
	s := st.State()
	s.Units[0].Locked = true
	s.User.XP = 999
	if st.State().Units[0].Locked || st.State().User.XP == 999 {
		t.Fatal("store mutated through returned copy")
	}
}

var dbCounter atomic.Int64

func TestSnapshotPersister_RoundTrip(t *testing.T) {
	db, err := store.Open(fmt.Sprintf("file:progress_%d?mode=memory&cache=shared", dbCounter.Add(1)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	persister := NewSnapshotPersister(db.SnapshotRepo())
	units := catalogUnits()

	st, err := Open(ctx, persister, units, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = st.Update(ctx, func(s *AppState) {
		s.User = ApplyReward(NewProfile("Mei", ExperienceNone, GoalTravel), 40)
		s.Units[1].Progress = 50
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := st.State()

	reopened, err := Open(ctx, persister, units, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := reopened.State()

	if !reflect.DeepEqual(got.User, want.User) {
		t.Errorf("user = %+v, want %+v", got.User, want.User)
	}
	if !reflect.DeepEqual(got.Units, want.Units) {
		t.Errorf("units differ after reload")
	}
}
