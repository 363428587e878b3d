package progress

import (
	"context"
	"fmt"

	"github.com/abhisek/speakflow/internal/content"
	"github.com/abhisek/speakflow/internal/store"
)

const (
	snapshotVersion = 1
	snapshotsKept   = 5
)

// SnapshotPersister stores AppState in the SQLite snapshot table.
type SnapshotPersister struct {
	repo store.SnapshotRepo
}

// NewSnapshotPersister creates a persister backed by repo.
func NewSnapshotPersister(repo store.SnapshotRepo) *SnapshotPersister {
	return &SnapshotPersister{repo: repo}
}

func (p *SnapshotPersister) Load(ctx context.Context) (*AppState, error) {
	snap, err := p.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil || snap.Data.Profile == nil {
		return nil, nil
	}
	state := FromSnapshotData(snap.Data)
	return &state, nil
}

func (p *SnapshotPersister) Save(ctx context.Context, state AppState) error {
	snap := &store.Snapshot{Data: ToSnapshotData(state)}
	if err := p.repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := p.repo.Prune(ctx, snapshotsKept); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// ToSnapshotData converts state to its persisted form. Only the per-user
// parts of each unit are kept.
func ToSnapshotData(s AppState) store.SnapshotData {
	data := store.SnapshotData{
		Version: snapshotVersion,
		Profile: &store.ProfileData{
			Name:             s.User.Name,
			Experience:       string(s.User.Experience),
			Goal:             string(s.User.Goal),
			Level:            string(s.User.Level),
			XP:               s.User.XP,
			Streak:           s.User.Streak,
			DailyGoalMinutes: s.User.DailyGoalMinutes,
			Onboarded:        s.User.Onboarded,
		},
	}
	for _, u := range s.Units {
		data.Units = append(data.Units, store.UnitProgressData{
			UnitID:   u.ID,
			Locked:   u.Locked,
			Progress: u.Progress,
		})
	}
	if cs := s.CurrentSession; cs != nil {
		data.CurrentSession = &store.SessionData{
			UnitID:     cs.UnitID,
			Step:       cs.Step,
			TotalSteps: cs.TotalSteps,
			Review:     cs.Review,
		}
	}
	return data
}

// FromSnapshotData rebuilds a state from its persisted form. Units carry
// only IDs and per-user fields until reconciled with the catalog.
func FromSnapshotData(d store.SnapshotData) AppState {
	var s AppState
	if p := d.Profile; p != nil {
		s.User = UserProfile{
			Name:             p.Name,
			Experience:       Experience(p.Experience),
			Goal:             Goal(p.Goal),
			Level:            content.Level(p.Level),
			XP:               p.XP,
			Streak:           p.Streak,
			DailyGoalMinutes: p.DailyGoalMinutes,
			Onboarded:        p.Onboarded,
		}
	}
	for _, u := range d.Units {
		s.Units = append(s.Units, content.Unit{
			ID:       u.UnitID,
			Locked:   u.Locked,
			Progress: u.Progress,
		})
	}
	if cs := d.CurrentSession; cs != nil {
		s.CurrentSession = &SessionDescriptor{
			UnitID:     cs.UnitID,
			Step:       cs.Step,
			TotalSteps: cs.TotalSteps,
			Review:     cs.Review,
		}
	}
	return s
}
