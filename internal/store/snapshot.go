package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SnapshotFormat is the layout of SnapshotData this build writes.
const SnapshotFormat = 1

// ErrSnapshotFormat reports a snapshot written by a newer build.
var ErrSnapshotFormat = errors.New("snapshot written by a newer version of speakflow")

// snapshotRepo implements SnapshotRepo with ent's SQL builder.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	if snap.Sequence == 0 {
		if snap.Sequence, err = r.seq.Next(ctx); err != nil {
			return err
		}
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}

	q, args := builder().Insert(tableSnapshots).
		Columns("sequence", "timestamp", "format", "data").
		Values(snap.Sequence, snap.Timestamp.UTC(), SnapshotFormat, data).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	b := builder()
	t := b.Table(tableSnapshots)
	q, args := b.Select(t.C("id"), t.C("sequence"), t.C("timestamp"), t.C("format"), t.C("data")).
		From(t).
		OrderBy(entsql.Desc(t.C("id"))).
		Limit(1).
		Query()

	var (
		snap   Snapshot
		format int
		raw    []byte
	)
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&snap.ID, &snap.Sequence, &snap.Timestamp, &format, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if format > SnapshotFormat {
		return nil, fmt.Errorf("%w (format %d)", ErrSnapshotFormat, format)
	}
	if err := json.Unmarshal(raw, &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the newest snapshot that falls outside the keep window.
	b := builder()
	t := b.Table(tableSnapshots)
	q, args := b.Select(t.C("id")).
		From(t).
		OrderBy(entsql.Desc(t.C("id"))).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	dq, dargs := builder().Delete(tableSnapshots).
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, dq, dargs...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Clear(ctx context.Context) error {
	q, args := builder().Delete(tableSnapshots).Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	return nil
}
