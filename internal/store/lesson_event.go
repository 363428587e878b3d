package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	return r.insertEvent(ctx, tableLessonEvents,
		[]string{"session_id", "unit_id", "action", "steps_done", "total_steps", "xp_gained", "duration_ms"},
		[]any{
			data.SessionID,
			data.UnitID,
			data.Action,
			data.StepsDone,
			data.TotalSteps,
			data.XPGained,
			data.Duration.Milliseconds(),
		})
}

func (r *eventRepo) PracticeTimeSince(ctx context.Context, since time.Time) (time.Duration, error) {
	b := builder()
	t := b.Table(tableLessonEvents)
	q, args := b.Select(entsql.Sum(t.C("duration_ms"))).
		From(t).
		Where(entsql.And(
			entsql.GTE(t.C("timestamp"), since.UTC()),
			entsql.In(t.C("action"), LessonCompleted, LessonAbandoned),
		)).
		Query()

	var ms sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&ms); err != nil {
		return 0, fmt.Errorf("sum practice time: %w", err)
	}
	return time.Duration(ms.Int64) * time.Millisecond, nil
}

func (r *eventRepo) CompletedLessons(ctx context.Context) (map[string]int, error) {
	b := builder()
	t := b.Table(tableLessonEvents)
	q, args := b.Select(t.C("unit_id"), entsql.Count("*")).
		From(t).
		Where(entsql.EQ(t.C("action"), LessonCompleted)).
		GroupBy(t.C("unit_id")).
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("count completed lessons: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			unitID string
			n      int
		)
		if err := rows.Scan(&unitID, &n); err != nil {
			return nil, fmt.Errorf("scan completed lessons: %w", err)
		}
		out[unitID] = n
	}
	return out, rows.Err()
}
