package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	return r.insertEvent(ctx, tableAttemptEvents,
		[]string{"session_id", "unit_id", "item_id", "target", "transcript", "score", "feedback", "fallback"},
		[]any{
			data.SessionID,
			data.UnitID,
			data.ItemID,
			data.Target,
			data.Transcript,
			data.Score,
			data.Feedback,
			data.Fallback,
		})
}

// AttemptSummaries returns per-unit attempt counts and average scores.
// Fallback scores are counted but excluded from the average.
func (r *eventRepo) AttemptSummaries(ctx context.Context) ([]AttemptSummary, error) {
	b := builder()
	t := b.Table(tableAttemptEvents)
	q, args := b.Select(
		t.C("unit_id"),
		entsql.Count("*"),
		"AVG(CASE WHEN "+t.C("fallback")+" THEN NULL ELSE "+t.C("score")+" END)",
		entsql.Sum(t.C("fallback")),
	).
		From(t).
		GroupBy(t.C("unit_id")).
		OrderBy(t.C("unit_id")).
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt summaries: %w", err)
	}
	defer rows.Close()

	var out []AttemptSummary
	for rows.Next() {
		var (
			s   AttemptSummary
			avg sql.NullFloat64
		)
		if err := rows.Scan(&s.UnitID, &s.Attempts, &avg, &s.Fallbacks); err != nil {
			return nil, fmt.Errorf("scan attempt summary: %w", err)
		}
		s.AvgScore = avg.Float64
		out = append(out, s)
	}
	return out, rows.Err()
}
