package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendChatEvent(ctx context.Context, data ChatEventData) error {
	return r.insertEvent(ctx, tableChatEvents,
		[]string{"session_id", "unit_id", "user_text", "reply", "fallback", "latency_ms"},
		[]any{
			data.SessionID,
			data.UnitID,
			data.UserText,
			data.Reply,
			data.Fallback,
			data.LatencyMs,
		})
}

func (r *eventRepo) ChatTurns(ctx context.Context) (int, error) {
	b := builder()
	t := b.Table(tableChatEvents)
	q, args := b.Select(entsql.Count("*")).From(t).Query()

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chat turns: %w", err)
	}
	return n, nil
}
