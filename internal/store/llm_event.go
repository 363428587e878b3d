package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.insertEvent(ctx, tableLLMEvents, llmEventColumns, []any{
		data.Provider,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
		data.RequestBody,
		data.ResponseBody,
	})
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	b := builder()
	t := b.Table(tableLLMEvents)
	sel := b.Select(llmSelectColumns(t)...).
		From(t).
		OrderBy(entsql.Desc(t.C("sequence")))
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(t.C("timestamp"), opts.From.UTC()))
	}
	if opts.Purpose != "" {
		sel.Where(entsql.EQ(t.C("purpose"), opts.Purpose))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	q, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEventRecord
	for rows.Next() {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	b := builder()
	t := b.Table(tableLLMEvents)
	q, args := b.Select(llmSelectColumns(t)...).
		From(t).
		Where(entsql.EQ(t.C("id"), id)).
		Query()

	rec, err := scanLLMEvent(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error) {
	return r.llmUsage(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsageStat, error) {
	return r.llmUsage(ctx, "model")
}

// llmUsage aggregates calls, tokens and latency grouped by one column.
func (r *eventRepo) llmUsage(ctx context.Context, groupBy string) ([]LLMUsageStat, error) {
	b := builder()
	t := b.Table(tableLLMEvents)
	q, args := b.Select(
		t.C(groupBy),
		entsql.Count("*"),
		entsql.Sum(t.C("input_tokens")),
		entsql.Sum(t.C("output_tokens")),
		entsql.Avg(t.C("latency_ms")),
	).
		From(t).
		GroupBy(t.C(groupBy)).
		OrderBy(entsql.Desc(entsql.Count("*"))).
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm usage by %s: %w", groupBy, err)
	}
	defer rows.Close()

	var out []LLMUsageStat
	for rows.Next() {
		var (
			st     LLMUsageStat
			key    string
			avgLat float64
		)
		if err := rows.Scan(&key, &st.Calls, &st.InputTokens, &st.OutputTokens, &avgLat); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		if groupBy == "purpose" {
			st.Purpose = key
		} else {
			st.Model = key
		}
		st.AvgLatencyMs = int64(avgLat)
		out = append(out, st)
	}
	return out, rows.Err()
}

func llmSelectColumns(t *entsql.SelectTable) []string {
	cols := []string{t.C("id"), t.C("sequence"), t.C("timestamp")}
	for _, c := range llmEventColumns {
		cols = append(cols, t.C(c))
	}
	return cols
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMRequestEventRecord, error) {
	var rec LLMRequestEventRecord
	err := row.Scan(
		&rec.ID, &rec.Sequence, &rec.Timestamp,
		&rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs,
		&rec.Success, &rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan llm event: %w", err)
	}
	return &rec, nil
}
