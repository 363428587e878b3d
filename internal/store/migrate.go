package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/speakflow/ent/schema"
)

const (
	tableSnapshots     = "snapshots"
	tableLLMEvents     = "llm_request_events"
	tableLessonEvents  = "lesson_events"
	tableAttemptEvents = "attempt_events"
	tableChatEvents    = "chat_events"
)

// tables lists every table the store manages, derived from ent/schema.
func tables() []*schema.Table {
	return []*schema.Table{
		tableFromSchema(tableSnapshots, entschema.Snapshot{}),
		tableFromSchema(tableLLMEvents, entschema.LLMRequestEvent{}),
		tableFromSchema(tableLessonEvents, entschema.LessonEvent{}),
		tableFromSchema(tableAttemptEvents, entschema.AttemptEvent{}),
		tableFromSchema(tableChatEvents, entschema.ChatEvent{}),
	}
}

// tableFromSchema turns an ent schema (mixins first, then its own fields
// and indexes) into a migration table with an auto-increment id.
func tableFromSchema(name string, s ent.Interface) *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := schema.NewTable(name).AddPrimary(id)

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
			Size:     int64(d.Size),
		}
		// Function defaults such as time.Now are applied by the repos.
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			col.Default = d.Default
		}
		t.AddColumn(col)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(name+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t
}

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables()...)
}
