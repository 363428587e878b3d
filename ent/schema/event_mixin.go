package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin orders events across every journal table. Sequence numbers
// come from one counter so a replay can interleave tables.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").Unique().Immutable(),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("UTC"),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{index.Fields("timestamp")}
}

// PracticeMixin ties an event to the unit being practiced and the app
// session it happened in.
type PracticeMixin struct {
	mixin.Schema
}

func (PracticeMixin) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty().Immutable(),
		field.String("unit_id").NotEmpty().Immutable(),
	}
}

func (PracticeMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("unit_id"),
	}
}
