package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records one spoken attempt at a lesson item and its score.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}, PracticeMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("item_id").NotEmpty(),
		field.String("target"),
		field.String("transcript").Default(""),
		field.Int("score"),
		field.String("feedback"),
		field.Bool("fallback").
			Comment("Score came from a fallback, not a real evaluation"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("item_id"),
	}
}
