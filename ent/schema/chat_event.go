package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// ChatEvent records one user turn and the tutor's reply.
type ChatEvent struct {
	ent.Schema
}

func (ChatEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}, PracticeMixin{}}
}

func (ChatEvent) Fields() []ent.Field {
	return []ent.Field{
		field.Text("user_text"),
		field.Text("reply"),
		field.Bool("fallback"),
		field.Int64("latency_ms").Default(0),
	}
}
