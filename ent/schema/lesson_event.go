package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LessonEvent marks the start, completion or abandonment of a lesson.
type LessonEvent struct {
	ent.Schema
}

func (LessonEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}, PracticeMixin{}}
}

func (LessonEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("action").
			Comment("start, complete or abandon"),
		field.Int("steps_done").Default(0),
		field.Int("total_steps").Default(0),
		field.Int("xp_gained").Default(0),
		field.Int64("duration_ms").Default(0),
	}
}

func (LessonEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("action", "timestamp"),
	}
}
