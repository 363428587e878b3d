package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Snapshot is a saved copy of the learner profile and unit progress.
// Only the newest few rows are kept.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Comment("Journal sequence when the snapshot was taken"),
		field.Time("timestamp").Default(time.Now),
		field.Int("format").
			Default(1).
			Comment("Layout version of data; readers refuse newer formats"),
		field.JSON("data", map[string]any{}),
	}
}
