package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionPayload is one value of session-scoped storage. A scope names a
// user session; key names the value within it.
type SessionPayload struct {
	ent.Schema
}

func (SessionPayload) Fields() []ent.Field {
	return []ent.Field{
		field.String("scope").
			NotEmpty().
			Comment("Session name"),
		field.String("key").
			NotEmpty().
			Comment("Well-known value key"),
		field.Text("payload").
			Comment("Opaque JSON document"),
		field.Time("updated_at").
			Default(time.Now).
			Comment("Last write time"),
	}
}

func (SessionPayload) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("scope", "key").Unique(),
	}
}
