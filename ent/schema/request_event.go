package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// RequestEvent records every call made to the quiz service.
type RequestEvent struct {
	ent.Schema
}

func (RequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (RequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("operation").
			Comment("catalog, generate, check or test"),
		field.String("request_id").
			Default("").
			Comment("Lifecycle request id, empty for untracked calls"),
		field.String("slot").
			Default("").
			Comment("Question slot label: practice or test:<index>"),
		field.Int("status").
			Default(0).
			Comment("HTTP status, 0 when the service was unreachable"),
		field.Int64("latency_ms").
			Default(0).
			Comment("Wall-clock time for the request"),
		field.Bool("success").
			Comment("Whether the service reported success"),
		field.String("error_message").
			Default("").
			Comment("Error message if failed"),
	}
}

func (RequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("operation"),
		index.Fields("success"),
	}
}
