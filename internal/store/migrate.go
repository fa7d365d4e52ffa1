package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	entsql "entgo.io/ent/dialect/sql"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/smartest/ent/schema"
)

const (
	tableRequestEvents   = "request_events"
	tableSessionPayloads = "session_payloads"
)

// tables derives the migration tables from the ent schema definitions.
func tables() ([]*entschema.Table, error) {
	defs := []struct {
		name string
		s    ent.Interface
	}{
		{tableRequestEvents, schema.RequestEvent{}},
		{tableSessionPayloads, schema.SessionPayload{}},
	}
	out := make([]*entschema.Table, 0, len(defs))
	for _, d := range defs {
		t, err := tableFor(d.name, d.s)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", d.name, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func tableFor(name string, s ent.Interface) (*entschema.Table, error) {
	id := &entschema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &entschema.Table{
		Name:       name,
		Columns:    []*entschema.Column{id},
		PrimaryKey: []*entschema.Column{id},
	}
	byName := map[string]*entschema.Column{"id": id}

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
		if d.Err != nil {
			return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
		}
		c := &entschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
			Size:     int64(d.Size),
		}
		switch d.Default.(type) {
		case string, int, int64, bool:
			c.Default = d.Default
		}
		t.Columns = append(t.Columns, c)
		byName[d.Name] = c
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]*entschema.Column, 0, len(d.Fields))
		for _, name := range d.Fields {
			c, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("index on unknown field %q", name)
			}
			cols = append(cols, c)
		}
		t.Indexes = append(t.Indexes, &entschema.Index{
			Name:    strings.Join(append([]string{name}, d.Fields...), "_"),
			Unique:  d.Unique,
			Columns: cols,
		})
	}
	return t, nil
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	ts, err := tables()
	if err != nil {
		return err
	}
	m, err := entschema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, ts...)
}
