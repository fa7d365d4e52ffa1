package options

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/abhisek/smartest/internal/rules"
)

// Record is an immutable, validated set of generation options. The zero
// value is an empty record for KindUnknown at the medium tier.
type Record struct {
	kind   rules.Kind
	tier   rules.Tier
	values map[rules.Field]any // int or string
}

// Kind returns the problem kind the record was built for.
func (r Record) Kind() rules.Kind { return r.kind }

// Tier returns the difficulty tier the record was built for.
func (r Record) Tier() rules.Tier {
	if r.tier == "" {
		return rules.TierMedium
	}
	return r.tier
}

// Int returns the numeric value of f.
func (r Record) Int(f rules.Field) (int, bool) {
	v, ok := r.values[f].(int)
	return v, ok
}

// String returns the enumerated value of f.
func (r Record) String(f rules.Field) (string, bool) {
	if f == rules.FieldDifficulty {
		return string(r.Tier()), true
	}
	v, ok := r.values[f].(string)
	return v, ok
}

// Has reports whether f is present in the record.
func (r Record) Has(f rules.Field) bool {
	if f == rules.FieldDifficulty {
		return true
	}
	_, ok := r.values[f]
	return ok
}

// Fields returns every field in the record, including difficulty, sorted.
func (r Record) Fields() []rules.Field {
	out := slices.Collect(maps.Keys(r.values))
	out = append(out, rules.FieldDifficulty)
	slices.Sort(out)
	return out
}

// Map returns a fresh wire-form copy of the record.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.values)+1)
	for f, v := range r.values {
		m[string(f)] = v
	}
	m[string(rules.FieldDifficulty)] = string(r.Tier())
	return m
}

// MarshalJSON encodes the record as the options object of a generate request.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// Equal reports whether two records hold the same kind, tier and values.
func (r Record) Equal(o Record) bool {
	return r.kind == o.kind && r.Tier() == o.Tier() && maps.Equal(r.values, o.values)
}
