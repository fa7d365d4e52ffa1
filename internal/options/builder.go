// Package options turns raw user input into validated generation options.
// Building never fails: unparsable or out-of-range input degrades to the
// rule table's defaults.
package options

import (
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/smartest/internal/rules"
)

// Build validates raw field values for (kind, tier). For each field relevant
// to the pair it parses the input, clamps or defaults it, applies the tier's
// lock policy, then the kind's min/max pair rules.
func Build(kind rules.Kind, tier rules.Tier, raw map[string]string) Record {
	if !tier.Valid() {
		tier = rules.TierMedium
	}
	locks := rules.LockPolicyFor(kind, tier)
	values := make(map[rules.Field]any)

	variant := ""
	variantField, hasVariant := rules.VariantField(kind)
	if hasVariant {
		spec := rules.ConstraintsFor(kind, tier, variantField)
		variant = resolve(spec, locks, variantField, raw).(string)
	}

	for _, def := range rules.FieldsFor(kind, tier) {
		if hasVariant && def.Name == variantField {
			values[def.Name] = variant
			continue
		}
		spec := rules.ConstraintsForVariant(kind, tier, variant, def.Name)
		values[def.Name] = resolve(spec, locks, def.Name, raw)
	}

	for _, p := range rules.Pairs(kind) {
		lo, okLo := values[p.Min].(int)
		hi, okHi := values[p.Max].(int)
		if okLo && okHi && lo > hi {
			values[p.Min] = hi
		}
	}

	if alias, ok := rules.Alias(kind, variant); ok {
		if size, ok := values[rules.FieldSize]; ok {
			values[alias] = size
		}
	}

	return Record{kind: kind, tier: tier, values: values}
}

// resolve yields the validated value of one field: int for numeric specs,
// string for enum specs.
func resolve(spec rules.ConstraintSpec, locks rules.LockPolicy, f rules.Field, raw map[string]string) any {
	if forced, ok := locks.Value(f); ok {
		if v, ok := coerce(spec, forced); ok {
			return v
		}
	}
	in, present := raw[string(f)]
	if spec.Type == rules.Enum {
		if present {
			if v, ok := spec.Canonical(in); ok {
				return v
			}
		}
		return spec.DefaultChoice
	}
	if present {
		if n, ok := ParseInt(in); ok {
			return spec.Clamp(n)
		}
	}
	return spec.Default
}

func coerce(spec rules.ConstraintSpec, s string) (any, bool) {
	if spec.Type == rules.Enum {
		v, ok := spec.Canonical(s)
		return v, ok
	}
	n, ok := ParseInt(s)
	if !ok {
		return nil, false
	}
	return spec.Clamp(n), true
}

// ParseInt parses a user-entered number. Fractions are truncated toward
// zero; empty, NaN and infinite inputs are rejected.
func ParseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 {
		return math.MaxInt32, true
	}
	if f < math.MinInt32 {
		return math.MinInt32, true
	}
	return int(f), true
}
