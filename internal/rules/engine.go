// Package rules holds the generation option tables: per (kind, tier) field
// sets, constraint specs and field locks. Every lookup is total; missing
// combinations fall back to the medium tier.
package rules

import "slices"

// ConstraintsFor returns the spec of field under (kind, tier). Kinds with a
// variant field resolve against their default variant.
func ConstraintsFor(kind Kind, tier Tier, field Field) ConstraintSpec {
	return ConstraintsForVariant(kind, tier, "", field)
}

// ConstraintsForVariant returns the spec of field under (kind, tier) for the
// given variant value. An unknown or empty variant resolves to the default.
//
// Lookup order: tier, medium, easy, hard. A field no tier declares gets a
// zero-width numeric spec.
func ConstraintsForVariant(kind Kind, tier Tier, variant string, field Field) ConstraintSpec {
	for _, t := range fallbackTiers(tier) {
		if spec, ok := specAt(Key{Kind: kind, Tier: t}, variant, field); ok {
			return cloneSpec(spec)
		}
	}
	return ConstraintSpec{Type: Numeric}
}

// LockPolicyFor returns the locked fields for (kind, tier). Unknown tiers use
// the medium policy. The returned map is a copy.
func LockPolicyFor(kind Kind, tier Tier) LockPolicy {
	if !tier.Valid() {
		tier = TierMedium
	}
	src := lockTable[Key{Kind: kind, Tier: tier}]
	out := make(LockPolicy, len(src))
	for f, v := range src {
		out[f] = v
	}
	return out
}

// FieldsFor returns the fields relevant to (kind, tier) in display order.
func FieldsFor(kind Kind, tier Tier) []FieldDef {
	for _, t := range fallbackTiers(tier) {
		if defs, ok := fieldTable[Key{Kind: kind, Tier: t}]; ok {
			return slices.Clone(defs)
		}
	}
	return nil
}

// VariantField returns the enum field whose value selects variant specs.
func VariantField(kind Kind) (Field, bool) {
	info, ok := kindTable[kind]
	if !ok || info.variant == "" {
		return "", false
	}
	return info.variant, true
}

// Alias returns the extra output field that mirrors the size for a variant.
func Alias(kind Kind, variant string) (Field, bool) {
	f, ok := kindTable[kind].aliases[variant]
	return f, ok
}

// Pairs returns the min/max invariants declared for kind.
func Pairs(kind Kind) []MinMaxPair {
	return slices.Clone(kindTable[kind].pairs)
}

func fallbackTiers(tier Tier) []Tier {
	order := []Tier{tier, TierMedium, TierEasy, TierHard}
	out := make([]Tier, 0, len(order))
	for _, t := range order {
		if t.Valid() && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func specAt(key Key, variant string, field Field) (ConstraintSpec, bool) {
	if variants, ok := variantTable[key]; ok {
		v := variant
		if _, known := variants[v]; !known {
			v = defaultVariant(key)
		}
		if spec, ok := variants[v][field]; ok {
			return spec, true
		}
	}
	spec, ok := specTable[key][field]
	return spec, ok
}

func defaultVariant(key Key) string {
	info := kindTable[key.Kind]
	if info.variant == "" {
		return ""
	}
	return specTable[key][info.variant].DefaultChoice
}

func cloneSpec(c ConstraintSpec) ConstraintSpec {
	c.Choices = slices.Clone(c.Choices)
	return c
}
