package options

import (
	"slices"
	"strconv"

	"github.com/abhisek/smartest/internal/rules"
)

// FormField is one editable row of a Form.
type FormField struct {
	Def      rules.FieldDef
	Spec     rules.ConstraintSpec
	Value    string
	Editable bool
}

// Form holds the raw, user-facing option values for one (kind, tier) while
// they are being edited. It is not validated until Record is called, but
// tier changes and cycling keep displayed values inside the active bounds.
type Form struct {
	kind   rules.Kind
	tier   rules.Tier
	fields []FormField
}

// NewForm returns a form pre-filled with defaults and locks for (kind, tier).
func NewForm(kind rules.Kind, tier rules.Tier) *Form {
	f := &Form{kind: kind}
	f.SetTier(tier)
	return f
}

// Kind returns the form's problem kind.
func (f *Form) Kind() rules.Kind { return f.kind }

// Tier returns the form's current tier.
func (f *Form) Tier() rules.Tier { return f.tier }

// Fields returns a copy of the form rows in display order.
func (f *Form) Fields() []FormField { return slices.Clone(f.fields) }

// Editable reports whether name can be changed by the user.
func (f *Form) Editable(name rules.Field) bool {
	i := f.index(name)
	return i >= 0 && f.fields[i].Editable
}

// Value returns the raw text currently held for name.
func (f *Form) Value(name rules.Field) string {
	if i := f.index(name); i >= 0 {
		return f.fields[i].Value
	}
	return ""
}

// SetTier switches tiers and re-applies bounds and locks to every row.
// Numeric values are clamped into the new range; fields that did not exist
// at the previous tier start at their default.
func (f *Form) SetTier(tier rules.Tier) {
	if !tier.Valid() {
		tier = rules.TierMedium
	}
	prev := make(map[rules.Field]string, len(f.fields))
	for _, ff := range f.fields {
		prev[ff.Def.Name] = ff.Value
	}
	f.tier = tier
	f.rebuild(prev)
}

// SetValue replaces the raw text of an editable field. Locked or unknown
// fields are left unchanged and false is returned.
func (f *Form) SetValue(name rules.Field, text string) bool {
	i := f.index(name)
	if i < 0 || !f.fields[i].Editable {
		return false
	}
	f.fields[i].Value = text
	if vf, ok := rules.VariantField(f.kind); ok && vf == name {
		f.rebuild(f.values())
	}
	return true
}

// Cycle steps an editable field by delta: enum fields rotate through their
// choices, numeric fields move within their bounds.
func (f *Form) Cycle(name rules.Field, delta int) bool {
	i := f.index(name)
	if i < 0 || !f.fields[i].Editable {
		return false
	}
	ff := f.fields[i]
	if ff.Spec.Type == rules.Enum {
		n := len(ff.Spec.Choices)
		if n == 0 {
			return false
		}
		cur, _ := ff.Spec.Canonical(ff.Value)
		pos := slices.Index(ff.Spec.Choices, cur)
		if pos < 0 {
			pos = slices.Index(ff.Spec.Choices, ff.Spec.DefaultChoice)
		}
		next := ((pos+delta)%n + n) % n
		return f.SetValue(name, ff.Spec.Choices[next])
	}
	cur, ok := ParseInt(ff.Value)
	if !ok {
		cur = ff.Spec.Default
	}
	return f.SetValue(name, strconv.Itoa(ff.Spec.Clamp(cur+delta)))
}

// Raw returns the raw values as OptionsBuilder input.
func (f *Form) Raw() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, ff := range f.fields {
		out[string(ff.Def.Name)] = ff.Value
	}
	return out
}

// Record validates the current values.
func (f *Form) Record() Record {
	return Build(f.kind, f.tier, f.Raw())
}

func (f *Form) values() map[rules.Field]string {
	out := make(map[rules.Field]string, len(f.fields))
	for _, ff := range f.fields {
		out[ff.Def.Name] = ff.Value
	}
	return out
}

func (f *Form) index(name rules.Field) int {
	return slices.IndexFunc(f.fields, func(ff FormField) bool { return ff.Def.Name == name })
}

func (f *Form) rebuild(prev map[rules.Field]string) {
	locks := rules.LockPolicyFor(f.kind, f.tier)

	variant := ""
	if vf, ok := rules.VariantField(f.kind); ok {
		spec := rules.ConstraintsFor(f.kind, f.tier, vf)
		variant = spec.DefaultChoice
		if v, ok := spec.Canonical(prev[vf]); ok {
			variant = v
		}
		if forced, ok := locks.Value(vf); ok {
			variant = forced
		}
	}

	defs := rules.FieldsFor(f.kind, f.tier)
	fields := make([]FormField, 0, len(defs))
	for _, def := range defs {
		spec := rules.ConstraintsForVariant(f.kind, f.tier, variant, def.Name)
		ff := FormField{Def: def, Spec: spec, Editable: !locks.Locked(def.Name)}
		switch forced, locked := locks.Value(def.Name); {
		case locked:
			ff.Value = forced
		case spec.Type == rules.Enum:
			ff.Value = spec.DefaultChoice
			if v, ok := spec.Canonical(prev[def.Name]); ok {
				ff.Value = v
			}
		default:
			ff.Value = strconv.Itoa(spec.Default)
			if n, ok := ParseInt(prev[def.Name]); ok {
				ff.Value = strconv.Itoa(spec.Clamp(n))
			}
		}
		fields = append(fields, ff)
	}
	f.fields = fields
	f.applyPairs()
}

func (f *Form) applyPairs() {
	for _, p := range rules.Pairs(f.kind) {
		lo, hi := f.index(p.Min), f.index(p.Max)
		if lo < 0 || hi < 0 {
			continue
		}
		a, okA := ParseInt(f.fields[lo].Value)
		b, okB := ParseInt(f.fields[hi].Value)
		if okA && okB && a > b {
			f.fields[lo].Value = strconv.Itoa(b)
		}
	}
}
