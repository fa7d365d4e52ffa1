package rules

import (
	"slices"
	"strings"
)

// Kind identifies the generation domain of a question.
type Kind string

const (
	KindSearchStrategies Kind = "search_strategies"
	KindNash             Kind = "nash"
	KindMinMax           Kind = "minmax"
	KindCSP              Kind = "csp"

	// KindUnknown covers catalog entries that take no generation options.
	KindUnknown Kind = "unknown"
)

// AllKinds returns every kind that has a rule table, in catalog order.
func AllKinds() []Kind {
	return []Kind{KindSearchStrategies, KindNash, KindMinMax, KindCSP}
}

// ParseKind maps a token to a Kind. Unrecognised tokens map to KindUnknown.
func ParseKind(s string) Kind {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(AllKinds(), k) {
		return k
	}
	return KindUnknown
}

// DisplayName returns a human-readable name for a kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindSearchStrategies:
		return "Search Strategies"
	case KindNash:
		return "Nash Equilibrium"
	case KindMinMax:
		return "MinMax (Alpha-Beta)"
	case KindCSP:
		return "CSP (Backtracking)"
	default:
		return "No options"
	}
}

// Tier is the coarse difficulty knob.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// AllTiers returns the tiers in ascending difficulty.
func AllTiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard}
}

// ParseTier maps a token to a Tier; anything unrecognised becomes TierMedium.
func ParseTier(s string) Tier {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t
	}
	return TierMedium
}

// Valid reports whether t is one of the declared tiers.
func (t Tier) Valid() bool {
	return t == TierEasy || t == TierMedium || t == TierHard
}

// Next returns the following tier, wrapping around.
func (t Tier) Next() Tier {
	switch t {
	case TierEasy:
		return TierMedium
	case TierMedium:
		return TierHard
	default:
		return TierEasy
	}
}

// Field names one generation option as sent on the wire.
type Field string

const (
	FieldDifficulty Field = "difficulty"

	// CSP
	FieldInference      Field = "inference"
	FieldConsistency    Field = "consistency"
	FieldVarHeuristic   Field = "var_heuristic"
	FieldValueHeuristic Field = "value_heuristic"
	FieldNumVars        Field = "num_vars"
	FieldNumConstraints Field = "num_constraints"
	FieldDomainMinSize  Field = "domain_min_size"
	FieldDomainMaxSize  Field = "domain_max_size"

	// MinMax
	FieldDepth      Field = "depth"
	FieldBranching  Field = "branching"
	FieldRootPlayer Field = "root_player"

	// Search strategies
	FieldProblem Field = "problem"
	FieldSize    Field = "size"
	FieldN       Field = "n"
	FieldNodes   Field = "nodes"
	FieldDisks   Field = "disks"

	// Nash
	FieldM Field = "m"
)

// FieldType distinguishes integer ranges from enumerated choices.
type FieldType int

const (
	Numeric FieldType = iota
	Enum
)

// FieldDef declares a field relevant to a (kind, tier) pair.
type FieldDef struct {
	Name  Field
	Label string
	Type  FieldType
}

// ConstraintSpec bounds one field under one (kind, tier).
// Numeric specs use Min/Max/Default; enum specs use Choices/DefaultChoice.
type ConstraintSpec struct {
	Type          FieldType
	Min           int
	Max           int
	Default       int
	Choices       []string
	DefaultChoice string
}

// Valid reports whether the spec satisfies its own invariant.
func (c ConstraintSpec) Valid() bool {
	if c.Type == Enum {
		return c.Allows(c.DefaultChoice)
	}
	return c.Min <= c.Default && c.Default <= c.Max
}

// Clamp forces n into [Min, Max].
func (c ConstraintSpec) Clamp(n int) int {
	return max(c.Min, min(c.Max, n))
}

// Contains reports whether n lies within [Min, Max].
func (c ConstraintSpec) Contains(n int) bool {
	return n >= c.Min && n <= c.Max
}

// Allows reports whether v is a member of the allowed set (exact match).
func (c ConstraintSpec) Allows(v string) bool {
	return slices.Contains(c.Choices, v)
}

// Canonical returns the allowed member matching v case-insensitively.
func (c ConstraintSpec) Canonical(v string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, choice := range c.Choices {
		if strings.EqualFold(choice, v) {
			return choice, true
		}
	}
	return "", false
}

// LockPolicy maps locked fields to their forced value.
type LockPolicy map[Field]string

// Locked reports whether f is forced under this policy.
func (p LockPolicy) Locked(f Field) bool {
	_, ok := p[f]
	return ok
}

// Value returns the forced value of f.
func (p LockPolicy) Value(f Field) (string, bool) {
	v, ok := p[f]
	return v, ok
}

// Fields returns the locked field names in sorted order.
func (p LockPolicy) Fields() []Field {
	out := make([]Field, 0, len(p))
	for f := range p {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// MinMaxPair declares that Min must never exceed Max in a built record.
type MinMaxPair struct {
	Min Field
	Max Field
}
