package rules

// Key is the composite lookup key for every rule table.
type Key struct {
	Kind Kind
	Tier Tier
}

func num(lo, hi, def int) ConstraintSpec {
	return ConstraintSpec{Type: Numeric, Min: lo, Max: hi, Default: def}
}

func enum(def string, choices ...string) ConstraintSpec {
	return ConstraintSpec{Type: Enum, Choices: choices, DefaultChoice: def}
}

// kindInfo holds the per-kind declarations that do not vary by tier.
type kindInfo struct {
	variant Field
	aliases map[string]Field
	pairs   []MinMaxPair
}

var kindTable = map[Kind]kindInfo{
	KindSearchStrategies: {
		variant: FieldProblem,
		aliases: map[string]Field{
			"nqueens":           FieldN,
			"graph_coloring":    FieldNodes,
			"knights_tour":      FieldN,
			"generalized_hanoi": FieldDisks,
		},
	},
	KindCSP: {
		pairs: []MinMaxPair{{Min: FieldDomainMinSize, Max: FieldDomainMaxSize}},
	},
}

var cspFields = []FieldDef{
	{Name: FieldInference, Label: "Inference", Type: Enum},
	{Name: FieldConsistency, Label: "Consistency", Type: Enum},
	{Name: FieldVarHeuristic, Label: "Var heuristic", Type: Enum},
	{Name: FieldValueHeuristic, Label: "Value heuristic", Type: Enum},
	{Name: FieldNumVars, Label: "# Vars", Type: Numeric},
	{Name: FieldNumConstraints, Label: "# Constraints", Type: Numeric},
	{Name: FieldDomainMinSize, Label: "Domain min size", Type: Numeric},
	{Name: FieldDomainMaxSize, Label: "Domain max size", Type: Numeric},
}

var minmaxFields = []FieldDef{
	{Name: FieldDepth, Label: "Depth", Type: Numeric},
	{Name: FieldBranching, Label: "Branching", Type: Numeric},
	{Name: FieldRootPlayer, Label: "Root player", Type: Enum},
}

var searchFields = []FieldDef{
	{Name: FieldProblem, Label: "Problem", Type: Enum},
	{Name: FieldSize, Label: "Size", Type: Numeric},
}

var nashPureFields = []FieldDef{
	{Name: FieldM, Label: "m", Type: Numeric},
	{Name: FieldN, Label: "n", Type: Numeric},
}

var nashSquareFields = []FieldDef{
	{Name: FieldSize, Label: "Size", Type: Numeric},
}

var fieldTable = map[Key][]FieldDef{
	{KindCSP, TierEasy}:   cspFields,
	{KindCSP, TierMedium}: cspFields,
	{KindCSP, TierHard}:   cspFields,

	{KindMinMax, TierEasy}:   minmaxFields,
	{KindMinMax, TierMedium}: minmaxFields,
	{KindMinMax, TierHard}:   minmaxFields,

	{KindSearchStrategies, TierEasy}:   searchFields,
	{KindSearchStrategies, TierMedium}: searchFields,
	{KindSearchStrategies, TierHard}:   searchFields,

	{KindNash, TierEasy}:   nashPureFields,
	{KindNash, TierMedium}: nashSquareFields,
	{KindNash, TierHard}:   nashSquareFields,
}

func cspSpecs(vars, constraints, domMin, domMax ConstraintSpec) map[Field]ConstraintSpec {
	return map[Field]ConstraintSpec{
		FieldInference:      enum("FC", "FC", "NONE"),
		FieldConsistency:    enum("NONE", "NONE", "AC3"),
		FieldVarHeuristic:   enum("NONE", "NONE", "MRV"),
		FieldValueHeuristic: enum("LCV", "LCV", "NONE"),
		FieldNumVars:        vars,
		FieldNumConstraints: constraints,
		FieldDomainMinSize:  domMin,
		FieldDomainMaxSize:  domMax,
	}
}

func minmaxSpecs(depth, branching ConstraintSpec) map[Field]ConstraintSpec {
	return map[Field]ConstraintSpec{
		FieldDepth:      depth,
		FieldBranching:  branching,
		FieldRootPlayer: enum("MAX", "MAX", "MIN"),
	}
}

var searchProblem = enum("nqueens", "nqueens", "graph_coloring", "knights_tour", "generalized_hanoi")

var specTable = map[Key]map[Field]ConstraintSpec{
	{KindCSP, TierEasy}:   cspSpecs(num(2, 4, 3), num(1, 6, 3), num(1, 4, 2), num(1, 5, 4)),
	{KindCSP, TierMedium}: cspSpecs(num(2, 6, 4), num(1, 12, 6), num(1, 8, 2), num(1, 10, 5)),
	{KindCSP, TierHard}:   cspSpecs(num(2, 8, 6), num(1, 20, 12), num(1, 10, 2), num(1, 12, 6)),

	{KindMinMax, TierEasy}:   minmaxSpecs(num(1, 3, 2), num(2, 3, 2)),
	{KindMinMax, TierMedium}: minmaxSpecs(num(1, 5, 3), num(2, 4, 2)),
	{KindMinMax, TierHard}:   minmaxSpecs(num(1, 6, 4), num(2, 4, 3)),

	{KindSearchStrategies, TierEasy}:   {FieldProblem: searchProblem},
	{KindSearchStrategies, TierMedium}: {FieldProblem: searchProblem},
	{KindSearchStrategies, TierHard}:   {FieldProblem: searchProblem},

	{KindNash, TierEasy}:   {FieldM: num(2, 5, 2), FieldN: num(2, 5, 2)},
	{KindNash, TierMedium}: {FieldSize: num(2, 3, 2)},
	{KindNash, TierHard}:   {FieldSize: num(2, 3, 2)},
}

// variantTable holds numeric specs that depend on the kind's variant field.
var variantTable = map[Key]map[string]map[Field]ConstraintSpec{
	{KindSearchStrategies, TierEasy}: {
		"nqueens":           {FieldSize: num(2, 5, 4)},
		"graph_coloring":    {FieldSize: num(4, 9, 6)},
		"knights_tour":      {FieldSize: num(5, 7, 5)},
		"generalized_hanoi": {FieldSize: num(3, 6, 4)},
	},
	{KindSearchStrategies, TierMedium}: {
		"nqueens":           {FieldSize: num(4, 8, 6)},
		"graph_coloring":    {FieldSize: num(6, 14, 9)},
		"knights_tour":      {FieldSize: num(5, 9, 6)},
		"generalized_hanoi": {FieldSize: num(3, 10, 5)},
	},
	{KindSearchStrategies, TierHard}: {
		"nqueens":           {FieldSize: num(6, 10, 8)},
		"graph_coloring":    {FieldSize: num(10, 18, 12)},
		"knights_tour":      {FieldSize: num(7, 10, 8)},
		"generalized_hanoi": {FieldSize: num(6, 14, 8)},
	},
}

var lockTable = map[Key]LockPolicy{
	{KindCSP, TierEasy}: {
		FieldConsistency:    "NONE",
		FieldValueHeuristic: "NONE",
	},
	{KindMinMax, TierEasy}: {
		FieldRootPlayer: "MAX",
	},
}
