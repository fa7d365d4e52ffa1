package options

import (
	"testing"

	"github.com/abhisek/smartest/internal/rules"
)

func TestNewForm_Defaults(t *testing.T) {
	f := NewForm(rules.KindCSP, rules.TierMedium)
	if got := f.Value(rules.FieldNumVars); got != "4" {
		t.Errorf("num_vars = %q, want 4", got)
	}
	if got := f.Value(rules.FieldInference); got != "FC" {
		t.Errorf("inference = %q, want FC", got)
	}
	if len(f.Fields()) != 8 {
		t.Errorf("fields = %d, want 8", len(f.Fields()))
	}
}

func TestForm_EasyLocksFields(t *testing.T) {
	f := NewForm(rules.KindCSP, rules.TierMedium)
	f.SetValue(rules.FieldConsistency, "AC3")
	f.SetTier(rules.TierEasy)

	if f.Editable(rules.FieldConsistency) {
		t.Error("consistency should be locked at easy")
	}
	if got := f.Value(rules.FieldConsistency); got != "NONE" {
		t.Errorf("consistency = %q, want NONE", got)
	}
	if f.SetValue(rules.FieldConsistency, "AC3") {
		t.Error("SetValue on locked field should be refused")
	}
	if f.Cycle(rules.FieldValueHeuristic, 1) {
		t.Error("Cycle on locked field should be refused")
	}

	f.SetTier(rules.TierHard)
	if !f.Editable(rules.FieldConsistency) {
		t.Error("consistency should unlock at hard")
	}
}

func TestForm_SetTierClampsNumbers(t *testing.T) {
	f := NewForm(rules.KindCSP, rules.TierHard)
	f.SetValue(rules.FieldNumVars, "8")
	f.SetValue(rules.FieldDomainMinSize, "9")
	f.SetValue(rules.FieldDomainMaxSize, "11")
	f.SetTier(rules.TierEasy)

	if got := f.Value(rules.FieldNumVars); got != "4" {
		t.Errorf("num_vars = %q, want 4", got)
	}
	if got := f.Value(rules.FieldDomainMaxSize); got != "5" {
		t.Errorf("domain_max_size = %q, want 5", got)
	}
	if got := f.Value(rules.FieldDomainMinSize); got != "4" {
		t.Errorf("domain_min_size = %q, want 4", got)
	}
}

func TestForm_SetTierChangesNashFields(t *testing.T) {
	f := NewForm(rules.KindNash, rules.TierEasy)
	if f.Value(rules.FieldM) != "2" {
		t.Fatalf("m = %q", f.Value(rules.FieldM))
	}
	f.SetTier(rules.TierMedium)
	if len(f.Fields()) != 1 || f.Fields()[0].Def.Name != rules.FieldSize {
		t.Fatalf("medium nash fields = %+v", f.Fields())
	}
	if f.Value(rules.FieldSize) != "2" {
		t.Errorf("size = %q, want 2", f.Value(rules.FieldSize))
	}
}

func TestForm_CycleEnumWraps(t *testing.T) {
	f := NewForm(rules.KindMinMax, rules.TierMedium)
	f.Cycle(rules.FieldRootPlayer, 1)
	if got := f.Value(rules.FieldRootPlayer); got != "MIN" {
		t.Errorf("after +1 = %q, want MIN", got)
	}
	f.Cycle(rules.FieldRootPlayer, 1)
	if got := f.Value(rules.FieldRootPlayer); got != "MAX" {
		t.Errorf("after +2 = %q, want MAX", got)
	}
	f.Cycle(rules.FieldRootPlayer, -1)
	if got := f.Value(rules.FieldRootPlayer); got != "MIN" {
		t.Errorf("after -1 = %q, want MIN", got)
	}
}

func TestForm_CycleNumericStaysInBounds(t *testing.T) {
	f := NewForm(rules.KindMinMax, rules.TierEasy)
	for range 10 {
		f.Cycle(rules.FieldDepth, 1)
	}
	if got := f.Value(rules.FieldDepth); got != "3" {
		t.Errorf("depth = %q, want 3", got)
	}
	for range 10 {
		f.Cycle(rules.FieldDepth, -1)
	}
	if got := f.Value(rules.FieldDepth); got != "1" {
		t.Errorf("depth = %q, want 1", got)
	}
}

func TestForm_VariantChangeRespecsSize(t *testing.T) {
	f := NewForm(rules.KindSearchStrategies, rules.TierEasy)
	if got := f.Value(rules.FieldSize); got != "4" {
		t.Fatalf("nqueens size = %q, want 4", got)
	}
	f.SetValue(rules.FieldProblem, "graph_coloring")
	if got := f.Value(rules.FieldSize); got != "4" {
		t.Errorf("size after switch = %q, want 4 (still in 4..9)", got)
	}
	f.SetValue(rules.FieldSize, "9")
	f.SetValue(rules.FieldProblem, "knights_tour")
	if got := f.Value(rules.FieldSize); got != "7" {
		t.Errorf("size after knights_tour = %q, want 7", got)
	}

	rec := f.Record()
	if n, _ := rec.Int(rules.FieldN); n != 7 {
		t.Errorf("record n = %d, want 7", n)
	}
}

func TestForm_RecordMatchesBuild(t *testing.T) {
	f := NewForm(rules.KindCSP, rules.TierEasy)
	f.SetValue(rules.FieldNumVars, "99")
	got := f.Record()
	want := Build(rules.KindCSP, rules.TierEasy, f.Raw())
	if !got.Equal(want) {
		t.Fatalf("Record = %v, want %v", got.Map(), want.Map())
	}
	if v, _ := got.Int(rules.FieldNumVars); v != 4 {
		t.Errorf("num_vars = %d, want 4", v)
	}
}
