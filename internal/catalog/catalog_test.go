package catalog

import (
	"testing"

	"github.com/abhisek/smartest/internal/rules"
)

func sample() Catalog {
	return Catalog{Chapters: []Chapter{
		{Number: 1, Name: "Search", Subchapters: []Subchapter{
			{Number: 1, Name: "Strategies"},
			{Number: 2, Name: "Heuristics"},
		}},
		{Number: 2, Name: "Games", Subchapters: []Subchapter{
			{Number: 1, Name: "Nash Equilibrium"},
			{Number: 2, Name: "MinMax"},
		}},
		{Number: 3, Name: "Constraints", Subchapters: []Subchapter{
			{Number: 1, Name: "CSP Backtracking"},
		}},
	}}
}

func TestKindFor(t *testing.T) {
	tests := []struct {
		sel  Selection
		want rules.Kind
	}{
		{Selection{1, 1}, rules.KindSearchStrategies},
		{Selection{2, 1}, rules.KindNash},
		{Selection{2, 2}, rules.KindMinMax},
		{Selection{3, 1}, rules.KindCSP},
		{Selection{1, 2}, rules.KindUnknown},
		{Selection{9, 9}, rules.KindUnknown},
	}
	for _, tt := range tests {
		if got := KindFor(tt.sel); got != tt.want {
			t.Errorf("KindFor(%s) = %q, want %q", tt.sel, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	c := sample()
	if got := c.Label(&Selection{2, 2}); got != "Games · MinMax" {
		t.Errorf("Label = %q", got)
	}
	if got := c.Label(&Selection{7, 1}); got != "7:1" {
		t.Errorf("missing Label = %q, want 7:1", got)
	}
	if got := c.Label(nil); got != "No selection" {
		t.Errorf("nil Label = %q", got)
	}
}

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection(" 3:1 ")
	if err != nil || sel != (Selection{3, 1}) {
		t.Fatalf("ParseSelection = %v, %v", sel, err)
	}
	for _, bad := range []string{"", "3", "a:1", "3:b"} {
		if _, err := ParseSelection(bad); err == nil {
			t.Errorf("ParseSelection(%q) should fail", bad)
		}
	}
}

func TestParseSelections(t *testing.T) {
	sels, err := ParseSelections("1:1, 2:2,,3:1")
	if err != nil {
		t.Fatalf("ParseSelections: %v", err)
	}
	if len(sels) != 3 || sels[1] != (Selection{2, 2}) {
		t.Errorf("sels = %v", sels)
	}
	if _, err := ParseSelections("1:1,x"); err == nil {
		t.Error("expected error for bad selector")
	}
}

func TestEntries_Filter(t *testing.T) {
	c := sample()
	if got := len(c.Entries("")); got != 5 {
		t.Errorf("unfiltered entries = %d, want 5", got)
	}
	got := c.Entries("GAMES")
	if len(got) != 2 || got[0].Selection != (Selection{2, 1}) {
		t.Errorf("filtered entries = %+v", got)
	}
	if got[1].Text != "2. MinMax" || got[1].Chapter != "2. Games" {
		t.Errorf("entry text = %+v", got[1])
	}
}

func TestContains(t *testing.T) {
	c := sample()
	if !c.Contains(Selection{3, 1}) {
		t.Error("3:1 should exist")
	}
	if c.Contains(Selection{3, 2}) {
		t.Error("3:2 should not exist")
	}
}
