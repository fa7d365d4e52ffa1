package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestChoicesPickByNumber(t *testing.T) {
	c := NewChoices([]string{"7 moves", "15 moves"}, []string{"7", "15"})

	c, key, picked := c.Update(keyPress('2'))
	if !picked || key != "15" {
		t.Errorf("picked=%v key=%q, want 15", picked, key)
	}
	if c.Selected != 1 {
		t.Errorf("Selected = %d, want 1", c.Selected)
	}

	_, _, picked = c.Update(keyPress('9'))
	if picked {
		t.Error("out of range number should not pick")
	}
}

func TestChoicesArrowsClamp(t *testing.T) {
	c := NewChoices([]string{"a", "b"}, nil)
	c, _, _ = c.Update(specialKey(tea.KeyUp))
	if c.Selected != 0 {
		t.Errorf("Selected = %d, want 0", c.Selected)
	}
	c, _, _ = c.Update(specialKey(tea.KeyDown))
	c, _, _ = c.Update(specialKey(tea.KeyDown))
	if c.Selected != 1 {
		t.Errorf("Selected = %d, want 1", c.Selected)
	}
	if c.Chosen() != "b" {
		t.Errorf("Chosen = %q, keys should default to labels", c.Chosen())
	}
}

func TestChoicesViewMarksCurrent(t *testing.T) {
	c := NewChoices([]string{"7 moves", "15 moves"}, []string{"7", "15"})
	view := c.View("15")
	lines := strings.Split(strings.TrimSpace(view), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "●") || strings.Contains(lines[0], "●") {
		t.Errorf("view:\n%s", view)
	}
}

func TestCheckListToggle(t *testing.T) {
	c := NewCheckList([]string{"one", "two", "three"})
	c = c.Update(specialKey(tea.KeySpace))
	c = c.Update(specialKey(tea.KeyDown))
	c = c.Update(specialKey(tea.KeyDown))
	c = c.Update(specialKey(tea.KeySpace))
	c = c.Update(specialKey(tea.KeySpace))
	c = c.Update(specialKey(tea.KeySpace))

	got := c.Selected()
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Selected = %v, want [0 2]", got)
	}
	if !strings.Contains(c.View(10), "[x] three") {
		t.Errorf("view:\n%s", c.View(10))
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		cursor, n, height int
		start, end        int
	}{
		{0, 5, 10, 0, 5},
		{0, 20, 5, 0, 5},
		{10, 20, 5, 8, 13},
		{19, 20, 5, 15, 20},
		{3, 20, 0, 0, 20},
	}
	for _, tt := range tests {
		start, end := Window(tt.cursor, tt.n, tt.height)
		if start != tt.start || end != tt.end {
			t.Errorf("Window(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.cursor, tt.n, tt.height, start, end, tt.start, tt.end)
		}
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial Selected = %d, want first enabled item 1", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("down: Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 1 {
		t.Errorf("down wraps: Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 3 {
		t.Errorf("up wraps: Selected = %d, want 3", m.Selected)
	}

	m.Select(2)
	if m.Selected != 3 {
		t.Errorf("Select onto disabled item: Selected = %d, want 3", m.Selected)
	}
}

func TestMenuShortcuts(t *testing.T) {
	var fired string
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			fired = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Practice", Shortcut: "p", Hint: "single questions", Action: action("practice")},
		{Label: "Resume", Shortcut: "r", Disabled: true, Action: action("resume")},
		{Label: "Log", Shortcut: "l", Action: action("log")},
	})

	m, _ = m.Update(keyPress('r'))
	if fired != "" {
		t.Errorf("disabled shortcut fired %q", fired)
	}
	m, _ = m.Update(keyPress('l'))
	if fired != "log" || m.Selected != 2 {
		t.Errorf("fired=%q Selected=%d, want log at 2", fired, m.Selected)
	}

	m.Select(0)
	if !strings.Contains(m.HintView(40), "single questions") {
		t.Errorf("hint view = %q", m.HintView(40))
	}
	m.Select(2)
	if m.HintView(40) != "" {
		t.Error("items without a hint render nothing")
	}
}

func TestTally(t *testing.T) {
	tl := NewTally("Checked", 5, 3, 30)
	if tl.Done != 3 || tl.Fraction() != 1 {
		t.Errorf("done clamped to total: %+v", tl)
	}
	if !strings.Contains(tl.View(), "3/3") {
		t.Errorf("view = %q", tl.View())
	}
	if NewTally("", 0, 0, 10).Fraction() != 0 {
		t.Error("empty tally fraction should be 0")
	}
}

func TestNumericTextInput(t *testing.T) {
	ti := NewTextInput("n", true, 3)
	ti, _, changed := ti.Update(keyPress('x'))
	if changed || ti.Value() != "" {
		t.Errorf("letters must be ignored, got %q", ti.Value())
	}
	ti, _, changed = ti.Update(keyPress('4'))
	if !changed {
		t.Error("digit should change the value")
	}
	n, err := ti.NumericValue()
	if err != nil || n != 4 {
		t.Errorf("NumericValue = %d, %v", n, err)
	}
}

func TestButtonRow(t *testing.T) {
	row := ButtonRow(NewButton("Check", "Enter", true), NewButton("Next", "", false))
	if !strings.Contains(row, "Check [Enter]") || !strings.Contains(row, "Next") {
		t.Errorf("row = %q", row)
	}
}
