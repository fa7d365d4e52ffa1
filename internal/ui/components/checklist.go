package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/ui/theme"
)

// CheckList is a scrollable multi-select list.
type CheckList struct {
	Items   []string
	Checked map[int]bool
	Cursor  int
}

// NewCheckList creates a checklist with nothing checked.
func NewCheckList(items []string) CheckList {
	return CheckList{Items: items, Checked: make(map[int]bool)}
}

// Update handles up/down and space to toggle.
func (c CheckList) Update(msg tea.Msg) CheckList {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Cursor < len(c.Items) {
			c.Checked[c.Cursor] = !c.Checked[c.Cursor]
		}
	}
	return c
}

// Selected returns the checked indexes in order.
func (c CheckList) Selected() []int {
	var out []int
	for i := range c.Items {
		if c.Checked[i] {
			out = append(out, i)
		}
	}
	return out
}

// View renders at most height rows around the cursor.
func (c CheckList) View(height int) string {
	start, end := Window(c.Cursor, len(c.Items), height)
	var b strings.Builder
	for i := start; i < end; i++ {
		box := "[ ]"
		if c.Checked[i] {
			box = "[x]"
		}
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == c.Cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(prefix + box + " " + c.Items[i]))
		b.WriteString("\n")
	}
	return b.String()
}

// Window returns the [start, end) slice of n rows that keeps cursor visible
// within height rows.
func Window(cursor, n, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
