package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/ui/theme"
)

// Choices is a single-select list of suggested answers. Picking one yields
// its key; the label is only displayed.
type Choices struct {
	Labels   []string
	Keys     []string
	Selected int
}

// NewChoices creates a choice list. Keys default to labels when the lengths
// differ.
func NewChoices(labels, keys []string) Choices {
	if len(keys) != len(labels) {
		keys = labels
	}
	return Choices{Labels: labels, Keys: keys}
}

// Empty reports whether there is nothing to choose.
func (c Choices) Empty() bool { return len(c.Labels) == 0 }

// Update moves the selection with up/down (or k/j). Number keys 1-9 jump to
// an option. It returns the picked key when a number key was used.
func (c Choices) Update(msg tea.Msg) (Choices, string, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || c.Empty() {
		return c, "", false
	}
	switch key := kmsg.String(); key {
	case "up":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down":
		if c.Selected < len(c.Labels)-1 {
			c.Selected++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(c.Labels) {
				c.Selected = i
				return c, c.Keys[i], true
			}
		}
	}
	return c, "", false
}

// Chosen returns the key under the cursor.
func (c Choices) Chosen() string {
	if c.Empty() {
		return ""
	}
	return c.Keys[c.Selected]
}

// View renders the options, marking the one whose key equals current.
func (c Choices) View(current string) string {
	var b strings.Builder
	for i, label := range c.Labels {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		mark := " "
		if c.Keys[i] == current && current != "" {
			mark = "●"
		}
		line := fmt.Sprintf("%s%d) %s %s", prefix, i+1, mark, label)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == c.Selected {
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
