package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Shortcut, when set, activates the item
// directly; Hint describes it under the menu while it is selected.
type MenuItem struct {
	Label    string
	Shortcut string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical menu whose cursor wraps and never rests on a disabled
// item while an enabled one exists.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu selecting the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Select(0)
	return m
}

// Select moves the cursor to i, or to the next enabled item after it.
func (m *Menu) Select(i int) {
	if len(m.Items) == 0 {
		m.Selected = 0
		return
	}
	m.Selected = min(max(i, 0), len(m.Items)-1)
	if m.Items[m.Selected].Disabled {
		m.step(1)
	}
}

// Current returns the selected item, or false for an empty menu.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m *Menu) step(delta int) {
	n := len(m.Items)
	for k := 1; k <= n; k++ {
		i := ((m.Selected+delta*k)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Update handles arrows, enter and item shortcuts.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Shortcut != "" && item.Shortcut == key && !item.Disabled {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// HintView renders the hint of the selected item, centred in width.
func (m Menu) HintView(width int) string {
	item, ok := m.Current()
	if !ok || item.Hint == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Width(width).
		Align(lipgloss.Center).
		Render(item.Hint)
}
