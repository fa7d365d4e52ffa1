package components

import (
	"github.com/abhisek/smartest/internal/ui/theme"
)

// Button is an action label rendered enabled or disabled.
type Button struct {
	Label  string
	Key    string
	Active bool
}

// NewButton creates a new button.
func NewButton(label, key string, active bool) Button {
	return Button{Label: label, Key: key, Active: active}
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label += " [" + b.Key + "]"
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders buttons side by side.
func ButtonRow(buttons ...Button) string {
	var s string
	for i, b := range buttons {
		if i > 0 {
			s += "  "
		}
		s += b.View()
	}
	return s
}
