package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for framed sections.
func ContentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CabinetFrame wraps content in a double-border frame, centered within the
// given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel renders a titled, bordered section of the given outer width.
func Panel(title, body string, width int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.FocusedCard
	}
	if width > 2 {
		style = style.Width(width - 2)
	}
	head := theme.Subtitle.Render(title)
	if focused {
		head = theme.Selected.Render(title)
	}
	return style.Render(head + "\n" + body)
}

// Centered renders a one-line message centered in width.
func Centered(style lipgloss.Style, msg string, width int) string {
	return style.Width(width).Align(lipgloss.Center).Render(msg)
}
