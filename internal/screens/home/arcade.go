package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/ui/components"
	"github.com/abhisek/smartest/internal/ui/theme"
)

const arcadeTitleFull = ` ___ _   _   _   ___ _____ ___ ___ _____
/ __| \_/ | /_\ | _ \_   _| __/ __|_   _|
\__ \ |\/| |/ _ \|   / | | | _|\__ \ | |
|___/_|  |_/_/ \_\_|_\ |_| |___|___/ |_|`

const arcadeTitleCompact = "S · M · A · R · T · E · S · T"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders the session dashboard in a bordered box matching
// content width.
func renderStatsBar(st Status, cw int, compact bool) string {
	scopeStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	testStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	reqStyle := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	test := dimStyle.Render("◆ NO TEST")
	if st.TestSize > 0 {
		test = testStyle.Render(fmt.Sprintf("◆ TEST %dQ", st.TestSize))
	}
	requests := reqStyle.Render(fmt.Sprintf("⚡ %d REQ", st.Requests))
	if st.Failures > 0 {
		requests += dimStyle.Render(fmt.Sprintf(" (%d failed)", st.Failures))
	}

	sep := "  "
	if compact {
		sep = " "
	}
	stats := strings.Join([]string{
		scopeStyle.Render("● " + st.Scope),
		test,
		requests,
	}, sep)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func renderWarning(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// shortcutLabel appends the item's shortcut key, e.g. "PRACTICE [p]".
func shortcutLabel(item components.MenuItem) string {
	if item.Shortcut == "" {
		return item.Label
	}
	return item.Label + " [" + item.Shortcut + "]"
}

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(menu components.Menu, cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		BorderForeground(theme.Highlight)
	normalBtn := base.
		Foreground(theme.Text).
		BorderForeground(theme.Border)
	disabledBtn := base.
		Foreground(theme.TextDim).
		BorderForeground(theme.Border)

	var buttons []string
	for i, item := range menu.Items {
		label := shortcutLabel(item)
		switch {
		case item.Disabled:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == menu.Selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as plain lines for small
// terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(menu components.Menu, cw int) string {
	var lines []string
	for i, item := range menu.Items {
		label := shortcutLabel(item)
		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		case i == menu.Selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
