package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/router"
	"github.com/abhisek/smartest/internal/screen"
	"github.com/abhisek/smartest/internal/testsession"
	"github.com/abhisek/smartest/internal/ui/components"
	"github.com/abhisek/smartest/internal/ui/layout"
	"github.com/abhisek/smartest/internal/ui/theme"
)

// Line is the per-question row of the summary.
type Line struct {
	Label   string
	Verdict string
	Correct *bool
	Checked bool
}

// SummaryScreen displays the results of a test so far.
type SummaryScreen struct {
	summary testsession.Summary
	lines   []Line
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary testsession.Summary, lines []Line) *SummaryScreen {
	return &SummaryScreen{summary: summary, lines: lines}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Test Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to test"},
		{Key: "h", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "h":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("%d of %d questions checked", sum.Checked, sum.Total)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Correct: %d", sum.Correct)
	if sum.Scored > 0 {
		stats += fmt.Sprintf("        Mean score: %.0f%%", sum.MeanScore)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(stats))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	if sum.Total > 0 && barWidth > 0 {
		checked := components.NewTally("Checked", sum.Checked, sum.Total, barWidth).View()
		correct := components.NewTally("Correct", sum.Correct, sum.Checked, barWidth).View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, checked))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, correct))
		b.WriteString("\n\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(barWidth, 1)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, l := range s.lines {
		verdict := "not checked"
		style := theme.Disabled
		if l.Checked {
			verdict = l.Verdict
			style = theme.Body
			if l.Correct != nil {
				style = theme.Incorrect
				if *l.Correct {
					style = theme.Correct
				}
			}
		}
		line := fmt.Sprintf("%-12s %s", l.Label, verdict)
		if lipgloss.Width(line) > width-4 && width > 8 {
			line = string([]rune(line)[:width-5]) + "…"
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
